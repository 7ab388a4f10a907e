package user

import (
	"strings"
	"testing"

	"github.com/solohouse/solo-os/internal/db"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewRepo(database.DB)
}

func TestCreateAndAuthenticate(t *testing.T) {
	repo := testRepo(t)

	created, err := repo.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Username != "alice" || created.IsAdmin {
		t.Fatalf("unexpected user: %+v", created)
	}
	if created.PasswordHash == "secret123" {
		t.Fatalf("password stored in plaintext")
	}

	u, err := repo.Authenticate("alice", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, u.ID)
	}
	if u.LastLogin == nil {
		t.Fatalf("expected last login to be recorded")
	}

	if _, err := repo.Authenticate("alice", "wrong"); err == nil {
		t.Fatalf("expected wrong password to fail")
	}
	if _, err := repo.Authenticate("nobody", "secret123"); err == nil {
		t.Fatalf("expected unknown user to fail")
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := testRepo(t)

	if _, err := repo.Create("alice", "secret123", false); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create("alice", "other456", false)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestGetByUsernameCaseInsensitive(t *testing.T) {
	repo := testRepo(t)

	if _, err := repo.Create("Alice", "secret123", false); err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := repo.GetByUsername("alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if u.Username != "Alice" {
		t.Fatalf("expected Alice, got %q", u.Username)
	}

	if !repo.Exists("ALICE") {
		t.Fatalf("expected case-insensitive existence check")
	}
}

func TestProfileUpdates(t *testing.T) {
	repo := testRepo(t)

	u, err := repo.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateProfile(u.ID, "I write Go", "alice@example.com", "shipping"); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	u, err = repo.GetByID(u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Bio != "I write Go" || u.Contact != "alice@example.com" || u.Status != "shipping" {
		t.Fatalf("profile not persisted: %+v", u)
	}

	if err := repo.UpdateStatus(u.ID, "resting"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	u, _ = repo.GetByID(u.ID)
	if u.Status != "resting" {
		t.Fatalf("expected status resting, got %q", u.Status)
	}
	if u.Bio != "I write Go" {
		t.Fatalf("status update must not clear bio, got %q", u.Bio)
	}
}

func TestAdminLifecycle(t *testing.T) {
	repo := testRepo(t)

	createdDefault, err := repo.EnsureAdmin("admin", "admin")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if !createdDefault {
		t.Fatalf("expected default admin to be created on empty database")
	}
	if repo.AdminCount() != 1 {
		t.Fatalf("expected 1 admin, got %d", repo.AdminCount())
	}

	createdDefault, err = repo.EnsureAdmin("admin2", "admin")
	if err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
	if createdDefault {
		t.Fatalf("expected no-op when an admin already exists")
	}

	alice, err := repo.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SetAdmin(alice.ID, true); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if repo.AdminCount() != 2 {
		t.Fatalf("expected 2 admins, got %d", repo.AdminCount())
	}
	if err := repo.SetAdmin(alice.ID, false); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if repo.AdminCount() != 1 {
		t.Fatalf("expected 1 admin after demote, got %d", repo.AdminCount())
	}
}

func TestDeleteRemovesProfile(t *testing.T) {
	repo := testRepo(t)

	u, err := repo.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.Count() != 0 {
		t.Fatalf("expected no users, got %d", repo.Count())
	}
	if _, err := repo.GetByID(u.ID); err == nil {
		t.Fatalf("expected lookup of deleted user to fail")
	}
}

func TestListOrderedByUsername(t *testing.T) {
	repo := testRepo(t)

	for _, name := range []string{"carol", "alice", "bob"} {
		if _, err := repo.Create(name, "secret123", false); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	users, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	want := []string{"alice", "bob", "carol"}
	for i, u := range users {
		if u.Username != want[i] {
			t.Fatalf("expected %s at %d, got %s", want[i], i, u.Username)
		}
	}
}
