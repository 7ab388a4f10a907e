package guestbook

import (
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

func TestSignAndList(t *testing.T) {
	repo := testRepo(t)

	// No account needed: any visitor name is accepted.
	if _, err := repo.Sign("wanderer", "nice board!"); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := repo.Sign("alice", "hello from the terminal"); err != nil {
		t.Fatalf("sign: %v", err)
	}

	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "alice" {
		t.Fatalf("expected newest first, got %q", entries[0].Name)
	}
	if repo.Count() != 2 {
		t.Fatalf("expected count 2, got %d", repo.Count())
	}
}

func TestListLimit(t *testing.T) {
	repo := testRepo(t)

	for i := 0; i < 5; i++ {
		if _, err := repo.Sign("visitor", "again"); err != nil {
			t.Fatalf("sign: %v", err)
		}
	}

	entries, err := repo.List(3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit 3 respected, got %d", len(entries))
	}
}
