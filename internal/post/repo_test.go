package post

import (
	"testing"

	"github.com/solohouse/solo-os/internal/db"
	"github.com/solohouse/solo-os/internal/user"
)

func testRepos(t *testing.T) (*Repo, *user.Repo) {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewRepo(database.DB), user.NewRepo(database.DB)
}

func TestCreateAndGet(t *testing.T) {
	posts, users := testRepos(t)

	alice, err := users.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	id, err := posts.Create(alice.ID, "First post", "Hello board", TypePost)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	p, err := posts.GetByID(id)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if p.Title != "First post" || p.Content != "Hello board" {
		t.Fatalf("unexpected post: %+v", p)
	}
	if p.Type != TypePost {
		t.Fatalf("expected type %s, got %s", TypePost, p.Type)
	}
	if p.Username != "alice" {
		t.Fatalf("expected author alice, got %q", p.Username)
	}
}

func TestListByTypeSeparatesKinds(t *testing.T) {
	posts, users := testRepos(t)

	alice, err := users.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := posts.Create(alice.ID, "regular", "body", TypePost); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := posts.Create(alice.ID, "heads up", "body", TypeAnnounce); err != nil {
		t.Fatalf("create announcement: %v", err)
	}
	if _, err := posts.Create(alice.ID, "", "hacking away", TypeStatus); err != nil {
		t.Fatalf("create status: %v", err)
	}

	for _, tc := range []struct {
		kind string
		want string
	}{
		{TypePost, "regular"},
		{TypeAnnounce, "heads up"},
	} {
		got, err := posts.ListByType(tc.kind, 10)
		if err != nil {
			t.Fatalf("list %s: %v", tc.kind, err)
		}
		if len(got) != 1 || got[0].Title != tc.want {
			t.Fatalf("expected one %s titled %q, got %+v", tc.kind, tc.want, got)
		}
	}

	if posts.Count() != 3 {
		t.Fatalf("expected 3 posts total, got %d", posts.Count())
	}
}

func TestListByTypeNewestFirst(t *testing.T) {
	posts, users := testRepos(t)

	alice, err := users.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	for _, title := range []string{"one", "two", "three"} {
		if _, err := posts.Create(alice.ID, title, "body", TypePost); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	got, err := posts.ListByType(TypePost, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit 2 respected, got %d", len(got))
	}
	if got[0].Title != "three" || got[1].Title != "two" {
		t.Fatalf("expected newest first, got %q then %q", got[0].Title, got[1].Title)
	}
}

func TestWeeklyUpsert(t *testing.T) {
	posts, users := testRepos(t)

	alice, err := users.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	week := 12
	id1, err := posts.UpsertWeekly(alice.ID, week, "shipped v1", "plan v2", "it works")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Posting again in the same week replaces the entry instead of adding
	// a second row.
	id2, err := posts.UpsertWeekly(alice.ID, week, "shipped v1.1", "plan v2", "")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id2 != id1 {
		t.Fatalf("expected update in place, got new id %d (was %d)", id2, id1)
	}
	if posts.WeeklyCount() != 1 {
		t.Fatalf("expected 1 weekly post, got %d", posts.WeeklyCount())
	}

	w, err := posts.GetWeekly(alice.ID, week)
	if err != nil {
		t.Fatalf("get weekly: %v", err)
	}
	if w == nil || w.LastWeek != "shipped v1.1" {
		t.Fatalf("expected updated content, got %+v", w)
	}

	if w, err := posts.GetWeekly(alice.ID, week+1); err != nil || w != nil {
		t.Fatalf("expected nil for absent week, got %+v err=%v", w, err)
	}
}

func TestLatestWeekliesOnePerUser(t *testing.T) {
	posts, users := testRepos(t)

	alice, err := users.Create("alice", "secret123", false)
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := users.Create("bob", "secret456", false)
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	if _, err := posts.UpsertWeekly(alice.ID, 10, "a w10", "", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := posts.UpsertWeekly(alice.ID, 11, "a w11", "", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := posts.UpsertWeekly(bob.ID, 11, "b w11", "", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	latest, err := posts.LatestWeeklies()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected one entry per user, got %d", len(latest))
	}
	seen := map[string]string{}
	for _, w := range latest {
		seen[w.Username] = w.LastWeek
	}
	if seen["alice"] != "a w11" {
		t.Fatalf("expected alice's week 11 entry, got %q", seen["alice"])
	}
	if seen["bob"] != "b w11" {
		t.Fatalf("expected bob's entry, got %q", seen["bob"])
	}
}
