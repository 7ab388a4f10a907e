package guestbook

import (
	"database/sql"
	"fmt"
	"time"
)

// Entry is one signature in the guestbook.
type Entry struct {
	ID        int
	Name      string
	Message   string
	CreatedAt time.Time
}

// Repo handles database operations for the guestbook.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a new guestbook repository.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Sign adds an entry. Visitors do not need an account.
func (r *Repo) Sign(name, message string) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO guestbook (name, message) VALUES (?, ?)
	`, name, message)
	if err != nil {
		return 0, fmt.Errorf("sign guestbook: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get guestbook id: %w", err)
	}
	return int(id), nil
}

// List returns the most recent entries, newest first.
func (r *Repo) List(limit int) ([]*Entry, error) {
	rows, err := r.db.Query(`
		SELECT id, name, message, created_at FROM guestbook
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list guestbook: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		var created sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &e.Message, &created); err != nil {
			return nil, err
		}
		if created.Valid {
			e.CreatedAt = created.Time
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of entries.
func (r *Repo) Count() int {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM guestbook").Scan(&count)
	return count
}
