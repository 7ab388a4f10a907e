package scripting

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Prefix namespaces every stored custom command so a user-authored name can
// never collide with a built-in command name.
const Prefix = "custom_"

// ErrDuplicateName is returned when a command name is already taken in the
// store.
var ErrDuplicateName = errors.New("command name already exists")

// Record is the persisted form of a custom command. Name always carries the
// namespace prefix. Source is opaque text whose validity is unknown until
// compile time.
type Record struct {
	ID        int
	CreatorID int
	Name      string
	Description string
	Source    string
	CreatedAt time.Time

	// Creator is the authoring username, joined for display; empty when the
	// account was deleted.
	Creator string
}

// BaseName returns the record name without the namespace prefix.
func (r *Record) BaseName() string {
	return strings.TrimPrefix(r.Name, Prefix)
}

// Namespaced returns the name with the prefix applied exactly once.
func Namespaced(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// Repo handles database operations for custom command records.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a new custom command repository.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const selectRecord = `
	SELECT c.id, COALESCE(c.creator_id, 0), c.name, c.description, c.implementation,
	       c.created_at, COALESCE(u.username, '')
	FROM commands c
	LEFT JOIN users u ON c.creator_id = u.id
`

// All returns every stored custom command, ordered by name.
func (r *Repo) All() ([]*Record, error) {
	rows, err := r.db.Query(selectRecord + " ORDER BY c.name")
	if err != nil {
		return nil, fmt.Errorf("list custom commands: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		var created sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.CreatorID, &rec.Name, &rec.Description,
			&rec.Source, &created, &rec.Creator); err != nil {
			return nil, err
		}
		if created.Valid {
			rec.CreatedAt = created.Time
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Insert stores a new custom command under the namespaced name and returns
// its id. A name already present in the store yields ErrDuplicateName.
func (r *Repo) Insert(creatorID int, name, description, source string) (int, error) {
	stored := Namespaced(name)

	result, err := r.db.Exec(`
		INSERT INTO commands (creator_id, name, description, implementation)
		VALUES (?, ?, ?, ?)
	`, creatorID, stored, description, source)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("command '%s': %w", strings.TrimPrefix(name, Prefix), ErrDuplicateName)
		}
		return 0, fmt.Errorf("insert custom command %s: %w", stored, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get custom command id: %w", err)
	}
	return int(id), nil
}

// FindByName returns a stored command by its prefixed or unprefixed name,
// or nil when absent.
func (r *Repo) FindByName(name string) (*Record, error) {
	rec := &Record{}
	var created sql.NullTime
	err := r.db.QueryRow(selectRecord+" WHERE c.name = ?", Namespaced(name)).Scan(
		&rec.ID, &rec.CreatorID, &rec.Name, &rec.Description,
		&rec.Source, &created, &rec.Creator)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find custom command %s: %w", name, err)
	}
	if created.Valid {
		rec.CreatedAt = created.Time
	}
	return rec, nil
}

// Delete removes a stored command by id.
func (r *Repo) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM commands WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete custom command %d: %w", id, err)
	}
	return nil
}

// Count returns the number of stored custom commands.
func (r *Repo) Count() int {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM commands").Scan(&count)
	return count
}
