package user

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"
)

// Repo handles database operations for users and their profiles.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a new user repository.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new user with a hashed password and an empty profile.
func (r *Repo) Create(username, password string, isAdmin bool) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	result, err := r.db.Exec(`
		INSERT INTO users (username, password_hash, is_admin)
		VALUES (?, ?, ?)
	`, username, hash, isAdmin)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("user %s already exists", username)
		}
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get user id: %w", err)
	}

	if _, err := r.db.Exec(`
		INSERT INTO profiles (user_id, bio, contact, status)
		VALUES (?, '', '', '')
	`, id); err != nil {
		return nil, fmt.Errorf("create profile for %s: %w", username, err)
	}

	return r.GetByID(int(id))
}

// Authenticate checks username/password and returns the user if valid.
func (r *Repo) Authenticate(username, password string) (*User, error) {
	u, err := r.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	if !CheckPassword(password, u.PasswordHash) {
		return nil, fmt.Errorf("invalid username or password")
	}

	now := time.Now()
	r.db.Exec("UPDATE users SET last_login = ? WHERE id = ?", now, u.ID)
	u.LastLogin = &now

	return u, nil
}

const selectUser = `
	SELECT u.id, u.username, u.password_hash, u.is_admin, u.created_at, u.last_login,
	       COALESCE(p.bio, ''), COALESCE(p.contact, ''), COALESCE(p.status, '')
	FROM users u
	LEFT JOIN profiles p ON u.id = p.user_id
`

func scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	var created, lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin,
		&created, &lastLogin, &u.Bio, &u.Contact, &u.Status)
	if err != nil {
		return nil, err
	}
	if created.Valid {
		u.CreatedAt = created.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *Repo) GetByID(id int) (*User, error) {
	u, err := scanUser(r.db.QueryRow(selectUser+" WHERE u.id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetByUsername retrieves a user by username (case-insensitive).
func (r *Repo) GetByUsername(username string) (*User, error) {
	u, err := scanUser(r.db.QueryRow(selectUser+" WHERE u.username = ? COLLATE NOCASE", username))
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	return u, nil
}

// Exists checks if a username is already taken.
func (r *Repo) Exists(username string) bool {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ? COLLATE NOCASE", username).Scan(&count)
	return count > 0
}

// UpdateProfile replaces all profile fields for a user.
func (r *Repo) UpdateProfile(id int, bio, contact, status string) error {
	_, err := r.db.Exec(`
		UPDATE profiles SET bio = ?, contact = ?, status = ? WHERE user_id = ?
	`, bio, contact, status, id)
	return err
}

// UpdateStatus updates only the status field of a user's profile.
func (r *Repo) UpdateStatus(id int, status string) error {
	_, err := r.db.Exec("UPDATE profiles SET status = ? WHERE user_id = ?", status, id)
	return err
}

// SetAdmin grants or revokes admin rights for a user.
func (r *Repo) SetAdmin(id int, isAdmin bool) error {
	_, err := r.db.Exec("UPDATE users SET is_admin = ? WHERE id = ?", isAdmin, id)
	return err
}

// UpdatePassword changes a user's password.
func (r *Repo) UpdatePassword(id int, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = r.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	return err
}

// Delete removes a user; the profile row goes with it via cascade.
func (r *Repo) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// List returns all users with profiles, ordered by username.
func (r *Repo) List() ([]*User, error) {
	rows, err := r.db.Query(selectUser + " ORDER BY u.username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		var created, lastLogin sql.NullTime
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin,
			&created, &lastLogin, &u.Bio, &u.Contact, &u.Status); err != nil {
			return nil, err
		}
		if created.Valid {
			u.CreatedAt = created.Time
		}
		if lastLogin.Valid {
			u.LastLogin = &lastLogin.Time
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the total number of users.
func (r *Repo) Count() int {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count
}

// AdminCount returns the number of admin users.
func (r *Repo) AdminCount() int {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM users WHERE is_admin = 1").Scan(&count)
	return count
}

// EnsureAdmin creates a default admin account when no admin exists.
// Returns true if one was created.
func (r *Repo) EnsureAdmin(username, password string) (bool, error) {
	if r.AdminCount() > 0 {
		return false, nil
	}
	if _, err := r.Create(username, password, true); err != nil {
		return false, err
	}
	log.Printf("Created default admin user %q", username)
	return true, nil
}
