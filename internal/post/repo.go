package post

import (
	"database/sql"
	"fmt"
	"time"
)

// Repo handles database operations for posts and weekly posts.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a new post repository.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new post of the given type and returns its id.
func (r *Repo) Create(userID int, title, content, postType string) (int, error) {
	result, err := r.db.Exec(`
		INSERT INTO posts (user_id, title, content, type)
		VALUES (?, ?, ?, ?)
	`, userID, title, content, postType)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", postType, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get post id: %w", err)
	}
	return int(id), nil
}

// GetByID returns a single post with its author's username.
func (r *Repo) GetByID(id int) (*Post, error) {
	p := &Post{}
	var userID sql.NullInt64
	var username sql.NullString
	var created sql.NullTime
	err := r.db.QueryRow(`
		SELECT p.id, p.user_id, p.title, p.content, p.type, p.created_at, u.username
		FROM posts p
		LEFT JOIN users u ON p.user_id = u.id
		WHERE p.id = ?
	`, id).Scan(&p.ID, &userID, &p.Title, &p.Content, &p.Type, &created, &username)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	p.UserID = int(userID.Int64)
	p.Username = username.String
	if created.Valid {
		p.CreatedAt = created.Time
	}
	return p, nil
}

// ListByType returns the most recent posts of one type, newest first.
func (r *Repo) ListByType(postType string, limit int) ([]*Post, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.user_id, p.title, p.content, p.type, p.created_at, u.username
		FROM posts p
		LEFT JOIN users u ON p.user_id = u.id
		WHERE p.type = ?
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?
	`, postType, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s posts: %w", postType, err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		p := &Post{}
		var userID sql.NullInt64
		var username sql.NullString
		var created sql.NullTime
		if err := rows.Scan(&p.ID, &userID, &p.Title, &p.Content, &p.Type, &created, &username); err != nil {
			return nil, err
		}
		p.UserID = int(userID.Int64)
		p.Username = username.String
		if created.Valid {
			p.CreatedAt = created.Time
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Count returns the total number of posts of all types.
func (r *Repo) Count() int {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	return count
}

// CurrentWeekNumber returns the ISO week number for now.
func CurrentWeekNumber() int {
	_, week := time.Now().ISOWeek()
	return week
}

// UpsertWeekly creates a weekly post, or updates it in place when the user
// already posted for that week.
func (r *Repo) UpsertWeekly(userID, weekNumber int, lastWeek, nextWeek, wins string) (int, error) {
	var existing int
	err := r.db.QueryRow(`
		SELECT id FROM weekly_posts WHERE user_id = ? AND week_number = ?
	`, userID, weekNumber).Scan(&existing)
	if err == nil {
		if _, err := r.db.Exec(`
			UPDATE weekly_posts SET last_week = ?, next_week = ?, wins = ? WHERE id = ?
		`, lastWeek, nextWeek, wins, existing); err != nil {
			return 0, fmt.Errorf("update weekly post: %w", err)
		}
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("check weekly post: %w", err)
	}

	result, err := r.db.Exec(`
		INSERT INTO weekly_posts (user_id, week_number, last_week, next_week, wins)
		VALUES (?, ?, ?, ?, ?)
	`, userID, weekNumber, lastWeek, nextWeek, wins)
	if err != nil {
		return 0, fmt.Errorf("create weekly post: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get weekly post id: %w", err)
	}
	return int(id), nil
}

// GetWeekly returns one user's post for a given week, or nil when absent.
func (r *Repo) GetWeekly(userID, weekNumber int) (*Weekly, error) {
	w := &Weekly{}
	var created sql.NullTime
	err := r.db.QueryRow(`
		SELECT w.id, w.user_id, w.week_number, w.last_week, w.next_week, w.wins, w.created_at, u.username
		FROM weekly_posts w
		JOIN users u ON w.user_id = u.id
		WHERE w.user_id = ? AND w.week_number = ?
	`, userID, weekNumber).Scan(&w.ID, &w.UserID, &w.WeekNumber, &w.LastWeek, &w.NextWeek, &w.Wins, &created, &w.Username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weekly post: %w", err)
	}
	if created.Valid {
		w.CreatedAt = created.Time
	}
	return w, nil
}

// LatestWeeklies returns each user's most recent weekly post, newest first.
func (r *Repo) LatestWeeklies() ([]*Weekly, error) {
	rows, err := r.db.Query(`
		SELECT w.id, w.user_id, w.week_number, w.last_week, w.next_week, w.wins, w.created_at, u.username
		FROM weekly_posts w
		JOIN users u ON w.user_id = u.id
		WHERE w.id IN (SELECT MAX(id) FROM weekly_posts GROUP BY user_id)
		ORDER BY w.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list weekly posts: %w", err)
	}
	defer rows.Close()

	var posts []*Weekly
	for rows.Next() {
		w := &Weekly{}
		var created sql.NullTime
		if err := rows.Scan(&w.ID, &w.UserID, &w.WeekNumber, &w.LastWeek, &w.NextWeek, &w.Wins, &created, &w.Username); err != nil {
			return nil, err
		}
		if created.Valid {
			w.CreatedAt = created.Time
		}
		posts = append(posts, w)
	}
	return posts, rows.Err()
}

// WeeklyCount returns the total number of weekly posts.
func (r *Repo) WeeklyCount() int {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM weekly_posts").Scan(&count)
	return count
}
