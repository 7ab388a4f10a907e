package post

import "time"

// Types of posts stored in the posts table.
const (
	TypePost     = "post"
	TypeAnnounce = "announce"
	TypeStatus   = "status"
)

// Post represents one entry on the board, joined with the author's name.
type Post struct {
	ID        int
	UserID    int
	Title     string
	Content   string
	Type      string
	CreatedAt time.Time
	Username  string
}

// Weekly is a founder accountability post, one per user per ISO week.
type Weekly struct {
	ID         int
	UserID     int
	WeekNumber int
	LastWeek   string
	NextWeek   string
	Wins       string
	CreatedAt  time.Time
	Username   string
}
