package domain

import "time"

// PostCategory partitions the board. Announcements are reserved for admins.
type PostCategory string

const (
	CategoryAnnouncement PostCategory = "ANNOUNCEMENT"
	CategoryScript       PostCategory = "SCRIPT"
	CategoryModel        PostCategory = "MODEL"
)

// ValidCategory reports whether c is a known post category.
func ValidCategory(c PostCategory) bool {
	switch c {
	case CategoryAnnouncement, CategoryScript, CategoryModel:
		return true
	}
	return false
}

// Post is a board entry authored by a community member.
type Post struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	AuthorID       string       `json:"author_id"`
	AuthorUsername string       `json:"author_username"`
	Category       PostCategory `json:"category"`
	CreatedAt      time.Time    `json:"created_at"`
}
