package community

import "time"

// Post es público: cualquier usuario autenticado ve el feed.
type Post struct {
	ID           string
	AuthorUserID string
	PetID        string // opcional

	Body     string
	ImageKey string

	LikeCount    int
	CommentCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID           string
	PostID       string
	AuthorUserID string
	Body         string
	CreatedAt    time.Time
}
