package community

import (
	"context"
	"time"
)

// Repository mantiene like_count y comment_count junto con las filas hijas.
type Repository interface {
	CreatePost(ctx context.Context, p Post) error
	UpdatePost(ctx context.Context, p Post) error
	GetPost(ctx context.Context, id string) (Post, error)
	// DeletePost borra el post con sus likes y comentarios.
	DeletePost(ctx context.Context, id string) error
	// ListPosts: más nuevos primero, estrictamente antes de `before` si no es nil.
	ListPosts(ctx context.Context, before *time.Time, limit int) ([]Post, error)

	// AddLike devuelve false si el like ya existía.
	AddLike(ctx context.Context, postID, userID string, at time.Time) (bool, error)
	// RemoveLike devuelve false si no había like.
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	// LikedBy devuelve el subconjunto de postIDs que el usuario likeó.
	LikedBy(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)

	CreateComment(ctx context.Context, c Comment) error
	GetComment(ctx context.Context, id string) (Comment, error)
	DeleteComment(ctx context.Context, id string) error
	// ListComments: más viejos primero.
	ListComments(ctx context.Context, postID string) ([]Comment, error)
}
