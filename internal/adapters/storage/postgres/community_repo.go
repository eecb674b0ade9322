package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcare-hub/internal/domain/community"
)

type CommunityRepo struct {
	db *sql.DB
}

func NewCommunityRepo(db *sql.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

const postColumns = `
	id, author_user_id, pet_id, body, image_key,
	like_count, comment_count, created_at, updated_at`

const commentColumns = `id, post_id, author_user_id, body, created_at`

func (r *CommunityRepo) CreatePost(ctx context.Context, p community.Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES ($1,$2,$3,$4,$5,0,0,$6,$7)
	`, p.ID, p.AuthorUserID, p.PetID, p.Body, p.ImageKey, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *CommunityRepo) UpdatePost(ctx context.Context, p community.Post) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE posts SET body = $2, image_key = $3, updated_at = $4 WHERE id = $1
	`, p.ID, p.Body, p.ImageKey, p.UpdatedAt)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, community.ErrNotFound)
}

func (r *CommunityRepo) GetPost(ctx context.Context, id string) (community.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return community.Post{}, community.ErrNotFound
	}
	return p, err
}

// DeletePost: likes y comentarios caen por ON DELETE CASCADE.
func (r *CommunityRepo) DeletePost(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffectedOr(res, community.ErrNotFound)
}

func (r *CommunityRepo) ListPosts(ctx context.Context, before *time.Time, limit int) ([]community.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts`
	args := []any{}
	if before != nil {
		args = append(args, *before)
		q += ` WHERE created_at < $1`
	}
	args = append(args, limit)
	q += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *CommunityRepo) AddLike(ctx context.Context, postID, userID string, at time.Time) (bool, error) {
	return r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO post_likes (post_id, user_id, created_at)
			VALUES ($1,$2,$3)
			ON CONFLICT (post_id, user_id) DO NOTHING
		`, postID, userID, at)
		if err != nil {
			return false, err
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `UPDATE posts SET like_count = like_count + 1 WHERE id = $1`, postID)
		return err == nil, err
	})
}

func (r *CommunityRepo) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	return r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		res, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return false, err
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `UPDATE posts SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1`, postID)
		return err == nil, err
	})
}

func (r *CommunityRepo) LikedBy(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	args := []any{userID}
	placeholders := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT post_id FROM post_likes
		WHERE user_id = $1 AND post_id IN (`+strings.Join(placeholders, ",")+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (r *CommunityRepo) CreateComment(ctx context.Context, c community.Comment) error {
	_, err := r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		res, err := tx.ExecContext(ctx, `UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`, c.PostID)
		if err != nil {
			return false, err
		}
		if err := rowsAffectedOr(res, community.ErrNotFound); err != nil {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_comments (`+commentColumns+`)
			VALUES ($1,$2,$3,$4,$5)
		`, c.ID, c.PostID, c.AuthorUserID, c.Body, c.CreatedAt)
		return err == nil, err
	})
	return err
}

func (r *CommunityRepo) GetComment(ctx context.Context, id string) (community.Comment, error) {
	var c community.Comment
	err := r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM post_comments WHERE id = $1`, id).
		Scan(&c.ID, &c.PostID, &c.AuthorUserID, &c.Body, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return community.Comment{}, community.ErrNotFound
	}
	return c, err
}

func (r *CommunityRepo) DeleteComment(ctx context.Context, id string) error {
	_, err := r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		var postID string
		err := tx.QueryRowContext(ctx, `DELETE FROM post_comments WHERE id = $1 RETURNING post_id`, id).Scan(&postID)
		if errors.Is(err, sql.ErrNoRows) {
			return false, community.ErrNotFound
		}
		if err != nil {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `UPDATE posts SET comment_count = GREATEST(comment_count - 1, 0) WHERE id = $1`, postID)
		return err == nil, err
	})
	return err
}

func (r *CommunityRepo) ListComments(ctx context.Context, postID string) ([]community.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM post_comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Comment, 0)
	for rows.Next() {
		var c community.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorUserID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// inTx corre fn en una transacción; commit solo si fn no falla.
func (r *CommunityRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) (bool, error)) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := fn(tx)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return ok, nil
}

func scanPost(s rowScanner) (community.Post, error) {
	var p community.Post
	err := s.Scan(
		&p.ID, &p.AuthorUserID, &p.PetID, &p.Body, &p.ImageKey,
		&p.LikeCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
