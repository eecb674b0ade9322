package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"petcare-hub/internal/domain/community"
)

type communityRepo struct {
	mu       sync.RWMutex
	posts    map[string]community.Post
	likes    map[string]map[string]time.Time // postID -> userID -> at
	comments map[string]community.Comment
}

func NewCommunityRepo() community.Repository {
	return &communityRepo{
		posts:    make(map[string]community.Post),
		likes:    make(map[string]map[string]time.Time),
		comments: make(map[string]community.Comment),
	}
}

func (r *communityRepo) CreatePost(ctx context.Context, p community.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.posts[p.ID]; exists {
		return errors.New("post already exists")
	}
	r.posts[p.ID] = p
	return nil
}

func (r *communityRepo) UpdatePost(ctx context.Context, p community.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.posts[p.ID]
	if !exists {
		return community.ErrNotFound
	}
	// los contadores los lleva el repo
	p.LikeCount = cur.LikeCount
	p.CommentCount = cur.CommentCount
	r.posts[p.ID] = p
	return nil
}

func (r *communityRepo) GetPost(ctx context.Context, id string) (community.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return community.Post{}, community.ErrNotFound
	}
	return p, nil
}

func (r *communityRepo) DeletePost(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return community.ErrNotFound
	}
	delete(r.posts, id)
	delete(r.likes, id)
	for cid, c := range r.comments {
		if c.PostID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

func (r *communityRepo) ListPosts(ctx context.Context, before *time.Time, limit int) ([]community.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]community.Post, 0)
	for _, p := range r.posts {
		if before != nil && !p.CreatedAt.Before(*before) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *communityRepo) AddLike(ctx context.Context, postID, userID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return false, community.ErrNotFound
	}
	byUser := r.likes[postID]
	if byUser == nil {
		byUser = make(map[string]time.Time)
		r.likes[postID] = byUser
	}
	if _, liked := byUser[userID]; liked {
		return false, nil
	}
	byUser[userID] = at
	p.LikeCount++
	r.posts[postID] = p
	return true, nil
}

func (r *communityRepo) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return false, community.ErrNotFound
	}
	if _, liked := r.likes[postID][userID]; !liked {
		return false, nil
	}
	delete(r.likes[postID], userID)
	p.LikeCount--
	r.posts[postID] = p
	return true, nil
}

func (r *communityRepo) LikedBy(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		if _, ok := r.likes[id][userID]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (r *communityRepo) CreateComment(ctx context.Context, c community.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[c.PostID]
	if !ok {
		return community.ErrNotFound
	}
	if _, exists := r.comments[c.ID]; exists {
		return errors.New("comment already exists")
	}
	r.comments[c.ID] = c
	p.CommentCount++
	r.posts[p.ID] = p
	return nil
}

func (r *communityRepo) GetComment(ctx context.Context, id string) (community.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return community.Comment{}, community.ErrNotFound
	}
	return c, nil
}

func (r *communityRepo) DeleteComment(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return community.ErrNotFound
	}
	delete(r.comments, id)
	if p, ok := r.posts[c.PostID]; ok {
		p.CommentCount--
		r.posts[p.ID] = p
	}
	return nil
}

func (r *communityRepo) ListComments(ctx context.Context, postID string) ([]community.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]community.Comment, 0)
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
