package community

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/domain/pets"
	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/ports/changefeed"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

const (
	maxPostLen    = 2000
	maxCommentLen = 1000

	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// Pets valida que la mascota etiquetada sea del autor. La implementa pets.Service.
type Pets interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type MediaStore interface {
	Upload(ctx context.Context, prefix string, r io.Reader) (media.Object, error)
	Delete(ctx context.Context, key string) error
}

// Actor es quien opera: los admins de plataforma moderan.
type Actor struct {
	UserID        string
	PlatformAdmin bool
}

type Service struct {
	repo  Repository
	pets  Pets
	media MediaStore
	feed  changefeed.Publisher
	log   logger.Logger
	now   func() time.Time
}

type Option func(*Service)

func WithPets(p Pets) Option {
	return func(s *Service) { s.pets = p }
}

func WithMedia(m MediaStore) Option {
	return func(s *Service) { s.media = m }
}

func WithPublisher(p changefeed.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.feed = p
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		feed: changefeed.Nop{},
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PostView agrega al post si el usuario que mira le dio like.
type PostView struct {
	Post
	LikedByMe bool
}

type CreatePostInput struct {
	Body  string
	PetID string
}

func (s *Service) CreatePost(ctx context.Context, userID string, in CreatePostInput) (Post, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Post{}, ErrInvalidInput
	}
	body, err := cleanText(in.Body, maxPostLen)
	if err != nil {
		return Post{}, err
	}
	petID := strings.TrimSpace(in.PetID)
	if petID != "" && s.pets != nil {
		pet, err := s.pets.GetByID(ctx, petID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				return Post{}, fmt.Errorf("%w: pet", ErrNotFound)
			}
			return Post{}, err
		}
		if pet.OwnerUserID != userID {
			return Post{}, fmt.Errorf("%w: you can only tag your own pets", ErrForbidden)
		}
	}

	now := s.now()
	p := Post{
		ID:           uuid.NewString(),
		AuthorUserID: userID,
		PetID:        petID,
		Body:         body,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return Post{}, err
	}
	s.publishPost(changefeed.Insert, p)
	return p, nil
}

func (s *Service) SetPostImage(ctx context.Context, postID, userID string, r io.Reader) (Post, error) {
	if s.media == nil {
		return Post{}, fmt.Errorf("%w: media storage not configured", ErrBadState)
	}
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if p.AuthorUserID != strings.TrimSpace(userID) {
		return Post{}, ErrForbidden
	}
	obj, err := s.media.Upload(ctx, "posts/"+p.ID, r)
	if err != nil {
		return Post{}, err
	}
	old := p.ImageKey
	p.ImageKey = obj.Key
	p.UpdatedAt = s.now()
	if err := s.repo.UpdatePost(ctx, p); err != nil {
		return Post{}, err
	}
	if old != "" {
		if err := s.media.Delete(ctx, old); err != nil {
			s.log.Warn("delete old post image", map[string]any{"post_id": p.ID, "key": old, "error": err})
		}
	}
	s.publishPost(changefeed.Update, p)
	return p, nil
}

// Feed pagina por created_at: el cliente manda el created_at del último post
// recibido como before.
func (s *Service) Feed(ctx context.Context, userID string, before *time.Time, limit int) ([]PostView, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	posts, err := s.repo.ListPosts(ctx, before, limit)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, userID, posts)
}

func (s *Service) GetPost(ctx context.Context, postID, userID string) (PostView, error) {
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return PostView{}, err
	}
	views, err := s.views(ctx, userID, []Post{p})
	if err != nil {
		return PostView{}, err
	}
	return views[0], nil
}

func (s *Service) DeletePost(ctx context.Context, postID string, actor Actor) error {
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if !canModerate(actor, p.AuthorUserID) {
		return ErrForbidden
	}
	if err := s.repo.DeletePost(ctx, p.ID); err != nil {
		return err
	}
	if p.ImageKey != "" && s.media != nil {
		if err := s.media.Delete(ctx, p.ImageKey); err != nil {
			s.log.Warn("delete post image", map[string]any{"post_id": p.ID, "key": p.ImageKey, "error": err})
		}
	}
	if actor.UserID != p.AuthorUserID {
		s.log.Info("post removed by moderator", map[string]any{"post_id": p.ID, "moderator": actor.UserID})
	}
	p.UpdatedAt = s.now()
	s.publishPost(changefeed.Delete, p)
	return nil
}

// Like es idempotente: dar like dos veces deja un solo like.
func (s *Service) Like(ctx context.Context, postID, userID string) (PostView, error) {
	return s.toggleLike(ctx, postID, userID, true)
}

func (s *Service) Unlike(ctx context.Context, postID, userID string) (PostView, error) {
	return s.toggleLike(ctx, postID, userID, false)
}

func (s *Service) toggleLike(ctx context.Context, postID, userID string, like bool) (PostView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PostView{}, ErrInvalidInput
	}
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return PostView{}, err
	}

	var changed bool
	if like {
		changed, err = s.repo.AddLike(ctx, p.ID, userID, s.now())
	} else {
		changed, err = s.repo.RemoveLike(ctx, p.ID, userID)
	}
	if err != nil {
		return PostView{}, err
	}
	if changed {
		if p, err = s.getPost(ctx, p.ID); err != nil {
			return PostView{}, err
		}
		s.publishPost(changefeed.Update, p)
	}
	return PostView{Post: p, LikedByMe: like}, nil
}

func (s *Service) Comment(ctx context.Context, postID, userID, body string) (Comment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Comment{}, ErrInvalidInput
	}
	text, err := cleanText(body, maxCommentLen)
	if err != nil {
		return Comment{}, err
	}
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return Comment{}, err
	}

	c := Comment{
		ID:           uuid.NewString(),
		PostID:       p.ID,
		AuthorUserID: userID,
		Body:         text,
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return Comment{}, err
	}
	s.publishComment(changefeed.Insert, c)
	return c, nil
}

func (s *Service) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, p.ID)
}

func (s *Service) DeleteComment(ctx context.Context, commentID string, actor Actor) error {
	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return ErrInvalidInput
	}
	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: comment", ErrNotFound)
		}
		return err
	}
	if !canModerate(actor, c.AuthorUserID) {
		return ErrForbidden
	}
	if err := s.repo.DeleteComment(ctx, c.ID); err != nil {
		return err
	}
	s.publishComment(changefeed.Delete, c)
	return nil
}

func (s *Service) views(ctx context.Context, userID string, posts []Post) ([]PostView, error) {
	out := make([]PostView, 0, len(posts))
	var liked map[string]bool
	if userID = strings.TrimSpace(userID); userID != "" && len(posts) > 0 {
		ids := make([]string, 0, len(posts))
		for _, p := range posts {
			ids = append(ids, p.ID)
		}
		var err error
		if liked, err = s.repo.LikedBy(ctx, userID, ids); err != nil {
			return nil, err
		}
	}
	for _, p := range posts {
		out = append(out, PostView{Post: p, LikedByMe: liked[p.ID]})
	}
	return out, nil
}

func (s *Service) getPost(ctx context.Context, id string) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, ErrInvalidInput
	}
	p, err := s.repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Post{}, fmt.Errorf("%w: post", ErrNotFound)
		}
		return Post{}, err
	}
	return p, nil
}

func canModerate(actor Actor, authorID string) bool {
	if actor.PlatformAdmin {
		return true
	}
	return strings.TrimSpace(actor.UserID) != "" && actor.UserID == authorID
}

func cleanText(s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n == 0 || n > max {
		return "", fmt.Errorf("%w: text must be 1-%d chars", ErrInvalidInput, max)
	}
	return s, nil
}

// posts y comentarios son públicos: sin audiencia.
func (s *Service) publishPost(t changefeed.ChangeType, p Post) {
	s.feed.Publish(changefeed.Change{
		Table: "posts",
		Type:  t,
		Record: map[string]any{
			"id":             p.ID,
			"author_user_id": p.AuthorUserID,
			"pet_id":         p.PetID,
			"body":           p.Body,
			"like_count":     p.LikeCount,
			"comment_count":  p.CommentCount,
			"created_at":     p.CreatedAt,
		},
		At: p.UpdatedAt,
	})
}

func (s *Service) publishComment(t changefeed.ChangeType, c Comment) {
	s.feed.Publish(changefeed.Change{
		Table: "post_comments",
		Type:  t,
		Record: map[string]any{
			"id":             c.ID,
			"post_id":        c.PostID,
			"author_user_id": c.AuthorUserID,
			"body":           c.Body,
		},
		At: s.now(),
	})
}
