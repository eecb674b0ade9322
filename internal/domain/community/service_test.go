package community_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/adapters/storage/memory"
	"petcare-hub/internal/domain/community"
	"petcare-hub/internal/domain/pets"
	"petcare-hub/internal/ports/changefeed"
)

type fakePets map[string]pets.Pet

func (f fakePets) GetByID(_ context.Context, id string) (pets.Pet, error) {
	p, ok := f[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

type recordingFeed struct {
	changes []changefeed.Change
}

func (r *recordingFeed) Publish(c changefeed.Change) {
	r.changes = append(r.changes, c)
}

type fixture struct {
	svc  *community.Service
	feed *recordingFeed
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		feed: &recordingFeed{},
		now:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = community.NewService(memory.NewCommunityRepo(),
		community.WithPets(fakePets{"luna": {ID: "luna", OwnerUserID: "ana"}}),
		community.WithPublisher(f.feed),
		community.WithClock(func() time.Time { return f.now }),
	)
	return f
}

func (f *fixture) post(t *testing.T, user, body string) community.Post {
	t.Helper()
	p, err := f.svc.CreatePost(context.Background(), user, community.CreatePostInput{Body: body})
	require.NoError(t, err)
	f.now = f.now.Add(time.Minute)
	return p
}

func TestCreatePost_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.CreatePost(ctx, "ana", community.CreatePostInput{Body: "  Luna aprendió a sentarse  ", PetID: "luna"})
	require.NoError(t, err)
	assert.Equal(t, "Luna aprendió a sentarse", p.Body)

	require.Len(t, f.feed.changes, 1)
	assert.Equal(t, "posts", f.feed.changes[0].Table)
	assert.True(t, f.feed.changes[0].IsPublic())

	_, err = f.svc.CreatePost(ctx, "ana", community.CreatePostInput{Body: "   "})
	assert.ErrorIs(t, err, community.ErrInvalidInput)

	_, err = f.svc.CreatePost(ctx, "ana", community.CreatePostInput{Body: strings.Repeat("a", 2001)})
	assert.ErrorIs(t, err, community.ErrInvalidInput)

	// 2000 runas multibyte entran
	_, err = f.svc.CreatePost(ctx, "ana", community.CreatePostInput{Body: strings.Repeat("ñ", 2000)})
	assert.NoError(t, err)

	_, err = f.svc.CreatePost(ctx, "bruno", community.CreatePostInput{Body: "mirá mi perro", PetID: "luna"})
	assert.ErrorIs(t, err, community.ErrForbidden)

	_, err = f.svc.CreatePost(ctx, "ana", community.CreatePostInput{Body: "hola", PetID: "missing"})
	assert.ErrorIs(t, err, community.ErrNotFound)
}

func TestFeed_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.post(t, "ana", "uno")
	second := f.post(t, "bruno", "dos")
	third := f.post(t, "ana", "tres")

	page, err := f.svc.Feed(ctx, "ana", nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, third.ID, page[0].ID)
	assert.Equal(t, second.ID, page[1].ID)

	before := page[1].CreatedAt
	page, err = f.svc.Feed(ctx, "ana", &before, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)
}

func TestLikes_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.post(t, "ana", "foto del paseo")

	v, err := f.svc.Like(ctx, p.ID, "bruno")
	require.NoError(t, err)
	assert.Equal(t, 1, v.LikeCount)
	assert.True(t, v.LikedByMe)

	v, err = f.svc.Like(ctx, p.ID, "bruno")
	require.NoError(t, err)
	assert.Equal(t, 1, v.LikeCount)

	_, err = f.svc.Like(ctx, p.ID, "carla")
	require.NoError(t, err)

	got, err := f.svc.GetPost(ctx, p.ID, "bruno")
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikeCount)
	assert.True(t, got.LikedByMe)

	got, err = f.svc.GetPost(ctx, p.ID, "ana")
	require.NoError(t, err)
	assert.False(t, got.LikedByMe)

	v, err = f.svc.Unlike(ctx, p.ID, "bruno")
	require.NoError(t, err)
	assert.Equal(t, 1, v.LikeCount)
	assert.False(t, v.LikedByMe)

	v, err = f.svc.Unlike(ctx, p.ID, "bruno")
	require.NoError(t, err)
	assert.Equal(t, 1, v.LikeCount)

	_, err = f.svc.Like(ctx, "missing", "bruno")
	assert.ErrorIs(t, err, community.ErrNotFound)
}

func TestComments_AndModeration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.post(t, "ana", "¿qué alimento recomiendan?")

	c1, err := f.svc.Comment(ctx, p.ID, "bruno", "el de salmón")
	require.NoError(t, err)
	f.now = f.now.Add(time.Second)
	c2, err := f.svc.Comment(ctx, p.ID, "carla", "consultá con tu vet")
	require.NoError(t, err)

	_, err = f.svc.Comment(ctx, p.ID, "carla", strings.Repeat("x", 1001))
	assert.ErrorIs(t, err, community.ErrInvalidInput)

	items, err := f.svc.ListComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, c1.ID, items[0].ID)

	got, err := f.svc.GetPost(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentCount)

	err = f.svc.DeleteComment(ctx, c1.ID, community.Actor{UserID: "carla"})
	assert.ErrorIs(t, err, community.ErrForbidden)
	require.NoError(t, f.svc.DeleteComment(ctx, c1.ID, community.Actor{UserID: "bruno"}))
	require.NoError(t, f.svc.DeleteComment(ctx, c2.ID, community.Actor{UserID: "mod", PlatformAdmin: true}))

	got, err = f.svc.GetPost(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentCount)

	err = f.svc.DeletePost(ctx, p.ID, community.Actor{UserID: "bruno"})
	assert.ErrorIs(t, err, community.ErrForbidden)
	require.NoError(t, f.svc.DeletePost(ctx, p.ID, community.Actor{UserID: "ana"}))

	_, err = f.svc.GetPost(ctx, p.ID, "ana")
	assert.ErrorIs(t, err, community.ErrNotFound)
	_, err = f.svc.ListComments(ctx, p.ID)
	assert.ErrorIs(t, err, community.ErrNotFound)
}
