package memory

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/ports/blob"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := New("k", "")
	ctx := context.Background()

	info, err := s.Put(ctx, "pets/p1/a.png", strings.NewReader("png"), blob.PutOptions{ContentType: "image/png"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, info.Size)

	_, err = s.Put(ctx, "pets/p1/a.png", strings.NewReader("x"), blob.PutOptions{})
	assert.ErrorIs(t, err, blob.ErrExists)

	got, rc, err := s.Get(ctx, "pets/p1/a.png")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "png", string(b))
	assert.Equal(t, "image/png", got.ContentType)

	require.NoError(t, s.Delete(ctx, "pets/p1/a.png"))
	assert.ErrorIs(t, s.Delete(ctx, "pets/p1/a.png"), blob.ErrNotFound)
}

func TestStore_SignedURL_VerifyAndExpiry(t *testing.T) {
	s := New("k", "/media")
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.Put(context.Background(), "records/r1/x.pdf", strings.NewReader("%PDF"), blob.PutOptions{})
	require.NoError(t, err)

	raw, err := s.SignedURL(context.Background(), "records/r1/x.pdf", time.Minute)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "/media/records/r1/x.pdf?"))

	u, err := url.Parse(raw)
	require.NoError(t, err)
	exp, sig := u.Query().Get("expires"), u.Query().Get("sig")

	assert.True(t, s.Verify("records/r1/x.pdf", exp, sig))
	assert.False(t, s.Verify("records/r1/other.pdf", exp, sig))

	now = now.Add(2 * time.Minute)
	assert.False(t, s.Verify("records/r1/x.pdf", exp, sig))

	_, err = s.SignedURL(context.Background(), "missing", time.Minute)
	assert.ErrorIs(t, err, blob.ErrNotFound)
}
