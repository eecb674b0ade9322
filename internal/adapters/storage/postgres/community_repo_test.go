package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/domain/community"
)

func TestAddLike_DuplicateDoesNotTouchCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO post_likes").WithArgs("post-1", "bruno", at).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	added, err := NewCommunityRepo(db).AddLike(context.Background(), "post-1", "bruno", at)
	require.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLike_IncrementsCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO post_likes").WithArgs("post-1", "bruno", at).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE posts SET like_count = like_count \\+ 1").WithArgs("post-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	added, err := NewCommunityRepo(db).AddLike(context.Background(), "post-1", "bruno", at)
	require.NoError(t, err)
	assert.True(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteComment_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM post_comments").WithArgs("c-404").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err = NewCommunityRepo(db).DeleteComment(context.Background(), "c-404")
	assert.ErrorIs(t, err, community.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosts_Cursor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	before := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	created := before.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{
		"id", "author_user_id", "pet_id", "body", "image_key",
		"like_count", "comment_count", "created_at", "updated_at",
	}).AddRow("post-1", "ana", "", "hola", "", 3, 1, created, created)

	mock.ExpectQuery("FROM posts WHERE created_at < \\$1 ORDER BY created_at DESC, id DESC LIMIT \\$2").
		WithArgs(before, 20).
		WillReturnRows(rows)

	items, err := NewCommunityRepo(db).ListPosts(context.Background(), &before, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "post-1", items[0].ID)
	assert.Equal(t, 3, items[0].LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
