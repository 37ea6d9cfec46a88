package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommentsEmptyVideo(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	video := testutil.CreateVideo(t, f.db, owner.ID, "quiet", true)

	page, err := f.comments.ListComments(f.ctx, video.ID.String(), models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	list := models.NewCommentList(page)
	assert.NotNil(t, list.Comments)
	assert.Empty(t, list.Comments)
	assert.Zero(t, list.TotalComments)
	assert.False(t, list.HasNextPage)
	assert.Equal(t, models.PageEmpty, page.State)
}

func TestListCommentsUnknownVideo(t *testing.T) {
	f := newFixture(t)

	_, err := f.comments.ListComments(f.ctx, uuid.NewString(), models.PageRequest{Page: 1, Limit: 10})
	assertKind(t, err, errors.KindNotFound)

	_, err = f.comments.ListComments(f.ctx, "not-a-uuid", models.PageRequest{Page: 1, Limit: 10})
	assertKind(t, err, errors.KindValidation)
}

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	fan := testutil.CreateUser(t, f.db, "fan")
	video := testutil.CreateVideo(t, f.db, owner.ID, "intro", true)

	_, err := f.comments.AddComment(f.ctx, fan.ID, video.ID.String(), &models.CommentRequest{Content: "   "})
	assertKind(t, err, errors.KindValidation)

	comment, err := f.comments.AddComment(f.ctx, fan.ID, video.ID.String(), &models.CommentRequest{Content: " great talk "})
	require.NoError(t, err)
	assert.Equal(t, "great talk", comment.Content)
	assert.Equal(t, fan.ID, comment.Owner.ID)

	_, err = f.comments.UpdateComment(f.ctx, owner.ID, comment.ID.String(), &models.CommentRequest{Content: "spam"})
	assertKind(t, err, errors.KindUnauthorized)

	updated, err := f.comments.UpdateComment(f.ctx, fan.ID, comment.ID.String(), &models.CommentRequest{Content: "great talk!"})
	require.NoError(t, err)
	assert.Equal(t, "great talk!", updated.Content)

	_, _, err = f.likes.ToggleLike(f.ctx, owner.ID, models.LikeTargetComment, comment.ID.String())
	require.NoError(t, err)

	_, err = f.comments.DeleteComment(f.ctx, owner.ID, comment.ID.String())
	assertKind(t, err, errors.KindUnauthorized)

	result, err := f.comments.DeleteComment(f.ctx, fan.ID, comment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, comment.ID, result.DeletedCommentID)
	assert.Equal(t, int64(1), result.DeletedLikes)

	_, err = f.comments.DeleteComment(f.ctx, fan.ID, comment.ID.String())
	assertKind(t, err, errors.KindNotFound)
}

func TestListCommentsPages(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	video := testutil.CreateVideo(t, f.db, owner.ID, "busy", true)
	for i := 0; i < 3; i++ {
		_, err := f.comments.AddComment(f.ctx, owner.ID, video.ID.String(), &models.CommentRequest{Content: "hello"})
		require.NoError(t, err)
	}

	page, err := f.comments.ListComments(f.ctx, video.ID.String(), models.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.False(t, page.Meta.HasNextPage)
	assert.True(t, page.Meta.HasPrevPage)

	page, err = f.comments.ListComments(f.ctx, video.ID.String(), models.PageRequest{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, models.PageOvershoot, page.State)
	assert.Equal(t, 2, page.Meta.TotalPages)
}
