package services

import (
	"strings"
	"testing"

	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTweetLength(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author")

	tests := []struct {
		name    string
		content string
		kind    errors.Kind
	}{
		{name: "empty", content: "  ", kind: errors.KindValidation},
		{name: "too long", content: strings.Repeat("a", models.TweetMaxLength+1), kind: errors.KindValidation},
		{name: "multibyte at limit", content: strings.Repeat("é", models.TweetMaxLength)},
		{name: "plain", content: "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweet, err := f.tweets.CreateTweet(f.ctx, author.ID, &models.TweetRequest{Content: tt.content})
			if tt.kind != 0 {
				assertKind(t, err, tt.kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, author.ID, tweet.Owner.ID)
		})
	}
}

func TestTweetLifecycle(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author")
	reader := testutil.CreateUser(t, f.db, "reader")

	tweet, err := f.tweets.CreateTweet(f.ctx, author.ID, &models.TweetRequest{Content: "first"})
	require.NoError(t, err)

	_, err = f.tweets.UpdateTweet(f.ctx, reader.ID, tweet.ID.String(), &models.TweetRequest{Content: "mine now"})
	assertKind(t, err, errors.KindUnauthorized)

	updated, err := f.tweets.UpdateTweet(f.ctx, author.ID, tweet.ID.String(), &models.TweetRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	page, err := f.tweets.ListUserTweets(f.ctx, author.ID.String(), models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	_, _, err = f.likes.ToggleLike(f.ctx, reader.ID, models.LikeTargetTweet, tweet.ID.String())
	require.NoError(t, err)

	result, err := f.tweets.DeleteTweet(f.ctx, author.ID, tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, tweet.ID, result.TweetID)
	assert.Equal(t, int64(1), result.DeletedLikes)

	page, err = f.tweets.ListUserTweets(f.ctx, author.ID.String(), models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, models.PageEmpty, page.State)
}
