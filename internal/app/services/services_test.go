package services

import (
	"context"
	"errors"
	"testing"

	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/safatanc/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	config   *infrastructures.AppConfig
	uploader *testutil.FakeUploader
	denylist *testutil.FakeDenylist

	tokens        *TokenService
	media         *MediaService
	users         *UserService
	videos        *VideoService
	comments      *CommentService
	likes         *LikeService
	subscriptions *SubscriptionService
	playlists     *PlaylistService
	tweets        *TweetService
	dashboard     *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	config := testutil.NewConfig(t)
	validator := infrastructures.NewValidator()
	uploader := &testutil.FakeUploader{}
	denylist := testutil.NewFakeDenylist()

	f := &fixture{
		ctx:      context.Background(),
		db:       db,
		config:   config,
		uploader: uploader,
		denylist: denylist,
	}
	f.tokens = NewTokenService(config, denylist)
	f.media = NewMediaService(uploader, infrastructures.NewMetrics())
	f.users = NewUserService(db, validator, f.tokens, f.media)
	f.videos = NewVideoService(db, validator, f.media)
	f.comments = NewCommentService(db, validator)
	f.likes = NewLikeService(db)
	f.subscriptions = NewSubscriptionService(db)
	f.playlists = NewPlaylistService(db, validator)
	f.tweets = NewTweetService(db, validator)
	f.dashboard = NewDashboardService(db, f.videos)
	return f
}

func assertKind(t *testing.T, err error, kind appError.Kind) {
	t.Helper()
	require.Error(t, err)
	var appErr *appError.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind, appErr.Message)
}
