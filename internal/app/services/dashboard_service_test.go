package services

import (
	"testing"

	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChannelStats(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	fan := testutil.CreateUser(t, f.db, "fan")
	first := testutil.CreateVideo(t, f.db, owner.ID, "first", true)
	testutil.CreateVideo(t, f.db, owner.ID, "draft", false)

	_, _, err := f.subscriptions.ToggleSubscription(f.ctx, fan.ID, owner.ID.String())
	require.NoError(t, err)
	_, _, err = f.likes.ToggleLike(f.ctx, fan.ID, models.LikeTargetVideo, first.ID.String())
	require.NoError(t, err)
	_, err = f.videos.GetVideoByID(f.ctx, first.ID.String(), fan.ID)
	require.NoError(t, err)

	stats, err := f.dashboard.GetChannelStats(f.ctx, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, owner.ID, stats.ChannelID)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(1), stats.TotalSubscribers)
	assert.Equal(t, int64(1), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalLikes)
	assert.True(t, stats.TotalDuration.Equal(decimal.NewFromInt(120)), stats.TotalDuration.String())
}

func TestGetChannelStatsEmptyChannel(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")

	stats, err := f.dashboard.GetChannelStats(f.ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVideos)
	assert.True(t, stats.TotalDuration.IsZero())
}

func TestDashboardListsUnpublishedVideos(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	testutil.CreateVideo(t, f.db, owner.ID, "live", true)
	testutil.CreateVideo(t, f.db, owner.ID, "draft", false)

	page, err := f.dashboard.ListChannelVideos(f.ctx, owner.ID, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	list := models.NewChannelVideoList(page)
	assert.Equal(t, int64(2), list.TotalVideos)
	assert.Len(t, list.Videos, 2)
}
