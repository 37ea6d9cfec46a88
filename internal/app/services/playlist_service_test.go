package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistMembership(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	other := testutil.CreateUser(t, f.db, "other")
	first := testutil.CreateVideo(t, f.db, owner.ID, "first", true)
	second := testutil.CreateVideo(t, f.db, owner.ID, "second", true)

	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &models.PlaylistCreateRequest{Name: " Favourites "})
	require.NoError(t, err)
	assert.Equal(t, "Favourites", playlist.Name)
	assert.Empty(t, playlist.Entries)

	playlist, err = f.playlists.AddVideo(f.ctx, owner.ID, first.ID.String(), playlist.ID.String())
	require.NoError(t, err)
	playlist, err = f.playlists.AddVideo(f.ctx, owner.ID, second.ID.String(), playlist.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, playlist.ToResponse().Videos)

	_, err = f.playlists.AddVideo(f.ctx, owner.ID, first.ID.String(), playlist.ID.String())
	assertKind(t, err, errors.KindConflict)

	_, err = f.playlists.AddVideo(f.ctx, other.ID, first.ID.String(), playlist.ID.String())
	assertKind(t, err, errors.KindUnauthorized)

	_, err = f.playlists.AddVideo(f.ctx, owner.ID, uuid.NewString(), playlist.ID.String())
	assertKind(t, err, errors.KindNotFound)

	playlist, err = f.playlists.RemoveVideo(f.ctx, owner.ID, first.ID.String(), playlist.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID}, playlist.ToResponse().Videos)

	_, err = f.playlists.RemoveVideo(f.ctx, owner.ID, first.ID.String(), playlist.ID.String())
	assertKind(t, err, errors.KindNotFound)
}

func TestGetPlaylistPagesVideosInInsertionOrder(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &models.PlaylistCreateRequest{Name: "Series"})
	require.NoError(t, err)

	var ids []uuid.UUID
	for i := 1; i <= 3; i++ {
		video := testutil.CreateVideo(t, f.db, owner.ID, fmt.Sprintf("part-%d", i), true)
		_, err := f.playlists.AddVideo(f.ctx, owner.ID, video.ID.String(), playlist.ID.String())
		require.NoError(t, err)
		ids = append(ids, video.ID)
	}

	got, videos, err := f.playlists.GetPlaylist(f.ctx, playlist.ID.String(), models.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)

	detail := models.NewPlaylistDetail(got, videos)
	require.Len(t, detail.Videos.Videos, 2)
	assert.Equal(t, ids[0], detail.Videos.Videos[0].ID)
	assert.Equal(t, ids[1], detail.Videos.Videos[1].ID)
	assert.Equal(t, int64(3), detail.Videos.TotalVideos)
	assert.True(t, detail.Videos.HasNextPage)
}

func TestListUserPlaylistsSummaries(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &models.PlaylistCreateRequest{Name: "Mix"})
	require.NoError(t, err)
	video := testutil.CreateVideo(t, f.db, owner.ID, "track", true)
	_, err = f.playlists.AddVideo(f.ctx, owner.ID, video.ID.String(), playlist.ID.String())
	require.NoError(t, err)

	page, err := f.playlists.ListUserPlaylists(f.ctx, owner.ID.String(), models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	list := models.NewPlaylistList(page)
	require.Len(t, list.Playlists, 1)
	assert.Equal(t, int64(1), list.Playlists[0].VideoCount)
	assert.Equal(t, []string{video.Thumbnail}, list.Playlists[0].PreviewThumbnails)

	_, err = f.playlists.ListUserPlaylists(f.ctx, uuid.NewString(), models.PageRequest{Page: 1, Limit: 10})
	assertKind(t, err, errors.KindNotFound)
}

func TestListUserPlaylistsCapsPreviews(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	full, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &models.PlaylistCreateRequest{Name: "Full"})
	require.NoError(t, err)
	_, err = f.playlists.CreatePlaylist(f.ctx, owner.ID, &models.PlaylistCreateRequest{Name: "Empty"})
	require.NoError(t, err)

	added := time.Now().Add(-time.Hour)
	var thumbnails []string
	for i := 0; i < 7; i++ {
		video := testutil.CreateVideo(t, f.db, owner.ID, fmt.Sprintf("clip-%d", i), true)
		thumbnails = append(thumbnails, video.Thumbnail)
		entry := &models.PlaylistVideo{PlaylistID: full.ID, VideoID: video.ID}
		entry.CreatedAt = added.Add(time.Duration(i) * time.Minute)
		require.NoError(t, f.db.Create(entry).Error)
	}

	page, err := f.playlists.ListUserPlaylists(f.ctx, owner.ID.String(), models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	list := models.NewPlaylistList(page)
	require.Len(t, list.Playlists, 2)
	byName := map[string]models.PlaylistSummary{}
	for _, p := range list.Playlists {
		byName[p.Name] = p
	}

	assert.Equal(t, int64(7), byName["Full"].VideoCount)
	assert.Equal(t, thumbnails[:models.PlaylistPreviewSize], byName["Full"].PreviewThumbnails)
	assert.Len(t, byName["Full"].Videos, 7)

	assert.Zero(t, byName["Empty"].VideoCount)
	assert.Empty(t, byName["Empty"].PreviewThumbnails)
	assert.NotNil(t, byName["Empty"].PreviewThumbnails)
}

func TestUpdateAndDeletePlaylist(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	other := testutil.CreateUser(t, f.db, "other")
	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &models.PlaylistCreateRequest{Name: "Old"})
	require.NoError(t, err)

	_, err = f.playlists.UpdatePlaylist(f.ctx, owner.ID, playlist.ID.String(), &models.PlaylistUpdateRequest{})
	assertKind(t, err, errors.KindValidation)

	name := "New"
	_, err = f.playlists.UpdatePlaylist(f.ctx, other.ID, playlist.ID.String(), &models.PlaylistUpdateRequest{Name: &name})
	assertKind(t, err, errors.KindUnauthorized)

	updated, err := f.playlists.UpdatePlaylist(f.ctx, owner.ID, playlist.ID.String(), &models.PlaylistUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	video := testutil.CreateVideo(t, f.db, owner.ID, "clip", true)
	_, err = f.playlists.AddVideo(f.ctx, owner.ID, video.ID.String(), playlist.ID.String())
	require.NoError(t, err)

	result, err := f.playlists.DeletePlaylist(f.ctx, owner.ID, playlist.ID.String())
	require.NoError(t, err)
	assert.Equal(t, playlist.ID, result.PlaylistID)

	var entries int64
	require.NoError(t, f.db.Model(&models.PlaylistVideo{}).Count(&entries).Error)
	assert.Zero(t, entries)

	_, _, err = f.playlists.GetPlaylist(f.ctx, playlist.ID.String(), models.PageRequest{Page: 1, Limit: 10})
	assertKind(t, err, errors.KindNotFound)
}
