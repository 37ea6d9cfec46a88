package services

import (
	"testing"

	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest() *models.UserRegisterRequest {
	return &models.UserRegisterRequest{
		FullName: " Ada Lovelace ",
		UserName: "Ada",
		Email:    "ADA@example.com",
		Password: "correct-horse",
	}
}

func registerUser(t *testing.T, f *fixture) *models.User {
	t.Helper()
	avatar := testutil.WriteFile(t, "avatar.png", testutil.PNGBytes)
	user, err := f.users.Register(f.ctx, registerRequest(), avatar, "")
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	avatar := testutil.WriteFile(t, "avatar.png", testutil.PNGBytes)
	cover := testutil.WriteFile(t, "cover.png", testutil.PNGBytes)

	user, err := f.users.Register(f.ctx, registerRequest(), avatar, cover)
	require.NoError(t, err)

	assert.Equal(t, "ada", user.UserName)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.FullName)
	assert.Equal(t, "asset-1", user.AvatarPublicID)
	assert.Equal(t, "asset-2", user.CoverImagePublicID)
	assert.NotEqual(t, "correct-horse", user.Password)
	assert.NoFileExists(t, avatar)
	assert.NoFileExists(t, cover)

	again := testutil.WriteFile(t, "again.png", testutil.PNGBytes)
	_, err = f.users.Register(f.ctx, registerRequest(), again, "")
	assertKind(t, err, errors.KindConflict)
	assert.Len(t, f.uploader.Uploaded, 2)
}

func TestRegisterRequiresAvatar(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Register(f.ctx, registerRequest(), "", "")
	assertKind(t, err, errors.KindValidation)

	req := registerRequest()
	req.Password = "short"
	_, err = f.users.Register(f.ctx, req, "", "")
	assertKind(t, err, errors.KindValidation)
}

func TestRegisterRollsBackAvatarWhenCoverFails(t *testing.T) {
	f := newFixture(t)
	f.uploader.FailAfter = 1
	avatar := testutil.WriteFile(t, "avatar.png", testutil.PNGBytes)
	cover := testutil.WriteFile(t, "cover.png", testutil.PNGBytes)

	_, err := f.users.Register(f.ctx, registerRequest(), avatar, cover)
	assertKind(t, err, errors.KindInternal)
	assert.Equal(t, []string{"asset-1"}, f.uploader.Deleted)

	var count int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginRefreshLogout(t *testing.T) {
	f := newFixture(t)
	user := registerUser(t, f)

	_, err := f.users.Login(f.ctx, &models.UserLoginRequest{UserName: "ada", Password: "wrong-horse"})
	assertKind(t, err, errors.KindUnauthenticated)

	_, err = f.users.Login(f.ctx, &models.UserLoginRequest{UserName: "nobody", Password: "correct-horse"})
	assertKind(t, err, errors.KindNotFound)

	login, err := f.users.Login(f.ctx, &models.UserLoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, login.User.ID)

	claims, err := f.tokens.ParseAccessToken(f.ctx, login.AccessToken)
	require.NoError(t, err)
	subject, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	refreshed, err := f.users.RefreshTokens(f.ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = f.users.RefreshTokens(f.ctx, login.RefreshToken)
	assertKind(t, err, errors.KindUnauthenticated)

	require.NoError(t, f.users.Logout(f.ctx, user.ID, claims))

	_, err = f.tokens.ParseAccessToken(f.ctx, login.AccessToken)
	assertKind(t, err, errors.KindUnauthenticated)

	_, err = f.users.RefreshTokens(f.ctx, refreshed.RefreshToken)
	assertKind(t, err, errors.KindUnauthenticated)
}

func TestParseTokens(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "alice")
	tokens, err := f.tokens.GenerateTokens(user)
	require.NoError(t, err)

	_, err = f.tokens.ParseAccessToken(f.ctx, tokens.RefreshToken)
	assertKind(t, err, errors.KindUnauthenticated)

	_, err = f.tokens.ParseRefreshToken(tokens.AccessToken)
	assertKind(t, err, errors.KindUnauthenticated)

	_, err = f.tokens.ParseAccessToken(f.ctx, "garbage")
	assertKind(t, err, errors.KindUnauthenticated)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	user := registerUser(t, f)

	err := f.users.ChangePassword(f.ctx, user.ID, &models.ChangePasswordRequest{OldPassword: "nope", NewPassword: "battery-staple"})
	assertKind(t, err, errors.KindValidation)

	err = f.users.ChangePassword(f.ctx, user.ID, &models.ChangePasswordRequest{OldPassword: "correct-horse", NewPassword: "battery-staple"})
	require.NoError(t, err)

	_, err = f.users.Login(f.ctx, &models.UserLoginRequest{UserName: "ada", Password: "battery-staple"})
	require.NoError(t, err)
}

func TestUpdateAccount(t *testing.T) {
	f := newFixture(t)
	user := registerUser(t, f)
	testutil.CreateUser(t, f.db, "bob")

	_, err := f.users.UpdateAccount(f.ctx, user.ID, &models.UserUpdateRequest{})
	assertKind(t, err, errors.KindValidation)

	taken := "bob@example.com"
	_, err = f.users.UpdateAccount(f.ctx, user.ID, &models.UserUpdateRequest{Email: &taken})
	assertKind(t, err, errors.KindConflict)

	name := "Augusta Ada King"
	updated, err := f.users.UpdateAccount(f.ctx, user.ID, &models.UserUpdateRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateAvatarReplacesAsset(t *testing.T) {
	f := newFixture(t)
	user := registerUser(t, f)

	_, err := f.users.UpdateAvatar(f.ctx, user.ID, "")
	assertKind(t, err, errors.KindValidation)

	path := testutil.WriteFile(t, "new.png", testutil.PNGBytes)
	updated, err := f.users.UpdateAvatar(f.ctx, user.ID, path)
	require.NoError(t, err)

	assert.Equal(t, "asset-2", updated.AvatarPublicID)
	assert.Equal(t, []string{"asset-1"}, f.uploader.Deleted)
}

func TestWatchHistoryMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner")
	viewer := testutil.CreateUser(t, f.db, "viewer")
	first := testutil.CreateVideo(t, f.db, owner.ID, "first", true)
	second := testutil.CreateVideo(t, f.db, owner.ID, "second", true)

	for _, video := range []*models.Video{first, second, first} {
		_, err := f.videos.GetVideoByID(f.ctx, video.ID.String(), viewer.ID)
		require.NoError(t, err)
	}

	page, err := f.users.GetWatchHistory(f.ctx, viewer.ID, models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	list := models.NewWatchHistoryList(page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, first.ID, page.Items[0].Video.ID)
	assert.Equal(t, second.ID, page.Items[1].Video.ID)
	assert.Equal(t, int64(2), list.TotalWatched)
}
