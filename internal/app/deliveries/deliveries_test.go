package deliveries_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/deliveries"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/safatanc/vidtube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type server struct {
	t      *testing.T
	app    *fiber.App
	db     *gorm.DB
	tokens *services.TokenService
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := testutil.NewDB(t)
	config := testutil.NewConfig(t)
	validator := infrastructures.NewValidator()
	tokens := services.NewTokenService(config, testutil.NewFakeDenylist())
	media := services.NewMediaService(&testutil.FakeUploader{}, infrastructures.NewMetrics())
	users := services.NewUserService(db, validator, tokens, media)
	videos := services.NewVideoService(db, validator, media)

	rateLimit := middlewares.NewRateLimitMiddleware(&testutil.CountingLimiter{})
	auth := middlewares.NewAuthMiddleware(tokens, users, rateLimit)

	app := fiber.New(fiber.Config{ErrorHandler: pkg.NewErrorHandler(false)})
	api := app.Group("/api/v1")
	deliveries.NewUserHandler(users, auth, rateLimit, config).RegisterRoutes(api)
	deliveries.NewVideoHandler(videos, auth, rateLimit, config).RegisterRoutes(api)
	deliveries.NewCommentHandler(services.NewCommentService(db, validator), auth).RegisterRoutes(api)
	deliveries.NewLikeHandler(services.NewLikeService(db), auth).RegisterRoutes(api)
	deliveries.NewPlaylistHandler(services.NewPlaylistService(db, validator), auth).RegisterRoutes(api)

	return &server{t: t, app: app, db: db, tokens: tokens}
}

// login creates a user and returns a bearer token for it.
func (s *server) login(userName string) (*models.User, string) {
	s.t.Helper()
	user := testutil.CreateUser(s.t, s.db, userName)
	tokens, err := s.tokens.GenerateTokens(user)
	require.NoError(s.t, err)
	return user, tokens.AccessToken
}

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

func (s *server) do(method, path, token string, body io.Reader, contentType string) (int, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (s *server) doJSON(method, path, token, body string) (int, envelope) {
	return s.do(method, path, token, strings.NewReader(body), fiber.MIMEApplicationJSON)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type pageBody struct {
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type commentPage struct {
	Comments      []map[string]any `json:"comments"`
	TotalComments int64            `json:"totalComments"`
	pageBody
}

type videoPage struct {
	Videos      []map[string]any `json:"videos"`
	TotalVideos int64            `json:"totalVideos"`
	pageBody
}

func TestPublishListAndOwnership(t *testing.T) {
	s := newServer(t)
	owner, ownerToken := s.login("owner")
	_, otherToken := s.login("other")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "First upload"))
	require.NoError(t, form.WriteField("description", "hello"))
	require.NoError(t, form.WriteField("duration", "61.5"))
	for field, content := range map[string][]byte{"videoFile": testutil.MP4Bytes, "thumbnail": testutil.PNGBytes} {
		part, err := form.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	status, env := s.do(http.MethodPost, "/api/v1/videos", ownerToken, &body, form.FormDataContentType())
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)

	video := decode[map[string]any](t, env.Data)
	videoID := video["_id"].(string)
	assert.Equal(t, "First upload", video["title"])
	assert.Equal(t, owner.UserName, video["owner"].(map[string]any)["userName"])

	status, env = s.doJSON(http.MethodGet, "/api/v1/videos?userId="+owner.ID.String(), ownerToken, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[videoPage](t, env.Data)
	assert.Equal(t, int64(1), list.TotalVideos)
	require.Len(t, list.Videos, 1)
	assert.Equal(t, videoID, list.Videos[0]["_id"])

	status, env = s.doJSON(http.MethodPatch, "/api/v1/videos/"+videoID, otherToken, `{"title":"mine"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, env.Success)

	status, _ = s.doJSON(http.MethodDelete, "/api/v1/videos/"+videoID, otherToken, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.doJSON(http.MethodGet, "/api/v1/videos/"+videoID, otherToken, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "First upload", decode[map[string]any](t, env.Data)["title"])
}

func TestVideosRequireAuth(t *testing.T) {
	s := newServer(t)

	status, env := s.doJSON(http.MethodGet, "/api/v1/videos", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestVideoListValidation(t *testing.T) {
	s := newServer(t)
	_, token := s.login("viewer")

	status, env := s.doJSON(http.MethodGet, "/api/v1/videos?sortBy=likes", token, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "sortBy")

	status, env = s.doJSON(http.MethodGet, "/api/v1/videos?limit=500&page=abc", token, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[videoPage](t, env.Data)
	assert.Equal(t, 50, list.Limit)
	assert.Equal(t, 1, list.CurrentPage)
	assert.NotNil(t, list.Videos)
	assert.Equal(t, "No videos found matching your criteria", env.Message)
}

func TestCommentPagination(t *testing.T) {
	s := newServer(t)
	owner, token := s.login("owner")
	video := testutil.CreateVideo(t, s.db, owner.ID, "talk", true)
	path := "/api/v1/comments/" + video.ID.String()

	status, env := s.doJSON(http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No comments found for this video", env.Message)
	assert.JSONEq(t, `{"comments":[],"totalComments":0,"currentPage":1,"limit":10,"totalPages":0,"hasNextPage":false,"hasPrevPage":false}`, string(env.Data))

	for i := 0; i < 3; i++ {
		status, _ = s.doJSON(http.MethodPost, path, token, `{"content":"nice"}`)
		require.Equal(t, http.StatusCreated, status)
	}

	status, env = s.doJSON(http.MethodGet, path+"?page=1&limit=2", token, "")
	require.Equal(t, http.StatusOK, status)
	page := decode[commentPage](t, env.Data)
	assert.Len(t, page.Comments, 2)
	assert.Equal(t, int64(3), page.TotalComments)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "Comments fetched successfully", env.Message)

	status, env = s.doJSON(http.MethodGet, path+"?page=5&limit=2", token, "")
	require.Equal(t, http.StatusOK, status)
	page = decode[commentPage](t, env.Data)
	assert.Empty(t, page.Comments)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 5, page.CurrentPage)
	assert.Equal(t, "No comments found on this page", env.Message)
}

func TestToggleVideoLike(t *testing.T) {
	s := newServer(t)
	owner, token := s.login("owner")
	video := testutil.CreateVideo(t, s.db, owner.ID, "talk", true)
	path := "/api/v1/likes/toggle/v/" + video.ID.String()

	status, env := s.doJSON(http.MethodPost, path, token, "")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Video liked successfully", env.Message)

	status, env = s.doJSON(http.MethodPost, path, token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Video unliked successfully", env.Message)

	status, _ = s.doJSON(http.MethodPost, "/api/v1/likes/toggle/v/not-a-uuid", token, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPlaylistMembershipRoutes(t *testing.T) {
	s := newServer(t)
	owner, token := s.login("owner")
	_, otherToken := s.login("other")
	video := testutil.CreateVideo(t, s.db, owner.ID, "clip", true)

	status, env := s.doJSON(http.MethodPost, "/api/v1/playlists", token, `{"name":"Favourites"}`)
	require.Equal(t, http.StatusCreated, status, env.Message)
	playlistID := decode[map[string]any](t, env.Data)["_id"].(string)

	addPath := "/api/v1/playlists/" + playlistID + "/add/" + video.ID.String()
	removePath := "/api/v1/playlists/" + playlistID + "/remove/" + video.ID.String()

	status, env = s.doJSON(http.MethodPatch, addPath, token, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, []any{video.ID.String()}, decode[map[string]any](t, env.Data)["videos"])

	status, _ = s.doJSON(http.MethodPatch, addPath, token, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.doJSON(http.MethodPatch, removePath, otherToken, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.doJSON(http.MethodPatch, removePath, token, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Empty(t, decode[map[string]any](t, env.Data)["videos"])

	status, _ = s.doJSON(http.MethodPatch, removePath, token, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthAndMetrics(t *testing.T) {
	db := testutil.NewDB(t)
	metrics := infrastructures.NewMetrics()
	metrics.MediaUploads.WithLabelValues("image", "ok").Inc()

	app := fiber.New(fiber.Config{ErrorHandler: pkg.NewErrorHandler(false)})
	deliveries.NewHealthHandler(db, nil, metrics).RegisterRoutes(app.Group("/api/v1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vidtube_media_uploads_total")
}
