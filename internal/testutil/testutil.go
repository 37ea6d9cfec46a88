// Package testutil holds the in-memory store and fakes shared by the
// package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/safatanc/vidtube/pkg/ratelimit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PNG and MP4 headers recognised by mimetype.
var (
	PNGBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	MP4Bytes = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2avc1mp41")
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), infrastructures.NewGormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, infrastructures.Migrate(db))
	return db
}

func NewConfig(t testing.TB) *infrastructures.AppConfig {
	return &infrastructures.AppConfig{
		APP_ENV:              "test",
		ACCESS_TOKEN_SECRET:  "access-secret",
		ACCESS_TOKEN_EXPIRY:  time.Hour,
		REFRESH_TOKEN_SECRET: "refresh-secret",
		REFRESH_TOKEN_EXPIRY: 24 * time.Hour,
		UPLOAD_TEMP_DIR:      t.TempDir(),
		BODY_LIMIT_MB:        10,
	}
}

// WriteFile creates a temp file with content and returns its path.
func WriteFile(t testing.TB, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func CreateUser(t testing.TB, db *gorm.DB, userName string) *models.User {
	t.Helper()
	user := &models.User{
		UserName: userName,
		Email:    userName + "@example.com",
		FullName: "User " + userName,
		Avatar:   "https://media.example.com/" + userName + ".png",
		Password: "not-a-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateVideo(t testing.TB, db *gorm.DB, ownerID uuid.UUID, title string, published bool) *models.Video {
	t.Helper()
	video := &models.Video{
		VideoFile:         "https://media.example.com/" + title + ".mp4",
		VideoFilePublicID: "video-" + title,
		Thumbnail:         "https://media.example.com/" + title + ".png",
		ThumbnailPublicID: "thumb-" + title,
		Title:             title,
		Description:       "about " + title,
		Duration:          decimal.NewFromInt(60),
		IsPublished:       true,
		OwnerID:           ownerID,
	}
	require.NoError(t, db.Create(video).Error)
	if !published {
		// false is a zero value, so the column default would win on insert.
		require.NoError(t, db.Model(video).Update("is_published", false).Error)
		video.IsPublished = false
	}
	return video
}

// FakeUploader keeps uploaded assets in memory.
type FakeUploader struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	FailAfter int // fail the upload after this many successes; 0 never fails
	DeleteErr error
}

func (u *FakeUploader) Upload(ctx context.Context, localPath string) (*models.MediaAsset, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.FailAfter > 0 && len(u.Uploaded) >= u.FailAfter {
		return nil, fmt.Errorf("upload of %s failed", filepath.Base(localPath))
	}
	publicID := fmt.Sprintf("asset-%d", len(u.Uploaded)+1)
	u.Uploaded = append(u.Uploaded, publicID)
	return &models.MediaAsset{
		URL:          "https://media.example.com/" + publicID,
		PublicID:     publicID,
		ResourceType: "image",
	}, nil
}

func (u *FakeUploader) Delete(ctx context.Context, publicID, resourceType string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.DeleteErr != nil {
		return u.DeleteErr
	}
	u.Deleted = append(u.Deleted, publicID)
	return nil
}

// FakeDenylist is an in-memory token denylist.
type FakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func NewFakeDenylist() *FakeDenylist {
	return &FakeDenylist{revoked: map[string]time.Duration{}}
}

func (d *FakeDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = ttl
	return nil
}

func (d *FakeDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// CountingLimiter allows the first Max requests per key.
type CountingLimiter struct {
	mu    sync.Mutex
	Max   int
	count map[string]int
}

func (l *CountingLimiter) Allow(ctx context.Context, key string, limit ratelimit.Rate) (bool, ratelimit.RateLimitInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == nil {
		l.count = map[string]int{}
	}
	l.count[key]++

	max := l.Max
	if max == 0 {
		max = limit.Requests
	}
	return l.count[key] <= max, ratelimit.RateLimitInfo{
		Limit:     max,
		Remaining: max - l.count[key],
		Reset:     time.Now().Add(limit.Window),
	}
}

func (l *CountingLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.count, key)
	return nil
}
