package services

import (
	"context"
	"os"

	"github.com/gabriel-vasile/mimetype"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// MediaUploader stores files with the media provider.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (*models.MediaAsset, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}

type MediaService struct {
	uploader MediaUploader
	metrics  *infrastructures.Metrics
}

func NewMediaService(uploader MediaUploader, metrics *infrastructures.Metrics) *MediaService {
	return &MediaService{uploader: uploader, metrics: metrics}
}

// Upload checks the file type, uploads it and registers its removal with
// comp. The local file is removed whatever the outcome.
func (s *MediaService) Upload(ctx context.Context, localPath string, kind models.MediaKind, comp *pkg.Compensator) (*models.MediaAsset, error) {
	defer RemoveLocalFile(localPath)

	mtype, err := mimetype.DetectFile(localPath)
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to read uploaded file")
	}
	if !mimetype.EqualsAny(mtype.String(), kind.AllowedMIMETypes()...) {
		s.observe(kind, "rejected")
		return nil, appError.NewBadRequestError("Invalid "+kind.String()+" file type", "received "+mtype.String())
	}

	asset, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		s.observe(kind, "failed")
		return nil, appError.NewInternalServerError(err, "Failed to upload "+kind.String())
	}
	s.observe(kind, "ok")

	if comp != nil {
		comp.Add(func(ctx context.Context) error {
			return s.uploader.Delete(ctx, asset.PublicID, asset.ResourceType)
		})
	}
	return asset, nil
}

// Delete removes an asset best-effort and reports the outcome.
func (s *MediaService) Delete(ctx context.Context, publicID, resourceType string) string {
	if publicID == "" {
		return models.AssetStatusFailed
	}
	if err := s.uploader.Delete(ctx, publicID, resourceType); err != nil {
		logrus.WithError(err).WithField("public_id", publicID).Warn("failed to delete media asset")
		return models.AssetStatusFailed
	}
	return models.AssetStatusProcessed
}

func (s *MediaService) observe(kind models.MediaKind, outcome string) {
	if s.metrics != nil {
		s.metrics.MediaUploads.WithLabelValues(kind.String(), outcome).Inc()
	}
}

// RemoveLocalFile deletes a temporary upload, ignoring empty paths.
func RemoveLocalFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", path).Warn("failed to remove temp file")
	}
}
