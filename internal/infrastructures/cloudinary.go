package infrastructures

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/safatanc/vidtube/internal/app/models"
)

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cfg *AppConfig) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryConfig.CloudName,
		cfg.CloudinaryConfig.APIKey,
		cfg.CloudinaryConfig.APISecret,
	)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload sends a local file and lets the provider detect its resource type.
func (u *CloudinaryUploader) Upload(ctx context.Context, localPath string) (*models.MediaAsset, error) {
	resp, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{ResourceType: "auto"})
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	url := resp.SecureURL
	if url == "" {
		url = resp.URL
	}
	return &models.MediaAsset{
		URL:          url,
		PublicID:     resp.PublicID,
		ResourceType: resp.ResourceType,
	}, nil
}

// Delete removes an asset. A missing asset is reported as an error so the
// caller can record it.
func (u *CloudinaryUploader) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}
	if resp.Result != "ok" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Result)
	}
	return nil
}
