package storage

import (
	"context"
	"fmt"

	"agritrust/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// NewCloudinaryUploader initializes the Cloudinary client from config.
func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// UploadImage uploads an image source into the given folder under the given
// public ID and returns the hosted secure URL. Cloudinary accepts data URIs,
// local paths and remote URLs as the file argument.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, source, folder, publicID string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, source, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no URL returned for upload")
	}
	return result.SecureURL, nil
}
