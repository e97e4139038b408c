package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Uploader pushes an image source (data URI, local file URI or remote URL)
// to the hosting service and returns the hosted secure URL.
type Uploader interface {
	UploadImage(ctx context.Context, source, folder, publicID string) (string, error)
}

// CloudinaryUploader is the production Uploader.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}
