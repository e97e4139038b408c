package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agritrust/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PlaceholderURL is substituted when an image value cannot be resolved to a
// hosted URL without failing the whole registration.
const PlaceholderURL = "https://res.cloudinary.com/agritrust/image/upload/placeholder.png"

// UploadError names the image field whose resolution failed.
type UploadError struct {
	Field string
	Err   error
}

func (e UploadError) Error() string {
	return fmt.Sprintf("failed to process %s: %v", e.Field, e.Err)
}

func (e UploadError) Unwrap() error { return e.Err }

// ImageResolver turns wizard-submitted image values into hosted URLs.
type ImageResolver struct {
	Uploader Uploader
}

// Resolve maps a single image field value to a hosted URL:
//   - empty or whitespace-only values fail with an UploadError naming the field
//   - device-local URIs (file://, content://) are uploaded; on failure the
//     placeholder is substituted instead of failing the request
//   - embedded base64 images (data:image/...) are uploaded under a
//     role-scoped folder with a generated unique name; failure is fatal
//   - existing http(s) URLs pass through unchanged
//   - any other shape gets the placeholder without failing
func (r *ImageResolver) Resolve(ctx context.Context, field, value, folder string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", UploadError{Field: field, Err: fmt.Errorf("image value is empty")}
	}

	switch {
	case strings.HasPrefix(trimmed, "file://") || strings.HasPrefix(trimmed, "content://"):
		url, err := r.Uploader.UploadImage(ctx, trimmed, folder, uploadName(field))
		if err != nil {
			utils.GetLogger().Warn("local image upload failed, substituting placeholder",
				zap.String("field", field), zap.Error(err))
			return PlaceholderURL, nil
		}
		return url, nil

	case strings.HasPrefix(trimmed, "data:image/"):
		url, err := r.Uploader.UploadImage(ctx, trimmed, folder, uploadName(field))
		if err != nil {
			return "", UploadError{Field: field, Err: err}
		}
		return url, nil

	case strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://"):
		return trimmed, nil

	default:
		return PlaceholderURL, nil
	}
}

// ResolveAll resolves every image field concurrently and returns the hosted
// URLs keyed by field name. If any resolution fails the whole batch fails.
func (r *ImageResolver) ResolveAll(ctx context.Context, folder string, fields map[string]string) (map[string]string, error) {
	resolved := make(map[string]string, len(fields))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for field, value := range fields {
		field, value := field, value
		g.Go(func() error {
			url, err := r.Resolve(gctx, field, value, folder)
			if err != nil {
				return err
			}
			mu.Lock()
			resolved[field] = url
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func uploadName(field string) string {
	return fmt.Sprintf("%s-%s", field, uuid.New().String())
}
