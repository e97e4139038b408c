package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader records calls and can be told to fail.
type fakeUploader struct {
	mu     sync.Mutex
	err    error
	calls  []string
	hosted string
}

func (f *fakeUploader) UploadImage(ctx context.Context, source, folder, publicID string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, publicID)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.hosted + "/" + publicID, nil
}

func TestResolve_DataURIUploaded(t *testing.T) {
	up := &fakeUploader{hosted: "https://cdn.example.com"}
	r := &ImageResolver{Uploader: up}

	url, err := r.Resolve(context.Background(), "profileimage", "data:image/png;base64,AAAA", "agritrust/farmers")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/profileimage-"))
}

func TestResolve_DataURIFailureIsFatal(t *testing.T) {
	up := &fakeUploader{err: errors.New("cloud down")}
	r := &ImageResolver{Uploader: up}

	_, err := r.Resolve(context.Background(), "farmimage", "data:image/jpeg;base64,BBBB", "agritrust/farmers")
	require.Error(t, err)

	var uerr UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "farmimage", uerr.Field)
}

func TestResolve_LocalURIFallsBackToPlaceholder(t *testing.T) {
	up := &fakeUploader{err: errors.New("cloud down")}
	r := &ImageResolver{Uploader: up}

	url, err := r.Resolve(context.Background(), "profileimage", "file:///tmp/photo.jpg", "agritrust/farmers")
	require.NoError(t, err)
	assert.Equal(t, PlaceholderURL, url)

	url, err = r.Resolve(context.Background(), "profileimage", "content://media/external/images/1", "agritrust/farmers")
	require.NoError(t, err)
	assert.Equal(t, PlaceholderURL, url)
}

func TestResolve_LocalURIUploadedWhenHealthy(t *testing.T) {
	up := &fakeUploader{hosted: "https://cdn.example.com"}
	r := &ImageResolver{Uploader: up}

	url, err := r.Resolve(context.Background(), "licensefrontimage", "file:///tmp/license.jpg", "agritrust/drivers")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/licensefrontimage-"))
}

func TestResolve_HTTPPassthrough(t *testing.T) {
	up := &fakeUploader{hosted: "https://cdn.example.com"}
	r := &ImageResolver{Uploader: up}

	url, err := r.Resolve(context.Background(), "profileimage", "https://elsewhere.example.com/p.jpg", "agritrust/farmers")
	require.NoError(t, err)
	assert.Equal(t, "https://elsewhere.example.com/p.jpg", url)
	assert.Empty(t, up.calls)
}

func TestResolve_UnknownShapeGetsPlaceholder(t *testing.T) {
	r := &ImageResolver{Uploader: &fakeUploader{}}

	url, err := r.Resolve(context.Background(), "profileimage", "ftp://weird/thing", "agritrust/farmers")
	require.NoError(t, err)
	assert.Equal(t, PlaceholderURL, url)
}

func TestResolve_EmptyValueFails(t *testing.T) {
	r := &ImageResolver{Uploader: &fakeUploader{}}

	_, err := r.Resolve(context.Background(), "farmimage", "   ", "agritrust/farmers")
	require.Error(t, err)

	var uerr UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "farmimage", uerr.Field)
}

func TestResolveAll_AllFieldsResolved(t *testing.T) {
	up := &fakeUploader{hosted: "https://cdn.example.com"}
	r := &ImageResolver{Uploader: up}

	fields := map[string]string{
		"profileimage": "data:image/png;base64,AAAA",
		"farmimage":    "https://elsewhere.example.com/farm.jpg",
	}
	resolved, err := r.ResolveAll(context.Background(), "agritrust/farmers", fields)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "https://elsewhere.example.com/farm.jpg", resolved["farmimage"])
	assert.True(t, strings.HasPrefix(resolved["profileimage"], "https://cdn.example.com/"))
}

func TestResolveAll_OneFailureFailsBatch(t *testing.T) {
	up := &fakeUploader{err: errors.New("cloud down")}
	r := &ImageResolver{Uploader: up}

	fields := map[string]string{
		"profileimage": "data:image/png;base64,AAAA",
		"farmimage":    "https://elsewhere.example.com/farm.jpg",
	}
	resolved, err := r.ResolveAll(context.Background(), "agritrust/farmers", fields)
	require.Error(t, err)
	assert.Nil(t, resolved)

	var uerr UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "profileimage", uerr.Field)
}

func TestSealOpenCardField(t *testing.T) {
	sealed, err := SealCardField("4242424242424242", "test-key")
	require.NoError(t, err)
	assert.NotEqual(t, "4242424242424242", sealed)

	opened, err := OpenCardField(sealed, "test-key")
	require.NoError(t, err)
	assert.Equal(t, "4242424242424242", opened)

	// Wrong key fails authentication rather than yielding garbage.
	_, err = OpenCardField(sealed, "other-key")
	assert.Error(t, err)

	// Empty plaintext stays empty.
	sealed, err = SealCardField("", "test-key")
	require.NoError(t, err)
	assert.Empty(t, sealed)
}
