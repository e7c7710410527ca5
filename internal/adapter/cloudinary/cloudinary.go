package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("cloudinary is not configured")

type CloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryAdapter returns an adapter that fails every upload when any credential is missing.
func NewCloudinaryAdapter(cloudName, apiKey, apiSecret, folder string) (*CloudinaryAdapter, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return &CloudinaryAdapter{folder: folder}, nil
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryAdapter{cld: cld, folder: folder}, nil
}

func (a *CloudinaryAdapter) Configured() bool {
	return a.cld != nil
}

func (a *CloudinaryAdapter) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if a.cld == nil {
		return "", ErrNotConfigured
	}

	resp, err := a.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:         a.folder,
		PublicID:       strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		UniqueFilename: boolPtr(true),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty secure url")
	}
	return resp.SecureURL, nil
}

func boolPtr(b bool) *bool { return &b }
