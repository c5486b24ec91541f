package utils

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Uploader forwards a binary payload to the media store and returns its
// public URL. The relay handler depends on this interface so upstream
// failures can be simulated in tests.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

// CloudinaryUploader stores files in a fixed Cloudinary folder.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:           u.folder,
		PublicID:         uuid.NewString(),
		FilenameOverride: filename,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	return resp.SecureURL, nil
}
