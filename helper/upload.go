package helper

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the blob-upload collaborator: one file in, one URL out.
// Failures are surfaced as errors and collected by callers; an upload cannot
// be aborted once issued.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder, resourceType string) (string, error)
}

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file *multipart.FileHeader, folder, resourceType string) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", file.Filename, err)
	}
	defer reader.Close()

	result, err := u.cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       folder,
		PublicID:     fmt.Sprintf("%s_%d", slugBase(file.Filename), time.Now().Unix()),
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Filename, err)
	}
	return result.SecureURL, nil
}
