package utils

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"roadside-assist-server/config"
)

// UploadImage uploads an image file to Cloudinary and returns the secure URL.
// Used for payment screenshots and product photos.
func UploadImage(file multipart.File, folder string) (string, error) {
	var cld *cloudinary.Cloudinary
	var err error
	if url := config.AppConfig.Cloudinary.URL; url != "" {
		cld, err = cloudinary.NewFromURL(url)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return "", err
	}

	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		ResourceType: "image",
		PublicID:     fmt.Sprintf("%s/%s", folder, uuid.NewString()),
	})
	if err != nil {
		return "", err
	}

	return result.SecureURL, nil
}
