package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/Kariqs/farmkart-api/services"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
	"image/gif",
	"image/svg+xml",
	"image/bmp",
	"image/tiff",
	"image/avif",
	"image/x-icon",
	"image/heic",
	"image/heif",
}

func allowedImage(mt *mimetype.MIME) bool {
	for _, t := range allowedImageTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

// readImageUpload returns the image sent in field, or nil when the request
// carries none. The type is sniffed from the bytes, not taken from the client.
func readImageUpload(ctx *gin.Context, field string) (*services.ImageUpload, error) {
	header, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if header.Size > maxImageSize {
		return nil, fmt.Errorf("%w: image is larger than 5MB", models.ErrValidation)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read image: %v", models.ErrValidation, err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: image is larger than 5MB", models.ErrValidation)
	}

	mt := mimetype.Detect(data)
	if !allowedImage(mt) {
		return nil, fmt.Errorf("%w: unsupported image type %s", models.ErrValidation, mt.String())
	}
	return &services.ImageUpload{
		Filename:    header.Filename,
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

func attachmentView(att *services.Attachment) gin.H {
	if att == nil {
		return nil
	}
	return gin.H{"id": att.ImageID, "reused": att.Reused}
}

// imageView is the public face of an image record. Hash, owner and asset id
// stay server-side.
func imageView(image *models.Image) gin.H {
	return gin.H{"id": image.ID, "url": image.URL, "uploaded": image.Uploaded()}
}
