package initializers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kariqs/farmkart-api/assets"
)

// UploadsPath is where the disk asset store is served from.
const UploadsPath = "/uploads"

func NewAssetStore(ctx context.Context, cfg AssetConfig) (assets.Store, error) {
	switch cfg.Store {
	case "disk":
		return assets.NewDiskStore(cfg.UploadDir, strings.TrimRight(cfg.PublicBaseURL, "/")+UploadsPath)
	case "s3":
		return assets.NewS3Store(ctx, cfg.S3Bucket, cfg.S3PublicRead)
	case "cloudinary":
		return assets.NewCloudinaryStore(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unsupported ASSET_STORE %q", cfg.Store)
	}
}
