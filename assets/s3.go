package assets

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps assets in an S3 bucket. Images are stored as uploaded; the
// requested transformation is kept in the object metadata.
type S3Store struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	publicRead bool
}

func NewS3Store(ctx context.Context, bucket string, publicRead bool) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     bucket,
		publicRead: publicRead,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, obj Object) (*Asset, error) {
	key := objectKey(obj)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Transformation != "" {
		input.Metadata = map[string]string{"transformation": obj.Transformation}
	}
	if s.publicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	result, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("upload %s to s3: %w", key, err)
	}
	return &Asset{URL: result.Location, PublicID: key}, nil
}

func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("delete %s from s3: %w", publicID, err)
	}
	return nil
}
