package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/Kariqs/farmkart-api/assets"
	"github.com/Kariqs/farmkart-api/models"
)

type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadResult is what a background upload ended with.
type UploadResult struct {
	ImageID  uint
	URL      string
	PublicID string
	Err      error
}

// Attachment identifies the image an upload resolved to. Done delivers one
// result and is then closed; for a reused image it is already settled.
type Attachment struct {
	ImageID uint
	Reused  bool
	Done    <-chan UploadResult
}

type ImagesConfig struct {
	Folder        string
	Timeout       time.Duration
	MaxConcurrent int
	PollInterval  time.Duration
}

// Images de-duplicates uploads per uploader by content hash and pushes new
// images to the asset store in the background.
type Images struct {
	store  ImageStore
	assets assets.Store
	cfg    ImagesConfig
	now    func() time.Time

	sem    chan struct{}
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewImages(store ImageStore, assetStore assets.Store, cfg ImagesConfig) *Images {
	if cfg.Folder == "" {
		cfg.Folder = "farmkart"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	return &Images{
		store:  store,
		assets: assetStore,
		cfg:    cfg,
		now:    time.Now,
		sem:    make(chan struct{}, cfg.MaxConcurrent),
	}
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func settled(result UploadResult) <-chan UploadResult {
	done := make(chan UploadResult, 1)
	done <- result
	close(done)
	return done
}

// AttachImage resolves upload to an image record owned by uploaderID. An
// identical earlier upload by the same user is reused; otherwise a record
// without a location is created and the upload runs in the background.
// Releasing whatever image this one replaces is up to the caller, once the
// new reference is stored.
func (s *Images) AttachImage(ctx context.Context, uploaderID uint, upload ImageUpload) (*Attachment, error) {
	if uploaderID == 0 {
		return nil, invalid("uploader is required")
	}
	if len(upload.Data) == 0 {
		return nil, invalid("image is empty")
	}
	hash := contentHash(upload.Data)

	existing, err := s.store.FindImageByHash(ctx, uploaderID, hash)
	switch {
	case err == nil:
		result := UploadResult{ImageID: existing.ID}
		if existing.URL != nil {
			result.URL = *existing.URL
		}
		if existing.PublicID != nil {
			result.PublicID = *existing.PublicID
		}
		return &Attachment{ImageID: existing.ID, Reused: true, Done: settled(result)}, nil
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	if err := s.track(); err != nil {
		return nil, err
	}
	image := &models.Image{UserID: uploaderID, Hash: hash}
	if err := s.store.CreateImage(ctx, image); err != nil {
		s.wg.Done()
		return nil, err
	}

	done := make(chan UploadResult, 1)
	go s.runUpload(image.ID, uploaderID, upload, done)

	return &Attachment{ImageID: image.ID, Done: done}, nil
}

// track registers an upload with the shutdown wait group.
func (s *Images) track() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: image uploads are shut down", models.ErrStorage)
	}
	s.wg.Add(1)
	return nil
}

func (s *Images) runUpload(imageID, uploaderID uint, upload ImageUpload, done chan<- UploadResult) {
	defer s.wg.Done()
	defer close(done)

	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()
	done <- s.upload(ctx, imageID, uploaderID, upload)
}

func (s *Images) upload(ctx context.Context, imageID, uploaderID uint, upload ImageUpload) UploadResult {
	result := UploadResult{ImageID: imageID}

	asset, err := s.assets.Upload(ctx, assets.Object{
		Folder:         s.cfg.Folder + "/" + strconv.FormatUint(uint64(uploaderID), 10),
		PublicID:       assets.PublicID(upload.Filename, s.now()),
		Filename:       upload.Filename,
		ContentType:    upload.ContentType,
		Transformation: assets.DefaultTransformation,
		Data:           upload.Data,
	})
	if err != nil {
		log.Printf("Image %d upload failed, record kept without a URL: %v", imageID, err)
		result.Err = fmt.Errorf("%w: upload image %d: %w", models.ErrStorage, imageID, err)
		return result
	}

	found, err := s.store.SetImageLocation(ctx, imageID, asset.URL, asset.PublicID)
	if err != nil {
		log.Printf("Image %d uploaded as %s but the record could not be updated: %v", imageID, asset.PublicID, err)
		result.Err = err
		return result
	}
	if !found {
		log.Printf("Image %d was deleted during upload, removing asset %s", imageID, asset.PublicID)
		if err := s.assets.Delete(ctx, asset.PublicID); err != nil {
			log.Printf("Orphaned asset %s left behind: %v", asset.PublicID, err)
		}
		result.Err = fmt.Errorf("%w: image %d", models.ErrNotFound, imageID)
		return result
	}

	result.URL = asset.URL
	result.PublicID = asset.PublicID
	return result
}

// Release deletes an image that no product references any more.
func (s *Images) Release(ctx context.Context, imageID uint) {
	refs, err := s.store.CountImageReferences(ctx, imageID)
	if err != nil {
		log.Printf("Unable to check references to image %d, keeping it: %v", imageID, err)
		return
	}
	if refs > 0 {
		return
	}
	s.deleteImage(ctx, imageID)
}

// deleteImage removes the remote asset and then the record. Both steps are
// best-effort; whatever is left behind is logged.
func (s *Images) deleteImage(ctx context.Context, imageID uint) {
	image, err := s.store.FindImage(ctx, imageID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("Unable to load image %d for deletion: %v", imageID, err)
		}
		return
	}
	if image.PublicID != nil && *image.PublicID != "" {
		if err := s.assets.Delete(ctx, *image.PublicID); err != nil {
			log.Printf("Unable to delete asset %s of image %d: %v", *image.PublicID, imageID, err)
		}
	}
	if err := s.store.DeleteImage(ctx, imageID); err != nil {
		log.Printf("Unable to delete image record %d: %v", imageID, err)
	}
}

func (s *Images) Status(ctx context.Context, imageID uint) (*models.Image, error) {
	return s.store.FindImage(ctx, imageID)
}

// Wait polls the image until its upload has produced a URL or ctx ends.
func (s *Images) Wait(ctx context.Context, imageID uint) (*models.Image, error) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		image, err := s.store.FindImage(ctx, imageID)
		if err != nil {
			return nil, err
		}
		if image.Uploaded() {
			return image, nil
		}
		select {
		case <-ctx.Done():
			return image, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close stops accepting new uploads and waits for running ones to finish.
func (s *Images) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for image uploads: %w", ctx.Err())
	}
}
