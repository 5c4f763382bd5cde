package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore writes assets under a local directory that is served over HTTP
// at baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *DiskStore) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid asset key %q", key)
	}
	return filepath.Join(d.dir, filepath.FromSlash(clean)), nil
}

func (d *DiskStore) Upload(ctx context.Context, obj Object) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strings.TrimPrefix(path.Clean("/"+objectKey(obj)), "/")
	full, err := d.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create asset folder: %w", err)
	}
	if err := os.WriteFile(full, obj.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write asset: %w", err)
	}
	return &Asset{URL: d.baseURL + "/" + key, PublicID: key}, nil
}

func (d *DiskStore) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := d.resolve(publicID)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}
