// Package assets stores uploaded image bytes in a remote (or local) object
// store and hands back a public URL plus the identifier needed to delete it.
package assets

import (
	"context"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultTransformation caps images at 2048x2048 and keeps the best quality.
const DefaultTransformation = "c_limit,w_2048,h_2048,q_auto:best"

type Object struct {
	Folder         string
	PublicID       string
	Filename       string
	ContentType    string
	Transformation string
	Data           []byte
}

type Asset struct {
	URL      string
	PublicID string
}

type Store interface {
	Upload(ctx context.Context, obj Object) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// PublicID builds an asset identifier from the upload's file name and time,
// e.g. "my photo.png" -> "my_photo_1700000000000".
func PublicID(filename string, at time.Time) string {
	stem := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, `\`, "/")), path.Ext(filename))
	stem = strings.Trim(unsafeChars.ReplaceAllString(stem, "_"), "_")
	if stem == "" || stem == "." {
		stem = "image"
	}
	return stem + "_" + strconv.FormatInt(at.UnixMilli(), 10)
}

// Extension picks a file extension from the sniffed content type, falling
// back to the name when the type is unknown or has no extension.
func Extension(filename, contentType string) string {
	if mt := mimetype.Lookup(contentType); mt != nil && mt.Extension() != "" {
		return mt.Extension()
	}
	return strings.ToLower(path.Ext(filename))
}

func objectKey(obj Object) string {
	return path.Join(obj.Folder, obj.PublicID) + Extension(obj.Filename, obj.ContentType)
}
