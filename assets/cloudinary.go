package assets

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const cloudinaryAPI = "https://api.cloudinary.com/v1_1"

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
}

// CloudinaryStore talks to the Cloudinary upload REST API with signed
// requests.
type CloudinaryStore struct {
	cfg    CloudinaryConfig
	client *resty.Client
	now    func() time.Time
}

type cloudinaryUploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
}

type cloudinaryErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not set")
	}
	base := cfg.BaseURL
	if base == "" {
		base = cloudinaryAPI
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")+"/"+cfg.CloudName).
		SetHeader("Accept", "application/json").
		SetTimeout(60 * time.Second)
	return &CloudinaryStore{cfg: cfg, client: client, now: time.Now}, nil
}

// sign implements Cloudinary's request signature: the parameters sorted by
// name, joined as k=v pairs with '&', the API secret appended, then SHA-1.
func (c *CloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

func (c *CloudinaryStore) signedForm(params map[string]string) map[string]string {
	params["timestamp"] = strconv.FormatInt(c.now().Unix(), 10)
	signature := c.sign(params)
	params["api_key"] = c.cfg.APIKey
	params["signature"] = signature
	return params
}

func (c *CloudinaryStore) Upload(ctx context.Context, obj Object) (*Asset, error) {
	params := map[string]string{
		"folder":    obj.Folder,
		"public_id": obj.PublicID,
	}
	if obj.Transformation != "" {
		params["transformation"] = obj.Transformation
	}

	var out cloudinaryUploadResponse
	var apiErr cloudinaryErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.signedForm(params)).
		SetFileReader("file", obj.Filename, bytes.NewReader(obj.Data)).
		SetResult(&out).
		SetError(&apiErr).
		Post("/image/upload")
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cloudinary upload failed with status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}

	url := out.SecureURL
	if url == "" {
		url = out.URL
	}
	if url == "" || out.PublicID == "" {
		return nil, fmt.Errorf("cloudinary upload returned no location: %s", string(resp.Body()))
	}
	return &Asset{URL: url, PublicID: out.PublicID}, nil
}

func (c *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	var out cloudinaryDestroyResponse
	var apiErr cloudinaryErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.signedForm(map[string]string{"public_id": publicID})).
		SetResult(&out).
		SetError(&apiErr).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("cloudinary destroy failed with status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, out.Result)
	}
	return nil
}
