package assets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCloudinary(t *testing.T, handler http.HandlerFunc) *CloudinaryStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store, err := NewCloudinaryStore(CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "abcd",
		BaseURL:   srv.URL,
	})
	require.NoError(t, err)
	store.now = func() time.Time { return time.Unix(1315060510, 0) }
	return store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCloudinarySignature(t *testing.T) {
	store := &CloudinaryStore{cfg: CloudinaryConfig{APISecret: "abcd"}}
	got := store.sign(map[string]string{
		"eager":     "w_400,h_300,c_pad|w_260,h_200,c_crop",
		"public_id": "sample_image",
		"timestamp": "1315060510",
	})
	assert.Equal(t, "bfd09f95f331f558cbd1320e67aa8d488770583e", got)
}

func TestCloudinaryUpload(t *testing.T) {
	store := testCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "farmkart/3", r.FormValue("folder"))
		assert.Equal(t, "kale_1", r.FormValue("public_id"))
		assert.Equal(t, DefaultTransformation, r.FormValue("transformation"))
		assert.Equal(t, "1315060510", r.FormValue("timestamp"))
		assert.Equal(t, "key123", r.FormValue("api_key"))
		assert.Len(t, r.FormValue("signature"), 40)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "kale.png", header.Filename)
		assert.Equal(t, "png bytes", string(body))

		writeJSON(w, http.StatusOK, map[string]string{
			"public_id":  "farmkart/3/kale_1",
			"secure_url": "https://res.cloudinary.com/demo/image/upload/farmkart/3/kale_1.png",
		})
	})

	asset, err := store.Upload(context.Background(), Object{
		Folder:         "farmkart/3",
		PublicID:       "kale_1",
		Filename:       "kale.png",
		Transformation: DefaultTransformation,
		Data:           []byte("png bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "farmkart/3/kale_1", asset.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/farmkart/3/kale_1.png", asset.URL)
}

func TestCloudinaryUploadError(t *testing.T) {
	store := testCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]string{"message": "Invalid Signature"}})
	})
	_, err := store.Upload(context.Background(), Object{Filename: "a.png", Data: []byte("a")})
	assert.ErrorContains(t, err, "Invalid Signature")
}

func TestCloudinaryDelete(t *testing.T) {
	results := map[string]string{"gone": "ok", "never": "not found", "stuck": "error"}
	store := testCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())
		writeJSON(w, http.StatusOK, map[string]string{"result": results[r.FormValue("public_id")]})
	})

	ctx := context.Background()
	assert.NoError(t, store.Delete(ctx, "gone"))
	assert.NoError(t, store.Delete(ctx, "never"))
	assert.Error(t, store.Delete(ctx, "stuck"))
}

func TestCloudinaryRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryStore(CloudinaryConfig{CloudName: "demo"})
	assert.Error(t, err)
}
