package aiornot

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes() []byte {
	return append([]byte{0xff, 0xd8, 0xff, 0xe0}, []byte("fake jpeg body")...)
}

func TestDetectFormat(t *testing.T) {
	ext, mime := DetectFormat([]byte{0xff, 0xd8, 0x00})
	assert.Equal(t, "jpg", ext)
	assert.Equal(t, "image/jpeg", mime)

	ext, mime = DetectFormat([]byte("\x89PNG\r\n"))
	assert.Equal(t, "png", ext)
	assert.Equal(t, "image/png", mime)

	ext, _ = DetectFormat([]byte("RIFFxxxxWEBP"))
	assert.Equal(t, "webp", ext)

	ext, _ = DetectFormat([]byte("GIF89a..."))
	assert.Equal(t, "gif", ext)

	// Unknown data falls back to PNG.
	ext, mime = DetectFormat([]byte("mystery"))
	assert.Equal(t, "png", ext)
	assert.Equal(t, "image/png", mime)
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage(jpegBytes()))
	assert.True(t, IsSupportedImage([]byte("\x89PNGdata")))
	assert.True(t, IsSupportedImage([]byte("RIFFxxxxWEBP")))
	assert.True(t, IsSupportedImage([]byte("GIF87adata")))
	assert.False(t, IsSupportedImage([]byte("BM bitmap")))
	assert.False(t, IsSupportedImage([]byte{}))
}

func TestInspect_SendsMultipartWithBearerAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/reports/image", r.URL.Path)
		assert.Equal(t, "Bearer classifier-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(32<<20))
		file, header, err := r.FormFile("object")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "image.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, jpegBytes(), data)

		_, _ = w.Write([]byte(`{"report": {"ai": {"is_detected": true, "confidence": 0.92}}}`))
	}))
	defer ts.Close()

	c := NewClient("classifier-key")
	c.baseURL = ts.URL

	res, err := c.Inspect(context.Background(), jpegBytes())
	require.NoError(t, err)
	assert.Equal(t, "ai", res.Verdict)
	assert.Equal(t, 0.92, res.AIConfidence)
	assert.True(t, res.IsAIGenerated)
}

func TestInspect_RejectsOversizedImage(t *testing.T) {
	c := NewClient("key")
	_, err := c.Inspect(context.Background(), make([]byte, MaxImageBytes+1))
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Contains(t, apiErr.Message, "too large")
}

func TestInspect_MapsStatusCodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "bad key"}`))
	}))
	defer ts.Close()

	c := NewClient("key")
	c.baseURL = ts.URL

	_, err := c.Inspect(context.Background(), jpegBytes())
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "unauthorized")
	assert.Contains(t, apiErr.Message, "bad key")
}

func TestInspect_UnknownStatusCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer ts.Close()

	c := NewClient("key")
	c.baseURL = ts.URL

	_, err := c.Inspect(context.Background(), jpegBytes())
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Contains(t, apiErr.Message, "418")
}

func TestInspect_NonJSONResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer ts.Close()

	c := NewClient("key")
	c.baseURL = ts.URL

	_, err := c.Inspect(context.Background(), jpegBytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestInspect_ConnectionFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c := NewClient("key")
	c.baseURL = ts.URL

	_, err := c.Inspect(context.Background(), jpegBytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
