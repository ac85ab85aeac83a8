// Package aiornot is the client for the AI or Not image classifier, a
// specialized ML service that judges whether an image is AI-generated
// and reports auxiliary detections (generator, deepfake, NSFW, quality).
package aiornot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// MaxImageBytes is the classifier's upload limit.
const MaxImageBytes = 10 << 20

// APIError reports a failed classifier call.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("aiornot: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("aiornot: %s", e.Message)
}

// statusMessages maps classifier HTTP statuses to actionable messages.
var statusMessages = map[int]string{
	400: "bad request - invalid image format or data",
	401: "unauthorized - invalid or missing API key",
	402: "payment required - API quota exceeded",
	403: "forbidden - API access denied",
	404: "not found - API endpoint unavailable",
	413: "image too large",
	429: "rate limit exceeded - too many requests",
	500: "AI or Not API server error",
	502: "AI or Not API gateway error",
	503: "AI or Not API temporarily unavailable",
}

// Client talks to the AI or Not reports endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a classifier client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.aiornot.com/v1",
		// Large images can take a while to classify.
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// DetectFormat sniffs an image container from its magic bytes. Unknown
// data defaults to PNG, matching what the classifier accepts most
// leniently.
func DetectFormat(data []byte) (ext, mimeType string) {
	switch {
	case len(data) >= 2 && data[0] == 0xff && data[1] == 0xd8:
		return "jpg", "image/jpeg"
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("\x89PNG")):
		return "png", "image/png"
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("RIFF")):
		return "webp", "image/webp"
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "gif", "image/gif"
	default:
		return "png", "image/png"
	}
}

// IsSupportedImage reports whether the data carries one of the container
// signatures the analysis pipeline accepts (JPEG, PNG, WebP, GIF).
func IsSupportedImage(data []byte) bool {
	switch {
	case len(data) >= 2 && data[0] == 0xff && data[1] == 0xd8:
		return true
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("\x89PNG")):
		return true
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("RIFF")):
		return true
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return true
	default:
		return false
	}
}

// Inspect uploads image bytes for classification and returns the parsed
// verdict. The endpoint requires multipart/form-data with the image under
// the "object" field and bearer-token auth.
func (c *Client) Inspect(ctx context.Context, image []byte) (*Result, error) {
	if len(image) > MaxImageBytes {
		return nil, &APIError{Message: fmt.Sprintf("image too large: %d bytes (max %d)", len(image), MaxImageBytes)}
	}

	ext, mimeType := DetectFormat(image)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := createImagePart(writer, fmt.Sprintf("image.%s", ext), mimeType)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to build multipart body: %v", err)}
	}
	if _, err := part.Write(image); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to write image payload: %v", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to finalize multipart body: %v", err)}
	}

	url := fmt.Sprintf("%s/reports/image", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	// Content-Type must come from the multipart writer so the boundary
	// matches the body.
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to connect: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to read response: %v", err), StatusCode: resp.StatusCode}
	}

	if resp.StatusCode != http.StatusOK {
		message, ok := statusMessages[resp.StatusCode]
		if !ok {
			message = fmt.Sprintf("API returned status code %d", resp.StatusCode)
		}
		if detail := errorDetail(body); detail != "" {
			message = fmt.Sprintf("%s: %s", message, detail)
		}
		return nil, &APIError{Message: message, StatusCode: resp.StatusCode}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		preview := string(body)
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return nil, &APIError{Message: fmt.Sprintf("failed to parse API response as JSON: %s", preview)}
	}

	return parseReport(data), nil
}

func createImagePart(writer *multipart.Writer, filename, mimeType string) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="object"; filename="%s"`, filename))
	header.Set("Content-Type", mimeType)
	return writer.CreatePart(header)
}

// errorDetail pulls a human-readable detail out of an error body, trying
// the field names the API has used across versions.
func errorDetail(body []byte) string {
	var errBody map[string]any
	if err := json.Unmarshal(body, &errBody); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "message", "error"} {
		if s, ok := errBody[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
