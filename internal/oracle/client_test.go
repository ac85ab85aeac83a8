package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(Config{
		APIKey:       "test-key",
		BaseURL:      url,
		ChatModel:    "gpt-4o-mini",
		WhisperModel: "whisper-1",
	})
}

func TestComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 0.1, req.Temperature)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ai_score\": 10}"}}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	reply, err := c.Complete(context.Background(), []Message{TextMessage("user", "analyze this")})
	require.NoError(t, err)
	assert.Equal(t, `{"ai_score": 10}`, reply)
}

func TestComplete_AuthFailureIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.Complete(context.Background(), []Message{TextMessage("user", "hi")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestComplete_ConnectionFailureIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused

	c := newTestClient(ts.URL)
	_, err := c.Complete(context.Background(), []Message{TextMessage("user", "hi")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestComplete_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.Complete(context.Background(), []Message{TextMessage("user", "hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}

func TestComplete_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(ts.URL)
	_, err := c.Complete(ctx, []Message{TextMessage("user", "hi")})
	require.Error(t, err)
}

func TestVisionMessage_EncodesDataURL(t *testing.T) {
	msg := VisionMessage("describe", []byte{0xff, 0xd8, 0x01}, "image/jpeg")
	parts, ok := msg.Content.([]ContentPart)
	require.True(t, ok)
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0].Type)
	assert.Equal(t, "describe", parts[0].Text)
	require.NotNil(t, parts[1].ImageURL)
	assert.Contains(t, parts[1].ImageURL.URL, "data:image/jpeg;base64,")
}

func TestTranscribe_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "speech.wav", header.Filename)

		_, _ = w.Write([]byte(`{"text": "hello there"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	transcript, err := c.Transcribe(context.Background(), "speech.wav", []byte("RIFFfakewav"))
	require.NoError(t, err)
	assert.Equal(t, "hello there", transcript)
}

func TestTranscribe_ServerErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.Transcribe(context.Background(), "speech.wav", []byte("data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
