package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/state244/hub/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.AIConfig{
		BaseURL:    srv.URL + "/v1/",
		APIKey:     "sk-test",
		TextModel:  "text-model",
		ImageModel: "image-model",
		Timeout:    5 * time.Second,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(config.AIConfig{BaseURL: "http://x"}, zaptest.NewLogger(t))
	assert.Error(t, err)

	_, err = NewClient(config.AIConfig{APIKey: "k"}, zaptest.NewLogger(t))
	assert.Error(t, err)

	c, err := NewClient(config.AIConfig{APIKey: "k", BaseURL: "http://x"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, defaultImageSize, c.imageSize)
	assert.Equal(t, defaultMaxTokens, c.maxTokens)
}

func TestClient_GenerateText(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Join WOLF today!  "}}],"usage":{"total_tokens":42}}`))
	})

	text, err := c.GenerateText(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "Join WOLF today!", text)

	assert.Equal(t, "text-model", got["model"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user prompt", msgs[1].(map[string]any)["content"])
}

func TestClient_GenerateText_Errors(t *testing.T) {
	t.Run("provider error message is surfaced", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
		})
		_, err := c.GenerateText(context.Background(), "s", "p")
		require.ErrorIs(t, err, ErrProviderRequest)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("empty content", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})
		_, err := c.GenerateText(context.Background(), "s", "p")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestClient_GenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{
				"b64_json":       base64.StdEncoding.EncodeToString(png),
				"revised_prompt": "a frozen city",
			}},
		})
	})

	res, err := c.GenerateImage(context.Background(), "frozen city")
	require.NoError(t, err)
	assert.Equal(t, png, res.PNG)
	assert.Equal(t, "image-model", res.Model)
	assert.Equal(t, "a frozen city", res.RevisedPrompt)
	assert.Equal(t, defaultImageSize, res.Size)
	assert.Equal(t, "b64_json", got["response_format"])
}

func TestClient_GenerateImage_BadPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"not base64!"}]}`))
	})
	_, err := c.GenerateImage(context.Background(), "frozen city")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
