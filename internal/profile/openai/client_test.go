package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteReturnsFirstChoice(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "## Your Destiny"}},
			},
		})
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: upstream.URL}, zerolog.Nop())

	text, err := client.Complete(context.Background(), "persona", "answers")
	require.NoError(t, err)
	assert.Equal(t, "## Your Destiny", text)
}

func TestCompleteErrorsWithoutAPIKey(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())
	_, err := client.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestCompleteErrorsOnUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: upstream.URL}, zerolog.Nop())
	_, err := client.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestCompleteErrorsOnEmptyChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: upstream.URL}, zerolog.Nop())
	_, err := client.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}
