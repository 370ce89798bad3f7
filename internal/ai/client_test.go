package ai

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

func TestGenerateTextReturnsReply(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Work, Travel"}},
			},
		})
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("sk-test", srv.URL)
	reply, err := client.GenerateText(context.Background(), "suggest tags", "gpt-4o-mini")

	require.NoError(t, err)
	assert.Equal(t, "Work, Travel", reply)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "suggest tags", gotReq.Messages[0].Content)
}

func TestGenerateTextNonOKStatusIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("bad-key", srv.URL)
	_, err := client.GenerateText(context.Background(), "p", "m")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Message, "invalid api key")
}

func TestGenerateTextMalformedBodyIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	_, err := client.GenerateText(context.Background(), "p", "m")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestGenerateTextEmptyChoicesIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	_, err := client.GenerateText(context.Background(), "p", "m")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "no choices")
}

func TestGenerateTextTransportFailureIsAPIError(t *testing.T) {
	client := NewClientWithBaseURL("k", "http://127.0.0.1:1")
	_, err := client.GenerateText(context.Background(), "p", "m")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestListModelIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o"}, {"id": "whisper-1"}]}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	ids, err := client.ListModelIDs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "whisper-1"}, ids)
}

func TestListModelIDsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClientWithBaseURL("k", srv.URL)
	_, err := client.ListModelIDs(ctx)

	require.Error(t, err)
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
}
