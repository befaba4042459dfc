package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, SystemPrompt, req.System)
		require.Len(t, req.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"{\"results\":[]}"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "test-key", BaseUrl: srv.URL})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	text, err := client.Complete(ctx, SystemPrompt, "list platforms")
	require.NoError(t, err)
	require.Equal(t, `{"results":[]}`, text)
}

func TestCompleteApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "test-key", BaseUrl: srv.URL})

	_, err := client.Complete(context.Background(), SystemPrompt, "list platforms")
	require.Error(t, err)
}

func TestPromptForCategoryAim(t *testing.T) {
	prompt := PromptFor("Affiliate Marketing", "2025-01-01")
	require.Contains(t, prompt, `category "Affiliate Marketing"`)
	require.Contains(t, prompt, `"crawled_at": "2025-01-01"`)
	require.False(t, strings.Contains(prompt, "%!"))
}

func TestPromptForRankWindow(t *testing.T) {
	prompt := PromptFor(AimPopular, "2025-01-01")
	require.Contains(t, prompt, "in rank ")
	require.False(t, strings.Contains(prompt, "%!"))
}
