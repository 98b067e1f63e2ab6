package wordgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	return `{"choices": [{"message": {"role": "assistant", "content": ` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestChatClient_SendsChatCompletionRequest(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-v2", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "判断这些组合", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("[]")))
	}))
	defer srv.Close()

	client := NewChatClient(ClientConfig{
		BaseURL: srv.URL,
		Model:   "deepseek-v2",
		APIKeys: []string{"sk-one", "sk-two"},
		Timeout: 5 * time.Second,
	}, nil)

	for i := 0; i < 3; i++ {
		text, err := client.Complete(context.Background(), "判断这些组合")
		require.NoError(t, err)
		assert.Equal(t, "[]", text)
	}

	// keys rotate round-robin across calls
	assert.Equal(t, []string{"Bearer sk-one", "Bearer sk-two", "Bearer sk-one"}, gotAuth)
}

func TestChatClient_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewChatClient(ClientConfig{BaseURL: srv.URL, Model: "m", APIKeys: []string{"k"}}, nil)
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestChatClient_EmptyChoicesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := NewChatClient(ClientConfig{BaseURL: srv.URL, Model: "m", APIKeys: []string{"k"}}, nil)
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
}

func TestChatClient_ReportsToObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("ok")))
	}))
	defer srv.Close()

	var events []CallEvent
	obs := observerFunc(func(e CallEvent) { events = append(events, e) })
	client := NewChatClient(ClientConfig{BaseURL: srv.URL, Model: "m", APIKeys: []string{"k"}}, obs)

	_, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)

	srv.Close()
	_, err = client.Complete(context.Background(), "p")
	require.Error(t, err)

	require.Len(t, events, 2)
	assert.True(t, events[0].Success)
	assert.Equal(t, "m", events[0].Model)
	assert.False(t, events[1].Success)
	assert.NotEmpty(t, events[1].ErrorCode)
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }
