package deepseek

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iconidentify/postcraft/internal/config"
)

func newTestClient(url, apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      "deepseek-chat",
		baseURL:    url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestNewClient(t *testing.T) {
	cfg := config.DeepSeekConfig{
		APIKey:  "test-key",
		BaseURL: "https://api.deepseek.com/v1/",
		Model:   "deepseek-chat",
		Timeout: 30 * time.Second,
	}

	client := NewClient(cfg)

	if client.apiKey != "test-key" {
		t.Errorf("apiKey = %q, want %q", client.apiKey, "test-key")
	}
	if client.baseURL != "https://api.deepseek.com/v1" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", client.baseURL)
	}
	if client.model != "deepseek-chat" {
		t.Errorf("model = %q, want %q", client.model, "deepseek-chat")
	}
	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, 30*time.Second)
	}
}

func TestClient_Complete_Success(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing or wrong Authorization header: %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "hello there"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	content, err := client.Complete(context.Background(), CompletionRequest{
		System:    "You are terse.",
		User:      "Say hello",
		MaxTokens: 1000,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != "hello there" {
		t.Errorf("content = %q, want %q", content, "hello there")
	}

	if got.Model != "deepseek-chat" {
		t.Errorf("model = %q, want deepseek-chat", got.Model)
	}
	if got.MaxTokens != 1000 {
		t.Errorf("max_tokens = %d, want 1000", got.MaxTokens)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != "You are terse." {
		t.Errorf("system message = %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "Say hello" {
		t.Errorf("user message = %+v", got.Messages[1])
	}
}

func TestClient_Complete_RequestKeyOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer request-key" {
			t.Errorf("Authorization = %q, want request key", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "config-key")

	if _, err := client.Complete(context.Background(), CompletionRequest{User: "x", APIKey: "request-key"}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestClient_Complete_MissingKey(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", "")

	_, err := client.Complete(context.Background(), CompletionRequest{User: "x"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    "internal server error",
			wantErr: "status 500",
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"bad key"}}`,
			wantErr: "status 401",
		},
		{
			name:    "error object",
			status:  http.StatusOK,
			body:    `{"error":{"message":"quota exceeded","type":"billing"}}`,
			wantErr: "quota exceeded",
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    "not json",
			wantErr: "unmarshal response",
		},
		{
			name:    "empty choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "No response from AI",
		},
		{
			name:    "missing choices",
			status:  http.StatusOK,
			body:    `{"id":"abc"}`,
			wantErr: "No response from AI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL, "test-key")

			_, err := client.Complete(context.Background(), CompletionRequest{User: "x"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestClient_Complete_NoChoicesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.Complete(context.Background(), CompletionRequest{User: "x"})
	if !errors.Is(err, ErrNoChoices) {
		t.Errorf("err = %v, want ErrNoChoices", err)
	}
}

func TestClient_Complete_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, CompletionRequest{User: "x"})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestClient_Complete_NetworkError(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", "test-key")
	client.httpClient.Timeout = time.Second

	_, err := client.Complete(context.Background(), CompletionRequest{User: "x"})
	if err == nil {
		t.Fatal("expected network error")
	}
	if !strings.Contains(err.Error(), "send request") {
		t.Errorf("error = %q, want send request context", err.Error())
	}
}
