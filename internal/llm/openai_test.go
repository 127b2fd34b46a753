package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sant0-9/legalgen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(url, key string) *OpenAIProvider {
	return NewOpenAIProvider(OpenAIConfig{
		Name:    "openrouter",
		APIKey:  key,
		BaseURL: url,
		Model:   "deepseek/deepseek-chat:free",
		Title:   "Legal Document Generator",
	}, quietLogger())
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got openAIRequest
	var header http.Header
	var path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		header = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  Hello.  "},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL+"/", "sk-test")
	resp, err := p.Complete(context.Background(), NewRequest("", "You are a legal document assistant.", "Generate a X"))
	require.NoError(t, err)

	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "Bearer sk-test", header.Get("Authorization"))
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "Legal Document Generator", header.Get("X-Title"))
	assert.Equal(t, "no-cache", header.Get("Cache-Control"))
	assert.Empty(t, header.Get("HTTP-Referer"))

	assert.Equal(t, "deepseek/deepseek-chat:free", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openAIMessage{Role: "system", Content: "You are a legal document assistant."}, got.Messages[0])
	assert.Equal(t, openAIMessage{Role: "user", Content: "Generate a X"}, got.Messages[1])

	assert.Equal(t, "  Hello.  ", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 5, resp.Usage.TotalTokens)
}

func TestCompleteRequestModelOverrides(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL, "k")
	resp, err := p.Complete(context.Background(), NewRequest("openai/gpt-4o-mini", "s", "u"))
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", got.Model)
	assert.Equal(t, "openai/gpt-4o-mini", resp.Model)
}

func TestCompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"upstream exploded"}}`)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL, "k").Complete(context.Background(), NewRequest("", "s", "u"))
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, se.Error(), "upstream exploded")
	assert.Contains(t, se.Error(), "status 500")
}

func TestCompleteMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway</html>"},
		{"no choices", `{"choices":[]}`},
		{"missing choices", `{"id":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestProvider(srv.URL, "k").Complete(context.Background(), NewRequest("", "s", "u"))
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestCompleteMissingKeyMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL, "").Complete(context.Background(), NewRequest("", "s", "u"))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestCompleteSingleAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL, "k").Complete(context.Background(), NewRequest("", "s", "u"))
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCompleteConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestProvider(url, "k").Complete(context.Background(), NewRequest("", "s", "u"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter request failed")
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, quietLogger())
	_, err := p.Complete(context.Background(), NewRequest("", "s", "u"))
	require.Error(t, err)
}

func TestNewOpenAIProviderDefaults(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{}, nil)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o-mini", p.Model())
	assert.Equal(t, "https://api.openai.com/v1", p.baseURL)
	assert.Equal(t, 5*time.Minute, p.httpClient.Timeout)
}

func TestNewProviderFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIKey = "sk"
	cfg.Referer = "https://example.test"

	p, err := NewProvider(cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())

	op := p.(*OpenAIProvider)
	assert.Equal(t, "https://openrouter.ai/api/v1", op.baseURL)
	assert.Equal(t, "deepseek/deepseek-chat:free", op.Model())
	assert.Equal(t, "https://example.test", op.referer)
	assert.Equal(t, config.DefaultTimeout, op.httpClient.Timeout)
}

func TestNewProviderErrors(t *testing.T) {
	_, err := NewProvider(&config.Config{Provider: "anthropic"}, nil)
	assert.Error(t, err)

	_, err = NewProvider(&config.Config{Provider: "custom", Model: "m"}, nil)
	assert.Error(t, err)

	_, err = NewProvider(&config.Config{Provider: "custom", BaseURL: "http://localhost:8000/v1"}, nil)
	assert.Error(t, err)

	p, err := NewProvider(&config.Config{Provider: "custom", BaseURL: "http://localhost:8000/v1", Model: "m"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Name())
}
