package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/config"
	"github.com/sant0-9/legalgen/internal/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ndaRequestFile = `
document_type: Non-Disclosure Agreement
language: English
fields:
  Party One Name: Acme Corp
  Party Two Name: Jane Doe
  Effective Date: 2025-03-05
  Confidential Information: Source code
`

func TestRunBatch(t *testing.T) {
	tests := []struct {
		name       string
		request    string
		apiKey     string
		status     int
		body       string
		wantCode   int
		wantStdout string
		wantStderr string
		wantCalls  int
	}{
		{
			name:       "success",
			request:    ndaRequestFile,
			apiKey:     "sk-test",
			status:     http.StatusOK,
			body:       `{"choices":[{"message":{"content":"  NON-DISCLOSURE AGREEMENT  "}}]}`,
			wantCode:   exitOK,
			wantStdout: "NON-DISCLOSURE AGREEMENT\n",
			wantStderr: writer.SuccessNotice,
			wantCalls:  1,
		},
		{
			name:       "endpoint error",
			request:    ndaRequestFile,
			apiKey:     "sk-test",
			status:     http.StatusTooManyRequests,
			body:       `{"error":"rate limited"}`,
			wantCode:   exitFailed,
			wantStderr: writer.FailureNotice,
			wantCalls:  1,
		},
		{
			name:       "empty completion",
			request:    ndaRequestFile,
			apiKey:     "sk-test",
			status:     http.StatusOK,
			body:       `{"choices":[{"message":{"content":"   "}}]}`,
			wantCode:   exitFailed,
			wantStderr: writer.FailureNotice,
			wantCalls:  1,
		},
		{
			name:       "missing key",
			request:    ndaRequestFile,
			wantCode:   exitFailed,
			wantStderr: "missing API key",
		},
		{
			name:       "bad request file",
			request:    "document_type: Will\nfields: {}\n",
			apiKey:     "sk-test",
			wantCode:   exitBadRequest,
			wantStderr: "unknown document type",
		},
		{
			name: "invalid amount",
			request: `
document_type: Employment Contract
fields:
  Employee Name: Jane
  Employer Name: Acme
  Job Title: Engineer
  Start Date: 2025-06-01
  Salary: lots
`,
			apiKey:     "sk-test",
			wantCode:   exitBadRequest,
			wantStderr: "Salary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				assert.Equal(t, "/chat/completions", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			path := filepath.Join(t.TempDir(), "request.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.request), 0644))

			cfg := &config.Config{
				Provider: "openrouter",
				APIKey:   tt.apiKey,
				Model:    "deepseek/deepseek-chat:free",
				BaseURL:  srv.URL,
				Title:    config.DefaultTitle,
				Timeout:  config.DefaultTimeout,
			}
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			var stdout, stderr bytes.Buffer
			code := runBatch(context.Background(), cfg, catalog.Default(), path, logger, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Contains(t, stderr.String(), tt.wantStderr)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRunBatchMissingFile(t *testing.T) {
	cfg := &config.Config{Provider: "openrouter", APIKey: "k", Model: "m", BaseURL: "http://127.0.0.1:1"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var stdout, stderr bytes.Buffer
	code := runBatch(context.Background(), cfg, catalog.Default(), filepath.Join(t.TempDir(), "nope.yaml"), logger, &stdout, &stderr)

	assert.Equal(t, exitBadRequest, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Error:")
}
