package writer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/config"
	"github.com/sant0-9/legalgen/internal/document"
	"github.com/sant0-9/legalgen/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	resp  *llm.CompletionResponse
	err   error
	calls []*llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ndaRequest(t *testing.T) *document.Request {
	t.Helper()
	date, err := document.Date(2025, time.March, 5)
	require.NoError(t, err)
	req, err := document.NewRequest(catalog.Default(), "Non-Disclosure Agreement", "English", map[string]document.Value{
		"Party One Name":           document.Text("Acme Corp"),
		"Party Two Name":           document.Text("Jane Doe"),
		"Effective Date":           date,
		"Confidential Information": document.Text("Source code"),
	})
	require.NoError(t, err)
	return req
}

func TestGenerateTrimsContent(t *testing.T) {
	p := &fakeProvider{resp: &llm.CompletionResponse{Content: "  Hello.  ", Usage: llm.Usage{TotalTokens: 9}}}
	w := NewWriter(p, "deepseek/deepseek-chat:free", quietLogger())

	res := w.Generate(context.Background(), "prompt")
	require.True(t, res.OK())
	assert.Equal(t, "Hello.", res.Text)
	assert.Equal(t, KindNone, res.Kind)
	assert.Empty(t, res.Reason())
	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, 9, res.Usage.TotalTokens)

	require.Len(t, p.calls, 1)
	call := p.calls[0]
	assert.Equal(t, "deepseek/deepseek-chat:free", call.Model)
	require.Len(t, call.Messages, 2)
	assert.Equal(t, llm.Message{Role: "system", Content: "You are a legal document assistant."}, call.Messages[0])
	assert.Equal(t, llm.Message{Role: "user", Content: "prompt"}, call.Messages[1])
}

func TestGenerateEmptyIsFailure(t *testing.T) {
	for _, content := range []string{"", "   \n\t "} {
		p := &fakeProvider{resp: &llm.CompletionResponse{Content: content}}
		res := NewWriter(p, "m", quietLogger()).Generate(context.Background(), "prompt")

		assert.False(t, res.OK())
		assert.Equal(t, KindEmptyResult, res.Kind)
		assert.ErrorIs(t, res.Err, ErrEmptyResult)
		assert.Empty(t, res.Text)
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"missing key", fmt.Errorf("openrouter: %w", llm.ErrMissingAPIKey), KindConfiguration},
		{"missing key at startup", (&config.Config{Provider: "openrouter"}).Validate(), KindConfiguration},
		{"status", &llm.StatusError{Provider: "openrouter", StatusCode: 500, Body: "boom"}, KindTransport},
		{"network", errors.New("dial tcp: connection refused"), KindTransport},
		{"deadline", context.DeadlineExceeded, KindTransport},
		{"malformed", fmt.Errorf("%w: no choices", llm.ErrMalformedResponse), KindMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{err: tt.err}
			res := NewWriter(p, "m", quietLogger()).Generate(context.Background(), "prompt")

			assert.False(t, res.OK())
			assert.Equal(t, tt.want, res.Kind)
			assert.NotEmpty(t, res.Reason())
			assert.Len(t, p.calls, 1)
		})
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	res := NewWriter(nil, "m", quietLogger()).Generate(context.Background(), "prompt")
	assert.Equal(t, KindConfiguration, res.Kind)
	assert.ErrorIs(t, res.Err, ErrNoProvider)
}

func TestWriteBuildsPrompt(t *testing.T) {
	p := &fakeProvider{resp: &llm.CompletionResponse{Content: "NDA text"}}
	res := NewWriter(p, "m", quietLogger()).Write(context.Background(), ndaRequest(t))

	require.True(t, res.OK())
	assert.Equal(t, "NDA text", res.Text)
	require.Len(t, p.calls, 1)
	assert.Equal(t,
		"Generate a Non-Disclosure Agreement in English with the following details:\n"+
			"Party One Name: Acme Corp\n"+
			"Party Two Name: Jane Doe\n"+
			"Effective Date: March 05, 2025\n"+
			"Confidential Information: Source code\n",
		p.calls[0].Messages[1].Content)
}

func TestWriteMissingFieldMakesNoCall(t *testing.T) {
	full := ndaRequest(t)
	req := &document.Request{
		DocumentType: full.DocumentType,
		Language:     full.Language,
		Template:     full.Template,
	}

	p := &fakeProvider{resp: &llm.CompletionResponse{Content: "x"}}
	res := NewWriter(p, "m", quietLogger()).Write(context.Background(), req)

	assert.Equal(t, KindConfiguration, res.Kind)
	assert.ErrorIs(t, res.Err, document.ErrMissingField)
	assert.Empty(t, p.calls)
}

func TestWriteNilRequest(t *testing.T) {
	res := NewWriter(&fakeProvider{}, "m", quietLogger()).Write(context.Background(), nil)
	assert.Equal(t, KindConfiguration, res.Kind)
}

func TestWriteOverHTTP(t *testing.T) {
	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"\n\nMUTUAL NON-DISCLOSURE AGREEMENT\n"}}]}`)
	}))
	defer srv.Close()

	p := llm.NewOpenAIProvider(llm.OpenAIConfig{Name: "openrouter", APIKey: "k", BaseURL: srv.URL}, quietLogger())
	res := NewWriter(p, "deepseek/deepseek-chat:free", quietLogger()).Write(context.Background(), ndaRequest(t))

	require.True(t, res.OK(), res.Reason())
	assert.Equal(t, "MUTUAL NON-DISCLOSURE AGREEMENT", res.Text)
	assert.Equal(t, "deepseek/deepseek-chat:free", body.Model)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "user", body.Messages[1].Role)
}

func TestWriteOverHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := llm.NewOpenAIProvider(llm.OpenAIConfig{APIKey: "k", BaseURL: srv.URL}, quietLogger())
	res := NewWriter(p, "m", quietLogger()).Write(context.Background(), ndaRequest(t))

	assert.Equal(t, KindTransport, res.Kind)
	assert.Contains(t, res.Reason(), "429")
	assert.Contains(t, Describe(res), FailureNotice)
}

func TestSuccessAndDescribe(t *testing.T) {
	ok := Success("text")
	assert.True(t, ok.OK())
	assert.Empty(t, Describe(ok))

	bad := Failure(nil)
	assert.False(t, bad.OK())
	assert.NotEmpty(t, bad.Reason())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "configuration", KindConfiguration.String())
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "malformed_response", KindMalformedResponse.String())
	assert.Equal(t, "empty_result", KindEmptyResult.String())
}
