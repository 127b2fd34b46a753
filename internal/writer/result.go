package writer

import (
	"errors"

	"github.com/sant0-9/legalgen/internal/document"
	"github.com/sant0-9/legalgen/internal/llm"
)

// FailureNotice is the single line shown to the user when generation fails.
const FailureNotice = "Failed to generate the document. Please try again."

// SuccessNotice is shown above a generated document.
const SuccessNotice = "Document generated successfully!"

// Kind classifies a failed generation.
type Kind int

const (
	KindNone Kind = iota
	KindConfiguration
	KindTransport
	KindMalformedResponse
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindMalformedResponse:
		return "malformed_response"
	case KindEmptyResult:
		return "empty_result"
	default:
		return "unknown"
	}
}

// ErrEmptyResult is the cause of a KindEmptyResult failure.
var ErrEmptyResult = errors.New("model returned an empty document")

// Result is the outcome of one generation: either non-empty Text, or a
// failure Kind with the Err that caused it.
type Result struct {
	Text      string
	Kind      Kind
	Err       error
	RequestID string
	Usage     llm.Usage
}

// OK reports a successful generation.
func (r Result) OK() bool {
	return r.Kind == KindNone && r.Err == nil
}

// Reason is a human-readable description of a failure, empty on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Success wraps generated text. Empty text is turned into a
// KindEmptyResult failure so a blank document is never reported as success.
func Success(text string) Result {
	if text == "" {
		return Failure(ErrEmptyResult)
	}
	return Result{Text: text}
}

// Failure wraps err as a failed result classified by Classify.
func Failure(err error) Result {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result{Kind: Classify(err), Err: err}
}

// Classify maps an error from prompt construction or the provider onto the
// failure taxonomy.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyResult):
		return KindEmptyResult
	case errors.Is(err, llm.ErrMissingAPIKey),
		errors.Is(err, ErrNoProvider),
		errors.Is(err, document.ErrMissingField),
		errors.Is(err, document.ErrUnknownDocumentType),
		errors.Is(err, document.ErrUnknownLanguage),
		errors.Is(err, document.ErrUnexpectedField),
		errors.Is(err, document.ErrKindMismatch),
		errors.Is(err, ErrNoTemplate):
		return KindConfiguration
	case errors.Is(err, llm.ErrMalformedResponse):
		return KindMalformedResponse
	default:
		// network errors, timeouts and *llm.StatusError
		return KindTransport
	}
}
