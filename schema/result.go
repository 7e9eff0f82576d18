package schema

import (
	"fmt"
	"strings"

	i18n "github.com/kaptinlin/go-i18n"
)

// EvaluationError describes a single failing constraint during validation.
// It carries enough structure (keyword, code, params) to be localized, and
// a pre-rendered Message for callers that just want text.
type EvaluationError struct {
	Keyword string         `json:"keyword"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
	Path    string         `json:"path"`
}

// NewEvaluationError builds an EvaluationError for the given keyword/code/message
// template. Template placeholders of the form {name} are substituted from params.
func NewEvaluationError(keyword, code, message string, params ...map[string]any) *EvaluationError {
	e := &EvaluationError{Keyword: keyword, Code: code, Message: message}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("#%s: %s", e.Path, render(e.Message, e.Params))
}

// Localize renders the error using a go-i18n localizer keyed by Code, falling
// back to the plain rendered message when no localizer or translation exists.
func (e *EvaluationError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	if msg := localizer.Get(e.Code, i18n.Vars(e.Params)); msg != "" {
		return msg
	}
	return e.Error()
}

func render(message string, params map[string]any) string {
	out := message
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return out
}

// Result is the outcome of validating one value against one schema. It is
// the Go-native shape of the "validate(value, path) -> bool, with error set
// on failure" contract: Ok reports the boolean, Error/Path report the
// human-readable citation when Ok is false.
type Result struct {
	Valid   bool
	Path    string
	Message string
	cause   *EvaluationError
	// Details holds child failures passed to fail. Validate does not fill
	// it: combinator (allOf/anyOf/oneOf) child failures appear only in the
	// flattened Message.
	Details []*Result
}

// Ok reports whether validation succeeded.
func (r *Result) Ok() bool { return r.Valid }

// Error implements the error interface so a failing Result can be returned
// directly from functions that want a plain Go error.
func (r *Result) Error() string {
	if r.Valid {
		return ""
	}
	return r.Message
}

func ok() *Result {
	return &Result{Valid: true}
}

func fail(err *EvaluationError, details ...*Result) *Result {
	return &Result{
		Valid:   false,
		Path:    err.Path,
		Message: err.Error(),
		cause:   err,
		Details: details,
	}
}
