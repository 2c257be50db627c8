// Package assistanterrors holds the soft failures of the AI enhancement
// layer. They are logged by callers and never surface in HTTP responses; the
// deterministic output stands in for the enhancement.
package assistanterrors

import "errors"

var (
	ErrNotConfigured    = errors.New("assistant: no api key configured")
	ErrRequestFailed    = errors.New("assistant: request failed")
	ErrBadStatus        = errors.New("assistant: non-success status")
	ErrEmptyCompletion  = errors.New("assistant: empty completion")
	ErrMalformedPayload = errors.New("assistant: malformed response payload")
)
