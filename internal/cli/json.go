package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/ltree/internal/errors"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeLedgerNotFound = "LEDGER_NOT_FOUND"
	ErrCodeLedgerInvalid  = "LEDGER_INVALID"
	ErrCodeMirrorFailed   = "MIRROR_FAILED"
	ErrCodeViewFailed     = "VIEW_FAILED"
	ErrCodeWatchFailed    = "WATCH_FAILED"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var ltErr *errors.Error
	if stderrors.As(err, &ltErr) {
		msg := ltErr.Message
		if ltErr.Cause != nil {
			msg += ": " + ltErr.Cause.Error()
		}
		return &JSONError{
			Code:       mapErrorCode(ltErr.Code, ltErr.Message),
			Message:    msg,
			Suggestion: ltErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	notFound := func() bool {
		msg := strings.ToLower(message)
		return strings.Contains(msg, "not found") || strings.Contains(msg, "couldn't find")
	}

	switch internalCode {
	case errors.ErrConfig:
		if notFound() {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrLedger:
		if notFound() {
			return ErrCodeLedgerNotFound
		}
		return ErrCodeLedgerInvalid
	case errors.ErrMirror:
		return ErrCodeMirrorFailed
	case errors.ErrView:
		return ErrCodeViewFailed
	case errors.ErrWatch:
		return ErrCodeWatchFailed
	}
	return ErrCodeUnknown
}
