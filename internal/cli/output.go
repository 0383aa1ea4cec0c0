package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/gradebook/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation rejected (constraint violation, student not found)
	ExitCommandError = 2 // Command error (bad arguments, config, storage failure)
)

// Error codes reported in JSON error responses.
const (
	ErrCodeUsage      = "E001"
	ErrCodeConstraint = "E002"
	ErrCodeNotFound   = "E003"
	ErrCodeStorage    = "E004"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	ErrCode string // JSON error code; defaults from Code when empty
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errorCode returns the JSON error code for err.
func errorCode(err error) string {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.ErrCode != "" {
		return exitErr.ErrCode
	}
	if GetExitCode(err) == ExitCommandError {
		return ErrCodeUsage
	}
	return ErrCodeStorage
}

// operationError classifies a store error into an ExitError.
// Constraint violations and missing rows are operation failures; every
// other store error is a storage failure.
func operationError(err error) error {
	switch {
	case store.IsConstraint(err):
		return &ExitError{Code: ExitFailure, ErrCode: ErrCodeConstraint, Message: "constraint violation", Err: err}
	case errors.Is(err, store.ErrNotFound):
		return &ExitError{Code: ExitFailure, ErrCode: ErrCodeNotFound, Message: "not found", Err: err}
	default:
		return &ExitError{Code: ExitCommandError, ErrCode: ErrCodeStorage, Message: "storage failure", Err: err}
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`           // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`   // success payload
	Error  *CLIError   `json:"error,omitempty"`  // error details
	RunID  string      `json:"run_id,omitempty"` // demo run correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// IsJSON reports whether output is JSON.
func (f *OutputFormatter) IsJSON() bool {
	return f.Format == "json"
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	return f.SuccessWithRunID(data, "")
}

// SuccessWithRunID is Success for results produced by a demo run. The run
// ID only appears in JSON output.
func (f *OutputFormatter) SuccessWithRunID(data interface{}, runID string) error {
	if f.IsJSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
			RunID:  runID,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.IsJSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
