package model

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// AuthenticationError means no usable credential could be obtained. Fatal:
// nothing can run without one.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// ConfigurationError means a required setting is missing or invalid. Fatal.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Setting, e.Reason)
}

// InvalidRangeError means the analysis window start is after its end.
// Raised before any provider call. Fatal.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s is after end %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// TransientError wraps provider throttling, timeouts, and other retryable
// failures so callers can distinguish them from permanent ones.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermissionError means the credential lacks RBAC for a specific query.
// The affected rule degrades to empty output; the run continues.
type PermissionError struct {
	Op  string
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied in %s: %v", e.Op, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// NoSubscriptionError means the credential can see no subscription and none
// was configured.
type NoSubscriptionError struct{}

func (e *NoSubscriptionError) Error() string {
	return "no subscription visible to the credential"
}

// WriteError means the report could not be persisted. Fatal: the report is
// the purpose of the run.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write report to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ClassifyAzureError maps an Azure SDK error onto the run's error taxonomy
// using the HTTP status carried by azcore.ResponseError. Unrecognized
// errors are wrapped with the operation name and passed through.
func ClassifyAzureError(op string, err error) error {
	if err == nil {
		return nil
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch {
		case respErr.StatusCode == http.StatusUnauthorized:
			return &AuthenticationError{Err: err}
		case respErr.StatusCode == http.StatusForbidden:
			return &PermissionError{Op: op, Err: err}
		case respErr.StatusCode == http.StatusTooManyRequests,
			respErr.StatusCode == http.StatusRequestTimeout,
			respErr.StatusCode >= http.StatusInternalServerError:
			return &TransientError{Op: op, Err: err}
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// IsPermission reports whether err is, or wraps, a PermissionError.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsTransient reports whether err is, or wraps, a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
