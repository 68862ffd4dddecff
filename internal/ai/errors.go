// errors.go - Typed error kinds and categorization for model invocations

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/api/googleapi"
)

// MalformedResponseError means the model reply could not be parsed into the
// required three-field JSON shape. It is the only error kind the orchestrator
// retries (exactly once per request).
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

// IsMalformedResponse reports whether err is rooted in a MalformedResponseError
func IsMalformedResponse(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}

// InvocationError represents a categorized transport-level failure of a model
// call. These are never retried by the orchestrator.
type InvocationError struct {
	OriginalError error
	Category      string
	StatusCode    int
	Message       string
	Retryable     bool
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("[%s] %s (status: %d, retryable: %v)", e.Category, e.Message, e.StatusCode, e.Retryable)
}

func (e *InvocationError) Unwrap() error {
	return e.OriginalError
}

// IsInvocationTimeout reports whether err is a timed-out model call
func IsInvocationTimeout(err error) bool {
	var inv *InvocationError
	return errors.As(err, &inv) && inv.Category == "timeout"
}

// CategorizeInvocationError analyzes a provider error and assigns a category.
// The Retryable flag is informational only - the orchestrator applies its
// retry policy solely to MalformedResponseError.
func CategorizeInvocationError(err error) *InvocationError {
	if err == nil {
		return nil
	}

	invErr := &InvocationError{
		OriginalError: err,
		Category:      "unknown",
		Message:       err.Error(),
		Retryable:     false,
	}

	// Anthropic SDK errors carry the HTTP status
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		invErr.StatusCode = anthropicErr.StatusCode
		categorizeByStatus(invErr, anthropicErr.StatusCode)
		return invErr
	}

	// Google API errors (Gemini provider)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		invErr.StatusCode = apiErr.Code
		categorizeByStatus(invErr, apiErr.Code)
		return invErr
	}

	// Context errors: the per-attempt deadline aborts the in-flight call
	if errors.Is(err, context.DeadlineExceeded) {
		invErr.Category = "timeout"
		invErr.Message = "Model call aborted after timeout"
		invErr.Retryable = true
		return invErr
	}

	if errors.Is(err, context.Canceled) {
		invErr.Category = "canceled"
		invErr.Message = "Request was canceled"
		return invErr
	}

	// Check error message for common patterns
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		invErr.Category = "timeout"
		invErr.Message = "Model call timed out"
		invErr.Retryable = true
		return invErr
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") {
		invErr.Category = "network_error"
		invErr.Message = "Network connection error"
		invErr.Retryable = true
		return invErr
	}

	return invErr
}

// categorizeByStatus maps an HTTP status code to an error category
func categorizeByStatus(invErr *InvocationError, code int) {
	switch code {
	case 400:
		invErr.Category = "bad_request"
		invErr.Message = "Invalid request format or parameters"

	case 401:
		invErr.Category = "unauthorized"
		invErr.Message = "Invalid API key or authentication failed"

	case 403:
		invErr.Category = "forbidden"
		invErr.Message = "API key lacks required permissions"

	case 404:
		invErr.Category = "not_found"
		invErr.Message = "Model not found or invalid endpoint"

	case 413:
		invErr.Category = "payload_too_large"
		invErr.Message = "Request size exceeds provider limit"

	case 429:
		invErr.Category = "rate_limit"
		invErr.Message = "Rate limit exceeded - too many requests"
		invErr.Retryable = true

	case 500, 502, 503, 504:
		invErr.Category = "server_error"
		invErr.Message = fmt.Sprintf("Provider server error (%d)", code)
		invErr.Retryable = true

	default:
		invErr.Category = "unknown_api_error"
		invErr.Message = fmt.Sprintf("API error (status %d)", code)
		invErr.Retryable = code >= 500
	}
}
