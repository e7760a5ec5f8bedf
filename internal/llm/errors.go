package llm

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies API failures into the categories the data
// generator's fallback policy cares about. Classification happens once
// here, at the client boundary, on structured data (HTTP status plus
// the error body), so downstream code never inspects error strings.
type FailureKind int

const (
	// KindOther covers failures that match no known category.
	KindOther FailureKind = iota
	// KindUnauthorized is an invalid or revoked API key (HTTP 401).
	KindUnauthorized
	// KindForbidden is a geographic/region restriction (HTTP 403).
	KindForbidden
	// KindRateLimited is a quota or rate-limit rejection (HTTP 429).
	KindRateLimited
	// KindNetwork is a transport failure: DNS, connect, timeout.
	KindNetwork
	// KindMalformed means the response arrived but carried no usable JSON.
	KindMalformed
)

// String returns a short label for logging.
func (k FailureKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "region_restricted"
	case KindRateLimited:
		return "rate_limited"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed_response"
	default:
		return "other"
	}
}

// Error body markers used by the OpenAI API.
const (
	markerInvalidKey        = "invalid_api_key"
	markerUnsupportedRegion = "unsupported_country_region_territory"
)

// APIError is a typed failure from the completion client.
type APIError struct {
	Kind       FailureKind
	StatusCode int
	Code       string // machine code from the error body, if any
	Message    string
	cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("openai: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("openai: %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("openai: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.cause
}

// KindOf extracts the failure kind from an error chain. Errors that did
// not originate from this client classify as KindOther.
func KindOf(err error) FailureKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindOther
}

// classifyStatus maps an HTTP status and raw error body to a failure
// kind. The 401 and 403 categories additionally require the body marker
// the upstream API emits for them; a bare 401/403 from a proxy or
// gateway stays unclassified.
func classifyStatus(status int, body string) FailureKind {
	switch {
	case status == 401 && strings.Contains(body, markerInvalidKey):
		return KindUnauthorized
	case status == 403 && strings.Contains(body, markerUnsupportedRegion):
		return KindForbidden
	case status == 429:
		return KindRateLimited
	default:
		return KindOther
	}
}

func newStatusError(status int, body string) *APIError {
	msg := body
	code := ""

	if parsed, ok := parseErrorBody(body); ok {
		msg = parsed.Message
		code = parsed.Code
	}

	return &APIError{
		Kind:       classifyStatus(status, body),
		StatusCode: status,
		Code:       code,
		Message:    msg,
	}
}

func newNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, cause: err}
}

func newMalformedError(msg string, err error) *APIError {
	return &APIError{Kind: KindMalformed, Message: msg, cause: err}
}
