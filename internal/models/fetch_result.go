package models

import (
	"time"
)

// FetchErrorKind categorizes why a robots.txt fetch failed.
type FetchErrorKind int

const (
	// FetchErrorConnection covers transport failures: DNS, refused connections, timeouts.
	FetchErrorConnection FetchErrorKind = iota
	// FetchErrorHTTPStatus covers responses outside the 2xx range.
	FetchErrorHTTPStatus
)

// String returns the string representation of the fetch error kind.
func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrorConnection:
		return "connection_error"
	case FetchErrorHTTPStatus:
		return "http_status_error"
	default:
		return "unknown"
	}
}

// FetchError describes a failed robots.txt fetch.
type FetchError struct {
	Kind    FetchErrorKind
	Status  int // HTTP status code, set for FetchErrorHTTPStatus
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

// NewConnectionError creates a FetchError for a transport-level failure.
func NewConnectionError(message string) *FetchError {
	return &FetchError{Kind: FetchErrorConnection, Message: message}
}

// NewHTTPStatusError creates a FetchError for a non-2xx response.
func NewHTTPStatusError(status int, message string) *FetchError {
	return &FetchError{Kind: FetchErrorHTTPStatus, Status: status, Message: message}
}

// FetchResult is the outcome of fetching a site's robots.txt file.
// Exactly one of Content or Err is populated.
type FetchResult struct {
	Site       MonitoredSite
	Content    string
	HTTPStatus int
	Err        *FetchError
	Timestamp  time.Time
}

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool {
	return r.Err == nil
}
