package source

import (
	"errors"
	"fmt"
	"time"

	"park-pulse/feature/livedata/parks"
)

// Kind classifies a source failure.
type Kind string

const (
	// KindNetwork covers transport failures and timeouts.
	KindNetwork Kind = "network"
	// KindAPI covers non-2xx responses other than 429.
	KindAPI Kind = "api"
	// KindParse covers malformed or unexpected payloads after a 2xx.
	KindParse Kind = "parse"
	// KindRateLimited covers HTTP 429 responses.
	KindRateLimited Kind = "rate_limited"
)

// SourceError is the typed error raised by the upstream adapters.
type SourceError struct {
	// Source names the adapter that failed.
	Source string
	// Kind classifies the failure.
	Kind Kind
	// StatusCode is the HTTP status, when one was received.
	StatusCode int
	// Message describes the failure.
	Message string
	// Timestamp records when the failure was observed.
	Timestamp time.Time
}

func (e *SourceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (%s, status=%d)", e.Source, e.Message, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Source, e.Message, e.Kind)
}

func newNetworkError(sourceName string, cause error) *SourceError {
	return &SourceError{
		Source:    sourceName,
		Kind:      KindNetwork,
		Message:   cause.Error(),
		Timestamp: time.Now(),
	}
}

func newStatusError(sourceName string, statusCode int) *SourceError {
	kind := KindAPI
	if statusCode == 429 {
		kind = KindRateLimited
	}
	return &SourceError{
		Source:     sourceName,
		Kind:       kind,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("unexpected status %d", statusCode),
		Timestamp:  time.Now(),
	}
}

func newParseError(sourceName string, cause error) *SourceError {
	return &SourceError{
		Source:    sourceName,
		Kind:      KindParse,
		Message:   cause.Error(),
		Timestamp: time.Now(),
	}
}

// IsRetryable reports whether another attempt could plausibly succeed.
// Network, rate-limit and API failures are transient; parse failures and
// unknown park IDs are not.
func IsRetryable(err error) bool {
	if errors.Is(err, parks.ErrUnknown) {
		return false
	}
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind != KindParse
	}
	return true
}
