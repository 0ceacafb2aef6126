package retry

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	ai "github.com/toolweave/toolweave"
)

// statusCoder is an interface for errors that carry an HTTP status code.
// The Anthropic and OpenAI SDK error types implement it.
type statusCoder interface {
	StatusCode() int
}

// IsTransient determines if an error is transient and should be retried.
// Errors implementing ai.CategorizedError are classified explicitly;
// everything else falls back to heuristic detection of rate limits
// (HTTP 429), server errors (HTTP 5xx), network timeouts, connection
// resets, and DNS failures.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce ai.CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ai.ErrorTransient
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		if isTransientStatusCode(sc.StatusCode()) {
			return true
		}
	}

	// genai wraps Gemini API failures in apierror types whose message
	// carries the status code rather than a StatusCode method.
	if code := extractGoogleAPIErrorCode(err); code > 0 {
		if isTransientStatusCode(code) {
			return true
		}
	}

	return isTransientNetworkError(err)
}

func isTransientStatusCode(code int) bool {
	if code == 429 {
		return true
	}
	return code >= 500 && code < 600
}

// extractGoogleAPIErrorCode pulls a status code out of a Google API error
// message of the form "googleapi: Error 429:".
func extractGoogleAPIErrorCode(err error) int {
	errStr := err.Error()
	if !strings.Contains(errStr, "googleapi:") {
		return 0
	}
	for _, code := range []struct {
		pattern string
		value   int
	}{
		{"Error 429", 429},
		{"Error 500", 500},
		{"Error 502", 502},
		{"Error 503", 503},
		{"Error 504", 504},
	} {
		if strings.Contains(errStr, code.pattern) {
			return code.value
		}
	}
	return 0
}

func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary()
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET,
			syscall.ECONNREFUSED,
			syscall.ETIMEDOUT:
			return true
		}
	}

	// Fallback on message patterns for errors that expose nothing typed.
	errMsg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset",
		"connection refused",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"server error",
		"bad gateway",
		"gateway timeout",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
