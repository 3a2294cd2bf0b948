package llmclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	genai "google.golang.org/genai"
)

// StatusError is a provider failure carrying an HTTP-like code and a
// canonical status string. Err may hold a nested provider error.
type StatusError struct {
	Code    int
	Status  string
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("provider error %d %s: %s", e.Code, e.Status, msg)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Category groups provider failures for startup diagnostics.
type Category string

const (
	CategoryConfig   Category = "configuration"
	CategoryAuth     Category = "auth/permission"
	CategoryNotFound Category = "not-found/model-unavailable"
	CategoryQuota    Category = "quota/rate-limit"
	CategoryUnknown  Category = "unknown"
)

// IsRateLimited reports whether err, or any error it wraps, signals a
// rate-limit or exhausted quota: code 429, status RESOURCE_EXHAUSTED, or
// one of those markers in the message.
func IsRateLimited(err error) bool {
	found := false
	walk(err, func(code int, status, msg string) bool {
		if code == http.StatusTooManyRequests || strings.EqualFold(status, "RESOURCE_EXHAUSTED") || rateLimitMessage(msg) {
			found = true
		}
		return found
	})
	return found
}

func rateLimitMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "429") ||
		strings.Contains(lower, "resource_exhausted") ||
		strings.Contains(lower, "too many requests")
}

// Diagnose classifies err for operator guidance.
func Diagnose(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	if errors.Is(err, ErrNotConfigured) {
		return CategoryConfig
	}
	if IsRateLimited(err) {
		return CategoryQuota
	}
	cat := CategoryUnknown
	walk(err, func(code int, status, msg string) bool {
		lower := strings.ToLower(msg)
		switch {
		case code == http.StatusUnauthorized || code == http.StatusForbidden ||
			status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED" ||
			strings.Contains(lower, "permission") || strings.Contains(lower, "unauthenticated") ||
			strings.Contains(lower, "credential"):
			cat = CategoryAuth
		case code == http.StatusNotFound || status == "NOT_FOUND" || strings.Contains(lower, "not found"):
			cat = CategoryNotFound
		case strings.Contains(lower, "quota"):
			cat = CategoryQuota
		}
		return cat != CategoryUnknown
	})
	return cat
}

// Guidance returns an operator hint for a diagnostic category.
func Guidance(c Category) string {
	switch c {
	case CategoryConfig:
		return "set GOOGLE_CLOUD_PROJECT (and optionally GOOGLE_APPLICATION_CREDENTIALS) to enable model calls"
	case CategoryAuth:
		return "check that the service account exists, the credentials file is readable, and it has the Vertex AI User role"
	case CategoryNotFound:
		return "enable the Vertex AI API for the project and check the model name and location"
	case CategoryQuota:
		return "the project is out of quota or rate limited; request a quota increase or retry later"
	default:
		return "see the wrapped provider error"
	}
}

// walk visits err and everything it wraps, reporting code, status and
// message for each. It stops when visit returns true.
func walk(err error, visit func(code int, status, msg string) bool) {
	stack := []error{err}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e == nil {
			continue
		}
		code, status := 0, ""
		switch v := e.(type) {
		case *StatusError:
			if v != nil {
				code, status = v.Code, v.Status
			}
		case genai.APIError:
			code, status = v.Code, v.Status
		case *genai.APIError:
			if v != nil {
				code, status = v.Code, v.Status
			}
		}
		if visit(code, status, e.Error()) {
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			stack = append(stack, u.Unwrap()...)
		case interface{ Unwrap() error }:
			stack = append(stack, u.Unwrap())
		}
	}
}
