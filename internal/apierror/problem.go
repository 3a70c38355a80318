// Package apierror provides RFC 9457 Problem Details error responses for the
// vibecheck API.
package apierror

// ProblemDetails represents an RFC 9457 Problem Details response.
// See https://www.rfc-editor.org/rfc/rfc9457.html
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	RequestID   string       `json:"request_id,omitempty"`   // Correlation ID from X-Request-ID
	UserMessage string       `json:"user_message,omitempty"` // Safe to show in the UI
	RetryAfter  *int         `json:"retry_after,omitempty"`  // Seconds, for 429 and 503
	Action      string       `json:"action,omitempty"`       // Client hint such as "authenticate"
	Errors      []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface for ProblemDetails.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
