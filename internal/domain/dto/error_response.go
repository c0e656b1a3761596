package dto

import "time"

// ErrorResponse is the standardized JSON error payload returned by every
// failing endpoint, including the on-demand snapshot trigger.
//
// Fields:
//   - Message: short, user-facing description of what failed.
//   - ErrorDetails: underlying error text, omitted when there is none.
//   - Timestamp: when the error response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"snapshot failed"`
	ErrorDetails string    `json:"error,omitempty" example:"leaderboard fetch: connection refused"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel
// through error-returning call paths before being serialized.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
