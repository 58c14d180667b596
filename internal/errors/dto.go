package errors

// ErrorResponse is the wire shape of every error reply
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the user-facing message and any safe
// structured details attached via WithReportableDetails
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
