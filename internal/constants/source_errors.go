package constants

// Error codes returned by the record source client
const (
	ErrCodeNetworkError  = "NETWORK_ERROR"
	ErrCodeInvalidAPIKey = "INVALID_API_KEY"
	ErrCodeNotFound      = "RECORD_NOT_FOUND"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeBadPayload    = "BAD_PAYLOAD"
)

var errorMessages = map[string]string{
	ErrCodeNetworkError:  "Failed to reach the Bubble data API",
	ErrCodeInvalidAPIKey: "Bubble API key was rejected",
	ErrCodeNotFound:      "Record not found in the Bubble data API",
	ErrCodeRateLimited:   "Bubble data API rate limit hit",
	ErrCodeBadPayload:    "Bubble data API returned a malformed payload",
}

// GetErrorMessage returns the human readable message for a source error code
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown data source error"
}
