package rest

// ErrorResponse is the JSON body returned by all API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
