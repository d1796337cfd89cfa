package dto

// ErrorResponse is the generic error body returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
