// internal/api/types/response.go
package types

// ErrorBody is the uniform error payload returned by the API boundary.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an ErrorBody for serialization.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ListResponse defines a generic structure for list API responses.
// T represents the type of data contained in the 'Data' slice.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}
