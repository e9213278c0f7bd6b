package httpdto

// ErrorBody carries the human-readable message and the mirrored status code.
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorResponse is the uniform failure envelope: {"error": {"message", "status"}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func NewErrorResponse(message string, status int) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Message: message, Status: status}}
}

// MessageResponse wraps a single message payload as {"message": {...}}.
type MessageResponse[T any] struct {
	Message T `json:"message"`
}

// MessagesResponse wraps a message list as {"messages": [...]}.
type MessagesResponse[T any] struct {
	Messages []T `json:"messages"`
}
