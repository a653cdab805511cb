package handler

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	LocalID string `json:"localId,omitempty"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// NewItemErrorResponse pins an error to one session item so the client can
// expand it.
func NewItemErrorResponse(code, message, localID string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
			LocalID: localID,
		},
	}
}
