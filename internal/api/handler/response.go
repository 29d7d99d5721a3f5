package handler

// response is the success envelope used across the API. Count is only
// present on list responses.
type response struct {
	Message string `json:"message"`
	Count   *int64 `json:"count,omitempty"`
	Data    any    `json:"data"`
}

func newResponse(message string, data any) response {
	return response{Message: message, Data: data}
}

func newListResponse(message string, count int64, data any) response {
	return response{Message: message, Count: &count, Data: data}
}
