package request

// Response messages.
const (
	MessageSuccess = "Request Successfull"
	MessageFailure = "Request Failed"
	MessageError   = "An error occurred within the library"
)

// Response is the normalized result of the Request.Execute.
type Response[T any] struct {
	// StatusCode of the HTTP response, 0 if no response has been received.
	StatusCode int
	// Status of the HTTP response, for example "200 OK".
	Status string
	// Message describes the outcome, see MessageSuccess, MessageFailure and MessageError.
	Message string
	// IsSuccess is true for a 2xx status code.
	IsSuccess bool
	// Err is the cause, if the execution failed. It is nil for a non-success status code.
	Err      error
	Response ResponseData[T]
}

// ResponseData contains the response body and metadata.
type ResponseData[T any] struct {
	// Content is the body as a string.
	Content string
	// Data is the payload decoded from the body, see Request.FetchAs.
	Data T
	// Binary is the raw body.
	Binary []byte
	// ResponseHeaders, multiple values are joined by ",".
	ResponseHeaders map[string]string
	// ResponseCookies parsed from the Set-Cookie headers.
	ResponseCookies map[string]string
}

// IsError returns true if the execution failed, no matter the status code.
func (r *Response[T]) IsError() bool {
	return r.Err != nil
}

func newSuccessResponse[T any](statusCode int, status string, body []byte) *Response[T] {
	return &Response[T]{
		StatusCode: statusCode,
		Status:     status,
		Message:    MessageSuccess,
		IsSuccess:  true,
		Response: ResponseData[T]{
			Content:         string(body),
			Binary:          body,
			ResponseHeaders: make(map[string]string),
			ResponseCookies: make(map[string]string),
		},
	}
}

func newFailureResponse[T any](statusCode int, status string, body []byte) *Response[T] {
	return &Response[T]{
		StatusCode: statusCode,
		Status:     status,
		Message:    MessageFailure,
		Response: ResponseData[T]{
			Content:         string(body),
			Binary:          body,
			ResponseHeaders: make(map[string]string),
			ResponseCookies: make(map[string]string),
		},
	}
}

func newErrorResponse[T any](statusCode int, status string, err error) *Response[T] {
	return &Response[T]{
		StatusCode: statusCode,
		Status:     status,
		Message:    MessageError,
		Err:        err,
		Response: ResponseData[T]{
			ResponseHeaders: make(map[string]string),
			ResponseCookies: make(map[string]string),
		},
	}
}
