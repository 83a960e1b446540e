package request

// StatusCapture is a callback invoked if the response has the StatusCode, see Request.WithStatusCaptures.
type StatusCapture struct {
	StatusCode int
	Callback   func()
}

// OnStatus creates a StatusCapture.
func OnStatus(statusCode int, callback func()) StatusCapture {
	return StatusCapture{StatusCode: statusCode, Callback: callback}
}

// dispatchStatus invokes the first capture matching the status code.
func dispatchStatus(captures []StatusCapture, statusCode int) {
	for _, c := range captures {
		if c.StatusCode == statusCode {
			if c.Callback != nil {
				c.Callback()
			}
			return
		}
	}
}
