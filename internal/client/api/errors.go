package api

import "fmt"

// genericFailure is shown when the server reports failure without any
// usable message.
const genericFailure = "request failed"

// ServerError carries the server-provided error text for a failed call
// (non-2xx status or an explicit failure flag in the body). The message
// is what gets surfaced to the user.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = genericFailure
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	return msg
}

// UserMessage returns the text suitable for direct display.
func (e *ServerError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return genericFailure
}
