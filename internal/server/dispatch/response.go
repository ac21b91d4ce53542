package dispatch

import (
	"errors"

	"github.com/dmitrijs2005/paintmap/internal/common"
	"github.com/dmitrijs2005/paintmap/internal/server/models"
)

// Response is the envelope returned for every request. Only the fields a
// function produces are set; a map-shaped response flattens the MapView
// into the envelope.
type Response struct {
	Succeed bool   `json:"succeed"`
	Error   string `json:"error,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Login   *bool  `json:"login,omitempty"`
	ID      string `json:"id,omitempty"`
	*models.MapView
}

func ok() *Response {
	return &Response{Succeed: true}
}

func failed(msg string) *Response {
	return &Response{Error: msg}
}

// failure carries the message shown to the client alongside its cause.
type failure struct {
	msg string
	err error
}

func (f *failure) Error() string { return f.msg }
func (f *failure) Unwrap() error { return f.err }

func fail(msg string, cause error) error {
	return &failure{msg: msg, err: cause}
}

// messageFor turns a handler error into the text of the envelope.
func messageFor(err error) string {
	var f *failure
	switch {
	case errors.As(err, &f):
		return f.msg
	case errors.Is(err, common.ErrorUnauthorized):
		return "Authentication failed"
	case errors.Is(err, common.ErrorMismatch):
		return "Authentication mismatch"
	case errors.Is(err, common.ErrorInternal):
		return common.ErrorInternal.Error()
	default:
		return err.Error()
	}
}
