package errors

import (
	"fmt"
)

// Category groups client-side error codes.
type Category string

const (
	CategoryConnection Category = "connection"
	CategoryCapability Category = "capability"
	CategorySend       Category = "send"
	CategoryDecode     Category = "decode"
	CategoryAuth       Category = "auth"
)

// NoValidID is the request id reported for errors not tied to a request.
const NoValidID = -1

// ClientError is a client-side failure reported with a gateway style
// numeric code. Codes share the space of server error codes, so they are
// delivered through the same error callback.
type ClientError struct {
	// Code is the numeric error code (501 through 550).
	Code int

	// ID is the request, ticker or order id the error refers to, or
	// NoValidID.
	ID int

	// Category is the kind of failure.
	Category Category

	// Message is the registered text for the code.
	Message string

	// Detail is appended to Message, e.g. the transport error text or the
	// capability explanation.
	Detail string

	// Suggestion is a hint shown by the CLI.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Text())
}

// Text is the message as delivered to the error callback: the registered
// message followed by the detail.
func (e *ClientError) Text() string {
	return e.Message + e.Detail
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ClientError) Unwrap() error {
	return e.Wrapped
}

// WithID sets the request id.
func (e *ClientError) WithID(id int) *ClientError {
	e.ID = id
	return e
}

// WithDetail sets the text appended to the message.
func (e *ClientError) WithDetail(d string) *ClientError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ClientError) WithSuggestion(s string) *ClientError {
	e.Suggestion = s
	return e
}

// WithCause records err as the underlying error without changing the
// message text.
func (e *ClientError) WithCause(err error) *ClientError {
	e.Wrapped = err
	return e
}

// Wrap wraps another error. When no detail was set the wrapped error's
// text becomes the detail.
func (e *ClientError) Wrap(err error) *ClientError {
	e.Wrapped = err
	if e.Detail == "" && err != nil {
		e.Detail = err.Error()
	}
	return e
}

// New creates a ClientError from a registered code.
func New(code int) *ClientError {
	template, ok := registry[code]
	if !ok {
		return &ClientError{
			Code:    code,
			ID:      NoValidID,
			Message: "Unknown error",
		}
	}
	return &ClientError{
		Code:       code,
		ID:         NoValidID,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// FromError wraps a standard error in a ClientError with the given code.
// An error that already is a ClientError is returned unchanged.
func FromError(err error, code int) *ClientError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*ClientError); ok {
		return ce
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is a ClientError with the given code.
func HasCode(err error, code int) bool {
	for err != nil {
		if ce, ok := err.(*ClientError); ok && ce.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
