package client

import (
	"errors"
	"fmt"

	"github.com/vango-dev/ibtws/pkg/protocol"
)

var (
	// ErrNotConnected is returned by request methods without a session.
	ErrNotConnected = errors.New("client: not connected")

	// ErrAlreadyConnected is returned by Connect on a live client.
	ErrAlreadyConnected = errors.New("client: already connected")

	// ErrAuthNotRequested is returned by VerifyRequest when the session
	// was opened without ExtraAuth.
	ErrAuthNotRequested = errors.New("client: extra authentication was not requested at connect")
)

// SendError reports a request that could not be written. The connection
// is closed when it is returned.
type SendError struct {
	Tag protocol.OutTag
	ID  int
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("client: send %s (id %d): %v", e.Tag, e.ID, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
