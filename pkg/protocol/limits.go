package protocol

import (
	"errors"
	"fmt"
)

// Limits on repeated groups inside a single inbound message. A corrupt or
// hostile count must not make the decoder loop or allocate without bound.
const (
	// MaxRepeatCount bounds the element count of any repeated group (bars,
	// scanner rows, combo legs, tag/value lists).
	MaxRepeatCount = 1 << 16

	// maxPrealloc caps the capacity reserved up front for a repeated group.
	maxPrealloc = 64
)

// ErrTooManyItems is returned when a repeated group announces more
// elements than MaxRepeatCount.
var ErrTooManyItems = errors.New("protocol: repeated group too large")

// checkCount validates a repeated group count. Negative counts are read as
// empty, matching the gateway's use of -1 for "none".
func checkCount(n int) (int, error) {
	if n < 0 {
		return 0, nil
	}
	if n > MaxRepeatCount {
		return 0, fmt.Errorf("%w: %d", ErrTooManyItems, n)
	}
	return n, nil
}
