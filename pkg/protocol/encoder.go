package protocol

import (
	"strconv"
	"strings"
)

// Encoder appends NUL-terminated text tokens to an internal buffer.
// A whole outbound message is built in one Encoder and handed to the
// transport in a single write.
type Encoder struct {
	buf []byte
}

// NewEncoder creates a new encoder with a default initial capacity.
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0, 256),
	}
}

// Reset resets the encoder to empty state, reusing the underlying buffer.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the encoded bytes. The returned slice is valid until
// the next call to Reset or any Write method.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes currently encoded.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// WriteString appends s followed by a NUL. An empty string becomes a
// bare NUL, which the peer reads back as null.
func (e *Encoder) WriteString(s string) {
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
}

// WriteInt appends a decimal integer token.
func (e *Encoder) WriteInt(v int) {
	e.buf = strconv.AppendInt(e.buf, int64(v), 10)
	e.buf = append(e.buf, 0)
}

// WriteInt64 appends a decimal integer token.
func (e *Encoder) WriteInt64(v int64) {
	e.buf = strconv.AppendInt(e.buf, v, 10)
	e.buf = append(e.buf, 0)
}

// WriteFloat appends a decimal floating point token using the shortest
// representation that round-trips.
func (e *Encoder) WriteFloat(v float64) {
	e.buf = strconv.AppendFloat(e.buf, v, 'g', -1, 64)
	e.buf = append(e.buf, 0)
}

// WriteBool appends 1 or 0.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteInt(1)
		return
	}
	e.WriteInt(0)
}

// WriteOptInt appends v, or an empty token when v is unset.
func (e *Encoder) WriteOptInt(v Opt[int]) {
	if x, ok := v.Get(); ok {
		e.WriteInt(x)
		return
	}
	e.WriteString("")
}

// WriteOptFloat appends v, or an empty token when v is unset.
func (e *Encoder) WriteOptFloat(v Opt[float64]) {
	if x, ok := v.Get(); ok {
		e.WriteFloat(x)
		return
	}
	e.WriteString("")
}

// WriteTagValues appends the options as a single "tag=value;" token.
func (e *Encoder) WriteTagValues(opts []TagValue) {
	e.WriteString(FormatTagValues(opts))
}

// WriteTagValueList appends a count followed by tag and value pairs.
func (e *Encoder) WriteTagValueList(opts []TagValue) {
	e.WriteInt(len(opts))
	for _, tv := range opts {
		e.WriteString(tv.Tag)
		e.WriteString(tv.Value)
	}
}

// FormatTagValues flattens options into "tag=value;tag=value;".
func FormatTagValues(opts []TagValue) string {
	var sb strings.Builder
	for _, tv := range opts {
		sb.WriteString(tv.Tag)
		sb.WriteByte('=')
		sb.WriteString(tv.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}
