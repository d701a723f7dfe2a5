// Package protocol implements the text field wire protocol spoken by the
// trading gateway (TWS and IB Gateway).
//
// The package is the codec and version negotiation layer only. It does not
// own a connection; package client drives it over a net.Conn.
//
// # Wire Format
//
// The stream is a sequence of NUL-terminated text tokens. There is no
// length prefix and no message delimiter; the receiver knows how many
// tokens to read from the message tag, the message version and the
// negotiated server version.
//
//	┌─────────┬──────────────┬──────────┬─────┬──────────┐
//	│ tag \0  │ version \0   │ field \0 │ ... │ field \0 │
//	└─────────┴──────────────┴──────────┴─────┴──────────┘
//
// Integers and doubles travel as decimal text, booleans as "0" or "1". An
// empty token is a valid value: the empty string, or an unset optional
// number.
//
// # Handshake
//
// The client sends its version as one bare token. The server answers with
// its own version and, from version 20, its local time. Every later
// decision about which fields to send or expect is made against that
// server version.
//
// # Version Gates
//
// Field presence is declared in a single table (see Feature and Gate)
// rather than scattered through the encoders. A gate holds against the
// server version, against the version carried by an inbound message, or,
// for a few historical quirks, only at one exact server version.
//
// # Optional Numbers
//
// Opt[T] represents a number that may be absent. Older servers marked
// absence with the type's maximum value; the decoder folds that form into
// an unset Opt so callers never compare against it.
//
// # Inbound Dispatch
//
// Dispatcher reads one message per call to Next and delivers it to a Sink.
// A message is decoded completely before any event for it is delivered, so
// a truncated stream never produces a partial record.
package protocol
