package protocol

import (
	"errors"
	"fmt"
	"io"
)

// ErrServerTooOld is returned by ReadServerHello when the server version is
// below MinServerVersion.
var ErrServerTooOld = errors.New("protocol: server version too old")

// ServerHello is the server's reply to the client version token.
type ServerHello struct {
	// Version is the negotiated server version; every gate is evaluated
	// against it for the life of the connection.
	Version int
	// Time is the server's local time at connect, "" below version 20.
	Time string
}

// WriteClientVersion sends the bare client version token that opens a
// session.
func WriteClientVersion(w io.Writer) error {
	e := NewEncoder()
	e.WriteInt(ClientVersion)
	_, err := w.Write(e.Bytes())
	return err
}

// ReadServerHello reads the server version and, when the server sends it,
// the connection time. A server below MinServerVersion yields the hello
// together with an error wrapping ErrServerTooOld.
func ReadServerHello(d *Decoder) (ServerHello, error) {
	var h ServerHello
	v, err := d.ReadInt()
	if err != nil {
		return h, fmt.Errorf("read server version: %w", err)
	}
	h.Version = v
	if Supports(v, FeatureServerTime) {
		if h.Time, err = d.ReadString(); err != nil {
			return h, fmt.Errorf("read server time: %w", err)
		}
	}
	if v < MinServerVersion {
		return h, fmt.Errorf("%w: %d < %d", ErrServerTooOld, v, MinServerVersion)
	}
	return h, nil
}

// EncodeClientID writes the client identification that follows a
// successful hello. Older servers take a bare client id; servers with
// linking support take START_API, which is deferred when extraAuth is set
// until the verify exchange completes. It reports whether anything was
// written.
func EncodeClientID(e *Encoder, serverVersion, clientID int, extraAuth bool) bool {
	switch {
	case !Supports(serverVersion, FeatureClientID):
		return false
	case !Supports(serverVersion, FeatureLinking):
		e.WriteInt(clientID)
		return true
	case extraAuth:
		return false
	default:
		(&StartAPI{ClientID: clientID}).Encode(e, serverVersion)
		return true
	}
}
