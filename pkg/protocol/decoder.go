package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// MaxTokenLength bounds a single inbound token. Report payloads (fundamental
// data, FA configuration, scanner parameters) are the largest tokens the
// gateway sends.
const MaxTokenLength = 16 * 1024 * 1024

// Common decoding errors.
var (
	ErrTokenTooLong   = errors.New("protocol: token exceeds limit")
	ErrUnknownMessage = errors.New("protocol: unknown message id")
)

// FieldError reports a token that could not be parsed as the expected type.
type FieldError struct {
	Kind  string
	Token string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("protocol: invalid %s token %q: %v", e.Kind, e.Token, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Decoder reads NUL-terminated tokens from a stream.
type Decoder struct {
	r   *bufio.Reader
	tok []byte
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}
	return &Decoder{r: br}
}

// readToken returns the next token without its terminator. The slice is
// only valid until the next read.
func (d *Decoder) readToken() ([]byte, error) {
	d.tok = d.tok[:0]
	for {
		chunk, err := d.r.ReadSlice(0)
		if err == nil {
			d.tok = append(d.tok, chunk[:len(chunk)-1]...)
			return d.tok, nil
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			d.tok = append(d.tok, chunk...)
			if len(d.tok) > MaxTokenLength {
				return nil, ErrTokenTooLong
			}
			continue
		}
		if errors.Is(err, io.EOF) && (len(d.tok) > 0 || len(chunk) > 0) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
}

// ReadString reads a string token. An empty token is null and returned as "".
func (d *Decoder) ReadString() (string, error) {
	tok, err := d.readToken()
	if err != nil {
		return "", err
	}
	return string(tok), nil
}

// ReadInt reads an integer token; an empty token is 0.
func (d *Decoder) ReadInt() (int, error) {
	tok, err := d.readToken()
	if err != nil {
		return 0, err
	}
	if len(tok) == 0 {
		return 0, nil
	}
	v, err := strconv.Atoi(string(tok))
	if err != nil {
		return 0, &FieldError{Kind: "int", Token: string(tok), Err: err}
	}
	return v, nil
}

// ReadInt64 reads a long integer token; an empty token is 0.
func (d *Decoder) ReadInt64() (int64, error) {
	tok, err := d.readToken()
	if err != nil {
		return 0, err
	}
	if len(tok) == 0 {
		return 0, nil
	}
	v, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return 0, &FieldError{Kind: "long", Token: string(tok), Err: err}
	}
	return v, nil
}

// ReadFloat reads a floating point token; an empty token is 0.
func (d *Decoder) ReadFloat() (float64, error) {
	tok, err := d.readToken()
	if err != nil {
		return 0, err
	}
	if len(tok) == 0 {
		return 0, nil
	}
	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return 0, &FieldError{Kind: "double", Token: string(tok), Err: err}
	}
	return v, nil
}

// ReadBool reads an integer token and reports whether it is non-zero.
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadInt()
	return v != 0, err
}

// ReadOptInt reads an integer whose empty token means unset.
func (d *Decoder) ReadOptInt() (Opt[int], error) {
	tok, err := d.readToken()
	if err != nil || len(tok) == 0 {
		return Opt[int]{}, err
	}
	v, err := strconv.Atoi(string(tok))
	if err != nil {
		return Opt[int]{}, &FieldError{Kind: "int", Token: string(tok), Err: err}
	}
	if isLegacyUnset(v) {
		return Opt[int]{}, nil
	}
	return Some(v), nil
}

// ReadOptFloat reads a double whose empty token means unset.
func (d *Decoder) ReadOptFloat() (Opt[float64], error) {
	tok, err := d.readToken()
	if err != nil || len(tok) == 0 {
		return Opt[float64]{}, err
	}
	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return Opt[float64]{}, &FieldError{Kind: "double", Token: string(tok), Err: err}
	}
	if isLegacyUnset(v) {
		return Opt[float64]{}, nil
	}
	return Some(v), nil
}
