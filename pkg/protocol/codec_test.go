package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
)

// wire joins tokens into a NUL-terminated stream.
func wire(tokens ...any) []byte {
	var b bytes.Buffer
	for _, t := range tokens {
		fmt.Fprint(&b, t)
		b.WriteByte(0)
	}
	return b.Bytes()
}

func decoderFor(tokens ...any) *Decoder {
	return NewDecoder(bytes.NewReader(wire(tokens...)))
}

func TestEncoderTokens(t *testing.T) {
	e := NewEncoder()
	e.WriteInt(42)
	e.WriteInt64(-7)
	e.WriteFloat(1.5)
	e.WriteFloat(100)
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteString("AAPL")
	e.WriteString("")
	e.WriteOptInt(None[int]())
	e.WriteOptInt(Some(0))
	e.WriteOptFloat(None[float64]())
	e.WriteOptFloat(Some(0.25))

	want := "42\x00-7\x001.5\x00100\x001\x000\x00AAPL\x00\x00\x000\x00\x000.25\x00"
	if got := string(e.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
	if e.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", e.Len(), len(want))
	}

	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", e.Len())
	}
}

func TestTagValues(t *testing.T) {
	opts := []TagValue{{Tag: "a", Value: "1"}, {Tag: "b", Value: "x y"}}
	if got := FormatTagValues(opts); got != "a=1;b=x y;" {
		t.Errorf("FormatTagValues() = %q, want %q", got, "a=1;b=x y;")
	}
	if got := FormatTagValues(nil); got != "" {
		t.Errorf("FormatTagValues(nil) = %q, want empty", got)
	}

	e := NewEncoder()
	e.WriteTagValueList(opts)
	if got, want := string(e.Bytes()), "2\x00a\x001\x00b\x00x y\x00"; got != want {
		t.Errorf("WriteTagValueList() = %q, want %q", got, want)
	}
}

func TestDecoderEmptyTokens(t *testing.T) {
	d := decoderFor("", "", "", "", "", "")

	if v, err := d.ReadInt(); err != nil || v != 0 {
		t.Errorf("ReadInt() = %d, %v; want 0, nil", v, err)
	}
	if v, err := d.ReadFloat(); err != nil || v != 0 {
		t.Errorf("ReadFloat() = %v, %v; want 0, nil", v, err)
	}
	if v, err := d.ReadString(); err != nil || v != "" {
		t.Errorf("ReadString() = %q, %v; want empty, nil", v, err)
	}
	if v, err := d.ReadOptInt(); err != nil || v.IsSet() {
		t.Errorf("ReadOptInt() = %v, %v; want unset, nil", v, err)
	}
	if v, err := d.ReadOptFloat(); err != nil || v.IsSet() {
		t.Errorf("ReadOptFloat() = %v, %v; want unset, nil", v, err)
	}
	if v, err := d.ReadBool(); err != nil || v {
		t.Errorf("ReadBool() = %v, %v; want false, nil", v, err)
	}
	if _, err := d.ReadString(); err != io.EOF {
		t.Errorf("ReadString() at end error = %v, want io.EOF", err)
	}
}

func TestDecoderLegacyUnset(t *testing.T) {
	tests := []struct {
		name  string
		token string
		isInt bool
		want  Opt[float64]
	}{
		{"max int", "2147483647", true, None[float64]()},
		{"max double", "1.7976931348623157E308", false, None[float64]()},
		{"zero int", "0", true, Some(0.0)},
		{"negative double", "-1.5", false, Some(-1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decoderFor(tt.token)
			if tt.isInt {
				got, err := d.ReadOptInt()
				if err != nil {
					t.Fatalf("ReadOptInt() error = %v", err)
				}
				w, wantSet := tt.want.Get()
				if g, ok := got.Get(); ok != wantSet || (ok && float64(g) != w) {
					t.Errorf("ReadOptInt() = %v, want %v", got, tt.want)
				}
				return
			}
			got, err := d.ReadOptFloat()
			if err != nil {
				t.Fatalf("ReadOptFloat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadOptFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

// An unset value survives any number of write/read cycles as unset.
func TestOptRoundTripIdempotent(t *testing.T) {
	values := []Opt[float64]{None[float64](), Some(0.0), Some(math.Pi), Some(-3.0)}
	for _, v := range values {
		cur := v
		for i := 0; i < 3; i++ {
			e := NewEncoder()
			e.WriteOptFloat(cur)
			got, err := NewDecoder(bytes.NewReader(e.Bytes())).ReadOptFloat()
			if err != nil {
				t.Fatalf("ReadOptFloat() error = %v", err)
			}
			cur = got
		}
		if cur != v {
			t.Errorf("after round trips = %v, want %v", cur, v)
		}
	}
}

func TestDecoderFieldError(t *testing.T) {
	d := decoderFor("abc")
	_, err := d.ReadInt()
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("ReadInt() error = %v, want *FieldError", err)
	}
	if fe.Kind != "int" || fe.Token != "abc" {
		t.Errorf("FieldError = {%s %q}, want {int \"abc\"}", fe.Kind, fe.Token)
	}
}

func TestDecoderTruncatedToken(t *testing.T) {
	d := NewDecoder(strings.NewReader("12"))
	if _, err := d.ReadInt(); err != io.ErrUnexpectedEOF {
		t.Errorf("ReadInt() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestDecoderTokenTooLong(t *testing.T) {
	big := bytes.Repeat([]byte{'x'}, MaxTokenLength+1)
	d := NewDecoder(io.MultiReader(bytes.NewReader(big), strings.NewReader("\x00")))
	if _, err := d.ReadString(); !errors.Is(err, ErrTokenTooLong) {
		t.Errorf("ReadString() error = %v, want ErrTokenTooLong", err)
	}
}

func TestOptJSON(t *testing.T) {
	tests := []struct {
		in   Opt[int]
		want string
	}{
		{None[int](), "null"},
		{Some(5), "5"},
	}
	for _, tt := range tests {
		b, err := tt.in.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		if string(b) != tt.want {
			t.Errorf("MarshalJSON() = %s, want %s", b, tt.want)
		}
		var back Opt[int]
		if err := back.UnmarshalJSON(b); err != nil {
			t.Fatalf("UnmarshalJSON() error = %v", err)
		}
		if back != tt.in {
			t.Errorf("UnmarshalJSON(%s) = %v, want %v", b, back, tt.in)
		}
	}
}

func TestOptOr(t *testing.T) {
	if got := None[int]().Or(-1); got != -1 {
		t.Errorf("None.Or(-1) = %d, want -1", got)
	}
	if got := Some(3).Or(-1); got != 3 {
		t.Errorf("Some(3).Or(-1) = %d, want 3", got)
	}
}
