package protocol

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestWriteClientVersion(t *testing.T) {
	var b bytes.Buffer
	if err := WriteClientVersion(&b); err != nil {
		t.Fatalf("WriteClientVersion() error = %v", err)
	}
	if got, want := b.String(), "63\x00"; got != want {
		t.Errorf("WriteClientVersion() = %q, want %q", got, want)
	}
}

func TestReadServerHello(t *testing.T) {
	tests := []struct {
		name    string
		toks    []any
		want    ServerHello
		tooOld  bool
		wantErr bool
	}{
		{
			name: "with time",
			toks: []any{63, "20261017 09:30:00 EST"},
			want: ServerHello{Version: 63, Time: "20261017 09:30:00 EST"},
		},
		{
			name:   "below time support",
			toks:   []any{19},
			want:   ServerHello{Version: 19},
			tooOld: true,
		},
		{
			name:   "below minimum with time",
			toks:   []any{37, "t"},
			want:   ServerHello{Version: 37, Time: "t"},
			tooOld: true,
		},
		{
			name: "at minimum",
			toks: []any{38, "t"},
			want: ServerHello{Version: 38, Time: "t"},
		},
		{
			name:    "bad version",
			toks:    []any{"v63"},
			want:    ServerHello{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadServerHello(decoderFor(tt.toks...))
			if got != tt.want {
				t.Errorf("ReadServerHello() = %+v, want %+v", got, tt.want)
			}
			if tt.tooOld != errors.Is(err, ErrServerTooOld) {
				t.Errorf("ReadServerHello() error = %v, want ErrServerTooOld = %v", err, tt.tooOld)
			}
			if tt.wantErr && err == nil {
				t.Error("ReadServerHello() error = nil, want error")
			}
			if !tt.tooOld && !tt.wantErr && err != nil {
				t.Errorf("ReadServerHello() error = %v", err)
			}
		})
	}
}

func TestEncodeClientID(t *testing.T) {
	tests := []struct {
		name      string
		sv        int
		extraAuth bool
		wrote     bool
		want      []string
	}{
		{"before client ids", 2, false, false, nil},
		{"bare id", 63, false, true, []string{"12"}},
		{"bare id ignores extra auth", 63, true, true, []string{"12"}},
		{"start api", 70, false, true, []string{"71", "1", "12"}},
		{"deferred start api", 70, true, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			if got := EncodeClientID(e, tt.sv, 12, tt.extraAuth); got != tt.wrote {
				t.Errorf("EncodeClientID() = %v, want %v", got, tt.wrote)
			}
			if got := tokens(e.Bytes()); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokens = %q, want %q", got, tt.want)
			}
		})
	}
}
