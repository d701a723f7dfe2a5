package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantMsg string
		wantCat Category
	}{
		{
			name:    "already connected",
			code:    AlreadyConnected,
			wantMsg: "Already connected.",
			wantCat: CategoryConnection,
		},
		{
			name:    "capability",
			code:    UpdateTWS,
			wantMsg: "The TWS is out of date and must be upgraded.",
			wantCat: CategoryCapability,
		},
		{
			name:    "send failure",
			code:    FailSendReqMkt,
			wantMsg: "Request Market Data Sending Error - ",
			wantCat: CategorySend,
		},
		{
			name:    "unknown code",
			code:    999,
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %d, want %d", err.Code, tt.code)
			}
			if err.ID != NoValidID {
				t.Errorf("ID = %d, want %d", err.ID, NoValidID)
			}
		})
	}
}

func TestClientError_Text(t *testing.T) {
	err := New(NotConnected)
	if got := err.Error(); got != "504: Not connected" {
		t.Errorf("Error() = %q, want %q", got, "504: Not connected")
	}

	err = New(UpdateTWS).WithID(7).WithDetail("  It does not support snapshot market data requests.")
	want := "The TWS is out of date and must be upgraded.  It does not support snapshot market data requests."
	if got := err.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if err.ID != 7 {
		t.Errorf("ID = %d, want 7", err.ID)
	}
}

func TestClientError_Wrap(t *testing.T) {
	cause := fmt.Errorf("write tcp: %w", io.ErrClosedPipe)
	err := New(FailSendOrder).WithID(3).Wrap(cause)

	if !stderrors.Is(err, io.ErrClosedPipe) {
		t.Error("errors.Is() through Wrap = false, want true")
	}
	if err.Detail != cause.Error() {
		t.Errorf("Detail = %q, want %q", err.Detail, cause.Error())
	}

	kept := New(FailSendOrder).WithDetail("kept").Wrap(cause)
	if kept.Detail != "kept" {
		t.Errorf("Detail = %q, want kept", kept.Detail)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, ConnectFail) != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New(UnknownID)
	if got := FromError(orig, ConnectFail); got != orig {
		t.Error("FromError() should return an existing ClientError unchanged")
	}

	got := FromError(io.EOF, ConnectFail)
	if got.Code != ConnectFail || got.Wrapped != io.EOF {
		t.Errorf("FromError() = {%d %v}, want {%d EOF}", got.Code, got.Wrapped, ConnectFail)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("connect: %w", New(ConnectFail))
	if !HasCode(err, ConnectFail) {
		t.Error("HasCode(wrapped, 502) = false, want true")
	}
	if HasCode(err, UpdateTWS) {
		t.Error("HasCode(wrapped, 503) = true, want false")
	}
	if HasCode(io.EOF, ConnectFail) {
		t.Error("HasCode(io.EOF) = true, want false")
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() returned empty")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i] <= codes[i-1] {
			t.Fatalf("codes not ascending at %d: %d after %d", i, codes[i], codes[i-1])
		}
	}
	if codes[0] != AlreadyConnected || codes[len(codes)-1] != FailSendStartAPI {
		t.Errorf("range = %d..%d, want %d..%d", codes[0], codes[len(codes)-1], AlreadyConnected, FailSendStartAPI)
	}
	for _, c := range codes {
		if !IsClientCode(c) {
			t.Errorf("IsClientCode(%d) = false", c)
		}
	}
	if IsClientCode(200) {
		t.Error("IsClientCode(200) = true, want false")
	}
}

func TestSendFailuresHaveSuggestion(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, _ := GetTemplate(code)
		if tmpl.Category == CategorySend && tmpl.Suggestion == "" {
			t.Errorf("code %d: send failure without suggestion", code)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(FailSendReqMkt).WithID(12).Wrap(io.ErrClosedPipe)
	out := err.Format()
	for _, want := range []string{"ERROR 510:", "Request Market Data Sending Error", "id: 12", "closed pipe", "Hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got, want := New(NotConnected).FormatCompact(), "[-1] 504: Not connected"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  int
	}{
		{"", 10, 0},
		{"short", 10, 1},
		{"this is a longer line that wraps", 10, 4},
	}
	for _, tt := range tests {
		if got := wrapText(tt.text, tt.width); len(got) != tt.want {
			t.Errorf("wrapText(%q, %d) = %d lines, want %d", tt.text, tt.width, len(got), tt.want)
		}
	}
}

func TestClientError_WithCause(t *testing.T) {
	sentinel := stderrors.New("not connected")
	err := New(NotConnected).WithCause(sentinel)
	if err.Text() != "Not connected" {
		t.Errorf("Text() = %q, want %q", err.Text(), "Not connected")
	}
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is() = false, want true")
	}
}
