package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E120",
			wantMsg: "Invalid sonner.json",
			wantCat: CategoryConfig,
		},
		{
			name:    "script error",
			code:    "E151",
			wantMsg: "Unknown replay operation",
			wantCat: CategoryScript,
		},
		{
			name:    "server error",
			code:    "E160",
			wantMsg: "Server failed",
			wantCat: CategoryServer,
		},
		{
			name:    "unknown error code",
			code:    "E999",
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
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestSonnerError_Error(t *testing.T) {
	err := New("E141")
	got := err.Error()
	want := "E141: Configuration file not found"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &SonnerError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestSonnerError_Builders(t *testing.T) {
	err := New("E122").
		WithDetail("port must be between 0 and 65535").
		WithSuggestion("Set server.addr to a valid host:port")

	if err.Detail != "port must be between 0 and 65535" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "Set server.addr to a valid host:port" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestSonnerError_Wrap(t *testing.T) {
	inner := fmt.Errorf("read failed")
	outer := New("E150").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E160") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	se := New("E120")
	if FromError(se, "E160") != se {
		t.Error("FromError should return SonnerError as-is")
	}

	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "E160")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != "E160" {
		t.Errorf("Code = %q, want E160", result.Code)
	}

	wrapped := fmt.Errorf("step 2: %w", se)
	if FromError(wrapped, "E160") != se {
		t.Error("FromError should find a SonnerError through wrapping")
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("loading: %w", New("E141"))

	if !HasCode(err, "E141") {
		t.Error("HasCode should find code through wrapping")
	}
	if HasCode(err, "E120") {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(nil, "E141") {
		t.Error("HasCode(nil) should be false")
	}
}

func TestFormat(t *testing.T) {
	SetColors(false)
	defer SetColors(true)

	err := New("E150").
		Wrap(fmt.Errorf("yaml: line 3: mapping values are not allowed")).
		WithSuggestion("Check the indentation of steps.yaml")

	formatted := err.Format()

	for _, want := range []string{
		"ERROR E150: Invalid replay script",
		"could not be read or parsed",
		"Cause: yaml: line 3",
		"Hint: Check the indentation",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	compact := New("E141").FormatCompact()

	want := "E141: Configuration file not found"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}

	compact = New("E160").Wrap(fmt.Errorf("address in use")).FormatCompact()
	want = "E160: Server failed: address in use"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}
}

func TestFormatJSON(t *testing.T) {
	json := New("E120").WithSuggestion("fix it").FormatJSON()

	if !strings.Contains(json, `"code":"E120"`) {
		t.Error("JSON should contain code")
	}
	if !strings.Contains(json, `"category":"config"`) {
		t.Error("JSON should contain category")
	}
	if !strings.Contains(json, `"message":"Invalid sonner.json"`) {
		t.Error("JSON should contain message")
	}
	if !strings.Contains(json, `"suggestion":"fix it"`) {
		t.Error("JSON should contain suggestion")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	SetColors(true)
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	SetColors(false)
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	SetColors(true)
}

func TestWrite(t *testing.T) {
	SetColors(false)
	defer SetColors(true)

	tests := []struct {
		name  string
		err   error
		style string
		want  string
	}{
		{"text", New("E141"), StyleText, "ERROR E141: Configuration file not found"},
		{"unknown style", New("E141"), "fancy", "ERROR E141: Configuration file not found"},
		{"compact", New("E150").Wrap(fmt.Errorf("eof")), StyleCompact, "E150: Invalid replay script: eof\n"},
		{"json", New("E151"), StyleJSON, `"code":"E151"`},
		{"plain error", fmt.Errorf("accepts 1 arg(s)"), StyleCompact, "E140: Command failed: accepts 1 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			Write(&b, tt.err, tt.style)
			if !strings.Contains(b.String(), tt.want) {
				t.Errorf("Write() = %q, want it to contain %q", b.String(), tt.want)
			}
			if strings.Contains(b.String(), "\033[") {
				t.Errorf("Write() = %q, want no ANSI codes", b.String())
			}
		})
	}

	var b strings.Builder
	Write(&b, nil, StyleText)
	if b.Len() != 0 {
		t.Errorf("Write(nil) = %q, want nothing", b.String())
	}
}
