package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitVerbose(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Verbose: true, Output: &buf})

	if !IsVerbose() {
		t.Error("IsVerbose() = false after verbose Init")
	}

	Debug("debug message", "key", "value")
	out := buf.String()
	if !strings.Contains(out, "debug message") {
		t.Errorf("debug output missing: %q", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("attribute missing: %q", out)
	}
}

func TestInitQuiet(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Verbose: false, Output: &buf})

	Debug("hidden")
	Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("sub-error output emitted in quiet mode: %q", buf.String())
	}

	Error("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("error output missing: %q", buf.String())
	}
}

func TestInitOnce(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Verbose: true, Output: &first})
	Init(Options{Verbose: true, Output: &second})

	Debug("routed")
	if first.Len() == 0 {
		t.Error("first Init's output not used")
	}
	if second.Len() != 0 {
		t.Error("second Init took effect")
	}
}

func TestJSONHandler(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Verbose: true, Output: &buf, JSON: true})

	Debug("structured", "n", 1)
	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Errorf("JSON output expected, got %q", out)
	}
	if !strings.Contains(out, `"msg":"structured"`) {
		t.Errorf("msg field missing: %q", out)
	}
}

func TestLogWithoutInit(t *testing.T) {
	Reset()
	defer Reset()

	// must not panic before Init
	Debug("noop")
	Error("noop")
}
