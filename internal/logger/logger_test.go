package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugfRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug line written while quiet: %q", buf.String())
	}

	l.SetVerbose(true)
	l.Debugf("shown %d", 2)
	if !strings.Contains(buf.String(), "DEBUG shown 2") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.SetFlags(0)
	l.Errorf("worker %d failed", 3)
	if got := buf.String(); got != "ERROR worker 3 failed\n" {
		t.Errorf("output = %q", got)
	}
}
