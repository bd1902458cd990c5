package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("With Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		if logger == nil {
			t.Fatal("expected logger to be created")
		}

		logger.Info("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("Nil Writer Defaults To Stderr", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Fatal("expected logger to be created")
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	child := WithLogger(logger, "run", "abc123")
	child.Info("tagged")

	if out := buf.String(); !strings.Contains(out, "abc123") {
		t.Errorf("expected child logger fields in output, got %q", out)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected info to be suppressed at error level, got %q", buf.String())
	}

	logger.Error("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("expected error output, got %q", buf.String())
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if len(id) != 36 {
		t.Errorf("expected 36-character uuid, got %d (%q)", len(id), id)
	}
	if id == GenerateID() {
		t.Error("expected ids to be unique")
	}
}
