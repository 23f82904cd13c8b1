package shared

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Error("expected unique ids")
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("expected a uuid, got %q", a)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("nil writer falls back to stderr", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Fatal("expected a logger")
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if logger == nil {
		t.Fatal("expected a logger")
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]int{"completed": 3, "total": 20}

	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if bytes.Contains(data, []byte("\n")) {
			t.Errorf("compact output should be one line: %q", data)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		data, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !bytes.Contains(data, []byte("\n  ")) {
			t.Errorf("pretty output should be indented: %q", data)
		}

		var decoded map[string]int
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("pretty output should stay valid JSON: %v", err)
		}
		if decoded["total"] != 20 {
			t.Errorf("round-trip mismatch: %v", decoded)
		}
	})
}
