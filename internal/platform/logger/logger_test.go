package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

var fixedNow = func() time.Time { return time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC) }

func TestLogger_JSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "symptom-drift", Out: &buf, Now: fixedNow})

	l.Info("assessment computed", map[string]any{"patient_id": "p-1", "score": 58.48, "msg": "ignored"})
	l.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], `{"ts":"2026-07-15T12:00:00Z","level":"info","msg":"assessment computed","app":"symptom-drift",`) {
		t.Fatalf("unexpected key order %q", lines[0])
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json line: %v", err)
	}
	if entry["patient_id"] != "p-1" || entry["score"] != 58.48 || entry["msg"] != "assessment computed" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestLogger_TextLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Out: &buf, Now: fixedNow})

	l.Warn("history rejected", map[string]any{"rows": 2, "error": "row 1: bad severity"})

	want := `ts=2026-07-15T12:00:00Z level=warn msg="history rejected" error="row 1: bad severity" rows=2`
	if got := strings.TrimSpace(buf.String()); got != want {
		t.Fatalf("unexpected text line\n got: %s\nwant: %s", got, want)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing", map[string]any{"x": 1})
}

func TestParseLevelAndFormat(t *testing.T) {
	cases := map[string]Level{"WARNING": Warn, "debug": Debug, " error ": Error, "nope": Info, "": Info}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}
