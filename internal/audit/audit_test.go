package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	if err := Init(path, 0, false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer Reset()

	err := Log(Entry{
		Version:   1,
		SessionID: "s1",
		Tool:      "Bash",
		Command:   "cat .env",
		Decision:  CodeDeny,
		Reason:    "matches protected pattern",
		Candidates: []Candidate{
			{Raw: ".env", Relative: ".env", Protected: true, Pattern: ".env*", Source: "builtin:env"},
		},
	})
	if err != nil {
		t.Fatalf("Log() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(string(data))

	var entry Entry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("audit line is not valid JSON: %v", err)
	}
	if entry.Decision != CodeDeny {
		t.Errorf("Decision = %q, want %q", entry.Decision, CodeDeny)
	}
	if entry.Timestamp == "" {
		t.Error("Timestamp not stamped")
	}
	if len(entry.Candidates) != 1 || entry.Candidates[0].Pattern != ".env*" {
		t.Errorf("Candidates = %+v", entry.Candidates)
	}
}

func TestLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	if err := Init(path, 0, false); err != nil {
		t.Fatal(err)
	}
	defer Reset()

	for i := 0; i < 3; i++ {
		if err := Log(Entry{Version: 1, Decision: CodeAllow}); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("log has %d lines, want 3", len(lines))
	}
}

func TestDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	if err := Init(path, 0, true); err != nil {
		t.Fatal(err)
	}
	defer Reset()

	if IsEnabled() {
		t.Error("IsEnabled() = true with disable set")
	}
	if err := Log(Entry{Version: 1}); err != nil {
		t.Errorf("Log() on disabled audit = %v, want nil", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled audit still created the log file")
	}
}

func TestLogWithoutInit(t *testing.T) {
	Reset()
	if err := Log(Entry{Version: 1}); err != nil {
		t.Errorf("Log() without Init = %v, want nil no-op", err)
	}
}

func TestInitCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "audit.log")
	if err := Init(path, 0, false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer Reset()

	if err := Log(Entry{Version: 1, Decision: CodePassThrough}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
