// Package audit provides audit logging for offlimits access decisions.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgerlanc/offlimits/internal/constants"
	"github.com/dgerlanc/offlimits/internal/logger"
)

// Decision codes recorded per entry
const (
	CodeAllow       = "ALLOW"
	CodeDeny        = "DENY"
	CodePassThrough = "PASS_THROUGH"
)

// TimestampFormat is the format used for audit log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.0Z07:00"

// Entry represents a single audit log entry (v1 format).
type Entry struct {
	Version     int         `json:"version"`
	ToolUseID   string      `json:"tool_use_id"`
	SessionID   string      `json:"session_id"`
	Timestamp   string      `json:"timestamp"`
	DurationMs  float64     `json:"duration_ms"`
	Tool        string      `json:"tool"`
	Command     string      `json:"command,omitempty"`
	FilePath    string      `json:"file_path,omitempty"`
	Decision    string      `json:"decision"`
	Reason      string      `json:"reason,omitempty"`
	Candidates  []Candidate `json:"candidates,omitempty"`
	Cwd         string      `json:"cwd"`
	Output      string      `json:"output"`
	ConfigPath  string      `json:"config_path,omitempty"`
	ConfigError string      `json:"config_error,omitempty"`
}

// Candidate records how one extracted path fared against the store.
type Candidate struct {
	Raw       string `json:"raw"`
	Relative  string `json:"relative"`
	Escaped   bool   `json:"escaped,omitempty"`
	Outside   bool   `json:"outside,omitempty"`
	Protected bool   `json:"protected,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Source    string `json:"source,omitempty"`
}

var (
	auditFile *os.File
	mu        sync.Mutex
	enabled   bool
)

// DefaultLogPath returns the default audit log path
// (~/.local/share/offlimits/audit.log)
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", constants.AppName, "audit.log"), nil
}

// Init initializes the audit log. If path is empty, uses the default path.
// A log larger than maxBytes is rotated and compressed first; pass 0 to
// keep the built-in limit.
func Init(path string, maxBytes int64, disable bool) error {
	mu.Lock()
	defer mu.Unlock()

	if disable {
		enabled = false
		return nil
	}

	if path == "" {
		var err error
		path, err = DefaultLogPath()
		if err != nil {
			logger.Debug("failed to get default audit log path", "error", err)
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirMode); err != nil {
		logger.Debug("failed to create audit log directory", "error", err)
		return err
	}

	if err := maybeRotate(path, maxBytes); err != nil {
		// rotation failure is not fatal; keep appending
		logger.Debug("audit log rotation failed", "error", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		logger.Debug("failed to open audit log file", "error", err)
		return err
	}

	auditFile = f
	enabled = true
	logger.Debug("audit logging initialized", "path", path)
	return nil
}

// Close closes the audit log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if auditFile != nil {
		err := auditFile.Close()
		auditFile = nil
		enabled = false
		return err
	}
	return nil
}

// Log writes an entry to the audit log.
// If audit logging is not initialized or disabled, this is a no-op.
func Log(entry Entry) error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || auditFile == nil {
		return nil
	}

	entry.Timestamp = time.Now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Debug("failed to marshal audit entry", "error", err)
		return err
	}

	if _, err := auditFile.Write(append(data, '\n')); err != nil {
		logger.Debug("failed to write audit entry", "error", err)
		return err
	}

	return nil
}

// IsEnabled returns whether audit logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Reset resets the audit state. Used for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if auditFile != nil {
		auditFile.Close()
	}
	auditFile = nil
	enabled = false
}
