// Package constants defines shared constants used across the offlimits codebase.
package constants

import "os"

// File permissions
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

// Environment variables
const (
	EnvConfigDir = "OFFLIMITS_CONFIG"
	EnvRoot      = "OFFLIMITS_ROOT"
)

// Application paths
const (
	AppName            = "offlimits"
	XDGConfigSubdir    = ".config"
	ClaudeConfigDir    = ".claude"
	ClaudeSettingsFile = "settings.json"
	ConfigFileName     = "config.toml"
	PolicyFileName     = ".offlimits.yaml"
)
