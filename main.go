// offlimits - Claude Code PreToolUse Hook for Sensitive File Protection
//
// This hook denies tool calls that would read or write sensitive files
// (credentials, keys, cloud config, production databases), including
// indirect access through the Bash tool:
//
//	IGNORE FILES (.agentignore, .cursorignore, ...) or BUILT-IN DEFAULTS
//	  → pattern store → path resolution → allow/deny decision
//
// Usage in ~/.claude/settings.json:
//
//	"hooks": {
//	  "PreToolUse": [{
//	    "matcher": "Read|Write|Edit|MultiEdit|Bash",
//	    "hooks": [{"type": "command", "command": "offlimits"}]
//	  }]
//	}
//
// Test:
//
//	echo '{"tool_name": "Read", "tool_input": {"file_path": ".env"}}' | offlimits
package main

import (
	"os"

	"github.com/dgerlanc/offlimits/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
