package hook

/*
Type Relationships in the hook package:

Data Flow:
  Input (JSON from Claude Code)
    → ProcessWithResult()
      → Engine.Evaluate()
        → shell.Analyzer.Analyze() → candidate paths (Bash tool only)
        → paths.Resolve() → contained relative path
        → ignore.Store.Test() → protected / unprotected
    → Decision
    → Result (returned to caller)
    → Output (JSON to Claude Code)

Related packages:
  - config.Config: ignore-file names, builtin pattern categories, settings
  - ignore.Store: ordered gitignore-style pattern evaluation
  - paths: project-root containment and symlink resolution
  - shell.Analyzer: static file-operand extraction from Bash commands
  - audit.Entry: logged for each decision with per-candidate details
*/

// Input represents the JSON input received from Claude Code's PreToolUse
// hook. This is the entry point for access-control decisions.
//
// See: https://docs.anthropic.com/en/docs/claude-code/hooks
type Input struct {
	SessionID      string        `json:"session_id"`
	TranscriptPath string        `json:"transcript_path"`
	Cwd            string        `json:"cwd"`
	PermissionMode string        `json:"permission_mode"`
	HookEventName  string        `json:"hook_event_name"`
	ToolName       string        `json:"tool_name"`
	ToolInput      ToolInputData `json:"tool_input"`
	ToolUseID      string        `json:"tool_use_id"`
}

// ToolInputData contains the fields of tool_input the gate inspects:
// file_path for the direct file tools, command for Bash.
type ToolInputData struct {
	FilePath    string `json:"file_path,omitempty"`
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Timeout     int    `json:"timeout,omitempty"`
}

// Output represents the JSON response sent back to Claude Code.
// PermissionDecision is "allow" or "deny"; it is omitted entirely on
// pass-through so the host applies its own default policy.
type Output struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision,omitempty"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
}

// Verdict is the tri-state outcome of evaluating one tool invocation.
type Verdict int

const (
	// PassThrough means the gate has no opinion (unsupported tool or
	// missing input); the host decides.
	PassThrough Verdict = iota
	// Allow means every candidate path tested unprotected.
	Allow
	// Deny means a candidate matched a protected pattern, escaped the
	// project root, or could not be verified.
	Deny
)

// Decision is the outcome of one evaluation, with enough detail to
// explain and audit it.
type Decision struct {
	Verdict Verdict
	Reason  string
	Pattern string // protecting glob, when a pattern match caused a Deny
	Source  string // label of the pattern's source
}

// Result contains the outcome of processing one hook invocation.
// Returned by ProcessWithResult() for use by the caller.
type Result struct {
	Tool     string   // tool name from the input
	Decision Decision // the computed decision
	Output   string   // JSON output string sent to Claude Code
}
