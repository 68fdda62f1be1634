package hook

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/dgerlanc/offlimits/internal/audit"
	"github.com/dgerlanc/offlimits/internal/config"
	"github.com/dgerlanc/offlimits/internal/constants"
	"github.com/dgerlanc/offlimits/internal/logger"
)

// Audit log version
const AuditVersion = 1

// Process reads one hook invocation and returns the verdict and reason.
func Process(r io.Reader, rootOverride string) (Verdict, string) {
	result := ProcessWithResult(r, rootOverride)
	return result.Decision.Verdict, result.Decision.Reason
}

// ProcessWithResult reads one JSON payload from the stream, evaluates it,
// and returns a Result with full details. Malformed input passes through:
// the gate only has opinions about inputs it understands, except that
// sensitive-looking input it fails to evaluate is denied (fail closed).
func ProcessWithResult(r io.Reader, rootOverride string) Result {
	startTime := time.Now()

	rawBytes, err := io.ReadAll(r)
	if err != nil {
		logger.Debug("failed to read input", "error", err)
		d := Decision{Verdict: PassThrough, Reason: "failed to read input"}
		return Result{Decision: d, Output: FormatDecision(d)}
	}

	var input Input
	if err := json.Unmarshal(rawBytes, &input); err != nil {
		logger.Debug("failed to decode input", "error", err)
		d := Decision{Verdict: PassThrough, Reason: "invalid input"}
		return Result{Decision: d, Output: FormatDecision(d)}
	}

	root := projectRoot(rootOverride, input.Cwd)
	logger.Debug("processing invocation",
		"tool", input.ToolName,
		"root", root,
		"file_path", input.ToolInput.FilePath,
		"command", input.ToolInput.Command)

	engine := NewEngine(root)
	decision := engine.safeEvaluate(input.ToolName, input.ToolInput)
	output := FormatDecision(decision)

	durationMs := float64(time.Since(startTime).Microseconds()) / 1000.0
	logAudit(input, decision, engine.Candidates(), durationMs, output)

	return Result{Tool: input.ToolName, Decision: decision, Output: output}
}

// projectRoot picks the root candidate paths resolve against: an explicit
// override wins, then the env var, then the cwd the host reported, then
// the process working directory.
func projectRoot(override, cwd string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(constants.EnvRoot); env != "" {
		return env
	}
	if cwd != "" {
		return cwd
	}
	wd, err := os.Getwd()
	if err != nil {
		return "/"
	}
	return wd
}

// logAudit logs a decision to the audit log.
func logAudit(input Input, d Decision, candidates []audit.Candidate, durationMs float64, rawOutput string) {
	var configError string
	if err := config.InitError(); err != nil {
		configError = err.Error()
	}
	audit.Log(audit.Entry{
		Version:     AuditVersion,
		SessionID:   input.SessionID,
		ToolUseID:   input.ToolUseID,
		Tool:        input.ToolName,
		Command:     input.ToolInput.Command,
		FilePath:    input.ToolInput.FilePath,
		Decision:    decisionCode(d.Verdict),
		Reason:      d.Reason,
		Candidates:  candidates,
		DurationMs:  durationMs,
		Cwd:         input.Cwd,
		Output:      rawOutput,
		ConfigPath:  config.GetConfigPath(),
		ConfigError: configError,
	})
}

func decisionCode(v Verdict) string {
	switch v {
	case Allow:
		return audit.CodeAllow
	case Deny:
		return audit.CodeDeny
	default:
		return audit.CodePassThrough
	}
}
