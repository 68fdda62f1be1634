// Package hook implements the core access-control decision gate for
// offlimits: it orchestrates candidate extraction, path resolution, and
// pattern testing per tool invocation.
package hook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgerlanc/offlimits/internal/audit"
	"github.com/dgerlanc/offlimits/internal/config"
	"github.com/dgerlanc/offlimits/internal/ignore"
	"github.com/dgerlanc/offlimits/internal/logger"
	"github.com/dgerlanc/offlimits/internal/paths"
	"github.com/dgerlanc/offlimits/internal/shell"
)

// Tool names covered by the gate
const (
	ToolNameRead      = "Read"
	ToolNameWrite     = "Write"
	ToolNameEdit      = "Edit"
	ToolNameMultiEdit = "MultiEdit"
	ToolNameBash      = "Bash"
)

// Hook event names
const EventPreToolUse = "PreToolUse"

// Engine evaluates tool invocations against a pattern store compiled for
// one project root. It holds no state across invocations: the process is
// one-shot per tool call, so every Engine is built fresh.
type Engine struct {
	Root       string
	store      *ignore.Store
	defaults   *ignore.Store
	analyzer   *shell.Analyzer
	candidates []audit.Candidate
}

// NewEngine compiles the pattern store for root: discovered ignore files
// plus the project policy file, or the builtin default set when the
// project defines nothing.
func NewEngine(root string) *Engine {
	cfg := config.Get()

	defaults := ignore.Compile(cfg.DefaultSources())
	defaults.MarkDefaults()

	sources := ignore.Discover(root, cfg.Settings.IgnoreFiles)
	if policy, found := ignore.LoadPolicy(root, cfg.Settings.PolicyFile); found {
		sources = append(sources, policy)
	}

	store := defaults
	if compiled := ignore.Compile(sources); compiled.Len() > 0 {
		store = compiled
	}
	logger.Debug("pattern store compiled",
		"root", root,
		"patterns", store.Len(),
		"builtin", store.FromDefaults())

	return &Engine{
		Root:     root,
		store:    store,
		defaults: defaults,
		analyzer: shell.NewAnalyzer(),
	}
}

// Store exposes the compiled pattern store (validate command, tests).
func (e *Engine) Store() *ignore.Store {
	return e.store
}

// Candidates returns the per-path detail of the last Evaluate call, for
// audit logging.
func (e *Engine) Candidates() []audit.Candidate {
	return e.candidates
}

// Evaluate decides one tool invocation. Direct file tools contribute
// their file_path; Bash contributes whatever the analyzer extracts; any
// other tool passes through.
func (e *Engine) Evaluate(toolName string, in ToolInputData) Decision {
	e.candidates = nil

	switch toolName {
	case ToolNameRead, ToolNameWrite, ToolNameEdit, ToolNameMultiEdit:
		if in.FilePath == "" {
			return Decision{Verdict: PassThrough, Reason: "no file path"}
		}
		return e.evaluatePaths([]string{in.FilePath}, nil)

	case ToolNameBash:
		if strings.TrimSpace(in.Command) == "" {
			return Decision{Verdict: PassThrough, Reason: "empty command"}
		}
		res := e.analyzer.Analyze(in.Command)
		return e.evaluatePaths(res.FileOperands(), res.Incomplete)

	default:
		return Decision{Verdict: PassThrough, Reason: "tool not covered"}
	}
}

// evaluatePaths resolves and tests each candidate in turn. The first
// protected or escaping candidate short-circuits to Deny; an extraction
// marked incomplete denies even when every visible candidate is clean.
func (e *Engine) evaluatePaths(candidates []string, incomplete []string) Decision {
	for _, raw := range candidates {
		r := paths.Resolve(raw, e.Root)
		cand := audit.Candidate{
			Raw:      raw,
			Relative: r.Relative,
			Escaped:  r.Escaped,
			Outside:  r.Outside,
		}

		if r.Escaped {
			cand.Protected = true
			e.candidates = append(e.candidates, cand)
			return Decision{
				Verdict: Deny,
				Reason:  fmt.Sprintf("path traversal: %q escapes the project root", raw),
			}
		}

		var m ignore.Match
		if r.Outside {
			m = e.store.TestBasename(r.Relative)
		} else {
			m = e.store.Test(r.Relative)
		}
		cand.Protected = m.Protected
		cand.Pattern = m.Pattern
		cand.Source = m.Source
		e.candidates = append(e.candidates, cand)

		if m.Protected {
			return Decision{
				Verdict: Deny,
				Reason:  fmt.Sprintf("%q matches protected pattern %q from %s", raw, m.Pattern, m.Source),
				Pattern: m.Pattern,
				Source:  m.Source,
			}
		}
	}

	if len(incomplete) > 0 {
		return Decision{
			Verdict: Deny,
			Reason:  "cannot verify file access: " + strings.Join(incomplete, "; "),
		}
	}

	return Decision{Verdict: Allow}
}

// safeEvaluate wraps Evaluate so the hook never crashes. On panic, input
// tokens that lexically match a builtin default pattern deny (fail
// closed); anything else passes through.
func (e *Engine) safeEvaluate(toolName string, in ToolInputData) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic during evaluation", "panic", r, "tool", toolName)
			d = e.failClosed(in)
		}
	}()
	return e.Evaluate(toolName, in)
}

// failClosed is the last-resort check after an internal failure: scan the
// raw input tokens against the builtin basename patterns and deny on any
// sensitive-looking hit.
func (e *Engine) failClosed(in ToolInputData) Decision {
	raw := in.FilePath + " " + in.Command
	for _, tok := range strings.Fields(raw) {
		base := filepath.Base(strings.Trim(tok, `"'`))
		if m := e.defaults.TestBasename(base); m.Protected {
			return Decision{
				Verdict: Deny,
				Reason:  fmt.Sprintf("evaluation failed and %q matches protected pattern %q", base, m.Pattern),
				Pattern: m.Pattern,
				Source:  m.Source,
			}
		}
	}
	return Decision{Verdict: PassThrough, Reason: "evaluation failed"}
}
