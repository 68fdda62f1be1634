// Package shell statically extracts candidate file-path operands from an
// unexecuted shell command string. It never runs the command, expands
// globs, or touches the filesystem: everything is recovered lexically
// from the parsed AST, with a conservative token scan as the fallback
// when the command does not parse.
package shell

import (
	"sort"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Role classifies an extracted operand.
type Role int

const (
	RoleFile Role = iota
	RoleFlag
	RoleLiteral
	RoleRedirect
)

// Operand is a token recovered from the command and its classification.
type Operand struct {
	Value string
	Role  Role
}

// Result is the outcome of analyzing one command string.
type Result struct {
	// Operands holds every classified token, in extraction order.
	Operands []Operand
	// Incomplete lists reasons extraction could not account for all
	// file access (currently only xargs fed from a pipe). Callers
	// fail closed on a non-empty list.
	Incomplete []string
}

// FileOperands returns the de-duplicated, sorted file and redirect-target
// operand values.
func (r Result) FileOperands() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, op := range r.Operands {
		if op.Role != RoleFile && op.Role != RoleRedirect {
			continue
		}
		if op.Value == "" {
			continue
		}
		if _, dup := seen[op.Value]; dup {
			continue
		}
		seen[op.Value] = struct{}{}
		out = append(out, op.Value)
	}
	sort.Strings(out)
	return out
}

// Analyzer extracts file operands using a declarative per-command table.
type Analyzer struct {
	table map[string]*Rule
}

// NewAnalyzer returns an analyzer with the default command table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{table: commandTable()}
}

// word is one argv token after best-effort expansion. ok is false when
// the token contains command substitution, arithmetic, or an unbound
// variable; such tokens stay opaque and never become file operands.
type word struct {
	val string
	ok  bool
}

// scan accumulates extraction state for one Analyze call. The vars map is
// the same-invocation symbol table: NAME=literal assignments bind names
// that later $NAME references resolve against.
type scan struct {
	vars       map[string]string
	operands   []Operand
	incomplete []string
}

func (sc *scan) add(value string, role Role) {
	sc.operands = append(sc.operands, Operand{Value: value, Role: role})
}

// Analyze parses the command and extracts candidate file operands.
// A command that fails to parse is scanned token by token instead, so
// path-shaped tokens inside unparsable input are still surfaced.
func (a *Analyzer) Analyze(command string) Result {
	sc := &scan{vars: make(map[string]string)}
	if strings.TrimSpace(command) == "" {
		return Result{}
	}

	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		a.lexicalFallback(command, sc)
		return Result{Operands: sc.operands, Incomplete: sc.incomplete}
	}

	syntax.Walk(prog, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.CallExpr:
			a.scanCall(n, sc)
		case *syntax.DeclClause:
			// export NAME=value binds like a bare assignment
			for _, as := range n.Args {
				a.bindAssign(as, sc)
			}
		case *syntax.Redirect:
			a.scanRedirect(n, sc)
		}
		return true
	})

	return Result{Operands: sc.operands, Incomplete: sc.incomplete}
}

// ExtractFileOperands is the convenience form of Analyze for callers that
// only want the candidate path set.
func (a *Analyzer) ExtractFileOperands(command string) []string {
	return a.Analyze(command).FileOperands()
}

// scanCall binds the call's assignments, expands its argv, and routes it
// through the command table.
func (a *Analyzer) scanCall(call *syntax.CallExpr, sc *scan) {
	for _, as := range call.Assigns {
		a.bindAssign(as, sc)
	}
	if len(call.Args) == 0 {
		return
	}

	argv := make([]word, 0, len(call.Args))
	for _, w := range call.Args {
		val, ok := expandWord(w, sc.vars)
		argv = append(argv, word{val: val, ok: ok})
	}
	a.scanArgv(argv, sc)
}

// bindAssign records NAME=literal in the symbol table. Values containing
// command substitution or unbound references stay unbound.
func (a *Analyzer) bindAssign(as *syntax.Assign, sc *scan) {
	if as == nil || as.Name == nil || as.Value == nil || as.Append || as.Index != nil {
		return
	}
	if val, ok := expandWord(as.Value, sc.vars); ok {
		sc.vars[as.Name.Value] = val
	}
}

// scanRedirect records redirect targets as file operands. Heredoc bodies
// and <<< here-strings are content, not files. Numeric targets are fd
// duplications (2>&1).
func (a *Analyzer) scanRedirect(r *syntax.Redirect, sc *scan) {
	switch r.Op {
	case syntax.RdrOut, syntax.AppOut, syntax.RdrIn, syntax.RdrInOut,
		syntax.RdrAll, syntax.AppAll, syntax.ClbOut:
	default:
		return
	}
	if r.Word == nil {
		return
	}
	val, ok := expandWord(r.Word, sc.vars)
	if !ok || val == "" {
		return
	}
	if strings.HasPrefix(val, "&") || isDigits(val) || val == "/dev/null" {
		return
	}
	sc.add(val, RoleRedirect)
}

// scanArgv classifies one simple command's argv against the table.
func (a *Analyzer) scanArgv(argv []word, sc *scan) {
	// leading NAME=value tokens are per-command environment, not argv
	for len(argv) > 0 && argv[0].ok && isAssignToken(argv[0].val) {
		argv = argv[1:]
	}
	if len(argv) == 0 {
		return
	}
	if !argv[0].ok {
		// opaque command name: fall back to the path-shaped heuristic
		a.applyDefault(argv[1:], sc)
		return
	}

	rule, consumed, name := a.lookup(argv)
	if rule == nil {
		a.applyDefault(argv[1:], sc)
		return
	}
	if rule.Find {
		a.applyFind(argv[consumed:], sc)
		return
	}
	a.applyRule(rule, name, argv[consumed:], sc)
}

// lookup finds the longest command-table key matching the leading argv
// words and returns how many words it consumed.
func (a *Analyzer) lookup(argv []word) (*Rule, int, string) {
	base := baseName(argv[0].val)
	max := 4
	if len(argv) < max {
		max = len(argv)
	}
	for n := max; n >= 1; n-- {
		parts := []string{base}
		usable := true
		for i := 1; i < n; i++ {
			if !argv[i].ok {
				usable = false
				break
			}
			parts = append(parts, argv[i].val)
		}
		if !usable {
			continue
		}
		key := strings.Join(parts, " ")
		if rule, found := a.table[key]; found {
			return rule, n, key
		}
	}
	return nil, 0, base
}

// applyRule walks the arguments of a recognized command, consuming flag
// values and classifying positionals per the rule.
func (a *Analyzer) applyRule(rule *Rule, name string, args []word, sc *scan) {
	positional := 0
	patternViaFlag := false

	for i := 0; i < len(args); i++ {
		w := args[i]
		if !w.ok {
			// opaque token: keep positional counting honest so a
			// trailing file after an unresolved pattern still counts
			if w.val == "" || !strings.HasPrefix(w.val, "-") {
				positional++
			}
			continue
		}
		v := w.val

		if isFlagToken(v) {
			flag, attached, hasAttached := strings.Cut(v, "=")
			if matchFlag(flag, rule.PatternFlags) {
				// the pattern came via flag; positionals are files now
				patternViaFlag = true
			}
			switch {
			case matchFlag(flag, rule.PathFlags):
				if hasAttached {
					sc.add(attached, RoleFile)
				} else if i+1 < len(args) {
					i++
					if args[i].ok {
						sc.add(args[i].val, RoleFile)
					}
				}
			case matchFlag(flag, rule.AtFlags):
				val := attached
				if !hasAttached && i+1 < len(args) {
					i++
					if args[i].ok {
						val = args[i].val
					}
				}
				if f, found := atFile(val); found {
					sc.add(f, RoleFile)
				} else {
					sc.add(val, RoleLiteral)
				}
			case matchFlag(flag, rule.SkipFlags):
				if !hasAttached && i+1 < len(args) {
					i++
				}
			default:
				sc.add(v, RoleFlag)
			}
			continue
		}

		if len(rule.KeyValueFiles) > 0 {
			if key, val, found := strings.Cut(v, "="); found {
				for _, k := range rule.KeyValueFiles {
					if key == k {
						sc.add(val, RoleFile)
						break
					}
				}
				continue
			}
		}

		positional++
		if positional <= rule.SkipOperands && !patternViaFlag {
			sc.add(v, RoleLiteral)
			continue
		}

		if rule.Recurse {
			a.scanArgv(args[i:], sc)
			if rule.StdinFeeds && a.nestedConsumesFiles(args[i:]) && !a.nestedYieldsFiles(args[i:], sc) {
				// xargs turns piped data into arguments we cannot see
				sc.incomplete = append(sc.incomplete, name+" receives file arguments from stdin")
			}
			return
		}

		switch {
		case rule.NoFiles && rule.AtPositional:
			if f, found := httpieFile(v); found {
				sc.add(f, RoleFile)
			} else {
				sc.add(v, RoleLiteral)
			}
		case rule.NoFiles:
			sc.add(v, RoleLiteral)
		case rule.Files:
			if rule.SkipRemote && isRemoteArg(v) {
				sc.add(v, RoleLiteral)
				continue
			}
			sc.add(v, RoleFile)
		default:
			a.defaultOperand(v, sc)
		}
	}
}

// nestedConsumesFiles reports whether xargs's embedded command would
// treat its arguments as files. Unknown commands count: we cannot prove
// they do not.
func (a *Analyzer) nestedConsumesFiles(args []word) bool {
	if len(args) == 0 || !args[0].ok {
		return true
	}
	rule, _, _ := a.lookup(args)
	if rule == nil {
		return true
	}
	return rule.Files || rule.Find || len(rule.PathFlags) > 0
}

// nestedYieldsFiles reports whether the nested command carries static
// file arguments of its own. xargs with none relies entirely on stdin.
func (a *Analyzer) nestedYieldsFiles(args []word, sc *scan) bool {
	probe := &scan{vars: sc.vars}
	a.scanArgv(args, probe)
	for _, op := range probe.operands {
		if op.Role == RoleFile {
			return true
		}
	}
	return false
}

// applyFind handles find(1): -name/-regex style patterns become glob
// candidates, and -exec bodies are analyzed as nested commands.
func (a *Analyzer) applyFind(args []word, sc *scan) {
	for i := 0; i < len(args); i++ {
		if !args[i].ok {
			continue
		}
		v := args[i].val
		switch v {
		case "-name", "-iname", "-path", "-ipath", "-regex", "-iregex":
			if i+1 < len(args) {
				i++
				if args[i].ok {
					sc.add(args[i].val, RoleFile)
				}
			}
		case "-exec", "-execdir", "-ok", "-okdir":
			var nested []word
			for i++; i < len(args); i++ {
				if args[i].ok && (args[i].val == ";" || args[i].val == "+") {
					break
				}
				if args[i].ok && args[i].val == "{}" {
					continue
				}
				nested = append(nested, args[i])
			}
			a.scanArgv(nested, sc)
		case "-newer", "-samefile", "-fprint", "-fprintf":
			if i+1 < len(args) {
				i++
				if args[i].ok {
					sc.add(args[i].val, RoleFile)
				}
			}
		default:
			if !strings.HasPrefix(v, "-") {
				a.defaultOperand(v, sc)
			}
		}
	}
}

// applyDefault is the conservative rule for unrecognized commands: a
// token is a candidate only when it is path-shaped or its basename looks
// sensitive. This bounds false positives on arbitrary literal arguments.
func (a *Analyzer) applyDefault(args []word, sc *scan) {
	for i := 0; i < len(args); i++ {
		if !args[i].ok {
			continue
		}
		v := args[i].val
		if isFlagToken(v) {
			sc.add(v, RoleFlag)
			continue
		}
		a.defaultOperand(v, sc)
	}
}

func (a *Analyzer) defaultOperand(v string, sc *scan) {
	if strings.Contains(v, "/") || sensitiveBasename.MatchString(baseName(v)) {
		sc.add(v, RoleFile)
		return
	}
	sc.add(v, RoleLiteral)
}

// lexicalFallback handles unparsable commands: strip quoting characters
// and surface every path-shaped or sensitive-looking token, per the
// fail-toward-caution policy for ParseErrors.
func (a *Analyzer) lexicalFallback(command string, sc *scan) {
	cleaned := strings.NewReplacer(`"`, " ", `'`, " ", "`", " ", ";", " ", "|", " ", "&", " ", ">", " ", "<", " ").Replace(command)
	for _, tok := range strings.Fields(cleaned) {
		if isFlagToken(tok) {
			continue
		}
		if strings.Contains(tok, "/") || sensitiveBasename.MatchString(baseName(tok)) {
			sc.add(tok, RoleFile)
		}
	}
}

// matchFlag reports whether flag matches any entry in list. A short flag
// also matches when bundled as the final letter of a combined group, so
// "-czf" matches "-f" (tar-style).
func matchFlag(flag string, list []string) bool {
	for _, f := range list {
		if flag == f {
			return true
		}
		if len(f) == 2 && len(flag) > 2 &&
			strings.HasPrefix(flag, "-") && !strings.HasPrefix(flag, "--") &&
			strings.HasSuffix(flag, f[1:]) {
			return true
		}
	}
	return false
}

// atFile extracts the file path in a curl upload value: a leading "@"
// or a "field=@path" form, trimming curl's ";type=..." suffix. An "@"
// in the middle of a plain value (email=user@example.com) is not a
// file reference.
func atFile(v string) (string, bool) {
	if strings.Contains(v, "://") {
		return "", false
	}
	var rest string
	switch {
	case strings.HasPrefix(v, "@"):
		rest = v[1:]
	default:
		idx := strings.Index(v, "=@")
		if idx < 0 {
			return "", false
		}
		rest = v[idx+2:]
	}
	rest, _, _ = strings.Cut(rest, ";")
	if rest == "" {
		return "", false
	}
	return rest, true
}

// httpieFile extracts the file path in an HTTPie positional argument:
// "field@path" uploads a file, "field=@path" reads a value from one.
// A "=" before the "@" makes it a string field (email=user@example.com).
func httpieFile(v string) (string, bool) {
	if f, found := atFile(v); found {
		return f, true
	}
	if strings.Contains(v, "://") {
		return "", false
	}
	at := strings.Index(v, "@")
	eq := strings.Index(v, "=")
	if at <= 0 || (eq >= 0 && eq < at) {
		return "", false
	}
	rest, _, _ := strings.Cut(v[at+1:], ";")
	if rest == "" {
		return "", false
	}
	return rest, true
}

func isRemoteArg(v string) bool {
	return strings.Contains(v, "://") || remoteArg.MatchString(v)
}

func isFlagToken(v string) bool {
	return len(v) > 1 && strings.HasPrefix(v, "-")
}

// isAssignToken reports whether v looks like NAME=value.
func isAssignToken(v string) bool {
	name, _, found := strings.Cut(v, "=")
	if !found || name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isDigits(v string) bool {
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return v != ""
}

func baseName(v string) string {
	if i := strings.LastIndexByte(v, '/'); i >= 0 {
		return v[i+1:]
	}
	return v
}
