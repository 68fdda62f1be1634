package shell

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// expandWord flattens a parsed word into its literal string value.
// Quoting is honored (single, double, escapes) and $NAME / ${NAME}
// references resolve against the same-invocation symbol table. Any part
// that would need a real shell (command substitution, arithmetic,
// parameter operations like ${X:-y}) makes the word opaque.
func expandWord(w *syntax.Word, vars map[string]string) (string, bool) {
	if w == nil {
		return "", false
	}
	var sb strings.Builder
	for _, part := range w.Parts {
		val, ok := expandPart(part, vars, false)
		if !ok {
			return "", false
		}
		sb.WriteString(val)
	}
	return sb.String(), true
}

func expandPart(part syntax.WordPart, vars map[string]string, quoted bool) (string, bool) {
	switch p := part.(type) {
	case *syntax.Lit:
		if quoted {
			return p.Value, true
		}
		return unescapeLit(p.Value), true

	case *syntax.SglQuoted:
		return p.Value, true

	case *syntax.DblQuoted:
		var sb strings.Builder
		for _, inner := range p.Parts {
			val, ok := expandPart(inner, vars, true)
			if !ok {
				return "", false
			}
			sb.WriteString(val)
		}
		return sb.String(), true

	case *syntax.ParamExp:
		if p.Param == nil {
			return "", false
		}
		// only plain $NAME / ${NAME}; operations need a real shell
		if p.Excl || p.Length || p.Width ||
			p.Index != nil || p.Slice != nil || p.Repl != nil || p.Exp != nil {
			return "", false
		}
		val, bound := vars[p.Param.Value]
		if !bound {
			return "", false
		}
		return val, true

	default:
		// CmdSubst, ArithmExp, ProcSubst, ExtGlob: opaque
		return "", false
	}
}

// unescapeLit removes backslash escapes from an unquoted literal, so
// "\;" and "My\ File" compare as the shell would see them.
func unescapeLit(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			sb.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
