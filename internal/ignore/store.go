// Package ignore implements the ordered pattern store that decides whether
// a project-relative path is protected. Patterns use gitignore semantics:
// later patterns override earlier ones, and a leading "!" exempts a path
// that an earlier pattern protected.
package ignore

import (
	"strings"

	"github.com/dgerlanc/offlimits/internal/logger"
	"github.com/dgerlanc/offlimits/internal/patterns"
)

// Source is one ordered block of raw pattern lines, labeled with where
// it came from (an ignore file name or a builtin category).
type Source struct {
	Label string
	Lines []string
}

// Match is the outcome of testing a path against the store.
type Match struct {
	Protected bool
	Pattern   string // glob that decided the verdict
	Source    string // label of the source that contributed it
}

// Store is an ordered sequence of compiled ignore patterns.
type Store struct {
	patterns []patterns.Pattern
	defaults bool
}

// Compile builds a store from ordered sources. Blank lines, comments, and
// malformed globs are skipped; source order is preserved exactly.
func Compile(sources []Source) *Store {
	s := &Store{}
	for _, src := range sources {
		for _, line := range src.Lines {
			glob, negated, ok := ParseLine(line)
			if !ok {
				continue
			}
			p, err := patterns.Compile(glob, src.Label)
			if err != nil {
				logger.Debug("skipping malformed pattern", "pattern", glob, "source", src.Label, "error", err)
				continue
			}
			p.Negated = negated
			s.patterns = append(s.patterns, p)
		}
	}
	return s
}

// ParseLine parses one ignore-file line into a glob and negation flag.
// Returns ok=false for blank lines and comments. A leading "\!" or "\#"
// escapes the special meaning.
func ParseLine(line string) (glob string, negated bool, ok bool) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false, false
	}
	switch {
	case strings.HasPrefix(line, "!"):
		negated = true
		line = line[1:]
	case strings.HasPrefix(line, `\!`) || strings.HasPrefix(line, `\#`):
		line = line[1:]
	}
	if line == "" {
		return "", false, false
	}
	return line, negated, true
}

// Test evaluates a slash-separated project-relative path against every
// pattern in order. The verdict after the last matching pattern wins;
// no match at all means unprotected.
func (s *Store) Test(rel string) Match {
	var m Match
	for _, p := range s.patterns {
		if p.Match(rel) {
			m = Match{Protected: !p.Negated, Pattern: p.Raw, Source: p.Source}
		}
	}
	return m
}

// TestBasename evaluates a bare file name against basename-style patterns
// only. Used for absolute paths outside the project root, where
// project-relative globs do not apply.
func (s *Store) TestBasename(base string) Match {
	var m Match
	for _, p := range s.patterns {
		if !p.Basename {
			continue
		}
		if p.Match(base) {
			m = Match{Protected: !p.Negated, Pattern: p.Raw, Source: p.Source}
		}
	}
	return m
}

// Len returns the number of compiled patterns.
func (s *Store) Len() int {
	return len(s.patterns)
}

// Patterns returns the compiled patterns in evaluation order.
func (s *Store) Patterns() []patterns.Pattern {
	return s.patterns
}

// FromDefaults reports whether the store was compiled from the builtin
// default set rather than discovered ignore files.
func (s *Store) FromDefaults() bool {
	return s.defaults
}

// MarkDefaults records that the store came from the builtin default set.
func (s *Store) MarkDefaults() {
	s.defaults = true
}
