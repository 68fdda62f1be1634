// Package patterns compiles gitignore-style glob patterns into regular
// expressions for matching project-relative paths.
package patterns

import (
	"regexp"
	"strings"
)

// Pattern holds a compiled glob and its metadata.
type Pattern struct {
	Regex    *regexp.Regexp
	Raw      string // original pattern text, without the negation prefix
	Negated  bool   // pattern exempts matching paths instead of protecting them
	Basename bool   // pattern has no slash and may match bare file names
	Source   string // label of the ignore file or builtin category it came from
}

// Match reports whether the pattern matches a slash-separated relative path.
func (p Pattern) Match(rel string) bool {
	return p.Regex.MatchString(rel)
}

// regex metacharacters that need escaping inside a translated glob segment
const regexSpecial = `.+()|^$[]{}\`

// TranslateGlob converts a gitignore glob into a regular expression source.
// Translation rules:
//
//	*      matches within one path segment
//	?      matches a single character within a segment
//	**     matches across segments ("a/**/b", "**/b", "a/**")
//	name/  trailing slash marks a directory pattern
//	/name  leading slash anchors the pattern to the root
//
// A pattern containing a slash is anchored to the root; a bare name
// matches at any depth. A match on a directory covers everything below
// it, so every pattern gets an optional "/..." suffix.
func TranslateGlob(glob string) string {
	// a trailing slash marks a directory and never anchors; a leading or
	// interior slash anchors the pattern to the root
	glob = strings.TrimSuffix(glob, "/")
	anchored := strings.Contains(glob, "/")
	glob = strings.TrimPrefix(glob, "/")

	var sb strings.Builder
	if anchored {
		sb.WriteString(`^`)
	} else {
		sb.WriteString(`^(?:.*/)?`)
	}

	segs := strings.Split(glob, "/")
	for i, seg := range segs {
		last := i == len(segs)-1
		if seg == "**" {
			if last {
				sb.WriteString(`.*`)
			} else {
				sb.WriteString(`(?:[^/]+/)*`)
			}
			continue
		}
		for _, r := range seg {
			switch {
			case r == '*':
				sb.WriteString(`[^/]*`)
			case r == '?':
				sb.WriteString(`[^/]`)
			case strings.ContainsRune(regexSpecial, r):
				sb.WriteByte('\\')
				sb.WriteRune(r)
			default:
				sb.WriteRune(r)
			}
		}
		if !last {
			sb.WriteByte('/')
		}
	}

	sb.WriteString(`(?:/.*)?$`)
	return sb.String()
}

// Compile compiles a glob into a Pattern attributed to the given source.
// The glob must not carry a negation prefix; callers strip it first.
func Compile(glob, source string) (Pattern, error) {
	re, err := regexp.Compile(TranslateGlob(glob))
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{
		Regex:    re,
		Raw:      glob,
		Basename: !strings.Contains(strings.TrimSuffix(glob, "/"), "/"),
		Source:   source,
	}, nil
}

// MustCompile is like Compile but panics if the glob is invalid.
// Intended for builtin defaults and tests.
func MustCompile(glob, source string) Pattern {
	p, err := Compile(glob, source)
	if err != nil {
		panic(err)
	}
	return p
}
