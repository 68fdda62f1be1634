// Package paths resolves candidate file paths against a project root.
//
// Resolution is purely lexical plus a best-effort symlink pass: relative
// paths are joined with the root and normalized, absolute paths are taken
// as-is, and the final path is replaced with its symlink target when one
// can be read. Targets that do not exist yet (a Write to a new file) fall
// back to the lexical path; that is never an error.
package paths

import (
	"path/filepath"
	"strings"
)

// Resolved is the outcome of resolving one candidate path.
type Resolved struct {
	Raw      string // candidate as extracted from the tool input
	Absolute string // normalized absolute path after symlink resolution
	Relative string // slash-separated path relative to the root; basename when outside
	Escaped  bool   // relative candidate lexically escaped the root
	Outside  bool   // absolute candidate (or symlink target) lies outside the root
}

// Resolve normalizes raw against root and classifies where it landed.
//
// A relative path whose lexical normalization leaves the root is flagged
// Escaped; callers deny those outright as traversal. An absolute path
// outside the root is flagged Outside and carries only its basename in
// Relative, so only basename-style patterns apply to it.
func Resolve(raw, root string) Resolved {
	root = filepath.Clean(root)

	var lexical string
	relative := !filepath.IsAbs(raw)
	if relative {
		lexical = filepath.Join(root, raw)
	} else {
		lexical = filepath.Clean(raw)
	}

	if relative && !within(lexical, root) {
		return Resolved{
			Raw:      raw,
			Absolute: lexical,
			Relative: filepath.ToSlash(filepath.Base(lexical)),
			Escaped:  true,
		}
	}

	abs := resolveSymlinks(lexical)
	r := Resolved{Raw: raw, Absolute: abs}

	// the root itself may sit behind a symlink (/tmp on some systems)
	for _, base := range []string{root, resolveSymlinks(root)} {
		if !within(abs, base) {
			continue
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil {
			rel = filepath.Base(abs)
		}
		r.Relative = filepath.ToSlash(rel)
		return r
	}

	r.Outside = true
	r.Relative = filepath.ToSlash(filepath.Base(abs))
	return r
}

// within reports whether path is root itself or contained under it.
func within(path, root string) bool {
	if path == root {
		return true
	}
	// the filesystem root already ends in the separator
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// resolveSymlinks replaces path with its real target when possible.
// If the path does not exist, its parent directory is resolved instead so
// that a new file inside a symlinked directory still lands in the right
// place. Any failure falls back to the lexical path.
func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	dir, base := filepath.Split(path)
	if resolved, err := filepath.EvalSymlinks(filepath.Clean(dir)); err == nil {
		return filepath.Join(resolved, base)
	}
	return path
}
