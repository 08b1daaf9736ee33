package worktree

import (
	"bufio"
	"bytes"
	"path"
	"path/filepath"
	"strings"

	"github.com/keshon/lvc/internal/config"
)

// Ignore decides which working-tree paths are invisible to the repository.
type Ignore struct {
	static  map[string]bool
	pattern []string
}

// NewIgnore returns a matcher holding the default entries plus the patterns
// read from an ignore file's content (one glob per line, # comments).
func NewIgnore(content []byte) *Ignore {
	m := &Ignore{static: make(map[string]bool)}

	for _, s := range config.DefaultIgnoredFiles {
		m.static[filepath.ToSlash(filepath.Clean(s))] = true
	}

	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.pattern = append(m.pattern, filepath.ToSlash(line))
	}
	return m
}

// Match returns true if the slash-separated relative path should be ignored.
func (m *Ignore) Match(p string) bool {
	clean := path.Clean(filepath.ToSlash(p))

	// static exact match
	if m.static[clean] {
		return true
	}

	for _, pat := range m.pattern {
		if matchPattern(pat, clean) {
			return true
		}
	}
	return false
}

// matchPattern handles *, ?, and ** segments. A pattern without a slash
// matches the base name at any depth. A trailing slash matches the directory
// and everything below it.
func matchPattern(pattern, p string) bool {
	pattern = strings.TrimPrefix(pattern, "/")
	if strings.HasSuffix(pattern, "/") {
		pattern = strings.TrimSuffix(pattern, "/")
		if matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/")) {
			return true
		}
		pattern += "/**"
	}

	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(p))
		return ok
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
}

// matchSegments matches pattern segments against path segments. A ** segment
// spans zero or more path segments.
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return len(parts) > 0 // trailing ** needs something below
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}

		ok, _ := path.Match(p, parts[0])
		if !ok {
			return false
		}
		parts = parts[1:]
	}

	return len(parts) == 0
}
