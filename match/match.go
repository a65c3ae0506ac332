// Package match is the pattern-matching collaborator used by incremental
// search and bulk file marking. Patterns are shell globs matched against a
// whole file name.
package match

import (
	"strings"

	"github.com/gobwas/glob"
)

// Matcher matches file names against a compiled glob.
type Matcher struct {
	g           glob.Glob
	insensitive bool
}

// Compile builds a Matcher. When caseSensitive is false both the pattern
// and every candidate are folded before matching.
func Compile(pattern string, caseSensitive bool) (*Matcher, error) {
	p := pattern
	if !caseSensitive {
		p = strings.ToLower(p)
	}
	g, err := glob.Compile(p)
	if err != nil {
		return nil, err
	}
	return &Matcher{g: g, insensitive: !caseSensitive}, nil
}

// Match reports whether name matches the pattern in its entirety.
func (m *Matcher) Match(name string) bool {
	if m.insensitive {
		name = strings.ToLower(name)
	}
	return m.g.Match(name)
}

// QuoteMeta escapes glob metacharacters so user-typed text matches
// literally.
func QuoteMeta(s string) string {
	return glob.QuoteMeta(s)
}
