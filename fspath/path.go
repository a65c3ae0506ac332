// Package fspath provides the opaque path values the panel core passes
// around. A Path may name a local directory or a remote one in
// scheme://[user[:password]@]host/dir form; the panel never inspects the
// internals beyond the operations here.
package fspath

import (
	"path"
	"regexp"
	"strings"
)

// Path is an immutable path value. The zero value is the empty path.
type Path struct {
	raw string
}

// New builds a Path from its string form. Trailing slashes are dropped
// except for the root itself.
func New(s string) Path {
	if s == "" {
		return Path{}
	}
	scheme, rest := splitScheme(s)
	if rest != "/" {
		rest = strings.TrimRight(rest, "/")
		if rest == "" {
			rest = "/"
		}
	}
	return Path{raw: scheme + rest}
}

// IsZero reports whether the path is unset. A tab that was created but
// never activated carries a zero path.
func (p Path) IsZero() bool {
	return p.raw == ""
}

// Clone returns an independent copy. Paths are values, so this is trivial,
// but callers that hand a path to another owner use Clone to make the
// transfer of ownership explicit.
func (p Path) Clone() Path {
	return p
}

// Append returns the path extended with one more component.
func (p Path) Append(name string) Path {
	if p.raw == "" {
		return New(name)
	}
	scheme, rest := splitScheme(p.raw)
	return Path{raw: scheme + path.Join(rest, name)}
}

// Parent returns the enclosing directory. The parent of a root is the root
// itself.
func (p Path) Parent() Path {
	scheme, rest := splitScheme(p.raw)
	dir := path.Dir(rest)
	return Path{raw: scheme + dir}
}

// Base returns the final path component.
func (p Path) Base() string {
	_, rest := splitScheme(p.raw)
	return path.Base(rest)
}

// HasPrefix reports whether p is equal to prefix or lies below it.
func (p Path) HasPrefix(prefix Path) bool {
	if p.raw == prefix.raw {
		return true
	}
	pre := prefix.raw
	if !strings.HasSuffix(pre, "/") {
		pre += "/"
	}
	return strings.HasPrefix(p.raw, pre)
}

// Equal reports exact equality.
func (p Path) Equal(other Path) bool {
	return p.raw == other.raw
}

// String returns the full path including any credentials embedded in a
// remote spec. Use Redacted for anything user-visible.
func (p Path) String() string {
	return p.raw
}

var credentialRe = regexp.MustCompile(`^([a-z][a-z0-9+.-]*://)([^/@]*)@`)

// Redacted returns the display form with the userinfo portion of a remote
// path stripped.
func (p Path) Redacted() string {
	return credentialRe.ReplaceAllString(p.raw, "$1")
}

// splitScheme separates a leading scheme:// marker from the rest so the
// slash-normalizing operations never touch it.
func splitScheme(s string) (scheme, rest string) {
	i := strings.Index(s, "://")
	if i < 0 {
		return "", s
	}
	return s[:i+3], s[i+3:]
}
