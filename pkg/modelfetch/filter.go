// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"path"
	"regexp"
	"strings"
)

// MatchFiles returns the files selected by allow and ignore, in input order.
//
// A file is kept when allow is empty or any allow pattern matches it, and no
// ignore pattern matches it. Patterns are fnmatch-style globs matched against
// the full slash-separated path: '*' and '?' cross directory boundaries and
// "[!...]" negates a class. A malformed glob only matches itself. A pattern
// wrapped in slashes ("/q[48]_0/") is a regular expression.
func MatchFiles(files []string, allow, ignore []string) []string {
	allowM := compileMatchers(allow)
	ignoreM := compileMatchers(ignore)

	var matched []string
	for _, f := range files {
		if len(allowM) > 0 && !anyMatch(allowM, f) {
			continue
		}
		if anyMatch(ignoreM, f) {
			continue
		}
		matched = append(matched, f)
	}
	return matched
}

// fileMatcher interface allows for different types of matching
type fileMatcher interface {
	matches(p string) bool
}

// globMatcher uses path.Match for glob patterns. The glob is stored in
// path.Match syntax with '/' flattened, so "*Q8*" selects
// "Q8_0/model-00001.gguf".
type globMatcher struct {
	glob string
}

func (g *globMatcher) matches(p string) bool {
	ok, _ := path.Match(g.glob, flatten(p))
	return ok
}

// literalMatcher handles globs path.Match rejects, such as "a[b".
type literalMatcher struct {
	name string
}

func (l *literalMatcher) matches(p string) bool {
	return p == l.name
}

func flatten(s string) string {
	return strings.ReplaceAll(s, "/", "\x00")
}

// translateGlob rewrites fnmatch syntax into path.Match syntax: backslash is
// literal and a class is negated with '!'.
func translateGlob(pattern string) string {
	pattern = strings.ReplaceAll(pattern, `\`, `\\`)
	pattern = strings.ReplaceAll(pattern, "[!", "[^")
	return flatten(pattern)
}

// regexMatcher uses regexp for regex patterns
type regexMatcher struct {
	regex *regexp.Regexp
}

func (r *regexMatcher) matches(p string) bool {
	return r.regex.MatchString(p)
}

func compileMatchers(patterns []string) []fileMatcher {
	var out []fileMatcher
	for _, p := range patterns {
		if m := createMatcher(p); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func anyMatch(ms []fileMatcher, p string) bool {
	for _, m := range ms {
		if m.matches(p) {
			return true
		}
	}
	return false
}

// createMatcher creates appropriate matcher based on pattern type
func createMatcher(pattern string) fileMatcher {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	// Regex pattern (enclosed in / /)
	if len(pattern) > 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		regex, err := regexp.Compile(pattern[1 : len(pattern)-1])
		if err == nil {
			return &regexMatcher{regex: regex}
		}
	}

	// A trailing slash means "everything under this directory".
	if strings.HasSuffix(pattern, "/") {
		pattern += "*"
	}
	glob := translateGlob(pattern)
	if _, err := path.Match(glob, ""); err != nil {
		return &literalMatcher{name: pattern}
	}
	return &globMatcher{glob: glob}
}
