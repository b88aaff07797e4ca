// Package pattern matches changed-file paths against the constrained
// glob dialect used in component configs: '*' and '?' within a path
// segment, '**' spanning whole segments.
package pattern

import "strings"

// FileMatch pairs a changed path with the first pattern it satisfied.
type FileMatch struct {
	Path    string
	Pattern string
}

// Match reports whether path satisfies pattern.
//
// '*' and '?' never cross a '/', so a pattern without '/' matches only
// single-segment paths: "*.py" never matches "src/foo.py". A pattern
// with '/' but no '**' requires the same segment count as the path. A
// '**' segment matches zero or more whole segments, so "src" satisfies
// "src/**".
func Match(path, pattern string) bool {
	if pattern == "" {
		return path == ""
	}
	return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
}

// matchSegments aligns path segments with pattern segments, letting a
// '**' segment absorb zero or more path segments.
func matchSegments(path, pattern []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		if matchSegments(path, pattern[1:]) {
			return true
		}
		if len(path) == 0 {
			return false
		}
		return matchSegments(path[1:], pattern)
	}
	if len(path) == 0 {
		return false
	}
	if !matchSegment(path[0], pattern[0]) {
		return false
	}
	return matchSegments(path[1:], pattern[1:])
}

// matchSegment matches one path segment against one pattern segment.
// '*' matches any run of characters, '?' exactly one; neither crosses
// segment boundaries because segments are split before matching.
func matchSegment(segment, pattern string) bool {
	si, pi := 0, 0
	star, mark := -1, 0
	for si < len(segment) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == segment[si]):
			si++
			pi++
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			mark = si
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

// CheckFilesChanged tests every changed path against the patterns in
// declared order. Each path contributes at most one match (the first
// pattern that hits); changed-path order is preserved.
func CheckFilesChanged(changed, patterns []string) []FileMatch {
	var matches []FileMatch
	for _, path := range changed {
		for _, pat := range patterns {
			if Match(path, pat) {
				matches = append(matches, FileMatch{Path: path, Pattern: pat})
				break
			}
		}
	}
	return matches
}
