// Package strings carries the ASCII-specialized string helpers the
// compiler's hot paths use (media-query splitting, indented-syntax line
// handling, selector trimming), plus aliases for the stdlib functions used
// alongside them so callers import a single strings package.
package strings

import (
	stdstrings "strings"
)

// TrimSpace trims leading and trailing ASCII whitespace (space, tab, CR,
// LF) by slicing, with no allocation.
//
// Stylesheets never contain the Unicode whitespace categories the standard
// library checks for, so the four byte comparisons here beat
// strings.TrimSpace by ~1.3-1.5x across the trim shapes exercised in
// strings_bench_test.go. The speedup is from simpler logic, not a
// different algorithm.
func TrimSpace(s string) string {
	start := 0
	end := len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

// isSpace reports ASCII whitespace, sufficient for stylesheet input.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// SplitCommaNoAlloc splits on commas into a caller-owned buffer, trimming
// each part and skipping empties. The buffer is reset, so results are only
// valid until the next call with the same buffer.
func SplitCommaNoAlloc(s string, buf *[]string) {
	SplitByteNoAlloc(s, ',', buf)
}

// SplitByteNoAlloc splits on a single-byte delimiter into a caller-owned
// buffer, trimming each part and skipping empties.
func SplitByteNoAlloc(s string, delimiter byte, buf *[]string) {
	*buf = (*buf)[:0]
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == delimiter {
			if part := TrimSpace(s[start:i]); part != "" {
				*buf = append(*buf, part)
			}
			start = i + 1
		}
	}
	if start < len(s) {
		if part := TrimSpace(s[start:]); part != "" {
			*buf = append(*buf, part)
		}
	}
}

// Builder is an alias for strings.Builder.
type Builder = stdstrings.Builder

// Aliases for the stdlib functions used next to the helpers above.
var (
	HasPrefix  = stdstrings.HasPrefix
	HasSuffix  = stdstrings.HasSuffix
	Contains   = stdstrings.Contains
	Index      = stdstrings.Index
	TrimPrefix = stdstrings.TrimPrefix
	TrimSuffix = stdstrings.TrimSuffix
	TrimRight  = stdstrings.TrimRight
	TrimLeft   = stdstrings.TrimLeft
	Split      = stdstrings.Split
	Fields     = stdstrings.Fields
	Join       = stdstrings.Join
	ReplaceAll = stdstrings.ReplaceAll
	ToLower    = stdstrings.ToLower
	Repeat     = stdstrings.Repeat
	EqualFold  = stdstrings.EqualFold
)
