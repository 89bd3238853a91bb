// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     bracket
// Description: Recursive brace-group parser for aux directive arguments
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package bracket parses brace-delimited argument lists as written by LaTeX
// into the aux file. The grammar is
//
//	A -> S | ('{' A '}')+
//
// where S is text that does not start with a brace and whose own braces
// are balanced.
package bracket

import (
	"fmt"
	"strings"
)

// SyntaxError reports malformed brace structure at a byte offset
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// FindMatchEnd scans text[start:end] and returns the index of the first '}'
// that is not matched by a preceding '{' in the scanned range. When there is
// none it returns end.
func FindMatchEnd(text string, start, end int) int {
	depth := 0
	pos := start
	for pos < end {
		window := text[pos:end]
		openAt := strings.IndexByte(window, '{')
		closeAt := strings.IndexByte(window, '}')
		if closeAt < 0 {
			return end
		}
		if openAt >= 0 && openAt < closeAt {
			depth++
			pos += openAt + 1
			continue
		}
		if depth == 0 {
			return pos + closeAt
		}
		depth--
		pos += closeAt + 1
	}
	return end
}

// Parse parses text[start:end]. If the region is empty or does not start
// with '{' the result is a leaf running up to the first unmatched '}'.
// Otherwise it is a sequence of brace groups, parsed recursively, that
// stops at a '}' or at end. The returned offset points just past the
// consumed region.
func Parse(text string, start, end int) (Group, int, error) {
	if start < 0 || end > len(text) || start > end {
		return Group{}, start, &SyntaxError{Offset: start, Message: "range out of bounds"}
	}

	if start == end || text[start] != '{' {
		closeAt := FindMatchEnd(text, start, end)
		return Leaf(text[start:closeAt]), closeAt, nil
	}

	children := []Group{}
	pos := start
	for pos != end && text[pos] != '}' {
		if text[pos] != '{' {
			return Group{}, pos, &SyntaxError{
				Offset:  pos,
				Message: fmt.Sprintf("expected '{', found %q", text[pos]),
			}
		}
		child, childEnd, err := Parse(text, pos+1, end)
		if err != nil {
			return Group{}, childEnd, err
		}
		if childEnd == end {
			return Group{}, end, &SyntaxError{Offset: pos, Message: "missing '}'"}
		}
		children = append(children, child)
		pos = childEnd + 1
	}
	return Sequence(children...), pos, nil
}

// ParseString parses all of s. Text left after the top-level group is an
// error.
func ParseString(s string) (Group, error) {
	g, n, err := Parse(s, 0, len(s))
	if err != nil {
		return Group{}, err
	}
	if n != len(s) {
		return Group{}, &SyntaxError{
			Offset:  n,
			Message: fmt.Sprintf("unexpected trailing text %q", s[n:]),
		}
	}
	return g, nil
}
