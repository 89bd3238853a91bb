// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     bracket
// Description: Brace-group tree produced by the parser
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package bracket

import (
	"strconv"
	"strings"
)

// Group is either a leaf string or an ordered sequence of groups.
// A sequence corresponds to adjacent brace groups such as {A}{B}{C}.
type Group struct {
	text     string
	children []Group
	seq      bool
}

// Leaf creates a leaf group
func Leaf(text string) Group {
	return Group{text: text}
}

// Sequence creates a sequence group from its children
func Sequence(children ...Group) Group {
	if children == nil {
		children = []Group{}
	}
	return Group{children: children, seq: true}
}

// IsLeaf reports whether g is a leaf string
func (g Group) IsLeaf() bool {
	return !g.seq
}

// Text returns the leaf text, or "" for a sequence
func (g Group) Text() string {
	if g.seq {
		return ""
	}
	return g.text
}

// Len returns the number of children of a sequence, 0 for a leaf
func (g Group) Len() int {
	return len(g.children)
}

// At returns the i-th child of a sequence
func (g Group) At(i int) Group {
	return g.children[i]
}

// Children returns the children of a sequence
func (g Group) Children() []Group {
	return g.children
}

// IsLeafSequence reports whether g is a sequence of exactly n leaves
func (g Group) IsLeafSequence(n int) bool {
	if !g.seq || len(g.children) != n {
		return false
	}
	for _, c := range g.children {
		if c.seq {
			return false
		}
	}
	return true
}

// String re-joins the tree into brace notation. For text accepted by
// ParseString the result equals the input.
func (g Group) String() string {
	var sb strings.Builder
	g.write(&sb)
	return sb.String()
}

func (g Group) write(sb *strings.Builder) {
	if !g.seq {
		sb.WriteString(g.text)
		return
	}
	for _, c := range g.children {
		sb.WriteByte('{')
		c.write(sb)
		sb.WriteByte('}')
	}
}

// Repr renders the tree as nested lists of quoted strings,
// e.g. ["defn:monoid", ["1", "3"]].
func (g Group) Repr() string {
	if !g.seq {
		return strconv.Quote(g.text)
	}
	parts := make([]string, len(g.children))
	for i, c := range g.children {
		parts[i] = c.Repr()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether two trees have the same shape and text
func (g Group) Equal(other Group) bool {
	if g.seq != other.seq {
		return false
	}
	if !g.seq {
		return g.text == other.text
	}
	if len(g.children) != len(other.children) {
		return false
	}
	for i := range g.children {
		if !g.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}
