// Package directive recognizes the aux file directives texrefs extracts.
package directive

import "strings"

// Kind identifies a recognized directive
type Kind int

const (
	// None marks a line that carries no recognized directive
	None Kind = iota
	// Bibcite is a \bibcite{key}{number} line written by BibTeX runs
	Bibcite
	// Newlabel is a \newlabel{key}{payload} line written by \label
	Newlabel
)

const (
	bibcitePrefix  = `\bibcite`
	newlabelPrefix = `\newlabel`
)

// String returns the directive name
func (k Kind) String() string {
	switch k {
	case Bibcite:
		return "bibcite"
	case Newlabel:
		return "newlabel"
	default:
		return "none"
	}
}

// Prefix returns the control sequence that introduces the directive
func (k Kind) Prefix() string {
	switch k {
	case Bibcite:
		return bibcitePrefix
	case Newlabel:
		return newlabelPrefix
	default:
		return ""
	}
}

// Match classifies an already trimmed line. offset is the index right
// after the control sequence, where the argument groups start.
func Match(line string) (kind Kind, offset int) {
	switch {
	case strings.HasPrefix(line, bibcitePrefix):
		return Bibcite, len(bibcitePrefix)
	case strings.HasPrefix(line, newlabelPrefix):
		return Newlabel, len(newlabelPrefix)
	default:
		return None, 0
	}
}
