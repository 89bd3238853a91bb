// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     render
// Description: Terminal table and summary for extracted records
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/msto63/texrefs/internal/texaux/record"
)

const (
	colType = iota
	colLabel
	colOutputID
	colPage
	colAnchor
	colContext
)

var headers = []string{"TYPE", "LABEL", "ID", "PAGE", "ANCHOR", "CONTEXT"}

// maxContextWidth truncates long section titles in the table
const maxContextWidth = 40

// TypeCount is the number of records of one type. Untyped counts the
// records without a type, which differ from those with an empty type.
type TypeCount struct {
	Type    string
	Untyped bool
	Count   int
}

// Label returns the type as shown in tables and summaries
func (c TypeCount) Label() string {
	if c.Untyped {
		return untypedLabel
	}
	return displayType(&c.Type)
}

const (
	untypedLabel   = "-"
	emptyTypeLabel = `""`
)

// Filter keeps the records whose type is one of types. No types keeps all
// records. The type "none" selects records without a type and `""` those
// with an empty one.
func Filter(records []record.Record, types ...string) []record.Record {
	if len(types) == 0 {
		return records
	}
	want := make(map[TypeCount]bool, len(types))
	for _, t := range types {
		switch t = strings.TrimSpace(t); t {
		case "none":
			want[TypeCount{Untyped: true}] = true
		case emptyTypeLabel:
			want[TypeCount{}] = true
		default:
			want[TypeCount{Type: t}] = true
		}
	}

	var out []record.Record
	for _, rec := range records {
		if want[typeOf(rec)] {
			out = append(out, rec)
		}
	}
	return out
}

// CountByType counts records per type, most frequent first
func CountByType(records []record.Record) []TypeCount {
	counts := make(map[TypeCount]int)
	for _, rec := range records {
		counts[typeOf(rec)]++
	}

	out := make([]TypeCount, 0, len(counts))
	for key, n := range counts {
		key.Count = n
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label() < out[j].Label()
	})
	return out
}

func typeOf(rec record.Record) TypeCount {
	if !rec.HasType() {
		return TypeCount{Untyped: true}
	}
	return TypeCount{Type: rec.TypeValue()}
}

// Table renders records as a bordered table
func Table(records []record.Record) string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			displayType(rec.Type),
			rec.TexLabel,
			rec.OutputIDValue(),
			rec.PageValue(),
			rec.Anchor,
			truncate(rec.Context, maxContextWidth),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			switch col {
			case colType:
				return TypeStyle(records[row].Type)
			case colPage, colOutputID:
				return MutedCellStyle
			default:
				return CellStyle
			}
		})

	return t.Render()
}

// Summary renders a one-line count of records per type
func Summary(records []record.Record) string {
	counts := CountByType(records)
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s %d", c.Label(), c.Count)
	}

	noun := "references"
	if len(records) == 1 {
		noun = "reference"
	}
	line := fmt.Sprintf("%d %s", len(records), noun)
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	return SummaryStyle.Render(line)
}

// Report renders a title, the table and the summary
func Report(title string, records []record.Record) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(TitleStyle.Render(title))
		sb.WriteString("\n")
	}
	if len(records) > 0 {
		sb.WriteString(Table(records))
		sb.WriteString("\n")
	}
	sb.WriteString(Summary(records))
	sb.WriteString("\n")
	return sb.String()
}

func displayType(typ *string) string {
	switch {
	case typ == nil:
		return untypedLabel
	case *typ == "":
		return emptyTypeLabel
	}
	return *typ
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
