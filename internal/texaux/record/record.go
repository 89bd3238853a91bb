// Package record defines the cross-reference record emitted per label.
package record

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TypeCite is the type of records created from \bibcite lines
const TypeCite = "cite"

// Record describes one cross-reference target.
//
// OutputID and Page are set on every label record and nil on citations.
// Type is nil when the anchor carries no type; an empty type is kept.
// Context and Misc are omitted from the output when empty.
type Record struct {
	Type     *string `json:"type,omitempty" yaml:"type,omitempty"`
	TexLabel string  `json:"texLabel" yaml:"texLabel"`
	OutputID *string `json:"outputId,omitempty" yaml:"outputId,omitempty"`
	Anchor   string  `json:"anchor" yaml:"anchor"`
	Page     *string `json:"page,omitempty" yaml:"page,omitempty"`
	Context  string  `json:"context,omitempty" yaml:"context,omitempty"`
	Misc     string  `json:"misc,omitempty" yaml:"misc,omitempty"`
}

// NewCite creates the record for a bibliography entry
func NewCite(label string) Record {
	typ := TypeCite
	return Record{
		Type:     &typ,
		TexLabel: label,
		Anchor:   "cite." + label,
	}
}

// NewLabel creates the record for a \newlabel entry. The type is derived
// from the anchor.
func NewLabel(label, outputID, page, context, anchor, misc string) Record {
	rec := Record{
		TexLabel: label,
		OutputID: &outputID,
		Anchor:   anchor,
		Page:     &page,
		Context:  context,
		Misc:     misc,
	}
	if typ, ok := AnchorType(anchor); ok {
		rec.SetType(typ)
	}
	return rec
}

// AnchorType returns the part of a hyperref anchor before the first dot
// ("theorem" for "theorem.2.1"). ok is false when the anchor has no dot.
func AnchorType(anchor string) (typ string, ok bool) {
	head, _, found := strings.Cut(anchor, ".")
	if !found {
		return "", false
	}
	return head, true
}

// SetType sets the type, which may be empty
func (r *Record) SetType(typ string) {
	r.Type = &typ
}

// HasType reports whether a type is set
func (r Record) HasType() bool {
	return r.Type != nil
}

// TypeValue returns the type or "" when unset
func (r Record) TypeValue() string {
	if r.Type == nil {
		return ""
	}
	return *r.Type
}

// OutputIDValue returns the output id or "" when unset
func (r Record) OutputIDValue() string {
	if r.OutputID == nil {
		return ""
	}
	return *r.OutputID
}

// PageValue returns the page or "" when unset
func (r Record) PageValue() string {
	if r.Page == nil {
		return ""
	}
	return *r.Page
}

// AppendJSON appends r as a single-line JSON object. Keys keep the order
// type, texLabel, outputId, anchor, page, context, misc and are separated
// by ", " with ": " after each key.
func (r Record) AppendJSON(buf []byte) []byte {
	first := true
	field := func(key, value string) {
		if !first {
			buf = append(buf, ", "...)
		}
		first = false
		buf = appendString(buf, key)
		buf = append(buf, ": "...)
		buf = appendString(buf, value)
	}

	buf = append(buf, '{')
	if r.Type != nil {
		field("type", *r.Type)
	}
	field("texLabel", r.TexLabel)
	if r.OutputID != nil {
		field("outputId", *r.OutputID)
	}
	field("anchor", r.Anchor)
	if r.Page != nil {
		field("page", *r.Page)
	}
	if r.Context != "" {
		field("context", r.Context)
	}
	if r.Misc != "" {
		field("misc", r.Misc)
	}
	return append(buf, '}')
}

func appendString(buf []byte, s string) []byte {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return append(buf, bytes.TrimSuffix(b.Bytes(), []byte{'\n'})...)
}
