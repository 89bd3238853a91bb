package extract

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	"github.com/msto63/texrefs/internal/texaux/bracket"
	"github.com/msto63/texrefs/internal/texaux/directive"
)

const operation = "extract"

// Detail keys attached to extraction errors
const (
	DetailLine   = "line"
	DetailText   = "text"
	DetailOffset = "offset"
)

func malformed(lineNo int, text, format string, args ...interface{}) *mdwerror.Error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeMalformedInput).
		WithOperation(operation).
		WithDetail(DetailLine, lineNo).
		WithDetail(DetailText, text)
}

func inconsistent(lineNo int, text, format string, args ...interface{}) *mdwerror.Error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeConsistencyError).
		WithOperation(operation).
		WithDetail(DetailLine, lineNo).
		WithDetail(DetailText, text)
}

func syntaxFailure(lineNo int, text string, kind directive.Kind, err error) *mdwerror.Error {
	e := mdwerror.Wrap(err, fmt.Sprintf("%s arguments are malformed", kind.Prefix())).
		WithCode(mdwerror.CodeMalformedInput).
		WithOperation(operation).
		WithDetail(DetailLine, lineNo).
		WithDetail(DetailText, text)

	var syntaxErr *bracket.SyntaxError
	if errors.As(err, &syntaxErr) {
		e.WithDetail(DetailOffset, syntaxErr.Offset)
	}
	return e
}

// Line returns the 1-based input line an extraction error refers to
func Line(err error) (int, bool) {
	e, ok := mdwerror.As(err)
	if !ok {
		return 0, false
	}
	v, ok := e.Detail(DetailLine)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// Text returns the offending line an extraction error refers to
func Text(err error) (string, bool) {
	e, ok := mdwerror.As(err)
	if !ok {
		return "", false
	}
	v, ok := e.Detail(DetailText)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IsMalformed reports whether err is a malformed-input error
func IsMalformed(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeMalformedInput)
}

// IsInconsistent reports whether err is a consistency error
func IsInconsistent(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeConsistencyError)
}
