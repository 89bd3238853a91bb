// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     extract
// Description: Turns \bibcite and \newlabel lines into records
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package extract classifies aux file directives into cross-reference
// records.
package extract

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	mdwlog "github.com/msto63/texrefs/foundation/core/log"
	"github.com/msto63/texrefs/internal/texaux/bracket"
	"github.com/msto63/texrefs/internal/texaux/directive"
	"github.com/msto63/texrefs/internal/texaux/record"
)

const crefSuffix = "@cref"

// Options configures an Extractor
type Options struct {
	// IncludeBib emits a record per \bibcite line
	IncludeBib bool
	Logger     *mdwlog.Logger
	// Stdin is read by File for the path "-"; nil means os.Stdin
	Stdin io.Reader
}

// Stats counts what a run produced
type Stats struct {
	Lines       int           `json:"lines"`
	Labels      int           `json:"labels"`
	Citations   int           `json:"citations"`
	Annotations int           `json:"annotations"`
	Duration    time.Duration `json:"duration"`
}

// Result is the outcome of a complete extraction run
type Result struct {
	Records []record.Record
	Stats   Stats
}

// Extractor consumes aux lines one at a time and accumulates records.
// It is not safe for concurrent use.
type Extractor struct {
	opts    Options
	logger  *mdwlog.Logger
	records []record.Record
	// last is the index of the record a following @cref line annotates, -1 if none
	last  int
	stats Stats
}

// New creates an Extractor
func New(opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}
	return &Extractor{
		opts:   opts,
		logger: logger.WithName("extract"),
		last:   -1,
	}
}

// Records returns the records collected so far
func (e *Extractor) Records() []record.Record {
	return e.records
}

// Stats returns the counters collected so far
func (e *Extractor) Stats() Stats {
	return e.stats
}

// Reset discards all state so the Extractor can process a new file
func (e *Extractor) Reset() {
	e.records = nil
	e.last = -1
	e.stats = Stats{}
}

// ProcessLine handles the next input line. Lines without a recognized
// directive are ignored.
func (e *Extractor) ProcessLine(raw string) error {
	e.stats.Lines++
	lineNo := e.stats.Lines
	if !utf8.ValidString(raw) {
		return malformed(lineNo, strings.ToValidUTF8(strings.TrimSpace(raw), "\uFFFD"),
			"line is not valid UTF-8")
	}
	line := strings.TrimSpace(raw)

	kind, offset := directive.Match(line)
	switch kind {
	case directive.Bibcite:
		if !e.opts.IncludeBib {
			return nil
		}
		e.logger.Trace("directive", mdwlog.Fields{"kind": kind.String(), "line": lineNo})
		return e.bibcite(lineNo, line, offset)
	case directive.Newlabel:
		e.logger.Trace("directive", mdwlog.Fields{"kind": kind.String(), "line": lineNo})
		return e.newlabel(lineNo, line, offset)
	default:
		return nil
	}
}

// arguments parses the argument groups of a directive into key and payload
func (e *Extractor) arguments(lineNo int, line string, kind directive.Kind, offset int) (string, bracket.Group, error) {
	args, end, err := bracket.Parse(line, offset, len(line))
	if err != nil {
		return "", bracket.Group{}, syntaxFailure(lineNo, line, kind, err)
	}
	if end != len(line) {
		// Parse stops early only at an unmatched '}'; what follows is ignored.
		e.logger.Debug("ignoring text after arguments", mdwlog.Fields{
			"line": lineNo,
			"text": line[end:],
		})
	}
	if args.IsLeaf() || args.Len() != 2 {
		return "", bracket.Group{}, malformed(lineNo, line,
			"%s expects 2 argument groups, found %d", kind.Prefix(), args.Len())
	}
	key := args.At(0)
	if !key.IsLeaf() {
		return "", bracket.Group{}, malformed(lineNo, line,
			"%s label must be plain text", kind.Prefix())
	}
	return key.Text(), args.At(1), nil
}

func (e *Extractor) bibcite(lineNo int, line string, offset int) error {
	label, _, err := e.arguments(lineNo, line, directive.Bibcite, offset)
	if err != nil {
		return err
	}

	e.append(record.NewCite(label))
	e.stats.Citations++
	e.logger.Debug("citation", mdwlog.Fields{"label": label, "line": lineNo})
	return nil
}

func (e *Extractor) newlabel(lineNo int, line string, offset int) error {
	key, payload, err := e.arguments(lineNo, line, directive.Newlabel, offset)
	if err != nil {
		return err
	}

	if label, ok := strings.CutSuffix(key, crefSuffix); ok {
		return e.annotate(lineNo, line, label, payload)
	}

	if !payload.IsLeafSequence(5) {
		return malformed(lineNo, line,
			"label %q payload must be 5 plain groups, found %s", key, describe(payload))
	}

	rec := record.NewLabel(key,
		payload.At(0).Text(),
		payload.At(1).Text(),
		payload.At(2).Text(),
		payload.At(3).Text(),
		payload.At(4).Text(),
	)
	e.append(rec)
	e.stats.Labels++
	e.logger.Debug("label", mdwlog.Fields{
		"label":  rec.TexLabel,
		"type":   rec.TypeValue(),
		"anchor": rec.Anchor,
		"line":   lineNo,
	})
	return nil
}

// annotate applies a cleveref type annotation to the previous record
func (e *Extractor) annotate(lineNo int, line, label string, payload bracket.Group) error {
	if e.last < 0 {
		return inconsistent(lineNo, line, "%s annotation for %q has no preceding label", crefSuffix, label)
	}
	prev := &e.records[e.last]
	if prev.TexLabel != label {
		return inconsistent(lineNo, line,
			"%s annotation for %q follows label %q", crefSuffix, label, prev.TexLabel)
	}

	if payload.IsLeaf() || payload.Len() == 0 || !payload.At(0).IsLeaf() {
		return inconsistent(lineNo, line, "%s annotation for %q has no type group", crefSuffix, label)
	}
	typeSpec := payload.At(0).Text()
	if !strings.HasPrefix(typeSpec, "[") {
		return inconsistent(lineNo, line, "%s type for %q must start with '['", crefSuffix, label)
	}
	closeAt := strings.IndexByte(typeSpec, ']')
	if closeAt < 0 {
		return inconsistent(lineNo, line, "%s type for %q is missing ']'", crefSuffix, label)
	}

	prev.SetType(typeSpec[1:closeAt])
	e.stats.Annotations++
	e.logger.Debug("annotation", mdwlog.Fields{"label": label, "type": prev.TypeValue(), "line": lineNo})
	return nil
}

func (e *Extractor) append(rec record.Record) {
	e.records = append(e.records, rec)
	e.last = len(e.records) - 1
}

func describe(g bracket.Group) string {
	switch {
	case g.IsLeaf():
		return "plain text"
	case g.IsLeafSequence(g.Len()):
		return strconv.Itoa(g.Len())
	default:
		return "nested groups"
	}
}

// Run reads r line by line until EOF and returns all records. The first
// error aborts the run and no records are returned.
func (e *Extractor) Run(ctx context.Context, r io.Reader) (Result, error) {
	e.Reset()
	timer := e.logger.StartTimer("extract")

	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			timer.StopWithError(err)
			return Result{}, err
		}

		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			err := mdwerror.Wrap(readErr, "reading aux input").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation(operation)
			timer.StopWithError(err)
			return Result{}, err
		}
		if line != "" {
			if err := e.ProcessLine(line); err != nil {
				timer.StopWithError(err)
				return Result{}, err
			}
		}
		if readErr != nil {
			break
		}
	}

	e.stats.Duration = timer.Stop()
	e.logger.Info("extraction finished", mdwlog.Fields{
		"records":     len(e.records),
		"lines":       e.stats.Lines,
		"labels":      e.stats.Labels,
		"citations":   e.stats.Citations,
		"annotations": e.stats.Annotations,
	})

	return Result{Records: e.records, Stats: e.stats}, nil
}
