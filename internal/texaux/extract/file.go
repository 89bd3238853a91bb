package extract

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	mdwlog "github.com/msto63/texrefs/foundation/core/log"
)

// StdinPath selects standard input as the aux source
const StdinPath = "-"

// File runs a complete extraction of the aux file at path. The path "-"
// reads opts.Stdin, or the process's standard input when that is nil.
func File(ctx context.Context, path string, opts Options) (Result, error) {
	var r io.Reader = os.Stdin
	if opts.Stdin != nil {
		r = opts.Stdin
	}
	if path != StdinPath {
		f, err := os.Open(path)
		if err != nil {
			code := mdwerror.CodeInvalidInput
			if errors.Is(err, fs.ErrNotExist) {
				code = mdwerror.CodeNotFound
			}
			return Result{}, mdwerror.Wrap(err, "opening aux file").
				WithCode(code).
				WithOperation(operation).
				WithDetail("path", path)
		}
		defer f.Close()
		r = f
	}

	if opts.Logger != nil {
		opts.Logger = opts.Logger.WithField("file", path)
	} else {
		opts.Logger = mdwlog.Discard()
	}
	return New(opts).Run(ctx, r)
}
