package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	mdwlog "github.com/msto63/texrefs/foundation/core/log"
	"github.com/msto63/texrefs/internal/texaux/extract"
	"github.com/msto63/texrefs/pkg/core/config"
	"github.com/msto63/texrefs/pkg/core/logging"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	rootFlags extractFlags
)

var rootCmd = &cobra.Command{
	Use:   "texrefs <file.aux>",
	Short: "Extract cross-references from LaTeX aux files",
	Long: `texrefs reads the .aux file LaTeX writes next to a document and lists
the targets it declares: section, theorem, definition and equation labels
with their printed number, page and hyperref anchor, and optionally the
bibliography entries.

The records are written as a JSON array with one object per line:

  texrefs paper.aux -o refs.json
  texrefs paper.aux --include-bib --format yaml

Configuration is read from texrefs.toml (see "texrefs init"), TEXREFS_*
environment variables and finally the command-line flags.`,
	Args:          usageArgs(cobra.MaximumNArgs(1)),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runExtract(cmd, args[0], &rootFlags)
	},
}

// Execute runs the command tree and prints a diagnostic for a failure
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./texrefs.toml, ./texrefs.yaml, ~/.config/texrefs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr (debug level)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, console, json or logfmt")
	addExtractFlags(rootCmd, &rootFlags)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})
}

// usageError marks errors in the invocation itself
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func usageErrorf(format string, args ...interface{}) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by Execute to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	switch mdwerror.GetCode(err) {
	case mdwerror.CodeConfigError, mdwerror.CodeInvalidConfig:
		return ExitUsage
	}
	return ExitFailure
}

func printError(w io.Writer, err error) {
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(w, "texrefs: %v\nRun 'texrefs --help' for usage.\n", ue.err)
		return
	}

	e, ok := mdwerror.As(err)
	if !ok {
		fmt.Fprintf(w, "texrefs: %v\n", err)
		return
	}

	if line, ok := extract.Line(err); ok {
		fmt.Fprintf(w, "texrefs: %s at line %d: %v\n", e.Code(), line, err)
		if text, ok := extract.Text(err); ok {
			fmt.Fprintf(w, "  %s\n", text)
		}
		return
	}
	fmt.Fprintf(w, "texrefs: %s: %v\n", e.Code(), err)
}

// app carries what every command needs after startup
type app struct {
	cfg    *config.Config
	logger *mdwlog.Logger
	runID  string
	stored bool
}

// setup loads the configuration and builds the logger. Flag overrides that
// belong to one command are applied by the caller before validate.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	runID := uuid.NewString()
	logger := logging.NewLogger(logging.LoggerConfig{
		Name:   "texrefs",
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		RunID:  runID,
		Output: cmd.ErrOrStderr(),
	})
	if src := cfg.Source(); src != "" {
		logger.Debug("configuration loaded", mdwlog.Fields{"path": src})
	}

	return &app{cfg: cfg, logger: logger, runID: runID}, nil
}

func (a *app) validate() error {
	return a.cfg.Validate()
}

// fail records err in the debug log and returns it for the diagnostic
func (a *app) fail(err error) error {
	if a.logger.IsLevelEnabled(mdwlog.LevelDebug) {
		a.logger.LogError(err)
	}
	return err
}
