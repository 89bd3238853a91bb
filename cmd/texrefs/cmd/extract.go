package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/texrefs/foundation/core/log"
	"github.com/msto63/texrefs/internal/texaux/export"
	"github.com/msto63/texrefs/internal/texaux/extract"
)

// extractFlags are shared by the root command, extract and watch
type extractFlags struct {
	output     string
	format     string
	includeBib bool
	stats      bool
}

var extractCmdFlags extractFlags

var extractCmd = &cobra.Command{
	Use:   "extract <file.aux>",
	Short: "Extract cross-references (same as texrefs <file.aux>)",
	Long: `Extract reads a LaTeX aux file ("-" for standard input) and writes one
record per \newlabel, plus one per \bibcite with --include-bib.

A following \newlabel{<label>@cref} line written by cleveref sets the type
of the preceding record. Any malformed line aborts the run; nothing is
written in that case.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0], &extractCmdFlags)
	},
}

func init() {
	addExtractFlags(extractCmd, &extractCmdFlags)
	rootCmd.AddCommand(extractCmd)
}

func addExtractFlags(cmd *cobra.Command, f *extractFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: standard output)")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: json, yaml or sqlite (default json)")
	cmd.Flags().BoolVar(&f.includeBib, "include-bib", false, "also emit \\bibcite entries")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print run statistics as JSON to stderr")
}

// apply overrides the configuration with the flags the user set
func (f *extractFlags) apply(cmd *cobra.Command, a *app) {
	if cmd.Flags().Changed("output") {
		a.cfg.Output.Path = f.output
	}
	if cmd.Flags().Changed("format") {
		a.cfg.Output.Format = f.format
	}
	if cmd.Flags().Changed("include-bib") {
		a.cfg.Extract.IncludeBib = f.includeBib
	}
}

func runExtract(cmd *cobra.Command, input string, f *extractFlags) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	f.apply(cmd, a)
	if err := a.validate(); err != nil {
		return err
	}

	format, err := export.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return a.fail(err)
	}

	ctx := cmd.Context()
	res, err := extract.File(ctx, input, extract.Options{
		IncludeBib: a.cfg.Extract.IncludeBib,
		Logger:     a.logger,
		Stdin:      cmd.InOrStdin(),
	})
	if err != nil {
		return a.fail(err)
	}

	if err := writeResult(ctx, cmd.OutOrStdout(), a, input, format, res); err != nil {
		return a.fail(err)
	}

	if f.stats {
		return export.WriteValue(cmd.ErrOrStderr(), res.Stats)
	}
	return nil
}

// writeResult sends the records to the configured destination
func writeResult(ctx context.Context, stdout io.Writer, a *app, input string, format export.Format, res extract.Result) error {
	path := a.cfg.Output.Path

	if format == export.FormatSQLite {
		store, err := export.OpenStore(path)
		if err != nil {
			return err
		}
		defer store.Close()

		// The first stored run shares its id with the log correlation id.
		run := export.NewRun(input, a.cfg.Extract.IncludeBib)
		if !a.stored {
			run.ID = a.runID
		}
		if err := store.Save(ctx, run, res.Records); err != nil {
			return err
		}
		a.stored = true
		a.logger.Info("records stored", mdwlog.Fields{"db": path, "records": len(res.Records)})
		return nil
	}

	exporter, err := export.New(format)
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		return exporter.Export(ctx, stdout, res.Records)
	}

	timer := a.logger.StartTimer("write output").WithField("path", path)
	err = export.WriteFileAtomic(path, func(f *os.File) error {
		return exporter.Export(ctx, f, res.Records)
	})
	if err != nil {
		timer.StopWithError(err)
		return err
	}
	timer.Stop()
	return nil
}
