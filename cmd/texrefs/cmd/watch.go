package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/texrefs/foundation/core/log"
	"github.com/msto63/texrefs/internal/texaux/export"
	"github.com/msto63/texrefs/internal/texaux/extract"
	"github.com/msto63/texrefs/internal/texaux/watch"
)

var (
	watchFlags    extractFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.aux> -o <output>",
	Short: "Re-extract whenever the aux file changes",
	Long: `Watch extracts once at startup and again after every change to the aux
file, e.g. while latexmk -pvc is running. The output file is replaced
atomically, so readers never see a partial result. A run that fails is
logged and the previous output stays in place.

Stop with Ctrl+C.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runWatch,
}

func init() {
	addExtractFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before re-extracting (default from config, 300ms)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	watchFlags.apply(cmd, a)
	if cmd.Flags().Changed("debounce") {
		a.cfg.Watch.Debounce.Duration = watchDebounce
	}
	if err := a.validate(); err != nil {
		return err
	}
	if a.cfg.Output.Path == "" || a.cfg.Output.Path == "-" {
		return usageErrorf("watch needs an output file (-o or output.path)")
	}

	format, err := export.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return a.fail(err)
	}

	input := args[0]
	if input == extract.StdinPath {
		return usageErrorf("watch cannot read standard input")
	}

	// Info level so the user sees each update without --verbose.
	logger := a.logger
	if !logger.IsLevelEnabled(mdwlog.LevelInfo) {
		logger = logger.WithLevel(mdwlog.LevelInfo)
	}

	w, err := watch.New(watch.Options{
		Path:       input,
		Debounce:   a.cfg.Watch.Debounce.Duration,
		RunOnStart: true,
		Logger:     logger,
	}, func(ctx context.Context) error {
		res, err := extract.File(ctx, input, extract.Options{
			IncludeBib: a.cfg.Extract.IncludeBib,
			Logger:     a.logger,
		})
		if err != nil {
			return err
		}
		if err := writeResult(ctx, cmd.OutOrStdout(), a, input, format, res); err != nil {
			return err
		}
		logger.Info("references updated", mdwlog.Fields{
			"records": len(res.Records),
			"output":  a.cfg.Output.Path,
		})
		return nil
	})
	if err != nil {
		return a.fail(err)
	}

	return w.Run(cmd.Context())
}
