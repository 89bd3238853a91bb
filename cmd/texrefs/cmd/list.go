package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/texrefs/internal/texaux/export"
	"github.com/msto63/texrefs/internal/texaux/extract"
	"github.com/msto63/texrefs/internal/texaux/record"
	"github.com/msto63/texrefs/internal/texaux/render"
)

var (
	listTypes      string
	listIncludeBib bool
)

var listCmd = &cobra.Command{
	Use:   "list <file.aux|refs.db>",
	Short: "Show cross-references as a table",
	Long: `List prints the records of an aux file as a table with a summary of
the types found. Given a SQLite database written with --format sqlite it
shows the newest stored run instead.

  texrefs list paper.aux --type theorem,lemma
  texrefs list refs.db --type none`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listTypes, "type", "t", "", "comma-separated types to show (\"none\" for untyped records)")
	listCmd.Flags().BoolVar(&listIncludeBib, "include-bib", false, "also list \\bibcite entries")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("include-bib") {
		a.cfg.Extract.IncludeBib = listIncludeBib
	}
	if err := a.validate(); err != nil {
		return err
	}

	input := args[0]
	var records []record.Record
	title := input

	if isDatabase(input) {
		store, err := export.OpenStore(input)
		if err != nil {
			return a.fail(err)
		}
		defer store.Close()

		run, stored, err := store.Latest(cmd.Context())
		if err != nil {
			return a.fail(err)
		}
		records = stored
		title = fmt.Sprintf("%s (run %s, %s)", run.Source, shortID(run.ID), run.CreatedAt.Local().Format("2006-01-02 15:04"))
	} else {
		res, err := extract.File(cmd.Context(), input, extract.Options{
			IncludeBib: a.cfg.Extract.IncludeBib,
			Logger:     a.logger,
			Stdin:      cmd.InOrStdin(),
		})
		if err != nil {
			return a.fail(err)
		}
		records = res.Records
	}

	var types []string
	if listTypes != "" {
		types = strings.Split(listTypes, ",")
	}

	fmt.Fprint(cmd.OutOrStdout(), render.Report(title, render.Filter(records, types...)))
	return nil
}

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
