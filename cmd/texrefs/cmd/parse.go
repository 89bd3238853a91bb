package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/texrefs/internal/texaux/bracket"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Print the brace tree of each line read from standard input",
	Long: `Parse is a debugging aid. Every line read from standard input is
trimmed and parsed as brace groups from its first character; the
resulting tree is printed as nested lists:

  $ echo '{defn:monoid}{{1}{3}{}{definition.1}{}}' | texrefs parse
  ["defn:monoid", ["1", "3", "", "definition.1", ""]]

Lines that fail to parse are reported and processing continues.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo, failed := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		tree, _, err := bracket.Parse(line, 0, len(line))
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", lineNo, err)
			continue
		}
		fmt.Fprintln(out, tree.Repr())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lines could not be parsed", failed, lineNo)
	}
	return nil
}
