package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/magnetde/starlark-grep/pattern"
)

func parseCommand() *cobra.Command {
	var syntax string

	parseCommand := &cobra.Command{
		Use:   "parse PATTERN",
		Short: "Print the syntax tree of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE:  parse(&syntax),
	}
	parseCommand.Flags().StringVar(&syntax, "syntax", "", "print the pattern in the syntax of a regex engine instead (\"re2\", \"net\")")

	return parseCommand
}

func parse(syntax *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		expr, err := pattern.Parse(args[0])
		if err != nil {
			return xerrors.Errorf("invalid pattern: %w", err)
		}

		var out string
		switch *syntax {
		case "":
			out = expr.Dump()
		case "re2":
			out = expr.Syntax(pattern.DialectRE2)
		case "net":
			out = expr.Syntax(pattern.DialectNET)
		default:
			return xerrors.Errorf("unsupported value \"%s\" for --syntax", *syntax)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}
}
