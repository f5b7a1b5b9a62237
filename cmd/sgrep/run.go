package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	grep "github.com/magnetde/starlark-grep"
	"github.com/magnetde/starlark-grep/internal/logger"
)

func runCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Execute a Starlark script with the grep module",
		Args:  cobra.ExactArgs(1),
		RunE:  run(root),
	}
}

func run(root *rootOptions) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := root.cfg.EngineOptions()
		if err != nil {
			return xerrors.Errorf("invalid config: %w", err)
		}

		module := grep.NewModule(opts...)
		module.SetCacheSize(root.cfg.CacheSize)

		predeclared := starlark.StringDict{
			"grep":   module,
			"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
		}

		out := cmd.OutOrStdout()
		thread := &starlark.Thread{
			Name: "sgrep run",
			Print: func(_ *starlark.Thread, msg string) {
				fmt.Fprintln(out, msg)
			},
		}

		fileOpts := &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
		}

		logger.Log.Debug("running script", zap.String("script", args[0]), zap.Int("cache_size", root.cfg.CacheSize))

		if _, err := starlark.ExecFileOptions(fileOpts, thread, args[0], nil, predeclared); err != nil {
			var evalErr *starlark.EvalError
			if errors.As(err, &evalErr) {
				return xerrors.Errorf("script failed:\n%s", evalErr.Backtrace())
			}

			return xerrors.Errorf("script failed: %w", err)
		}

		return nil
	}
}
