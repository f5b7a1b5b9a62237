package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/magnetde/starlark-grep/internal/config"
	"github.com/magnetde/starlark-grep/internal/logger"
)

// errNoMatch is returned by commands, that completed without finding a match.
var errNoMatch = errors.New("no match")

// Exit codes, following grep.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// rootOptions holds the persistent flags and the resolved config.
type rootOptions struct {
	configPath string
	logLevel   string
	logConfig  string

	cfg *config.Config
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command line and returns the exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCommand := newRootCommand()
	rootCommand.SetArgs(args)
	rootCommand.SetIn(stdin)
	rootCommand.SetOut(stdout)
	rootCommand.SetErr(stderr)

	err := rootCommand.Execute()
	switch {
	case err == nil:
		return exitMatch
	case errors.Is(err, errNoMatch):
		return exitNoMatch
	default:
		fmt.Fprintf(stderr, "sgrep: %v\n", err)
		return exitError
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: config.Default()}

	rootCommand := &cobra.Command{
		Use:               "sgrep",
		Short:             "Search lines with POSIX-flavored grep patterns",
		Example:           "sgrep match '^[[:digit:]]{3}$' numbers.txt",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
	}

	rootCommand.AddCommand(matchCommand(opts))
	rootCommand.AddCommand(parseCommand())
	rootCommand.AddCommand(runCommand(opts))

	rootCommand.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to yaml file with sgrep configuration")
	rootCommand.PersistentFlags().StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "Specifies logging level for output logs (\"panic\", \"fatal\", \"error\", \"warning\", \"info\", \"debug\")")
	rootCommand.PersistentFlags().StringVar(&opts.logConfig, "log-config", config.DefaultLogConfig, "Specifies logging config for output logs (\"console\", \"json\", \"minimal\")")

	return rootCommand
}

// setup loads the config file and replaces the global logger.
// Flags, that were set explicitly, override the values of the config file.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return xerrors.Errorf("unable to load config: %w", err)
		}

		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-config") {
		cfg.LogConfig = o.logConfig
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return xerrors.Errorf("unsupported value \"%s\" for --log-level: %w", cfg.LogLevel, err)
	}

	loggerConfig := logger.DefaultLoggerConfig(level)
	if err := logger.ApplyLogConfig(&loggerConfig, cfg.LogConfig); err != nil {
		return xerrors.Errorf("unsupported value \"%s\" for --log-config: %w", cfg.LogConfig, err)
	}

	l, err := loggerConfig.Build()
	if err != nil {
		return xerrors.Errorf("unable to build logger: %w", err)
	}

	logger.Log = l
	o.cfg = cfg

	return nil
}
