package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/magnetde/starlark-grep/engine"
	"github.com/magnetde/starlark-grep/internal/logger"
)

// Name used for the standard input in the output.
const stdinName = "(standard input)"

// Longest accepted line.
const maxLineSize = 16 << 20

type matchFlags struct {
	invert       bool
	count        bool
	lineNumber   bool
	onlyMatching bool
	withFilename bool
	quiet        bool
	ignoreCase   bool
	engine       string
}

func matchCommand(root *rootOptions) *cobra.Command {
	var flags matchFlags

	matchCommand := &cobra.Command{
		Use:   "match PATTERN [FILE...]",
		Short: "Print lines matching a pattern",
		Long:  "Print lines of the files, that match the pattern. Without files, the standard input is read.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  match(root, &flags),
	}

	f := matchCommand.Flags()
	f.BoolVarP(&flags.invert, "invert-match", "v", false, "select non-matching lines")
	f.BoolVarP(&flags.count, "count", "c", false, "print only the number of selected lines per file")
	f.BoolVarP(&flags.lineNumber, "line-number", "n", false, "prefix each line with its line number")
	f.BoolVarP(&flags.onlyMatching, "only-matching", "o", false, "print only the matched parts of a line")
	f.BoolVarP(&flags.withFilename, "with-filename", "H", false, "prefix each line with the file name")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "print nothing, exit with zero status on the first match")
	f.BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "ignore case distinctions")
	f.StringVar(&flags.engine, "engine", "", "regex engine (\"auto\", \"std\", \"fallback\"); overrides the config")

	return matchCommand
}

func match(root *rootOptions, flags *matchFlags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := root.cfg.EngineOptions()
		if err != nil {
			return xerrors.Errorf("invalid config: %w", err)
		}

		if cmd.Flags().Changed("engine") {
			b, err := engine.ParseBackend(flags.engine)
			if err != nil {
				return xerrors.Errorf("unsupported value \"%s\" for --engine: %w", flags.engine, err)
			}

			opts = append(opts, engine.WithBackend(b))
		}
		if flags.ignoreCase {
			opts = append(opts, engine.WithIgnoreCase(true))
		}

		m, err := engine.CompileString(args[0], opts...)
		if err != nil {
			return xerrors.Errorf("invalid pattern: %w", err)
		}

		logger.Log.Debug("pattern compiled", zap.Stringer("matcher", m), zap.Stringer("backend", m.Backend()))

		s := &searcher{
			matcher:  m,
			flags:    flags,
			stdin:    cmd.InOrStdin(),
			out:      bufio.NewWriter(cmd.OutOrStdout()),
			showName: flags.withFilename || len(args) > 2,
		}

		res, err := s.searchAll(cmd, args[1:])
		if ferr := s.out.Flush(); err == nil && ferr != nil {
			err = xerrors.Errorf("unable to write output: %w", ferr)
		}

		switch {
		case flags.quiet && res:
			return nil
		case err != nil:
			return err
		case !res:
			return errNoMatch
		default:
			return nil
		}
	}
}

// searcher applies a matcher to the lines of multiple inputs.
type searcher struct {
	matcher  *engine.Matcher
	flags    *matchFlags
	stdin    io.Reader
	out      *bufio.Writer
	showName bool
}

// searchAll searches all files or the standard input, if no files are given.
// It reports whether any line was selected. Unreadable files are reported and skipped.
func (s *searcher) searchAll(cmd *cobra.Command, files []string) (bool, error) {
	if len(files) == 0 {
		return s.search(s.stdin, stdinName)
	}

	var (
		matched bool
		failed  error
	)

	for _, name := range files {
		ok, err := s.searchFile(name)
		if err != nil {
			logger.Log.Debug("search failed", zap.String("file", name), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "sgrep: %v\n", err)

			if failed == nil {
				failed = xerrors.Errorf("unable to search %s: %w", name, err)
			}
		}

		matched = matched || ok
		if matched && s.flags.quiet {
			break
		}
	}

	return matched, failed
}

func (s *searcher) searchFile(name string) (bool, error) {
	if name == "-" {
		return s.search(s.stdin, stdinName)
	}

	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return s.search(f, name)
}

// search scans the lines of the reader and prints the selected lines.
func (s *searcher) search(r io.Reader, name string) (bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	count := 0
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()

		ok, err := s.matcher.MatchString(line)
		if err != nil {
			return count > 0, xerrors.Errorf("%s:%d: %w", name, lineno, err)
		}
		if ok == s.flags.invert {
			continue
		}

		count++

		switch {
		case s.flags.quiet:
			return true, nil
		case s.flags.count:
		case s.flags.onlyMatching:
			if err := s.printMatches(name, lineno, line); err != nil {
				return true, err
			}
		default:
			s.printLine(name, lineno, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return count > 0, xerrors.Errorf("unable to read %s: %w", name, err)
	}

	if s.flags.count {
		s.printPrefix(name, 0)
		s.out.WriteString(strconv.Itoa(count))
		s.out.WriteByte('\n')
	}

	return count > 0, nil
}

// printMatches prints every matched part of the line on its own line.
// Inverted matches have no matched parts.
func (s *searcher) printMatches(name string, lineno int, line string) error {
	if s.flags.invert {
		return nil
	}

	locs, err := s.matcher.FindAll(line)
	if err != nil {
		return xerrors.Errorf("%s:%d: %w", name, lineno, err)
	}

	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}

		s.printLine(name, lineno, line[loc[0]:loc[1]])
	}

	return nil
}

func (s *searcher) printLine(name string, lineno int, text string) {
	s.printPrefix(name, lineno)
	s.out.WriteString(text)
	s.out.WriteByte('\n')
}

// printPrefix writes the file name and line number, if enabled.
// A line number of zero is never printed.
func (s *searcher) printPrefix(name string, lineno int) {
	if s.showName {
		s.out.WriteString(name)
		s.out.WriteByte(':')
	}
	if s.flags.lineNumber && lineno > 0 {
		s.out.WriteString(strconv.Itoa(lineno))
		s.out.WriteByte(':')
	}
}
