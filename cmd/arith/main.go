// Command arith evaluates arithmetic expressions strictly left to right.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/arith/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

type flags struct {
	in        string
	format    string
	lines     bool
	echo      bool
	tolerance float64
	config    string
	logLevel  string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "arith [expression...]",
		Short: "Evaluate arithmetic expressions left to right",
		Long: `Arith evaluates expressions made of numbers and the operators + - * /.
Operators have no precedence: 1 + 2 * 3 is 9.

Expressions are read from the arguments, from the file named by --in, or from
standard input when there are no arguments.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("fmt") {
				cfg.Format = f.format
			}
			if fl.Changed("lines") {
				cfg.Lines = f.lines
			}
			if fl.Changed("echo") {
				cfg.Echo = f.echo
			}
			if fl.Changed("tolerance") {
				cfg.Tolerance = f.tolerance
			}
			if fl.Changed("log-level") {
				cfg.LogLevel = f.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			level, _ := cfg.Level()
			logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
				With().Timestamp().Str("cmd", "arith").Logger().
				Level(level)

			ins, closer, err := inputs(f.in, args, stdin)
			if err != nil {
				return err
			}
			defer closer()
			logger.Debug().Int("inputs", len(ins)).Bool("lines", cfg.Lines).Float64("tolerance", cfg.Tolerance).Msg("starting")
			return run(ins, stdout, cfg, logger)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.in, "in", "", `input file, "-" for stdin (default stdin if no args given)`)
	fl.StringVar(&f.format, "fmt", "%g", "result formatting string")
	fl.BoolVarP(&f.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	fl.BoolVar(&f.echo, "echo", false, "print each expression before its result")
	fl.Float64Var(&f.tolerance, "tolerance", 0, "divisors closer to zero than this are errors (default from config)")
	fl.StringVar(&f.config, "config", "", "YAML configuration file")
	fl.StringVar(&f.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("arith: %v", err))
		os.Exit(1)
	}
}
