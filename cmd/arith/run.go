package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/arith"
	"github.com/zephyrtronium/arith/internal/config"
)

// ErrEvaluation is returned by run when any expression fails to evaluate.
var ErrEvaluation = errors.New("some expressions failed to evaluate")

// inputs gathers the sources to read expressions from. The file named by in
// comes first, then each argument. Stdin is used when in is "-", or when in
// is empty and there are no arguments.
func inputs(in string, args []string, stdin io.Reader) ([]io.RuneScanner, func(), error) {
	var ins []io.RuneScanner
	closer := func() {}
	switch {
	case in != "" && in != "-":
		f, err := os.Open(in)
		if err != nil {
			return nil, closer, err
		}
		ins = append(ins, bufio.NewReader(f))
		closer = func() { f.Close() }
	case in == "-", len(args) == 0:
		ins = append(ins, bufio.NewReader(stdin))
	}
	for _, arg := range args {
		ins = append(ins, strings.NewReader(arg))
	}
	return ins, closer, nil
}

// run parses and evaluates every expression in ins, writing results to out.
// Parse errors stop the run, since the rest of the input cannot be resynced.
// Evaluation errors are printed in place of the result, and run returns
// ErrEvaluation once all input is consumed.
func run(ins []io.RuneScanner, out io.Writer, cfg config.Config, logger zerolog.Logger) error {
	ctx := arith.NewContext(cfg.ContextOptions()...)
	var opts []arith.ParseOption
	if cfg.Lines {
		opts = append(opts, arith.StopOn('\n'))
	}
	verb := cfg.Format + "\n"
	red := color.New(color.FgRed)
	failed := 0
	for k, in := range ins {
		for n := 0; ; n++ {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return err
			}
			in.UnreadRune()
			a, err := arith.Parse(in, opts...)
			if err != nil {
				var eb *arith.EmptyBufferError
				if errors.As(err, &eb) && eb.Op == 0 {
					// Only whitespace remained.
					logger.Debug().Int("input", k).Int("n", n).Msg("trailing whitespace")
					break
				}
				logger.Error().Err(err).Int("input", k).Int("n", n).Msg("parse failed")
				return fmt.Errorf("input %d, expression %d: %w", k, n, err)
			}
			logger.Debug().Int("input", k).Int("n", n).Stringer("expr", a).Msg("parsed")
			if cfg.Echo {
				fmt.Fprintf(out, "%v : ", a)
			}
			r, err := a.Eval(ctx)
			if err != nil {
				logger.Warn().Err(err).Stringer("expr", a).Msg("evaluation failed")
				red.Fprintln(out, err)
				failed++
				continue
			}
			fmt.Fprintf(out, verb, r)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d failed", ErrEvaluation, failed)
	}
	return nil
}
