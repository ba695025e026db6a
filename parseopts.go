package arith

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parseconf) parseconf
}

// parseconf holds the parse options.
type parseconf struct {
	// stop is a string containing the whitespace characters that end the
	// expression once it is complete.
	stop string
}

type stopopt string

// StopOn tells the parser to treat a list of whitespace characters as ending
// the expression. A stop character only ends an expression when the parser
// holds a complete expression or an unfinished number; at the start of the
// input or following an operator, it is ordinary whitespace. The stop
// character is consumed. This allows a single reader to hold many
// expressions, e.g. one per line with StopOn('\n').
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF. Panics if any rune is not whitespace.
func StopOn(chars ...rune) ParseOption {
	var b strings.Builder
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("arith: cannot stop on " + strconv.QuoteRune(r))
		}
		if strings.ContainsRune(b.String(), r) {
			continue
		}
		b.WriteRune(r)
	}
	return stopopt(b.String())
}

func (o stopopt) parseOption(p parseconf) parseconf {
	p.stop = string(o)
	return p
}
