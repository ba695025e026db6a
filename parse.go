package arith

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// The parser reads the input one rune at a time and never looks ahead. Runes
// of a literal collect in a buffer; when something ends the literal, the
// buffer is flushed into a node that is attached after the tree built so
// far. An operator wraps the tree in an incomplete binary node, which the
// next flushed literal completes. So operators apply strictly left to right:
//
//	4 - 3 + 5  ->  (4 - 3) + 5

// bufstate is the kind of token the parser is buffering.
type bufstate int8

const (
	// stateEmpty means no token is buffered. Whether a rune starts a new
	// operand or continues after a complete one depends on the tree.
	stateEmpty bufstate = iota
	// stateNumber is a numeric literal, possibly with a leading '-'.
	stateNumber
	// stateName is an identifier. Names are buffered but cannot be
	// flushed, because nothing resolves them at parse time.
	stateName
)

// parsectx holds the state of a single parse.
type parsectx struct {
	parseconf

	buf   strings.Builder
	state bufstate
	// start is the index of the first buffered rune.
	start int
	// point indicates that the buffered number has a decimal point.
	point bool

	// tree is the expression built so far, or nil before the first flush.
	tree *Expr
	// op and opidx are the last operator applied and its index.
	op    rune
	opidx int
}

// Parse parses an expression from src. The given options are applied in
// order. Errors caused by the input implement InputError. Errors from src
// other than io.EOF are returned as-is.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p.parseconf = opt.parseOption(p.parseconf)
	}
	i := 0
	for ; ; i++ {
		r, _, err := src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if p.stops(r) {
			break
		}
		if err := p.next(r, i); err != nil {
			return nil, err
		}
	}
	return p.finish(i)
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// complete returns whether the tree can be finished as-is.
func (p *parsectx) complete() bool {
	return p.tree != nil && (p.tree.kind == KindScalar || p.tree.right != nil)
}

// stops returns whether r ends the expression.
func (p *parsectx) stops(r rune) bool {
	if !strings.ContainsRune(p.stop, r) {
		return false
	}
	return p.state != stateEmpty || p.complete()
}

// next dispatches one rune on the buffer state.
func (p *parsectx) next(r rune, i int) error {
	c := classify(r)
	if c == ClassBracket {
		return invalid(r, i, MsgBracketUnsupported)
	}
	switch p.state {
	case stateEmpty:
		return p.empty(r, c, i)
	case stateNumber:
		return p.number(r, c, i)
	case stateName:
		return p.name(r, c, i)
	default:
		panic("arith: invalid parser state " + strconv.Itoa(int(p.state)))
	}
}

// empty handles a rune with nothing buffered.
func (p *parsectx) empty(r rune, c Class, i int) error {
	if p.complete() {
		return p.terminated(r, c, i)
	}
	switch c {
	case ClassNumber:
		p.begin(stateNumber, r, i)
	case ClassLetter:
		p.begin(stateName, r, i)
	case ClassOperator:
		// At the start of an operand, only a negative sign is allowed.
		if operatorKind(r) != OpSub {
			return invalid(r, i, MsgOperatorAtStart)
		}
		p.begin(stateNumber, r, i)
	case ClassWhitespace:
		// do nothing
	case ClassPoint:
		return invalid(r, i, MsgPointAtStart)
	default:
		return invalid(r, i, MsgUnknownSymbol)
	}
	return nil
}

// terminated handles a rune with nothing buffered after a complete
// expression. Only an operator can continue it.
func (p *parsectx) terminated(r rune, c Class, i int) error {
	switch c {
	case ClassOperator:
		return p.apply(operatorKind(r), r, i)
	case ClassWhitespace:
		return nil
	default:
		return invalid(r, i, MsgExpectedOperator)
	}
}

// number handles a rune while buffering a numeric literal.
func (p *parsectx) number(r rune, c Class, i int) error {
	switch c {
	case ClassNumber:
		p.buf.WriteRune(r)
	case ClassPoint:
		if p.point {
			return invalid(r, i, MsgSecondPoint)
		}
		p.point = true
		p.buf.WriteRune(r)
	case ClassLetter:
		return invalid(r, i, MsgLetterInNumber)
	case ClassOperator:
		if err := p.flush(); err != nil {
			return err
		}
		return p.empty(r, c, i)
	case ClassWhitespace:
		return p.flush()
	default:
		return invalid(r, i, MsgUnknownSymbol)
	}
	return nil
}

// name handles a rune while buffering an identifier.
func (p *parsectx) name(r rune, c Class, i int) error {
	switch c {
	case ClassNumber, ClassLetter:
		p.buf.WriteRune(r)
	case ClassPoint:
		return invalid(r, i, MsgPointInName)
	case ClassOperator:
		if err := p.flush(); err != nil {
			return err
		}
		return p.empty(r, c, i)
	case ClassWhitespace:
		return p.flush()
	default:
		return invalid(r, i, MsgUnknownSymbol)
	}
	return nil
}

// begin starts buffering a token.
func (p *parsectx) begin(state bufstate, r rune, i int) {
	p.state = state
	p.start = i
	p.buf.WriteRune(r)
}

// apply wraps the complete tree in an incomplete node for an operator.
func (p *parsectx) apply(op Op, r rune, i int) error {
	k := op.kind()
	if k == KindNone {
		return invalid(r, i, MsgUnsupportedOp)
	}
	p.tree = Binary(k, p.tree, nil)
	p.op, p.opidx = r, i
	return nil
}

// flush converts the buffered token to a node, attaches it to the tree, and
// resets the buffer.
func (p *parsectx) flush() error {
	text := p.buf.String()
	state := p.state
	p.buf.Reset()
	p.state = stateEmpty
	p.point = false
	switch state {
	case stateNumber:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			var nerr *strconv.NumError
			if errors.As(err, &nerr) {
				err = nerr.Err
			}
			return &ParsingError{Index: p.start, Text: text, Err: err}
		}
		return p.attach(Scalar(v))
	case stateName:
		return &ParsingError{Index: p.start, Text: text}
	default:
		panic("arith: flush in parser state " + strconv.Itoa(int(state)))
	}
}

// attach attaches n after the tree, or makes it the tree if there is none.
func (p *parsectx) attach(n *Expr) error {
	if p.tree == nil {
		p.tree = n
		return nil
	}
	t, err := p.tree.AttachAfter(n)
	if err != nil {
		return err
	}
	p.tree = t
	return nil
}

// finish flushes any remaining token and returns the tree. n is the number
// of runes parsed.
func (p *parsectx) finish(n int) (*Expr, error) {
	if p.state != stateEmpty {
		if err := p.flush(); err != nil {
			return nil, err
		}
	}
	switch {
	case p.tree == nil:
		return nil, &EmptyBufferError{Index: n}
	case !p.complete():
		return nil, &EmptyBufferError{Index: n, Op: p.op, OpIndex: p.opidx}
	}
	return p.tree, nil
}

func invalid(r rune, i int, msg string) error {
	return &InvalidCharacterError{Index: i, Char: r, Message: msg}
}
