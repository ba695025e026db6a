package arith

import "strconv"

// Messages carried by InvalidCharacterError.
const (
	MsgOperatorAtStart    = "Operator at the start of a block"
	MsgPointAtStart       = "Point at the start of a block"
	MsgLetterInNumber     = "Letter inside number"
	MsgUnknownSymbol      = "Unknown symbol"
	MsgSecondPoint        = "Second point inside number"
	MsgPointInName        = "Point inside name"
	MsgUnsupportedOp      = "Unsupported operator"
	MsgBracketUnsupported = "Brackets are not supported"
	MsgExpectedOperator   = "Expected operator after previous expression"
)

// EmptyBufferError is an error indicating that the input ended without a
// complete expression. It implements InputError.
type EmptyBufferError struct {
	// Index is the number of runes in the input.
	Index int
	// Op is the operator left without a right operand, or 0 if the input
	// contained no expression at all.
	Op rune
	// OpIndex is the position of Op.
	OpIndex int
}

func (err *EmptyBufferError) Error() string {
	if err.Op == 0 {
		return "empty buffer"
	}
	return errpos(err.OpIndex, "empty buffer after operator "+strconv.QuoteRune(err.Op))
}

func (err *EmptyBufferError) Pos() int {
	return err.Index
}

// InvalidCharacterError is an error indicating a rune that is not valid in
// the parser's current state. It implements InputError.
type InvalidCharacterError struct {
	// Index is the position of the rune.
	Index int
	// Char is the offending rune.
	Char rune
	// Message is one of the Msg constants describing the problem.
	Message string
}

func (err *InvalidCharacterError) Error() string {
	return "error at char " + strconv.QuoteRune(err.Char) + " at index " + strconv.Itoa(err.Index) + " (" + err.Message + ")"
}

func (err *InvalidCharacterError) Pos() int {
	return err.Index
}

// ParsingError is an error indicating a buffered token that could not be
// converted into an expression. It implements InputError.
type ParsingError struct {
	// Index is the position of the first rune of the token.
	Index int
	// Text is the buffered token.
	Text string
	// Err is the conversion error, if any.
	Err error
}

func (err *ParsingError) Error() string {
	if err.Err == nil {
		return errpos(err.Index, "cannot use name "+strconv.Quote(err.Text)+" in an expression")
	}
	return errpos(err.Index, "error while parsing number "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *ParsingError) Pos() int {
	return err.Index
}

func (err *ParsingError) Unwrap() error {
	return err.Err
}

// AttachImpossibleError is an error indicating that a node cannot be attached
// after a tree.
type AttachImpossibleError struct {
	// Target is the kind of the tree's root.
	Target Kind
	// Attach is the kind of the node that was being attached.
	Attach Kind
}

func (err *AttachImpossibleError) Error() string {
	return "cannot attach " + err.Attach.String() + " after " + err.Target.String()
}

// DivisionByZeroError is an error returned from evaluating a division whose
// divisor is within the evaluation tolerance of zero.
type DivisionByZeroError struct {
	// Divisor is the value of the right operand.
	Divisor float64
	// Tolerance is the tolerance in effect.
	Tolerance float64
}

func (err *DivisionByZeroError) Error() string {
	return "division by " + strconv.FormatFloat(err.Divisor, 'g', -1, 64) +
		" (within " + strconv.FormatFloat(err.Tolerance, 'g', -1, 64) + " of zero)"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input during parsing implements InputError, except that attachment
// errors carry no position of their own.
type InputError interface {
	error
	// Pos returns the 0-based rune index at which the error was detected.
	Pos() int
}

var (
	_ InputError = (*EmptyBufferError)(nil)
	_ InputError = (*InvalidCharacterError)(nil)
	_ InputError = (*ParsingError)(nil)
)
