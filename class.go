package arith

import (
	"strconv"
	"strings"
	"unicode"
)

// Class is the coarse class of a single input rune.
type Class int8

const (
	ClassUnknown Class = iota
	// ClassNumber is any numeric character. Only ASCII digits convert.
	ClassNumber
	// ClassLetter is an alphabetic rune.
	ClassLetter
	// ClassOperator is one of the runes in Operators.
	ClassOperator
	// ClassWhitespace is any Unicode space.
	ClassWhitespace
	// ClassBracket is one of the runes in Brackets.
	ClassBracket
	// ClassPoint is the decimal point.
	ClassPoint
)

func (c Class) String() string {
	switch c {
	case ClassUnknown:
		return "Unknown"
	case ClassNumber:
		return "Number"
	case ClassLetter:
		return "Letter"
	case ClassOperator:
		return "Operator"
	case ClassWhitespace:
		return "Whitespace"
	case ClassBracket:
		return "Bracket"
	case ClassPoint:
		return "Point"
	default:
		return "Class(" + strconv.Itoa(int(c)) + ")"
	}
}

// Op is the kind of an operator rune.
type Op int8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (o Op) String() string {
	if o < 0 || int(o) >= len(Operators) {
		return "Op(" + strconv.Itoa(int(o)) + ")"
	}
	return Operators[o : o+1]
}

// Operators contains the runes which are classified as operators, in the
// order of their Op values.
const Operators = "+-*/^"

// Brackets contains the runes which are classified as brackets. The parser
// rejects all of them.
const Brackets = "(){}[]"

// classify returns the class of r. The first matching class wins, so digits
// are numbers before they are anything else.
func classify(r rune) Class {
	switch {
	case unicode.IsNumber(r):
		return ClassNumber
	case strings.ContainsRune(Operators, r):
		return ClassOperator
	case unicode.IsLetter(r):
		return ClassLetter
	case r == '.':
		return ClassPoint
	case unicode.IsSpace(r):
		return ClassWhitespace
	case strings.ContainsRune(Brackets, r):
		return ClassBracket
	default:
		return ClassUnknown
	}
}

// operatorKind gets the operator kind for a rune. Panics if classify(r) is
// not ClassOperator.
func operatorKind(r rune) Op {
	k := strings.IndexRune(Operators, r)
	if k < 0 {
		panic("arith: operatorKind on non-operator " + strconv.QuoteRune(r))
	}
	return Op(k)
}

// kind gets the node kind that applies the operator, or KindNone if there is
// no such node.
func (o Op) kind() Kind {
	switch o {
	case OpAdd:
		return KindAdd
	case OpSub:
		return KindSub
	case OpMul:
		return KindMul
	case OpDiv:
		return KindDiv
	default:
		return KindNone
	}
}
