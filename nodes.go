package arith

import (
	"strconv"
	"strings"
)

// Expr is a node in an expression tree. The zero value is not a valid
// expression; create nodes with Scalar and Binary, or with Parse.
//
// A binary node with no right operand is incomplete. Incomplete nodes only
// exist while a tree is being assembled: they can gain a right operand
// through AttachAfter, but evaluating or formatting one panics. Nodes are
// never modified after they are created, so complete subtrees may be shared
// between trees.
type Expr struct {
	kind Kind
	val  float64

	left  *Expr
	right *Expr
}

// Kind is the variant of an expression node.
type Kind int8

const (
	KindNone Kind = iota

	KindScalar // val
	KindAdd    // left + right
	KindSub    // left - right
	KindMul    // left * right
	KindDiv    // left / right
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindScalar:
		return "ScalarValue"
	case KindAdd:
		return "Addition"
	case KindSub:
		return "Subtraction"
	case KindMul:
		return "Multiplication"
	case KindDiv:
		return "Division"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// binary returns whether k is a binary operator kind.
func (k Kind) binary() bool {
	return KindAdd <= k && k <= KindDiv
}

// symbol returns the operator text for a binary kind.
func (k Kind) symbol() string {
	switch k {
	case KindAdd:
		return " + "
	case KindSub:
		return " - "
	case KindMul:
		return " * "
	case KindDiv:
		return " / "
	default:
		panic("arith: no symbol for node kind " + k.String())
	}
}

// Scalar creates a literal node.
func Scalar(v float64) *Expr {
	return &Expr{kind: KindScalar, val: v}
}

// Binary creates a binary operator node. If right is nil, the node is
// incomplete. Panics if k is not a binary kind or left is nil.
func Binary(k Kind, left, right *Expr) *Expr {
	if !k.binary() {
		panic("arith: Binary with non-binary kind " + k.String())
	}
	if left == nil {
		panic("arith: Binary with nil left operand")
	}
	return &Expr{kind: k, left: left, right: right}
}

// Kind returns the variant of the node.
func (e *Expr) Kind() Kind {
	return e.kind
}

// Value returns the value of a scalar node. It is zero for other kinds.
func (e *Expr) Value() float64 {
	return e.val
}

// Left returns the left operand of a binary node, or nil for a scalar.
func (e *Expr) Left() *Expr {
	return e.left
}

// Right returns the right operand of a binary node. It is nil for scalars
// and for incomplete binary nodes.
func (e *Expr) Right() *Expr {
	return e.right
}

// Complete returns whether the node and all its operands can be evaluated
// and formatted.
func (e *Expr) Complete() bool {
	switch e.kind {
	case KindScalar:
		return true
	case KindAdd, KindSub, KindMul, KindDiv:
		return e.right != nil && e.left.Complete() && e.right.Complete()
	default:
		return false
	}
}

// AttachAfter incorporates n into the rightmost open slot of e and returns
// the resulting tree. e itself is left unchanged.
//
// A scalar accepts a binary node, producing an incomplete node of n's kind
// with e as its left operand. An incomplete binary node accepts anything as
// its right operand. Every other combination is an *AttachImpossibleError.
func (e *Expr) AttachAfter(n *Expr) (*Expr, error) {
	switch e.kind {
	case KindScalar:
		if !n.kind.binary() {
			return nil, &AttachImpossibleError{Target: e.kind, Attach: n.kind}
		}
		return &Expr{kind: n.kind, left: e}, nil
	case KindAdd, KindSub, KindMul, KindDiv:
		if e.right != nil {
			return nil, &AttachImpossibleError{Target: e.kind, Attach: n.kind}
		}
		return &Expr{kind: e.kind, left: e.left, right: n}, nil
	default:
		panic("arith: AttachAfter on invalid node kind " + e.kind.String())
	}
}

// String formats the expression with one space around each operator. The
// result parses to an expression with the same value.
func (e *Expr) String() string {
	var b strings.Builder
	e.fmt(&b)
	return b.String()
}

func (e *Expr) fmt(b *strings.Builder) {
	switch e.kind {
	case KindScalar:
		b.WriteString(strconv.FormatFloat(e.val, 'f', -1, 64))
	case KindAdd, KindSub, KindMul, KindDiv:
		if e.right == nil {
			panic("arith: formatting incomplete " + e.kind.String() + " after writing " + strconv.Quote(b.String()))
		}
		e.left.fmt(b)
		b.WriteString(e.kind.symbol())
		e.right.fmt(b)
	default:
		panic("arith: invalid node kind " + e.kind.String() + " after writing " + strconv.Quote(b.String()))
	}
}
