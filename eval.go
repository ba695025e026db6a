package arith

import (
	"io"
	"math"
	"strings"
)

// DefaultTolerance is the tolerance used when evaluating with a nil Env or a
// Context created without the Tolerance option.
const DefaultTolerance = 1e-10

// Env is the environment an expression is evaluated in. The parser never
// produces nodes that refer to names, so evaluation only uses Tolerance, but
// hosts provide the whole capability so that named values can be added
// without changing the evaluation contract.
type Env interface {
	// Lookup returns the value of a variable.
	Lookup(name string) (float64, bool)
	// Func returns a function of one variable.
	Func(name string) (Func, bool)
	// Tolerance returns the magnitude below which a divisor is treated as
	// zero.
	Tolerance() float64
}

// Context is an Env backed by maps. A Context is safe for concurrent
// evaluation as long as nothing calls Set on it at the same time.
type Context struct {
	names map[string]float64
	funcs map[string]Func
	tol   float64
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	tolopt   float64
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (funcopt) ctxOption()  {}
func (funcsopt) ctxOption() {}
func (tolopt) ctxOption()   {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// SetFunc sets a function in the context. A nil fn removes the function.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// SetFuncs sets any number of functions in the context. Nil entries remove
// functions.
func SetFuncs(fns map[string]Func) ContextOption {
	return funcsopt(fns)
}

// Tolerance sets the magnitude below which divisors are treated as zero.
// Negative and NaN tolerances are treated as zero, which disables the
// check.
func Tolerance(tol float64) ContextOption {
	return tolopt(tol)
}

// NewContext creates a new evaluation context. If no tolerance is given, the
// default is DefaultTolerance.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{tol: DefaultTolerance}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]float64, len(ctx.names)),
		funcs: make(map[string]Func, len(ctx.funcs)),
		tol:   ctx.tol,
	}
	for k, v := range ctx.names {
		n.names[k] = v
	}
	for k, v := range ctx.funcs {
		n.funcs[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case funcopt:
			n.setfn(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				n.setfn(k, v)
			}
		case tolopt:
			n.tol = float64(opt)
			if !(n.tol > 0) {
				n.tol = 0
			}
		case stdopt:
			for k, v := range StdVars() {
				n.names[k] = v
			}
			for k, v := range StdFuncs() {
				n.funcs[k] = v
			}
		default:
			panic("arith: unknown option type")
		}
	}
	return &n
}

func (ctx *Context) setfn(name string, fn Func) {
	if fn == nil {
		delete(ctx.funcs, name)
		return
	}
	ctx.funcs[name] = fn
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value float64) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]float64)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable.
func (ctx *Context) Lookup(name string) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Func returns a function of one variable.
func (ctx *Context) Func(name string) (Func, bool) {
	fn, ok := ctx.funcs[name]
	return fn, ok
}

// Tolerance returns the magnitude below which divisors are treated as zero.
func (ctx *Context) Tolerance() float64 {
	return ctx.tol
}

var _ Env = (*Context)(nil)

// tolerance gets the division tolerance for an environment.
func tolerance(env Env) float64 {
	if env == nil {
		return DefaultTolerance
	}
	return env.Tolerance()
}

// Eval evaluates the expression. Operands are always evaluated left before
// right. Division by a value whose magnitude is below env's tolerance is a
// *DivisionByZeroError. env may be nil. Panics if the expression is
// incomplete.
func (e *Expr) Eval(env Env) (float64, error) {
	switch e.kind {
	case KindScalar:
		return e.val, nil
	case KindAdd, KindSub, KindMul, KindDiv:
		if e.right == nil {
			panic("arith: evaluating incomplete " + e.kind.String())
		}
		l, err := e.left.Eval(env)
		if err != nil {
			return 0, err
		}
		r, err := e.right.Eval(env)
		if err != nil {
			return 0, err
		}
		switch e.kind {
		case KindAdd:
			return l + r, nil
		case KindSub:
			return l - r, nil
		case KindMul:
			return l * r, nil
		default:
			if tol := tolerance(env); math.Abs(r) < tol {
				return 0, &DivisionByZeroError{Divisor: r, Tolerance: tol}
			}
			return l / r, nil
		}
	default:
		panic("arith: invalid AST node " + e.kind.String())
	}
}

// CanEval returns whether Eval would succeed. Only divisions can fail: a
// division can be evaluated if its operands can and its divisor is at least
// env's tolerance in magnitude. Panics if the expression is incomplete.
func (e *Expr) CanEval(env Env) bool {
	switch e.kind {
	case KindScalar:
		return true
	case KindAdd, KindSub, KindMul:
		if e.right == nil {
			panic("arith: checking incomplete " + e.kind.String())
		}
		return e.left.CanEval(env) && e.right.CanEval(env)
	case KindDiv:
		if e.right == nil {
			panic("arith: checking incomplete " + e.kind.String())
		}
		if !e.left.CanEval(env) {
			return false
		}
		r, err := e.right.Eval(env)
		return err == nil && !(math.Abs(r) < tolerance(env))
	default:
		panic("arith: invalid AST node " + e.kind.String())
	}
}

// Eval is a shortcut to parse an expression and evaluate it in a new context
// created with opts.
func Eval(src io.RuneScanner, opts ...ContextOption) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval(NewContext(opts...))
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}
