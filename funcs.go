package arith

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals, as provided by an Env. It returns
// an error if x is outside its domain.
type Func func(x float64) (float64, error)

// funcprec is the precision of the big.Float computations behind the standard
// functions. It is more than float64 carries so that rounding happens once.
const funcprec = 64

// StdFuncs returns the standard functions of one variable: exp, ln, log
// (base 10), and sqrt. The result is a new map on each call.
func StdFuncs() map[string]Func {
	return map[string]Func{
		"exp": Monadic("exp", bigfloat.Exp),
		"ln":  Monadic("ln", bigfloat.Log),
		"log": Monadic("log", func(out, in *big.Float) *big.Float {
			bigfloat.Log(out, in)
			in.SetFloat64(10).SetPrec(out.Prec())
			bigfloat.Log(in, in)
			return out.Quo(out, in)
		}),
		"sqrt": Monadic("sqrt", (*big.Float).Sqrt),
	}
}

// StdVars returns the standard constants pi and e.
func StdVars() map[string]float64 {
	pi, _ := bigfloat.Pi(new(big.Float).SetPrec(funcprec)).Float64()
	var one big.Float
	one.SetPrec(funcprec).SetFloat64(1)
	e, _ := bigfloat.Exp(new(big.Float).SetPrec(funcprec), &one).Float64()
	return map[string]float64{"pi": pi, "e": e}
}

// WithStd returns an option that adds the standard functions and constants
// to a context.
func WithStd() ContextOption {
	return stdopt{}
}

type stdopt struct{}

func (stdopt) ctxOption() {}

// Monadic wraps a function of one big.Float variable into a Func. f must set
// out to its result, to the precision of out; its return value is ignored. If
// f is called on an argument outside its domain, it should panic with
// big.ErrNaN or a string, which the Func returns as a *DomainError.
func Monadic(name string, f func(out, in *big.Float) *big.Float) Func {
	return func(x float64) (r float64, err error) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			switch p := p.(type) {
			case string:
				// bigfloat reports some domain errors with plain messages.
			case error:
				if !errors.As(p, new(big.ErrNaN)) {
					panic(p)
				}
			default:
				panic(p)
			}
			r, err = 0, &DomainError{X: x, Func: name}
		}()
		in := new(big.Float).SetPrec(funcprec).SetFloat64(x)
		out := new(big.Float).SetPrec(funcprec)
		f(out, in)
		r, _ = out.Float64()
		return r, nil
	}
}

// DomainError is an error returned when a function is called on an argument
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
