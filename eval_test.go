package arith_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/arith"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"neg", "-1", -1},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/2/8", 0.25},
		{"div-int", "4 / 2", 2},
		{"sub-add", "4 - 3 + 5", 6},
		{"add-mul", "1 + 2 * 3", 9},
		{"mul-sub-div", "2 * 5 - 4 / 3", 2},
		{"neg-rhs", "10 - -5", 15},
	}
	ctx := arith.NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := arith.ParseString(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			r, err := a.Eval(ctx)
			if err != nil {
				t.Fatal("evaluation error:", err)
			}
			if r != c.r {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
			if !a.CanEval(ctx) {
				t.Errorf("%q evaluated but CanEval reports false", c.src)
			}
			// Evaluating again gives the same result.
			if s, _ := a.Eval(ctx); s != r {
				t.Errorf("second evaluation gave %g, first gave %g", s, r)
			}
		})
	}
}

func TestEvalDivisionGuard(t *testing.T) {
	cases := []struct {
		name string
		src  string
		tol  float64
		ok   bool
	}{
		{"zero", "1 / 0", arith.DefaultTolerance, false},
		{"negzero", "1 / -0", arith.DefaultTolerance, false},
		{"zero-zero", "0 / 0", arith.DefaultTolerance, false},
		{"tiny", "1 / 0.00000000001", arith.DefaultTolerance, false},
		{"tolerance", "1 / 0.0000000001", arith.DefaultTolerance, true},
		{"small", "1 / 0.001", arith.DefaultTolerance, true},
		{"computed-zero", "1 / 2 - 0.5", arith.DefaultTolerance, true},
		{"loose", "1 / 0.001", 0.01, false},
		{"loose-ok", "1 / 0.1", 0.01, true},
		{"disabled", "1 / 0.00000000001", 0, true},
		{"negative-tol", "1 / 0.00000000001", -1, true},
		{"nested", "1 / 0 + 1", arith.DefaultTolerance, false},
		{"nested-rhs", "5 * 0 / 1 / 0", arith.DefaultTolerance, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := arith.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			ctx := arith.NewContext(arith.Tolerance(c.tol))
			if ok := a.CanEval(ctx); ok != c.ok {
				t.Errorf("CanEval: want %t, got %t", c.ok, ok)
			}
			r, err := a.Eval(ctx)
			if c.ok {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if math.IsNaN(r) {
					t.Errorf("result is NaN")
				}
				return
			}
			var derr *arith.DivisionByZeroError
			if !errors.As(err, &derr) {
				t.Fatalf("%#v is not *arith.DivisionByZeroError", err)
			}
			if r != 0 {
				t.Errorf("failed evaluation returned %g", r)
			}
			if derr.Tolerance != c.tol {
				t.Errorf("error has tolerance %g, want %g", derr.Tolerance, c.tol)
			}
		})
	}
}

func TestEvalNilEnv(t *testing.T) {
	a, err := arith.ParseString("1 / 0.00000000001")
	if err != nil {
		t.Fatal(err)
	}
	if a.CanEval(nil) {
		t.Error("CanEval(nil) ignores the default tolerance")
	}
	if _, err := a.Eval(nil); err == nil {
		t.Error("Eval(nil) ignores the default tolerance")
	}
}

func TestEvalString(t *testing.T) {
	r, err := arith.EvalString("5 / 2")
	if err != nil {
		t.Fatal(err)
	}
	if r != 2.5 {
		t.Errorf("want 2.5, got %g", r)
	}
	if _, err := arith.EvalString("5 / 0.001", arith.Tolerance(1)); err == nil {
		t.Error("EvalString ignored tolerance option")
	}
	var ierr arith.InputError
	if _, err := arith.EvalString("5 $"); !errors.As(err, &ierr) {
		t.Errorf("parse error %v is not an InputError", err)
	}
}

func TestContextVars(t *testing.T) {
	ctx := arith.NewContext(arith.SetVar("x", 0), arith.SetVars(map[string]float64{"y": 2}))
	if x, ok := ctx.Lookup("x"); !ok || x != 0 {
		t.Errorf("x should be 0 but is %g (%t)", x, ok)
	}
	if z, ok := ctx.Lookup("z"); ok {
		t.Errorf("context has z: %g", z)
	}
	ctx.Set("z", 3)
	c2 := ctx.Clone(arith.SetVar("x", 1))
	if x, _ := ctx.Lookup("x"); x != 0 {
		t.Errorf("clone modified original x to %g", x)
	}
	for name, want := range map[string]float64{"x": 1, "y": 2, "z": 3} {
		if v, ok := c2.Lookup(name); !ok || v != want {
			t.Errorf("clone %s should be %g but is %g (%t)", name, want, v, ok)
		}
	}
}

func TestContextTolerance(t *testing.T) {
	ctx := arith.NewContext()
	if tol := ctx.Tolerance(); tol != arith.DefaultTolerance {
		t.Errorf("default tolerance is %g", tol)
	}
	c2 := ctx.Clone(arith.Tolerance(0.5))
	if tol := c2.Tolerance(); tol != 0.5 {
		t.Errorf("tolerance option gave %g", tol)
	}
	if tol := c2.Clone().Tolerance(); tol != 0.5 {
		t.Errorf("clone lost tolerance: %g", tol)
	}
	if tol := ctx.Tolerance(); tol != arith.DefaultTolerance {
		t.Errorf("clone changed original tolerance to %g", tol)
	}
}

func TestContextFuncs(t *testing.T) {
	double := arith.Func(func(x float64) (float64, error) { return 2 * x, nil })
	ctx := arith.NewContext(arith.SetFunc("double", double))
	fn, ok := ctx.Func("double")
	if !ok {
		t.Fatal("no function double")
	}
	if r, err := fn(4); err != nil || r != 8 {
		t.Errorf("double(4) gave %g, %v", r, err)
	}
	c2 := ctx.Clone(arith.SetFuncs(map[string]arith.Func{"double": nil, "id": func(x float64) (float64, error) { return x, nil }}))
	if _, ok := c2.Func("double"); ok {
		t.Error("nil func did not remove double")
	}
	if _, ok := c2.Func("id"); !ok {
		t.Error("SetFuncs did not add id")
	}
	if _, ok := ctx.Func("double"); !ok {
		t.Error("clone removed double from original")
	}
}

func TestStdFuncs(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		r    float64
	}{
		{"exp", 1, math.E},
		{"exp", 0, 1},
		{"ln", math.E, 1},
		{"ln", 1, 0},
		{"log", 1000, 3},
		{"log", 1, 0},
		{"sqrt", 4, 2},
		{"sqrt", 2, math.Sqrt2},
	}
	ctx := arith.NewContext(arith.WithStd())
	for _, c := range cases {
		fn, ok := ctx.Func(c.name)
		if !ok {
			t.Fatalf("no standard function %s", c.name)
		}
		r, err := fn(c.x)
		if err != nil {
			t.Errorf("%s(%g) failed: %v", c.name, c.x, err)
			continue
		}
		if math.Abs(r-c.r) > 1e-15 {
			t.Errorf("%s(%g): want %g, got %g", c.name, c.x, c.r, r)
		}
	}
	for name, want := range map[string]float64{"pi": math.Pi, "e": math.E} {
		if v, ok := ctx.Lookup(name); !ok || math.Abs(v-want) > 1e-15 {
			t.Errorf("%s should be %g but is %g (%t)", name, want, v, ok)
		}
	}
}

func TestStdFuncsDomain(t *testing.T) {
	cases := []struct {
		name string
		x    float64
	}{
		{"sqrt", -1},
		{"ln", -1},
		{"log", -1},
		{"exp", math.NaN()},
	}
	fns := arith.StdFuncs()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := fns[c.name](c.x)
			var derr *arith.DomainError
			if !errors.As(err, &derr) {
				t.Fatalf("%#v is not *arith.DomainError", err)
			}
			if derr.Func != c.name {
				t.Errorf("error names %q", derr.Func)
			}
		})
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("chain", func(b *testing.B) {
		b.ReportAllocs()
		ctx := arith.NewContext()
		a, err := arith.ParseString("2 + 3 * 4 - 5 / 6 + 7 * 8 - 9")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(ctx)
		}
	})
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		arith.ParseString("2.5 + 3 * 4.125 - 5 / 6 + -7 * 8 - 9")
	}
}

func Example() {
	a, err := arith.ParseString("4 - 3 + 5 * 2")
	if err != nil {
		panic(err)
	}
	r, err := a.Eval(arith.NewContext())
	if err != nil {
		panic(err)
	}
	fmt.Println(a, "=", r)

	_, err = arith.ParseString("4 - 3 + (5 * 2)")
	fmt.Println(err)

	// Output:
	// 4 - 3 + 5 * 2 = 12
	// error at char '(' at index 8 (Brackets are not supported)
}

func ExampleExpr_AttachAfter() {
	sum, _ := arith.Scalar(1).AttachAfter(arith.Binary(arith.KindAdd, arith.Scalar(0), nil))
	fmt.Println(sum.Complete())
	sum, _ = sum.AttachAfter(arith.Scalar(2))
	fmt.Println(sum)
	_, err := sum.AttachAfter(arith.Scalar(3))
	fmt.Println(err)

	// Output:
	// false
	// 1 + 2
	// cannot attach ScalarValue after Addition
}
