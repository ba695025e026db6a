package arith_test

import (
	"testing"

	"github.com/zephyrtronium/arith"
)

func FuzzParse(f *testing.F) {
	f.Add("1")
	f.Add("4 - 3 + 5")
	f.Add("-1.5*-2")
	f.Add("1 / 0")
	f.Add("1.2.3")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := arith.ParseString(s)
		if err != nil {
			return
		}
		if !a.Complete() {
			t.Fatalf("%q parsed to an incomplete tree", s)
		}
		// Formatting must parse back to the same value.
		b, err := arith.ParseString(a.String())
		if err != nil {
			t.Fatalf("%q formatted as %q, which does not parse: %v", s, a, err)
		}
		x, xerr := a.Eval(nil)
		y, yerr := b.Eval(nil)
		if (xerr == nil) != (yerr == nil) {
			t.Fatalf("%q and %q evaluate differently: %v, %v", s, b, xerr, yerr)
		}
		if xerr == nil && x != y && !(x != x && y != y) {
			t.Fatalf("%q gives %g but %q gives %g", s, x, b, y)
		}
	})
}
