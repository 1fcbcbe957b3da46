package tally

import (
	"math"
	"testing"
)

func TestDefaultBuiltinArities(t *testing.T) {
	want := map[string]int{
		"rand":    0,
		"randint": 2,
		"min":     2,
		"max":     2,
		"log":     1,
		"log10":   1,
		"round":   1,
		"floor":   1,
		"ceil":    1,
		"trunc":   1,
		"sin":     1,
		"cos":     1,
		"tan":     1,
		"radians": 1,
		"degrees": 1,
	}
	got := DefaultBuiltins()
	for name, arity := range want {
		b, ok := got[name]
		if !ok {
			t.Errorf("no default builtin %s", name)
			continue
		}
		if b.Arity != arity {
			t.Errorf("%s has arity %d, want %d", name, b.Arity, arity)
		}
	}
	for name := range got {
		if _, ok := want[name]; !ok {
			t.Errorf("unexpected default builtin %s", name)
		}
	}
}

func TestDefaultConstants(t *testing.T) {
	got := DefaultConstants()
	if got["pi"] != math.Pi {
		t.Errorf("pi is %g", got["pi"])
	}
	if got["e"] != math.E {
		t.Errorf("e is %g", got["e"])
	}
	if len(got) != 2 {
		t.Errorf("unexpected default constants: %v", got)
	}
}

func TestRandint(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := randint(2.5, 5.5)
		if v != math.Trunc(v) || v < 3 || v > 5 {
			t.Fatalf("randint(2.5, 5.5) gave %g", v)
		}
	}
	for i := 0; i < 100; i++ {
		v := randint(4, 4)
		if v != 4 {
			t.Fatalf("randint(4, 4) gave %g", v)
		}
	}
	if v := randint(1.2, 1.8); !math.IsNaN(v) {
		t.Errorf("randint over an integer-free range gave %g", v)
	}
	if v := randint(5, 1); !math.IsNaN(v) {
		t.Errorf("randint over an empty range gave %g", v)
	}
}

func TestConversions(t *testing.T) {
	if v := radians(180); math.Abs(v-math.Pi) > 1e-15 {
		t.Errorf("radians(180) is %g", v)
	}
	if v := degrees(math.Pi); math.Abs(v-180) > 1e-12 {
		t.Errorf("degrees(pi) is %g", v)
	}
	for _, d := range []float64{0, 30, 45, 90, 270, -60} {
		if got := degrees(radians(d)); math.Abs(got-d) > 1e-12 {
			t.Errorf("degrees(radians(%g)) is %g", d, got)
		}
	}
}

func TestWrappers(t *testing.T) {
	n := Niladic(func() float64 { return 7 })
	if n.Arity != 0 || n.Fn(nil) != 7 {
		t.Error("Niladic wrapped wrong")
	}
	m := Monadic(math.Abs)
	if m.Arity != 1 || m.Fn([]float64{-3}) != 3 {
		t.Error("Monadic wrapped wrong")
	}
	d := Dyadic(math.Min)
	if d.Arity != 2 || d.Fn([]float64{4, 2}) != 2 {
		t.Error("Dyadic wrapped wrong")
	}
}
