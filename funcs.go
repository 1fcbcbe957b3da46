package tally

import (
	"math"
	"math/rand"
)

// Builtin is a host-supplied numeric function callable from expressions. The
// evaluator enforces that calls provide exactly Arity arguments before Fn is
// invoked, so Fn may index its slice freely.
type Builtin struct {
	Arity int
	Fn    func(args []float64) float64
}

// Niladic wraps a function of no variables into a Builtin. Note that results
// of niladic calls are cached for the life of the session, so a
// nondeterministic function returns a fresh value only on its first call.
func Niladic(f func() float64) Builtin {
	return Builtin{Arity: 0, Fn: func([]float64) float64 { return f() }}
}

// Monadic wraps a function of one variable into a Builtin.
func Monadic(f func(x float64) float64) Builtin {
	return Builtin{Arity: 1, Fn: func(a []float64) float64 { return f(a[0]) }}
}

// Dyadic wraps a function of two variables into a Builtin.
func Dyadic(f func(x, y float64) float64) Builtin {
	return Builtin{Arity: 2, Fn: func(a []float64) float64 { return f(a[0], a[1]) }}
}

// DefaultBuiltins returns the registry new sessions start from. The evaluator
// itself is agnostic to the set; hosts replace or extend it with session
// options.
func DefaultBuiltins() map[string]Builtin {
	return map[string]Builtin{
		"rand":    Niladic(rand.Float64),
		"randint": Dyadic(randint),
		"min":     Dyadic(math.Min),
		"max":     Dyadic(math.Max),
		"log":     Monadic(math.Log),
		"log10":   Monadic(math.Log10),
		"round":   Monadic(math.Round),
		"floor":   Monadic(math.Floor),
		"ceil":    Monadic(math.Ceil),
		"trunc":   Monadic(math.Trunc),
		"sin":     Monadic(math.Sin),
		"cos":     Monadic(math.Cos),
		"tan":     Monadic(math.Tan),
		"radians": Monadic(radians),
		"degrees": Monadic(degrees),
	}
}

// DefaultConstants returns the constants bound into the global scope of new
// sessions.
func DefaultConstants() map[string]float64 {
	return map[string]float64{
		"pi": math.Pi,
		"e":  math.E,
	}
}

// randint returns a uniformly random integer between lo and hi inclusive,
// or NaN if the range contains no integer.
func randint(lo, hi float64) float64 {
	lo, hi = math.Ceil(lo), math.Floor(hi)
	if hi < lo || math.IsNaN(lo) || math.IsNaN(hi) {
		return math.NaN()
	}
	return lo + math.Floor(rand.Float64()*(hi-lo+1))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
