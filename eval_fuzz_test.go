package tally_test

import (
	"testing"

	"github.com/tally-lang/tally"
)

func FuzzFeed(f *testing.F) {
	f.Add("1+2")
	f.Add("const x = 5")
	f.Add("let f(n) = n*2")
	f.Add("min(rand(), pi)")
	f.Fuzz(func(t *testing.T, src string) {
		tally.NewSession().Feed(src)
	})
}
