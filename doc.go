// Package tally implements a small interactive calculator language.
//
// A session accepts one statement at a time: a bare arithmetic expression, a
// constant definition like "const tau = 2*pi", or a function definition like
// "let f(0) = 1". Function parameters that are expressions rather than bare
// names become exact-match patterns, and repeated definitions of the same
// name accumulate clauses, so piecewise functions are written one clause at
// a time.
//
// One syntactic quirk is deliberate: unary minus binds tighter than
// exponentiation, so "-2^2" is 4, not -4.
package tally
