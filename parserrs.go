package tally

import "strconv"

// TokenError is an error indicating a token that cannot appear where the
// parser found it. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the offending token. It is empty at end of input.
	Token string
	// Kind names the kind of the offending token.
	Kind string
	// Want describes what the parser expected instead, if known.
	Want string
}

func (err *TokenError) Error() string {
	var m string
	if err.Token == "" {
		m = "unexpected " + err.Kind
	} else {
		m = "unexpected " + err.Kind + " token " + strconv.Quote(err.Token)
	}
	if err.Want != "" {
		m += ", expected " + err.Want
	}
	return errpos(err.Col, m)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// TrailingTokenError is an error indicating input remaining after a complete
// statement. It implements InputError.
type TrailingTokenError struct {
	// Col is the position of the first trailing token.
	Col int
	// Token is the text of the first trailing token.
	Token string
	// Kind names the kind of the first trailing token.
	Kind string
}

func (err *TrailingTokenError) Error() string {
	return errpos(err.Col, "trailing "+err.Kind+" token "+strconv.Quote(err.Token)+" after statement")
}

func (err *TrailingTokenError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from syntactically invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*TokenError)(nil)
	_ InputError = (*TrailingTokenError)(nil)
)
