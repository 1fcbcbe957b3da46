package tally

import (
	"errors"
	"strconv"
	"strings"
)

// statement  ::= let-stmt | const-stmt | expr
// let-stmt   ::= "let" WORD "(" [expr ("," expr)*] ")" "=" expr
// const-stmt ::= "const" WORD "=" expr
// expr       ::= addsub
// addsub     ::= muldiv (("+"|"-") muldiv)*
// muldiv     ::= power  (("*"|"/") power)*
// power      ::= unary  ("^" power)?
// unary      ::= "-" unary | primary
// primary    ::= NUMBER | WORD "(" [expr ("," expr)*] ")" | WORD | "(" expr ")"

// ParseStatement parses one statement. Empty or whitespace-only input yields
// nil with no error. Input remaining after a complete statement is an error.
func ParseStatement(src string) (*Statement, error) {
	cur := newCursor(src)
	if cur.peek().kind == tokenEOF {
		return nil, nil
	}
	s, err := parseStmt(cur)
	if err != nil {
		return nil, err
	}
	if tok := cur.peek(); tok.kind != tokenEOF {
		return nil, &TrailingTokenError{Col: tok.pos, Token: tok.text, Kind: tok.kind.String()}
	}
	return &Statement{s}, nil
}

func parseStmt(cur *cursor) (*stmt, error) {
	if tok := cur.peek(); tok.kind == tokenKeyword {
		cur.advance()
		switch tok.text {
		case "let":
			return parseLet(cur)
		case "const":
			return parseConst(cur)
		default:
			panic("tally: unknown keyword " + strconv.Quote(tok.text))
		}
	}
	body, err := parseExpr(cur)
	if err != nil {
		return nil, err
	}
	return &stmt{kind: stmtExpr, body: body}, nil
}

// parseLet parses the remainder of a let statement after the keyword. Each
// parameter is a full expression; the evaluator decides at definition time
// whether it is a bind name or a literal pattern to evaluate.
func parseLet(cur *cursor) (*stmt, error) {
	name, err := expectWord(cur, "a function name")
	if err != nil {
		return nil, err
	}
	params, err := parseParenList(cur)
	if err != nil {
		return nil, err
	}
	if err := expectPunct(cur, "="); err != nil {
		return nil, err
	}
	body, err := parseExpr(cur)
	if err != nil {
		return nil, err
	}
	return &stmt{kind: stmtLet, name: name, params: params, body: body}, nil
}

func parseConst(cur *cursor) (*stmt, error) {
	name, err := expectWord(cur, "a constant name")
	if err != nil {
		return nil, err
	}
	if err := expectPunct(cur, "="); err != nil {
		return nil, err
	}
	body, err := parseExpr(cur)
	if err != nil {
		return nil, err
	}
	return &stmt{kind: stmtConst, name: name, body: body}, nil
}

// binlevels orders the binary operators loosest to tightest binding. Unary
// minus sits below the bottom of the table, which makes it bind tighter than
// exponentiation: -2^2 parses as (-2)^2.
var binlevels = []struct {
	ops   string
	right bool
}{
	{"+-", false},
	{"*/", false},
	{"^", true},
}

func parseExpr(cur *cursor) (*expr, error) {
	return parseBinary(cur, 0)
}

func parseBinary(cur *cursor, level int) (*expr, error) {
	if level == len(binlevels) {
		return parseUnary(cur)
	}
	lv := binlevels[level]
	lhs, err := parseBinary(cur, level+1)
	if err != nil {
		return nil, err
	}
	for {
		tok := cur.peek()
		if tok.kind != tokenOp || !strings.Contains(lv.ops, tok.text) {
			return lhs, nil
		}
		cur.advance()
		if lv.right {
			// Right associativity: recurse at the same level for the rhs.
			rhs, err := parseBinary(cur, level)
			if err != nil {
				return nil, err
			}
			return &expr{kind: binop(tok.text), left: lhs, right: rhs}, nil
		}
		rhs, err := parseBinary(cur, level+1)
		if err != nil {
			return nil, err
		}
		lhs = &expr{kind: binop(tok.text), left: lhs, right: rhs}
	}
}

func parseUnary(cur *cursor) (*expr, error) {
	if tok := cur.peek(); tok.kind == tokenOp && tok.text == "-" {
		cur.advance()
		operand, err := parseUnary(cur)
		if err != nil {
			return nil, err
		}
		return &expr{kind: exprNeg, left: operand}, nil
	}
	return parsePrimary(cur)
}

func parsePrimary(cur *cursor) (*expr, error) {
	tok := cur.peek()
	switch {
	case tok.kind == tokenNum:
		cur.advance()
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			panic("tally: invalid number token " + strconv.Quote(tok.text))
		}
		// A literal too large for a float64 saturates to +Inf, the same
		// value model as overflow in arithmetic.
		return &expr{kind: exprNum, val: v}, nil
	case tok.kind == tokenWord:
		cur.advance()
		if nxt := cur.peek(); nxt.kind == tokenPunct && nxt.text == "(" {
			args, err := parseParenList(cur)
			if err != nil {
				return nil, err
			}
			return &expr{kind: exprCall, name: tok.text, args: args}, nil
		}
		return &expr{kind: exprName, name: tok.text}, nil
	case tok.kind == tokenPunct && tok.text == "(":
		cur.advance()
		e, err := parseExpr(cur)
		if err != nil {
			return nil, err
		}
		if err := expectPunct(cur, ")"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text, Kind: tok.kind.String(), Want: "an expression"}
	}
}

// parseParenList parses a parenthesized comma-separated list of expressions,
// including the opening parenthesis. An immediate close parenthesis yields an
// empty list.
func parseParenList(cur *cursor) ([]*expr, error) {
	if err := expectPunct(cur, "("); err != nil {
		return nil, err
	}
	if tok := cur.peek(); tok.kind == tokenPunct && tok.text == ")" {
		cur.advance()
		return nil, nil
	}
	var list []*expr
	for {
		e, err := parseExpr(cur)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		tok := cur.advance()
		if tok.kind == tokenPunct {
			switch tok.text {
			case ",":
				continue
			case ")":
				return list, nil
			}
		}
		return nil, &TokenError{Col: tok.pos, Token: tok.text, Kind: tok.kind.String(), Want: `"," or ")"`}
	}
}

func expectPunct(cur *cursor, text string) error {
	tok := cur.peek()
	if tok.kind != tokenPunct || tok.text != text {
		return &TokenError{Col: tok.pos, Token: tok.text, Kind: tok.kind.String(), Want: strconv.Quote(text)}
	}
	cur.advance()
	return nil
}

func expectWord(cur *cursor, want string) (string, error) {
	tok := cur.peek()
	if tok.kind != tokenWord {
		return "", &TokenError{Col: tok.pos, Token: tok.text, Kind: tok.kind.String(), Want: want}
	}
	cur.advance()
	return tok.text, nil
}

func binop(text string) exprKind {
	switch text {
	case "+":
		return exprAdd
	case "-":
		return exprSub
	case "*":
		return exprMul
	case "/":
		return exprDiv
	case "^":
		return exprPow
	default:
		panic("tally: not a binary operator " + strconv.Quote(text))
	}
}
