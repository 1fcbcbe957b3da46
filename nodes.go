package tally

import (
	"strconv"
	"strings"
)

// expr is a node in the abstract syntax tree of an expression.
type expr struct {
	kind exprKind

	val  float64 // exprNum
	name string  // exprName, exprCall
	args []*expr // exprCall

	left  *expr
	right *expr
}

type exprKind int8

const (
	exprNone exprKind = iota

	exprNum  // literal value in val
	exprName // variable reference by name

	exprCall // call name with args

	exprNeg // negate left
	exprAdd // left plus right
	exprSub // left minus right
	exprMul // left times right
	exprDiv // left divided by right
	exprPow // left to the power right
)

// stmt is one parsed statement.
type stmt struct {
	kind stmtKind

	name   string  // stmtLet and stmtConst target
	params []*expr // stmtLet parameter expressions
	body   *expr   // let body, const value, or the bare expression
}

type stmtKind int8

const (
	stmtExpr stmtKind = iota
	stmtLet
	stmtConst
)

// Statement is a parsed statement ready to evaluate against a session.
type Statement struct {
	s *stmt
}

// String renders the statement with every subexpression parenthesized, which
// makes precedence and associativity visible.
func (st *Statement) String() string {
	var b strings.Builder
	st.s.fmt(&b)
	return b.String()
}

func (s *stmt) fmt(b *strings.Builder) {
	switch s.kind {
	case stmtExpr:
		s.body.fmt(b)
	case stmtLet:
		b.WriteString("let ")
		b.WriteString(s.name)
		b.WriteByte('(')
		for i, p := range s.params {
			if i > 0 {
				b.WriteString(", ")
			}
			p.fmt(b)
		}
		b.WriteString(") = ")
		s.body.fmt(b)
	case stmtConst:
		b.WriteString("const ")
		b.WriteString(s.name)
		b.WriteString(" = ")
		s.body.fmt(b)
	default:
		panic("tally: invalid statement kind " + strconv.Itoa(int(s.kind)))
	}
}

func (n *expr) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *expr) fmt(b *strings.Builder) {
	switch n.kind {
	case exprNum:
		b.WriteString(formatNum(n.val))
	case exprName:
		b.WriteString(n.name)
	case exprCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case exprNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case exprAdd, exprSub, exprMul, exprDiv, exprPow:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(binsym(n.kind))
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("tally: invalid AST node kind " + strconv.Itoa(int(n.kind)) + " after writing " + b.String())
	}
}

func binsym(k exprKind) string {
	switch k {
	case exprAdd:
		return " + "
	case exprSub:
		return " - "
	case exprMul:
		return " * "
	case exprDiv:
		return " / "
	case exprPow:
		return " ^ "
	default:
		panic("tally: not a binary operator kind " + strconv.Itoa(int(k)))
	}
}

// formatNum renders a value the way results are displayed, with the shortest
// representation that round-trips.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
