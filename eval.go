package tally

import (
	"math"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Session is the persistent state of one evaluator: the scope stack, the
// user-defined function table, and the call cache. Definitions made by one
// statement are visible to every later statement fed to the same session.
// A Session is not safe for concurrent use.
type Session struct {
	// scopes is the lexical lookup chain. scopes[0] is the global scope and
	// holds constants; call-local scopes are pushed around clause bodies.
	// The stack never drops below depth 1.
	scopes   []map[string]float64
	funcs    map[string][]clause
	builtins map[string]Builtin
	cache    *lru.Cache[string, float64]
	// n counts statements fed to the session, successful or not.
	n int
}

// clause is one alternative of a user-defined function. Clauses are tried in
// declaration order; the first whose pattern accepts the arguments wins.
type clause struct {
	pattern []param
	body    *expr
}

// param is one slot of a clause pattern: either a name to bind or a literal
// value the argument must equal exactly.
type param struct {
	name string
	lit  float64
	bind bool
}

// NewSession creates a session. Unless NoDefaults is given, it starts with
// the builtins from DefaultBuiltins and the constants from DefaultConstants.
func NewSession(opts ...SessionOption) *Session {
	cfg := sessionConfig{
		builtins:  make(map[string]Builtin),
		constants: make(map[string]float64),
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt.sessionOption(&cfg)
	}
	if !cfg.nodefaults {
		for k, v := range DefaultBuiltins() {
			if _, ok := cfg.builtins[k]; !ok {
				cfg.builtins[k] = v
			}
		}
		for k, v := range DefaultConstants() {
			if _, ok := cfg.constants[k]; !ok {
				cfg.constants[k] = v
			}
		}
	}
	cache, err := lru.New[string, float64](cfg.cacheSize)
	if err != nil {
		panic("tally: bad cache size: " + err.Error())
	}
	global := make(map[string]float64, len(cfg.constants))
	for k, v := range cfg.constants {
		global[k] = v
	}
	return &Session{
		scopes:   []map[string]float64{global},
		funcs:    make(map[string][]clause),
		builtins: cfg.builtins,
		cache:    cache,
	}
}

// Result is the outcome of one statement. Definitions produce a confirmation
// in Text; every other statement produces a number in Value.
type Result struct {
	Value float64
	Text  string
}

func (r *Result) String() string {
	if r.Text != "" {
		return r.Text
	}
	return formatNum(r.Value)
}

// Feed parses and evaluates one statement of source text. Blank input yields
// nil, nil. The session's statement counter increments on every call whether
// or not the statement succeeds, and its value prefixes every error message.
// A failed statement aborts only itself; definitions committed by earlier
// statements stay in place.
func (s *Session) Feed(src string) (*Result, error) {
	s.n++
	st, err := ParseStatement(src)
	if err != nil {
		return nil, &StatementError{N: s.n, Err: err}
	}
	if st == nil {
		return nil, nil
	}
	r, err := s.evalStmt(st.s)
	if err != nil {
		return nil, &StatementError{N: s.n, Err: err}
	}
	return r, nil
}

// Eval evaluates an already parsed statement against the session. Unlike
// Feed, it does not touch the statement counter or prefix errors.
func (s *Session) Eval(st *Statement) (*Result, error) {
	return s.evalStmt(st.s)
}

func (s *Session) evalStmt(st *stmt) (*Result, error) {
	switch st.kind {
	case stmtExpr:
		v, err := s.eval(st.body)
		if err != nil {
			return nil, err
		}
		return &Result{Value: v}, nil
	case stmtConst:
		// Constants bind into the global scope no matter the current scope
		// depth. A later const for the same name overwrites it.
		v, err := s.eval(st.body)
		if err != nil {
			return nil, err
		}
		s.scopes[0][st.name] = v
		return &Result{Value: v}, nil
	case stmtLet:
		c, err := s.buildClause(st)
		if err != nil {
			return nil, err
		}
		s.funcs[st.name] = append(s.funcs[st.name], c)
		return &Result{Text: "defined " + st.name + c.signature()}, nil
	default:
		panic("tally: invalid statement kind " + strconv.Itoa(int(st.kind)))
	}
}

// buildClause turns a let statement into a clause. A parameter that is a bare
// name becomes a bind slot; any other parameter expression is evaluated now,
// in the scope active at definition time, and becomes an exact-match literal.
// The whole pattern is built before the clause is appended, so a failure here
// leaves the function table untouched.
func (s *Session) buildClause(st *stmt) (clause, error) {
	pattern := make([]param, len(st.params))
	for i, p := range st.params {
		if p.kind == exprName {
			pattern[i] = param{name: p.name, bind: true}
			continue
		}
		v, err := s.eval(p)
		if err != nil {
			return clause{}, err
		}
		pattern[i] = param{lit: v}
	}
	return clause{pattern: pattern, body: st.body}, nil
}

func (c clause) signature() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range c.pattern {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.bind {
			b.WriteString(p.name)
		} else {
			b.WriteString(formatNum(p.lit))
		}
	}
	b.WriteByte(')')
	return b.String()
}

// match tests the clause pattern against evaluated arguments. On acceptance
// it returns the call-local scope populated from the bind slots.
func (c clause) match(args []float64) (map[string]float64, bool) {
	if len(c.pattern) != len(args) {
		return nil, false
	}
	locals := make(map[string]float64, len(args))
	for i, p := range c.pattern {
		if p.bind {
			locals[p.name] = args[i]
			continue
		}
		if p.lit != args[i] {
			return nil, false
		}
	}
	return locals, true
}

func (s *Session) eval(n *expr) (float64, error) {
	switch n.kind {
	case exprNum:
		return n.val, nil
	case exprName:
		// Innermost scope first. Presence decides the lookup, not the bound
		// value, so zero is as good a binding as any other number.
		for i := len(s.scopes) - 1; i >= 0; i-- {
			if v, ok := s.scopes[i][n.name]; ok {
				return v, nil
			}
		}
		return 0, &NameError{Name: n.name, Suggestion: s.suggestVar(n.name)}
	case exprCall:
		return s.call(n)
	case exprNeg:
		v, err := s.eval(n.left)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case exprAdd:
		l, r, err := s.eval2(n)
		return l + r, err
	case exprSub:
		l, r, err := s.eval2(n)
		return l - r, err
	case exprMul:
		l, r, err := s.eval2(n)
		return l * r, err
	case exprDiv:
		l, r, err := s.eval2(n)
		return l / r, err
	case exprPow:
		l, r, err := s.eval2(n)
		return math.Pow(l, r), err
	default:
		panic("tally: invalid AST node " + n.String())
	}
}

// eval2 evaluates both operands of a binary node, left before right. The
// order is observable when operands call functions with side effects on the
// cache.
func (s *Session) eval2(n *expr) (l, r float64, err error) {
	l, err = s.eval(n.left)
	if err != nil {
		return 0, 0, err
	}
	r, err = s.eval(n.right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// call evaluates a function call: arguments left to right, then the cache,
// then builtins, then user clauses in declaration order. A hit on the cache
// returns without invoking anything, so a niladic nondeterministic builtin
// yields the same value for the rest of the session.
func (s *Session) call(n *expr) (float64, error) {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := s.eval(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	key := callKey(n.name, args)
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}
	if b, ok := s.builtins[n.name]; ok {
		if len(args) != b.Arity {
			return 0, &ArityError{Func: n.name, Want: b.Arity, Got: len(args)}
		}
		v := b.Fn(args)
		s.cache.Add(key, v)
		return v, nil
	}
	clauses, ok := s.funcs[n.name]
	if !ok {
		return 0, &UndefinedFuncError{Func: n.name, Suggestion: s.suggestFunc(n.name)}
	}
	for _, c := range clauses {
		locals, ok := c.match(args)
		if !ok {
			continue
		}
		s.scopes = append(s.scopes, locals)
		v, err := s.eval(c.body)
		s.popScope()
		if err != nil {
			return 0, err
		}
		s.cache.Add(key, v)
		return v, nil
	}
	return 0, &MatchError{Func: n.name, Args: args}
}

func (s *Session) popScope() {
	if len(s.scopes) < 2 {
		panic(&ScopeError{Depth: len(s.scopes)})
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// callKey builds the cache key for a call signature.
func callKey(name string, args []float64) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatNum(a))
	}
	b.WriteByte(')')
	return b.String()
}

func (s *Session) suggestVar(name string) string {
	var cands []string
	for i := range s.scopes {
		for k := range s.scopes[i] {
			cands = append(cands, k)
		}
	}
	return closest(name, cands)
}

func (s *Session) suggestFunc(name string) string {
	cands := make([]string, 0, len(s.builtins)+len(s.funcs))
	for k := range s.builtins {
		cands = append(cands, k)
	}
	for k := range s.funcs {
		cands = append(cands, k)
	}
	return closest(name, cands)
}

// closest picks the best fuzzy match for a misspelled name, if any.
func closest(name string, cands []string) string {
	ranks := fuzzy.RankFindFold(name, cands)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// NameError is an error from a reference to a variable that no scope binds.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Suggestion is the closest known name, if any.
	Suggestion string
}

func (err *NameError) Error() string {
	return "undefined " + err.Name + didYouMean(err.Suggestion)
}

// UndefinedFuncError is an error from a call to a name that is neither a
// builtin nor a user-defined function.
type UndefinedFuncError struct {
	// Func is the name that was called.
	Func string
	// Suggestion is the closest known function name, if any.
	Suggestion string
}

func (err *UndefinedFuncError) Error() string {
	return "undefined function " + err.Func + didYouMean(err.Suggestion)
}

func didYouMean(s string) string {
	if s == "" {
		return ""
	}
	return " (did you mean " + strconv.Quote(s) + "?)"
}

// ArityError is an error from calling a builtin with the wrong number of
// arguments.
type ArityError struct {
	// Func is the builtin's name.
	Func string
	// Want is the builtin's declared arity.
	Want int
	// Got is the number of arguments in the call.
	Got int
}

func (err *ArityError) Error() string {
	args := " arguments, got "
	if err.Want == 1 {
		args = " argument, got "
	}
	return err.Func + " takes " + strconv.Itoa(err.Want) + args + strconv.Itoa(err.Got)
}

// MatchError is an error from a call for which no clause of a user-defined
// function accepts the arguments.
type MatchError struct {
	// Func is the function's name.
	Func string
	// Args is the evaluated arguments of the call.
	Args []float64
}

func (err *MatchError) Error() string {
	return "no clause of " + err.Func + " matches " + callKey(err.Func, err.Args)
}

// ScopeError reports an attempt to pop the global scope. It indicates a bug
// in the evaluator's scope pairing and is raised as a panic.
type ScopeError struct {
	Depth int
}

func (err *ScopeError) Error() string {
	return "scope stack underflow at depth " + strconv.Itoa(err.Depth)
}

// StatementError wraps any failure from Feed with the 1-based index of the
// statement that failed.
type StatementError struct {
	// N is the statement's index within the session.
	N int
	// Err is the underlying failure.
	Err error
}

func (err *StatementError) Error() string {
	return "(Statement " + strconv.Itoa(err.N) + ") " + err.Err.Error()
}

func (err *StatementError) Unwrap() error {
	return err.Err
}
