package tally

// defaultCacheSize bounds the call cache of a session created without
// WithCacheSize. Entries are never invalidated, only evicted least recently
// used once the bound is reached.
const defaultCacheSize = 4096

// SessionOption is an option used when creating a session.
type SessionOption interface {
	sessionOption(*sessionConfig)
}

// sessionConfig collects options before the session is built.
type sessionConfig struct {
	builtins   map[string]Builtin
	constants  map[string]float64
	cacheSize  int
	nodefaults bool
}

type (
	builtinopt struct {
		name string
		fn   Builtin
	}
	builtinsopt map[string]Builtin
	constopt    struct {
		name string
		val  float64
	}
	constsopt     map[string]float64
	cacheopt      int
	nodefaultsopt struct{}
)

// WithBuiltin registers one builtin in the new session, overriding any
// default of the same name.
func WithBuiltin(name string, fn Builtin) SessionOption {
	return &builtinopt{name, fn}
}

func (o *builtinopt) sessionOption(c *sessionConfig) {
	c.builtins[o.name] = o.fn
}

// WithBuiltins registers a group of builtins in the new session.
func WithBuiltins(fns map[string]Builtin) SessionOption {
	return builtinsopt(fns)
}

func (o builtinsopt) sessionOption(c *sessionConfig) {
	for k, v := range o {
		c.builtins[k] = v
	}
}

// WithConstant binds one value into the new session's global scope.
func WithConstant(name string, val float64) SessionOption {
	return &constopt{name, val}
}

func (o *constopt) sessionOption(c *sessionConfig) {
	c.constants[o.name] = o.val
}

// WithConstants binds a group of values into the new session's global scope.
func WithConstants(vals map[string]float64) SessionOption {
	return constsopt(vals)
}

func (o constsopt) sessionOption(c *sessionConfig) {
	for k, v := range o {
		c.constants[k] = v
	}
}

// WithCacheSize sets the capacity of the session's call cache. Panics if n is
// not positive.
func WithCacheSize(n int) SessionOption {
	if n <= 0 {
		panic("tally: cache size must be positive")
	}
	return cacheopt(n)
}

func (o cacheopt) sessionOption(c *sessionConfig) {
	c.cacheSize = int(o)
}

// NoDefaults creates the session without the default builtins and constants,
// leaving only what other options supply.
func NoDefaults() SessionOption {
	return nodefaultsopt{}
}

func (nodefaultsopt) sessionOption(c *sessionConfig) {
	c.nodefaults = true
}
