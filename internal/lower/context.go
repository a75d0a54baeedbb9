// Package lower translates the typed source AST into the JS-AST model
// defined in internal/jsast: refutability-driven pattern lowering, match
// and if-let desugaring into straight-line conditionals, and expression
// lowering with precedence-aware parenthesization (spec §4.3).
package lower

import "fmt"

// Context carries the single monotonically-increasing counter a lowering
// pass allocates fresh identifiers from (spec §4.3, §5). Child scopes
// (e.g. a nested Lambda body) get their own Context; the caller is
// responsible for folding the child's high-water mark back in once it
// returns, mirroring the cooperative write-back discipline internal/types
// uses for its own fresh-variable counter.
type Context struct {
	n   int
	err error
}

// Fail records the first lowering error encountered; subsequent calls are
// no-ops, matching the "halt at first error" discipline (no error
// recovery) the spec requires of the core.
func (c *Context) Fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first error Fail recorded, or nil.
func (c *Context) Err() error { return c.err }

// NewContext returns a Context starting its counter at zero.
func NewContext() *Context { return &Context{} }

// Adopt folds child's high-water mark back into c.
func (c *Context) Adopt(child *Context) {
	if child.n > c.n {
		c.n = child.n
	}
	if child.err != nil {
		c.Fail(child.err)
	}
}

func (c *Context) next() int {
	v := c.n
	c.n++
	return v
}

// FreshTemp allocates a `let`-in hoisted-temporary identifier.
func (c *Context) FreshTemp() string { return fmt.Sprintf("$temp_%d", c.next()) }

// FreshRet allocates a match/if-let result-slot identifier.
func (c *Context) FreshRet() string { return fmt.Sprintf("$ret_%d", c.next()) }

// FreshTmp allocates a match/if-let scrutinee-binding identifier.
func (c *Context) FreshTmp() string { return fmt.Sprintf("$tmp_%d", c.next()) }

// ArgName returns the name of the i-th synthesized placeholder parameter
// at a partial-application call site. It is positional within that call,
// not drawn from the shared counter, matching the original implementation.
func ArgName(i int) string { return fmt.Sprintf("$arg%d", i) }
