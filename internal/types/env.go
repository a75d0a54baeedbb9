package types

// Scheme is a root Generic or a bare monotype (spec §3.3). Generics are
// built by Generalize, by internal/infer for generic type aliases, and
// for function annotations that declare their own type parameters.
type Scheme struct {
	Root Type
}

// NewMonoScheme wraps a monotype as a (non-generalized) scheme.
func NewMonoScheme(t Type) *Scheme { return &Scheme{Root: t} }

// Generalize closes over the free variables of t that do not also appear
// free in env, producing a scheme that callers can later Instantiate with
// fresh variables at each use site.
func Generalize(env *Env, t Type) *Scheme {
	envFree := env.FreeTypeVars()
	var params []*Var
	for _, v := range FreeTypeVars(t) {
		if !envFree[v.M.ID] {
			params = append(params, v)
		}
	}
	if len(params) == 0 {
		return &Scheme{Root: t}
	}
	return &Scheme{Root: &Generic{Inner: t, Params: params}}
}

// Instantiate replaces a scheme's quantified variables with fresh ones
// drawn from env's counter, returning a monotype usable at a single use
// site.
func Instantiate(env *Env, s *Scheme) Type {
	g, ok := s.Root.(*Generic)
	if !ok {
		return s.Root
	}
	sub := Substitution{}
	for _, p := range g.Params {
		sub[p.M.ID] = env.Fresh()
	}
	return Apply(sub, g.Inner)
}

// Env is the value/type-alias environment threaded through inference
// (spec §3.3). It is immutable by convention: Extend returns a new Env
// sharing no mutable state with its parent except the fresh-id
// high-water mark, which the caller must fold back with AdoptCounter
// once a child scope completes (spec §5 — "child-env write-back is
// required for soundness").
type Env struct {
	Values  map[string]*Scheme
	Types   map[string]*Scheme
	Counter int
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{Values: map[string]*Scheme{}, Types: map[string]*Scheme{}}
}

// Clone returns a new Env with copied binding maps and the same counter.
func (e *Env) Clone() *Env {
	values := make(map[string]*Scheme, len(e.Values))
	for k, v := range e.Values {
		values[k] = v
	}
	types := make(map[string]*Scheme, len(e.Types))
	for k, v := range e.Types {
		types[k] = v
	}
	return &Env{Values: values, Types: types, Counter: e.Counter}
}

// Extend returns a child environment with name bound to scheme.
func (e *Env) Extend(name string, scheme *Scheme) *Env {
	child := e.Clone()
	child.Values[name] = scheme
	return child
}

// ExtendType returns a child environment with name bound as a type alias.
func (e *Env) ExtendType(name string, scheme *Scheme) *Env {
	child := e.Clone()
	child.Types[name] = scheme
	return child
}

// Lookup finds a value binding.
func (e *Env) Lookup(name string) (*Scheme, bool) {
	s, ok := e.Values[name]
	return s, ok
}

// LookupType finds a type-alias binding.
func (e *Env) LookupType(name string) (*Scheme, bool) {
	s, ok := e.Types[name]
	return s, ok
}

// Fresh allocates a new unification variable, advancing the counter.
func (e *Env) Fresh() *Var {
	id := e.Counter
	e.Counter++
	return &Var{M: Meta{ID: id}}
}

// AdoptCounter folds a child scope's high-water mark back into e, once
// the child has finished running. This is the cooperative write-back
// discipline described in spec §5: no locking, no interleaving, just an
// explicit max() at the point a child scope returns control to its
// parent.
func (e *Env) AdoptCounter(child *Env) {
	if child.Counter > e.Counter {
		e.Counter = child.Counter
	}
}

// FreeTypeVars returns the set of Var ids free in any binding of e
// (excluding each scheme's own quantified variables).
func (e *Env) FreeTypeVars() map[int]bool {
	free := map[int]bool{}
	for _, s := range e.Values {
		for _, v := range FreeTypeVars(s.Root) {
			free[v.M.ID] = true
		}
	}
	return free
}
