// Package unify implements the subtype-flavoured unifier described in
// spec §4.1.4: unify(t1, t2, env) reads "t1 may be used where t2 is
// expected" and returns the substitution that makes it so.
package unify

import (
	"fmt"

	ty "github.com/crochet-lang/crochet/internal/types"
)

// MismatchError reports a structural unification failure. Callers that
// need a source span (internal/infer) recover T1/T2 with errors.As and
// build a diag.Report themselves; unify has no span to attach.
type MismatchError struct {
	T1, T2 ty.Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot use %s where %s is expected", e.T1, e.T2)
}

// OccursError reports that binding Var would create an infinite type.
type OccursError struct {
	Var *ty.Var
	T   ty.Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Var, e.T)
}

// FrozenError reports an attempt to bind a frozen (declared/annotated)
// type variable.
type FrozenError struct {
	Var *ty.Var
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("cannot bind frozen type variable %s", e.Var)
}

// Unify implements the ten ordered cases of spec §4.1.4.
func Unify(t1, t2 ty.Type, env *ty.Env) (ty.Substitution, error) {
	// Case 7: Ref resolves through env before anything else, on either side.
	if r1, ok := t1.(*ty.Ref); ok {
		resolved, err := resolveRef(r1, env)
		if err != nil {
			return nil, err
		}
		return Unify(resolved, t2, env)
	}
	if r2, ok := t2.(*ty.Ref); ok {
		resolved, err := resolveRef(r2, env)
		if err != nil {
			return nil, err
		}
		return Unify(t1, resolved, env)
	}

	// Case 1: literal subtypes its base keyword.
	if lit, ok := t1.(*ty.Lit); ok {
		if kw, ok := t2.(*ty.Keyword); ok {
			if lit.Kind.Base() == kw.Name {
				return ty.Substitution{}, nil
			}
			return nil, &MismatchError{T1: t1, T2: t2}
		}
	}

	// Case 2: function subtyping, with is_call-driven (partial) application.
	if l1, ok := t1.(*ty.Lam); ok {
		if l2, ok := t2.(*ty.Lam); ok {
			return unifyLam(l1, l2, env)
		}
	}

	// Case 3: object width/depth subtyping.
	if o1, ok := t1.(*ty.Object); ok {
		if o2, ok := t2.(*ty.Object); ok {
			return unifyObject(o1, o2, env)
		}
	}

	// Case 4: tuple subtyping, extra elements on the left allowed.
	if tup1, ok := t1.(*ty.Tuple); ok {
		if tup2, ok := t2.(*ty.Tuple); ok {
			return unifyTuple(tup1, tup2, env)
		}
	}

	// Case 5: union on the left — every member must unify.
	if u1, ok := t1.(*ty.Union); ok {
		return unifyUnionLeft(u1, t2, env)
	}

	// Case 6: union on the right — some member must unify.
	if u2, ok := t2.(*ty.Union); ok {
		return unifyUnionRight(t1, u2, env)
	}

	// Case 8/9: variable binding, either side.
	if v1, ok := t1.(*ty.Var); ok {
		return bind(v1, t2)
	}
	if v2, ok := t2.(*ty.Var); ok {
		return bind(v2, t1)
	}

	// Case 10: equal structure, fail otherwise.
	if t1.Equals(t2) {
		return ty.Substitution{}, nil
	}
	return nil, &MismatchError{T1: t1, T2: t2}
}

func resolveRef(r *ty.Ref, env *ty.Env) (ty.Type, error) {
	scheme, ok := env.LookupType(r.Name)
	if !ok {
		return nil, fmt.Errorf("unify: unknown type alias %q", r.Name)
	}
	inst := ty.Instantiate(env, scheme)
	if len(r.TypeArgs) == 0 {
		return inst, nil
	}
	if g, ok := scheme.Root.(*ty.Generic); ok {
		sub := ty.Substitution{}
		for i, p := range g.Params {
			if i < len(r.TypeArgs) {
				sub[p.M.ID] = r.TypeArgs[i]
			}
		}
		return ty.Apply(sub, g.Inner), nil
	}
	return inst, nil
}

func bind(v *ty.Var, t ty.Type) (ty.Substitution, error) {
	if other, ok := t.(*ty.Var); ok && other.M.ID == v.M.ID {
		return ty.Substitution{}, nil
	}
	if occurs(v.M.ID, t) {
		return nil, &OccursError{Var: v, T: t}
	}
	if v.M.Frozen {
		return nil, &FrozenError{Var: v}
	}
	return ty.Substitution{v.M.ID: t}, nil
}

func occurs(id int, t ty.Type) bool {
	for _, v := range ty.FreeTypeVars(t) {
		if v.M.ID == id {
			return true
		}
	}
	return false
}

// unifyLam implements case 2, including the is_call-flagged partial and
// regular call forms and the contravariant-parameter non-call form.
func unifyLam(l1, l2 *ty.Lam, env *ty.Env) (ty.Substitution, error) {
	if l1.IsCall {
		if len(l1.Params) < len(l2.Params) {
			sub := ty.Substitution{}
			for i := range l1.Params {
				s, err := Unify(ty.Apply(sub, l1.Params[i].Type), ty.Apply(sub, l2.Params[i].Type), env)
				if err != nil {
					return nil, err
				}
				sub = ty.Compose(s, sub)
			}
			tailParams := make([]ty.FnParam, len(l2.Params)-len(l1.Params))
			copy(tailParams, l2.Params[len(l1.Params):])
			partialRet := &ty.Lam{Params: tailParams, Ret: l2.Ret}
			s, err := Unify(ty.Apply(sub, l1.Ret), ty.Apply(sub, partialRet), env)
			if err != nil {
				return nil, err
			}
			return ty.Compose(s, sub), nil
		}
		sub := ty.Substitution{}
		for i := range l2.Params {
			s, err := Unify(ty.Apply(sub, l1.Params[i].Type), ty.Apply(sub, l2.Params[i].Type), env)
			if err != nil {
				return nil, err
			}
			sub = ty.Compose(s, sub)
		}
		s, err := Unify(ty.Apply(sub, l1.Ret), ty.Apply(sub, l2.Ret), env)
		if err != nil {
			return nil, err
		}
		return ty.Compose(s, sub), nil
	}

	if len(l1.Params) > len(l2.Params) {
		return nil, &MismatchError{T1: l1, T2: l2}
	}
	sub := ty.Substitution{}
	for i := range l1.Params {
		// contravariant: the supplier (l1) may ignore some caller (l2) args,
		// so the demand flows from l2's param into l1's param.
		s, err := Unify(ty.Apply(sub, l2.Params[i].Type), ty.Apply(sub, l1.Params[i].Type), env)
		if err != nil {
			return nil, err
		}
		sub = ty.Compose(s, sub)
	}
	s, err := Unify(ty.Apply(sub, l1.Ret), ty.Apply(sub, l2.Ret), env)
	if err != nil {
		return nil, err
	}
	return ty.Compose(s, sub), nil
}

// unifyObject implements case 3: width/depth subtyping. Every required
// (non-optional) prop of o2 must be satisfiable from a like-named prop of
// o1; extra props in o1 are ignored.
func unifyObject(o1, o2 *ty.Object, env *ty.Env) (ty.Substitution, error) {
	sub := ty.Substitution{}
	for _, e2 := range o2.Elems {
		if e2.Kind != ty.ElemProp {
			continue
		}
		e1, ok := o1.Prop(e2.Name)
		if !ok {
			if e2.Optional {
				continue
			}
			return nil, &MismatchError{T1: o1, T2: o2}
		}
		s, err := Unify(ty.Apply(sub, e1.PropType), ty.Apply(sub, e2.PropType), env)
		if err != nil {
			return nil, err
		}
		sub = ty.Compose(s, sub)
	}
	return sub, nil
}

// unifyTuple implements case 4: t1 may have extra trailing elements.
func unifyTuple(t1, t2 *ty.Tuple, env *ty.Env) (ty.Substitution, error) {
	if len(t1.Elems) < len(t2.Elems) {
		return nil, &MismatchError{T1: t1, T2: t2}
	}
	sub := ty.Substitution{}
	for i := range t2.Elems {
		s, err := Unify(ty.Apply(sub, t1.Elems[i]), ty.Apply(sub, t2.Elems[i]), env)
		if err != nil {
			return nil, err
		}
		sub = ty.Compose(s, sub)
	}
	return sub, nil
}

// unifyUnionLeft implements case 5: every member of u1 must unify with
// t2; the results compose normally, left to right.
func unifyUnionLeft(u1 *ty.Union, t2 ty.Type, env *ty.Env) (ty.Substitution, error) {
	var subs []ty.Substitution
	for _, m := range u1.Members {
		s, err := Unify(m, t2, env)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return ty.ComposeAll(subs...), nil
}

// unifyUnionRight implements case 6: some member of u2 must unify with
// t1; successful substitutions are merged with context-aware composition
// so residuals for the same variable widen into a union instead of one
// silently overwriting another.
func unifyUnionRight(t1 ty.Type, u2 *ty.Union, env *ty.Env) (ty.Substitution, error) {
	var subs []ty.Substitution
	var lastErr error
	for _, m := range u2.Members {
		s, err := Unify(t1, m, env)
		if err != nil {
			lastErr = err
			continue
		}
		subs = append(subs, s)
	}
	if len(subs) == 0 {
		if lastErr == nil {
			lastErr = &MismatchError{T1: t1, T2: u2}
		}
		return nil, lastErr
	}
	return ty.ComposeManyWithContext(subs...), nil
}
