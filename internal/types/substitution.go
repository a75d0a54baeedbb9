package types

// Substitution maps a Var's id to the Type it has been bound to
// (invariant I3: every key is a Var id, never a general type id).
type Substitution map[int]Type

// Apply applies a substitution to a type, identically to t.Substitute(s)
// but readable at call sites that don't otherwise need t in scope first.
func Apply(s Substitution, t Type) Type {
	if len(s) == 0 {
		return t
	}
	return t.Substitute(s)
}

// Compose returns s1 with s2 applied to each of its values, then s2's own
// entries layered on top so they shadow s1 where both bind the same id.
// Composition is associative: Compose(Compose(s3, s2), s1) == Compose(s3,
// Compose(s2, s1)).
func Compose(s2, s1 Substitution) Substitution {
	result := make(Substitution, len(s1)+len(s2))
	for id, t := range s1 {
		result[id] = Apply(s2, t)
	}
	for id, t := range s2 {
		result[id] = t
	}
	return result
}

// ComposeAll folds Compose left-associatively over a sequence of
// substitutions produced in order (earliest first).
func ComposeAll(subs ...Substitution) Substitution {
	acc := Substitution{}
	for _, s := range subs {
		acc = Compose(s, acc)
	}
	return acc
}

// ComposeManyWithContext merges a set of substitutions the way the
// union-on-the-right unification rule requires: when two substitutions
// both bind the same variable id to different types, the binding is
// widened to a Union of both rather than one silently overwriting the
// other. Plain Compose is correct everywhere else; this is reserved for
// that one rule because it is the only place partial witnesses from
// multiple union members must all survive.
func ComposeManyWithContext(subs ...Substitution) Substitution {
	result := Substitution{}
	for _, s := range subs {
		for id, t := range s {
			existing, ok := result[id]
			if !ok {
				result[id] = t
				continue
			}
			if existing.Equals(t) {
				continue
			}
			if u, ok := existing.(*Union); ok {
				result[id] = &Union{Members: appendUnique(u.Members, t)}
				continue
			}
			result[id] = &Union{Members: appendUnique([]Type{existing}, t)}
		}
	}
	return result
}

func appendUnique(members []Type, t Type) []Type {
	for _, m := range members {
		if m.Equals(t) {
			return members
		}
	}
	return append(members, t)
}
