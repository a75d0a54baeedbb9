// Package infer implements crochet's Hindley-Milner-with-subtyping type
// inferencer (spec §4.1): the top-level program driver, per-form
// expression inference, pattern inference, and normalization wiring. It
// composes internal/unify for the actual subtyping checks and
// internal/diag for structured error reporting, recovering internal/unify's
// span-free sentinel errors via errors.As and attaching source spans.
package infer

import (
	"errors"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/diag"
	"github.com/crochet-lang/crochet/internal/unify"
	ty "github.com/crochet-lang/crochet/internal/types"
)

// usage governs the direction infer_let unifies the pattern against the
// initializer in (spec §4.1.1, §4.1.2).
type usage int

const (
	usageAssign usage = iota // init ⊑ pat (let x = e)
	usageMatch               // pat ⊑ init (if let pat = e)
)

// wrapUnifyErr recovers internal/unify's span-free sentinel errors and
// attaches span, turning them into a *diag.Report-backed error. Any other
// error (e.g. an unresolved alias) passes through unchanged.
func wrapUnifyErr(err error, t1, t2 ty.Type, span ast.Span) error {
	var mismatch *unify.MismatchError
	if errors.As(err, &mismatch) {
		return diag.UnificationFailure(mismatch.T1, mismatch.T2, span)
	}
	var occurs *unify.OccursError
	if errors.As(err, &occurs) {
		return diag.InfiniteType(occurs.Var.String(), occurs.T, span)
	}
	var frozen *unify.FrozenError
	if errors.As(err, &frozen) {
		return diag.UnificationFailure(frozen.Var, t2, span)
	}
	return err
}

// InferProgram is the top-level driver (spec §4.1.1). It iterates
// statements left to right, extending env as it goes, and returns the
// final environment. The first failure aborts the whole program: crochet
// does not attempt error recovery.
func InferProgram(prog *ast.Program, env *ty.Env) (*ty.Env, error) {
	cur := env
	for _, stmt := range prog.Statements {
		next, err := inferStmt(cur, stmt)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func inferStmt(env *ty.Env, stmt ast.Statement) (*ty.Env, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return inferVarDecl(env, s)
	case *ast.TypeDecl:
		return inferTypeDecl(env, s)
	case *ast.ExprStmt:
		_, _, err := infer(env, s.X)
		if err != nil {
			return nil, err
		}
		return env, nil
	default:
		return nil, diag.Unsupported("statement form", stmt.Position())
	}
}

func inferVarDecl(env *ty.Env, v *ast.VarDecl) (*ty.Env, error) {
	if v.Declare {
		if v.Annotation == nil {
			return nil, diag.DeclareWithoutAnnotation(v.Position())
		}
		t, err := typeFromAnnotation(env, v.Annotation, nil)
		if err != nil {
			return nil, err
		}
		scheme := ty.FreezeScheme(schemeFromAnnotationType(t))
		ident, ok := v.Pattern.(*ast.IdentPattern)
		if !ok {
			return nil, diag.Unsupported("non-identifier pattern on a declare binding", v.Position())
		}
		return env.Extend(ident.Name, scheme), nil
	}

	if v.Init == nil {
		return nil, diag.NonDeclareWithoutInitializer(v.Position())
	}

	sub, assumptions, err := inferPatternAndInit(env, v.Pattern, v.Annotation, v.Init, usageAssign)
	if err != nil {
		return nil, err
	}

	next := env
	for name, scheme := range assumptions {
		next = next.Extend(name, ty.FreezeScheme(ty.Generalize(env, ty.Normalize(ty.Apply(sub, scheme.Root)))))
	}
	return next, nil
}

// schemeFromAnnotationType wraps t as a Scheme, treating an annotation
// that already carries its own Generic (from a FuncAnn's own type
// parameters) as already-quantified.
func schemeFromAnnotationType(t ty.Type) *ty.Scheme {
	if g, ok := t.(*ty.Generic); ok {
		return &ty.Scheme{Root: g}
	}
	return ty.NewMonoScheme(t)
}

func inferTypeDecl(env *ty.Env, d *ast.TypeDecl) (*ty.Env, error) {
	typeParams := make(map[string]*ty.Var, len(d.TypeParams))
	var params []*ty.Var
	for _, name := range d.TypeParams {
		v := env.Fresh()
		typeParams[name] = v
		params = append(params, v)
	}
	t, err := typeFromAnnotation(env, d.Annotation, typeParams)
	if err != nil {
		return nil, err
	}
	var scheme *ty.Scheme
	if len(params) == 0 {
		scheme = ty.NewMonoScheme(t)
	} else {
		scheme = &ty.Scheme{Root: &ty.Generic{Inner: t, Params: params}}
	}
	return env.ExtendType(d.Name, ty.FreezeScheme(scheme)), nil
}

// infer implements infer(env, e) -> (Subst, Type) per the per-form
// contract table in spec §4.1.2.
func infer(env *ty.Env, e ast.Expr) (ty.Substitution, ty.Type, error) {
	switch e := e.(type) {
	case *ast.Lit:
		t, err := astLitToType(e)
		return ty.Substitution{}, t, err

	case *ast.Ident:
		scheme, ok := env.Lookup(e.Name)
		if !ok {
			return nil, nil, diag.UnboundName(e.Name, e.Position())
		}
		return ty.Substitution{}, ty.Instantiate(env, scheme), nil

	case *ast.Empty:
		return ty.Substitution{}, &ty.Keyword{Name: ty.KUndefined}, nil

	case *ast.Lambda:
		return inferLambda(env, e)

	case *ast.App:
		return inferApp(env, e)

	case *ast.Fix:
		sub, innerT, err := infer(env, e.X)
		if err != nil {
			return nil, nil, err
		}
		fresh := env.Fresh()
		fixed := &ty.Lam{Params: []ty.FnParam{{Name: "x", Type: fresh}}, Ret: fresh}
		s2, err := unify.Unify(fixed, ty.Apply(sub, innerT), env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, fixed, innerT, e.Position())
		}
		total := ty.Compose(s2, sub)
		return total, ty.Apply(total, fresh), nil

	case *ast.IfElse:
		return inferIfElse(env, e)

	case *ast.Let:
		if e.Pattern == nil {
			sub1, _, err := infer(env, e.Init)
			if err != nil {
				return nil, nil, err
			}
			sub2, bodyT, err := infer(env, e.Body)
			if err != nil {
				return nil, nil, err
			}
			return ty.Compose(sub2, sub1), bodyT, nil
		}
		sub, bodyT, err := inferLet(env, e.Pattern, e.Init, e.Body, usageAssign)
		if err != nil {
			return nil, nil, err
		}
		return sub, bodyT, nil

	case *ast.LetExpr:
		return nil, nil, diag.InternalLetExprMisplaced(e.Position())

	case *ast.Binary:
		return inferBinary(env, e)

	case *ast.Obj:
		sub := ty.Substitution{}
		elems := make([]ty.ObjectElem, len(e.Props))
		for i, p := range e.Props {
			s, t, err := infer(env, p.Value)
			if err != nil {
				return nil, nil, err
			}
			sub = ty.Compose(s, sub)
			elems[i] = ty.ObjectElem{Kind: ty.ElemProp, Name: p.Key, PropType: t}
		}
		return sub, ty.Apply(sub, &ty.Object{Elems: elems}), nil

	case *ast.Tuple:
		sub := ty.Substitution{}
		elems := make([]ty.Type, len(e.Elems))
		for i, el := range e.Elems {
			s, t, err := infer(env, el)
			if err != nil {
				return nil, nil, err
			}
			sub = ty.Compose(s, sub)
			elems[i] = t
		}
		return sub, ty.Apply(sub, &ty.Tuple{Elems: elems}), nil

	case *ast.Unary:
		return infer(env, e.X)

	case *ast.Assign:
		sub1, _, err := infer(env, e.Left)
		if err != nil {
			return nil, nil, err
		}
		sub2, t, err := infer(env, e.Right)
		if err != nil {
			return nil, nil, err
		}
		return ty.Compose(sub2, sub1), t, nil

	case *ast.Match:
		return inferMatch(env, e)

	case *ast.Await, *ast.Member, *ast.JSXElement, *ast.TemplateLiteral, *ast.TaggedTemplateLiteral:
		return nil, nil, diag.Unsupported(unsupportedName(e), e.Position())

	default:
		return nil, nil, diag.Unsupported("expression form", e.Position())
	}
}

func unsupportedName(e ast.Expr) string {
	switch e.(type) {
	case *ast.Await:
		return "await"
	case *ast.Member:
		return "member access"
	case *ast.JSXElement:
		return "JSX"
	default:
		return "template literal"
	}
}

// inferLambda implements the Lambda row of §4.1.2: fresh vars for any
// declared type-params, each parameter pattern inferred in a child env,
// the body inferred in that child env, and (if a return annotation is
// present) the body's type unified against it.
func inferLambda(env *ty.Env, l *ast.Lambda) (ty.Substitution, ty.Type, error) {
	typeParams := make(map[string]*ty.Var, len(l.TypeParams))
	for _, name := range l.TypeParams {
		typeParams[name] = env.Fresh()
	}

	child := env.Clone()
	sub := ty.Substitution{}
	params := make([]ty.FnParam, len(l.Params))
	for i, p := range l.Params {
		s, assumptions, t, err := InferPattern(child, p, typeParams)
		if err != nil {
			return nil, nil, err
		}
		sub = ty.Compose(s, sub)
		for name, scheme := range assumptions {
			child = child.Extend(name, scheme)
		}
		params[i] = ty.FnParam{Name: patternBoundName(p), Type: t}
	}

	sBody, bodyT, err := infer(child, l.Body)
	if err != nil {
		return nil, nil, err
	}
	sub = ty.Compose(sBody, sub)
	env.AdoptCounter(child)

	if l.ReturnAnn != nil {
		retT, err := typeFromAnnotation(env, l.ReturnAnn, typeParams)
		if err != nil {
			return nil, nil, err
		}
		s2, err := unify.Unify(ty.Apply(sub, bodyT), retT, env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, bodyT, retT, l.Position())
		}
		sub = ty.Compose(s2, sub)
		bodyT = retT
	}

	for i := range params {
		params[i].Type = ty.Apply(sub, params[i].Type)
	}
	lam := &ty.Lam{Params: params, Ret: ty.Apply(sub, bodyT)}
	return sub, lam, nil
}

func patternBoundName(pat ast.Pattern) string {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		return p.Name
	case *ast.IsPattern:
		return p.Bind
	default:
		return "_"
	}
}

// inferApp implements the App row: infer the callee and args, then
// unify a synthetic is_call Lam against the callee's type (spec §4.1.2;
// partial/regular application is resolved inside the unifier, §4.1.4
// case 2).
func inferApp(env *ty.Env, a *ast.App) (ty.Substitution, ty.Type, error) {
	sub, fnT, err := infer(env, a.Fn)
	if err != nil {
		return nil, nil, err
	}
	params := make([]ty.FnParam, 0, len(a.Args))
	for _, arg := range a.Args {
		s, t, err := infer(env, arg.Value)
		if err != nil {
			return nil, nil, err
		}
		sub = ty.Compose(s, sub)
		params = append(params, ty.FnParam{Type: t})
	}
	ret := env.Fresh()
	synthetic := &ty.Lam{Params: params, Ret: ret, IsCall: true}
	s2, err := unify.Unify(ty.Apply(sub, synthetic), ty.Apply(sub, fnT), env)
	if err != nil {
		return nil, nil, wrapUnifyErr(err, synthetic, fnT, a.Position())
	}
	total := ty.Compose(s2, sub)
	return total, ty.Apply(total, ret), nil
}

// inferIfElse implements the two IfElse rows of §4.1.2.
func inferIfElse(env *ty.Env, i *ast.IfElse) (ty.Substitution, ty.Type, error) {
	if letExpr, ok := i.Cond.(*ast.LetExpr); ok {
		then := i.Then
		if then == nil {
			then = &ast.Empty{}
		}
		sub, consT, err := inferLet(env, letExpr.Pattern, letExpr.X, then, usageMatch)
		if err != nil {
			return nil, nil, err
		}
		if i.Else == nil {
			return sub, &ty.Keyword{Name: ty.KUndefined}, nil
		}
		sAlt, altT, err := infer(env, i.Else)
		if err != nil {
			return nil, nil, err
		}
		total := ty.Compose(sAlt, sub)
		return total, ty.Apply(total, unionOf(consT, altT)), nil
	}

	sub, condT, err := infer(env, i.Cond)
	if err != nil {
		return nil, nil, err
	}
	s2, err := unify.Unify(ty.Apply(sub, condT), &ty.Keyword{Name: ty.KBoolean}, env)
	if err != nil {
		return nil, nil, wrapUnifyErr(err, condT, &ty.Keyword{Name: ty.KBoolean}, i.Position())
	}
	sub = ty.Compose(s2, sub)

	sThen, thenT, err := infer(env, i.Then)
	if err != nil {
		return nil, nil, err
	}
	sub = ty.Compose(sThen, sub)

	if i.Else == nil {
		return sub, &ty.Keyword{Name: ty.KUndefined}, nil
	}
	sElse, elseT, err := infer(env, i.Else)
	if err != nil {
		return nil, nil, err
	}
	sub = ty.Compose(sElse, sub)
	return sub, ty.Apply(sub, unionOf(thenT, elseT)), nil
}

func unionOf(a, b ty.Type) ty.Type {
	if a.Equals(b) {
		return a
	}
	return &ty.Union{Members: []ty.Type{a, b}}
}

// inferBinary implements the Op rows of §4.1.2.
func inferBinary(env *ty.Env, b *ast.Binary) (ty.Substitution, ty.Type, error) {
	sub1, lt, err := infer(env, b.Left)
	if err != nil {
		return nil, nil, err
	}
	sub2, rt, err := infer(env, b.Right)
	if err != nil {
		return nil, nil, err
	}
	sub := ty.Compose(sub2, sub1)

	switch b.Op {
	case "+", "-", "*", "/":
		number := &ty.Keyword{Name: ty.KNumber}
		s1, err := unify.Unify(ty.Apply(sub, lt), number, env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, lt, number, b.Position())
		}
		sub = ty.Compose(s1, sub)
		s2, err := unify.Unify(ty.Apply(sub, rt), number, env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, rt, number, b.Position())
		}
		sub = ty.Compose(s2, sub)
		return sub, number, nil
	case "==", "!=", "<", "<=", ">", ">=":
		number := &ty.Keyword{Name: ty.KNumber}
		s1, err := unify.Unify(ty.Apply(sub, lt), number, env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, lt, number, b.Position())
		}
		sub = ty.Compose(s1, sub)
		s2, err := unify.Unify(ty.Apply(sub, rt), number, env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, rt, number, b.Position())
		}
		sub = ty.Compose(s2, sub)
		return sub, &ty.Keyword{Name: ty.KBoolean}, nil
	case "&&", "||":
		boolean := &ty.Keyword{Name: ty.KBoolean}
		s1, err := unify.Unify(ty.Apply(sub, lt), boolean, env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, lt, boolean, b.Position())
		}
		sub = ty.Compose(s1, sub)
		s2, err := unify.Unify(ty.Apply(sub, rt), boolean, env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, rt, boolean, b.Position())
		}
		sub = ty.Compose(s2, sub)
		return sub, boolean, nil
	default:
		return nil, nil, diag.Unsupported("operator "+b.Op, b.Position())
	}
}

// inferMatch unifies the scrutinee's type against each arm's pattern
// type (pat ⊑ scrutinee) and unions the arm bodies' types.
func inferMatch(env *ty.Env, m *ast.Match) (ty.Substitution, ty.Type, error) {
	sub, scrutT, err := infer(env, m.Scrutinee)
	if err != nil {
		return nil, nil, err
	}

	var resultT ty.Type
	for _, arm := range m.Arms {
		typeParams := map[string]*ty.Var{}
		sPat, assumptions, patT, err := InferPattern(env, arm.Pattern, typeParams)
		if err != nil {
			return nil, nil, err
		}
		sub = ty.Compose(sPat, sub)
		s2, err := unify.Unify(ty.Apply(sub, patT), ty.Apply(sub, scrutT), env)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, patT, scrutT, arm.Pattern.Position())
		}
		sub = ty.Compose(s2, sub)

		armEnv := extendWithAssumptions(env, assumptions)
		if arm.Guard != nil {
			sGuard, guardT, err := infer(armEnv, arm.Guard)
			if err != nil {
				return nil, nil, err
			}
			sub = ty.Compose(sGuard, sub)
			s3, err := unify.Unify(ty.Apply(sub, guardT), &ty.Keyword{Name: ty.KBoolean}, env)
			if err != nil {
				return nil, nil, wrapUnifyErr(err, guardT, &ty.Keyword{Name: ty.KBoolean}, arm.Guard.Position())
			}
			sub = ty.Compose(s3, sub)
		}

		sBody, bodyT, err := infer(armEnv, arm.Body)
		if err != nil {
			return nil, nil, err
		}
		sub = ty.Compose(sBody, sub)
		if resultT == nil {
			resultT = bodyT
		} else {
			resultT = unionOf(resultT, bodyT)
		}
	}
	if resultT == nil {
		resultT = &ty.Keyword{Name: ty.KUndefined}
	}
	return sub, ty.Apply(sub, resultT), nil
}

// inferPatternAndInit runs steps 1 of infer_let (pattern and init
// inference plus the usage-directed unification) without a body,
// returning the composed substitution and the pattern's (post-subst)
// assumptions. This is what a top-level VarDecl needs: it has no local
// body to infer, since the binding is inserted directly into the
// surrounding program's env (spec §4.1.1). A non-nil ann is checked
// first: the init's type must unify with it (init ⊑ ann), and the
// annotated type is then what the pattern binds.
func inferPatternAndInit(env *ty.Env, pat ast.Pattern, ann ast.TypeAnnotation, init ast.Expr, use usage) (ty.Substitution, map[string]*ty.Scheme, error) {
	child := env.Clone()

	sPat, assumptions, patT, err := InferPattern(child, pat, map[string]*ty.Var{})
	if err != nil {
		return nil, nil, err
	}
	sInit, initT, err := infer(child, init)
	if err != nil {
		return nil, nil, err
	}
	sub := ty.Compose(sInit, sPat)

	if ann != nil {
		annT, err := typeFromAnnotation(child, ann, nil)
		if err != nil {
			return nil, nil, err
		}
		s, err := unify.Unify(ty.Apply(sub, initT), annT, child)
		if err != nil {
			return nil, nil, wrapUnifyErr(err, initT, annT, init.Position())
		}
		sub = ty.Compose(s, sub)
		initT = annT
	}

	var s3 ty.Substitution
	if use == usageAssign {
		s3, err = unify.Unify(ty.Apply(sub, initT), ty.Apply(sub, patT), child)
	} else {
		s3, err = unify.Unify(ty.Apply(sub, patT), ty.Apply(sub, initT), child)
	}
	if err != nil {
		return nil, nil, wrapUnifyErr(err, initT, patT, pat.Position())
	}
	sub = ty.Compose(s3, sub)
	env.AdoptCounter(child)

	for name, scheme := range assumptions {
		assumptions[name] = ty.NewMonoScheme(ty.Apply(sub, scheme.Root))
	}
	return sub, assumptions, nil
}

// inferLet implements infer_let (spec §4.1.1): pattern and init are
// inferred in a child env, unified according to usage, the pattern's
// assumptions extend the child env (post-substitution), body is inferred
// there, and the child's fresh-id high-water mark is folded back into env
// before returning.
func inferLet(env *ty.Env, pat ast.Pattern, init, body ast.Expr, use usage) (ty.Substitution, ty.Type, error) {
	child := env.Clone()

	sub, assumptions, err := inferPatternAndInit(child, pat, nil, init, use)
	if err != nil {
		return nil, nil, err
	}

	bodyEnv := child
	for name, scheme := range assumptions {
		bodyEnv = bodyEnv.Extend(name, scheme)
	}
	sBody, bodyT, err := infer(bodyEnv, body)
	if err != nil {
		return nil, nil, err
	}
	sub = ty.Compose(sBody, sub)
	env.AdoptCounter(bodyEnv)

	return sub, ty.Apply(sub, bodyT), nil
}
