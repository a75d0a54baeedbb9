package lower

import (
	"fmt"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/jsast"
)

// BuildExpr lowers a single source expression into a JS-AST expression,
// hoisting any statements it needs (temp declarations, destructures,
// if-chains) onto *stmts in emission order (spec §4.3).
func BuildExpr(e ast.Expr, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	switch e := e.(type) {
	case *ast.Ident:
		return &jsast.Ident{Name: e.Name}
	case *ast.Lit:
		return buildLit(e)
	case *ast.Unary:
		x := BuildExpr(e.X, stmts, ctx)
		switch x.(type) {
		case *jsast.Binary, *jsast.Logical:
			x = &jsast.Paren{X: x}
		}
		return &jsast.Unary{Op: e.Op, X: x}
	case *ast.Await:
		return &jsast.Unary{Op: "await", X: BuildExpr(e.X, stmts, ctx)}
	case *ast.Binary:
		return buildBinary(e, stmts, ctx)
	case *ast.Assign:
		return &jsast.Assign{Op: string(e.Op), Left: BuildExpr(e.Left, stmts, ctx), Right: BuildExpr(e.Right, stmts, ctx)}
	case *ast.App:
		return buildApp(e, stmts, ctx)
	case *ast.Fix:
		if lam, ok := e.X.(*ast.Lambda); ok {
			return BuildExpr(lam.Body, stmts, ctx)
		}
		return BuildExpr(e.X, stmts, ctx)
	case *ast.Lambda:
		return buildLambda(e, ctx)
	case *ast.Let:
		return buildLet(e, stmts, ctx)
	case *ast.LetExpr:
		panic("lower: LetExpr must only appear as the Cond of an IfElse")
	case *ast.IfElse:
		return buildIfElse(e, stmts, ctx)
	case *ast.Obj:
		props := make([]jsast.ObjectProp, len(e.Props))
		for i, p := range e.Props {
			props[i] = jsast.ObjectProp{Key: p.Key, Value: BuildExpr(p.Value, stmts, ctx)}
		}
		return &jsast.Object{Props: props}
	case *ast.Tuple:
		elems := make([]jsast.Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = BuildExpr(el, stmts, ctx)
		}
		return &jsast.Array{Elems: elems}
	case *ast.Member:
		obj := BuildExpr(e.Obj, stmts, ctx)
		switch obj.(type) {
		case *jsast.Ident, *jsast.Member, *jsast.Call:
		default:
			obj = &jsast.Paren{X: obj}
		}
		if e.Computed != nil {
			return &jsast.Member{Obj: obj, Prop: BuildExpr(e.Computed, stmts, ctx), Computed: true}
		}
		return &jsast.Member{Obj: obj, Prop: &jsast.Ident{Name: e.Prop}}
	case *ast.Empty:
		return &jsast.Ident{Name: "undefined"}
	case *ast.TemplateLiteral:
		return buildTemplate(e, stmts, ctx)
	case *ast.TaggedTemplateLiteral:
		return &jsast.TaggedTpl{Tag: BuildExpr(e.Tag, stmts, ctx), Template: buildTemplate(e.Template, stmts, ctx)}
	case *ast.Match:
		return buildMatch(e, stmts, ctx)
	case *ast.JSXElement:
		return buildJSX(e, stmts, ctx)
	default:
		panic(fmt.Sprintf("lower: unhandled expression %T", e))
	}
}

func buildLit(l *ast.Lit) *jsast.Lit {
	switch l.Kind {
	case ast.LitNumber:
		return &jsast.Lit{Kind: jsast.LitNumber, Value: l.Value}
	case ast.LitString:
		return &jsast.Lit{Kind: jsast.LitString, Value: l.Value}
	default:
		return &jsast.Lit{Kind: jsast.LitBool, Value: l.Value}
	}
}

func buildBinary(b *ast.Binary, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	left := BuildExpr(b.Left, stmts, ctx)
	left = wrapChild(left, b.Op, false)
	right := BuildExpr(b.Right, stmts, ctx)
	right = wrapChild(right, b.Op, true)
	if b.Op == "&&" || b.Op == "||" {
		return &jsast.Logical{Op: b.Op, Left: left, Right: right}
	}
	return &jsast.Binary{Op: b.Op, Left: left, Right: right}
}

// buildApp lowers a call, substituting synthesized `$argN` parameters for
// any `_` placeholder arguments and wrapping the call in an arrow function
// over exactly those parameters (spec §4.3's partial-application sugar).
func buildApp(a *ast.App, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	callee := BuildExpr(a.Fn, stmts, ctx)

	isPlaceholder := func(arg ast.Arg) bool {
		id, ok := arg.Value.(*ast.Ident)
		return ok && id.Name == "_"
	}

	hasPlaceholder := false
	for _, arg := range a.Args {
		if isPlaceholder(arg) {
			hasPlaceholder = true
			break
		}
	}

	if !hasPlaceholder {
		args := make([]jsast.Arg, len(a.Args))
		for i, arg := range a.Args {
			args[i] = jsast.Arg{Value: BuildExpr(arg.Value, stmts, ctx), Spread: arg.Spread}
		}
		return &jsast.Call{Callee: callee, Args: args}
	}

	var params []jsast.Pattern
	args := make([]jsast.Arg, len(a.Args))
	next := 0
	for i, arg := range a.Args {
		if isPlaceholder(arg) {
			name := ArgName(next)
			next++
			params = append(params, &jsast.IdentPattern{Name: name})
			args[i] = jsast.Arg{Value: &jsast.Ident{Name: name}}
			continue
		}
		args[i] = jsast.Arg{Value: BuildExpr(arg.Value, stmts, ctx), Spread: arg.Spread}
	}
	call := &jsast.Call{Callee: callee, Args: args}
	return &jsast.Arrow{Params: params, BodyExpr: call}
}

// buildLambda lowers a Lambda into an arrow function. The body is lowered
// in a child Context that starts from ctx's counter, so its fresh names do
// not collide with those already used in the enclosing scope; the child's
// high-water mark is folded back once it returns.
func buildLambda(l *ast.Lambda, ctx *Context) jsast.Expr {
	params := make([]jsast.Pattern, 0, len(l.Params))
	for _, p := range l.Params {
		converted, ok := convertPattern(p)
		if ok {
			params = append(params, converted)
		}
	}
	child := &Context{n: ctx.n}
	var bodyStmts []jsast.Stmt
	result := buildExprFlattened(l.Body, &bodyStmts, child)
	ctx.Adopt(child)

	arrow := &jsast.Arrow{Async: l.Async, Params: params}
	if len(bodyStmts) == 0 {
		arrow.BodyExpr = result
		return arrow
	}
	bodyStmts = append(bodyStmts, &jsast.Return{X: result})
	arrow.BodyBlock = &jsast.Block{Stmts: bodyStmts}
	return arrow
}

// buildExprFlattened lowers e, collapsing a chain of nested Let
// expressions into a flat sequence of declaration statements the way the
// original implementation's `_build_expr` does, returning the expression
// for the chain's final non-Let body.
func buildExprFlattened(e ast.Expr, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	cur, ok := e.(*ast.Let)
	for ok {
		lowerLetBinding(cur, stmts, ctx)
		cur2, ok2 := cur.Body.(*ast.Let)
		if !ok2 {
			return BuildExpr(cur.Body, stmts, ctx)
		}
		cur, ok = cur2, ok2
	}
	return BuildExpr(e, stmts, ctx)
}

func lowerLetBinding(l *ast.Let, stmts *[]jsast.Stmt, ctx *Context) {
	init := BuildExpr(l.Init, stmts, ctx)
	if l.Pattern == nil {
		*stmts = append(*stmts, &jsast.ExprStmt{X: init})
		return
	}
	target, ok := convertPattern(l.Pattern)
	if !ok {
		*stmts = append(*stmts, &jsast.ExprStmt{X: init})
		return
	}
	*stmts = append(*stmts, &jsast.Decl{Kind: jsast.DeclConst, Target: target, Init: init})
}

// buildLet lowers a standalone let-in expression appearing where a value
// is expected (spec §4.3): a hoisted `let $temp_n;`, a block flattening
// the let-chain and assigning its result to $temp_n, and `$temp_n` as the
// expression's value.
func buildLet(l *ast.Let, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	temp := ctx.FreshTemp()
	*stmts = append(*stmts, &jsast.Decl{Kind: jsast.DeclLet, Target: &jsast.IdentPattern{Name: temp}})
	block := buildExprInNewScope(l, temp, ctx)
	*stmts = append(*stmts, block)
	return &jsast.Ident{Name: temp}
}

// buildExprInNewScope lowers e in a fresh statement list (flattening any
// leading let-chain) and appends an assignment of the final value to
// assignTo, returning the resulting block.
func buildExprInNewScope(e ast.Expr, assignTo string, ctx *Context) *jsast.Block {
	var inner []jsast.Stmt
	result := buildExprFlattened(e, &inner, ctx)
	inner = append(inner, &jsast.ExprStmt{X: &jsast.Assign{Op: "=", Left: &jsast.Ident{Name: assignTo}, Right: result}})
	return &jsast.Block{Stmts: inner}
}

// buildIfElse lowers a conditional expression, delegating to the if-let
// algorithm (§4.3.1) when the condition is a LetExpr.
func buildIfElse(i *ast.IfElse, stmts *[]jsast.Stmt, ctx *Context) jsast.Expr {
	if letExpr, ok := i.Cond.(*ast.LetExpr); ok {
		return buildIfLet(letExpr, i.Then, i.Else, stmts, ctx)
	}
	temp := ctx.FreshTemp()
	*stmts = append(*stmts, &jsast.Decl{Kind: jsast.DeclLet, Target: &jsast.IdentPattern{Name: temp}})
	cond := BuildExpr(i.Cond, stmts, ctx)
	cons := buildExprInNewScope(i.Then, temp, ctx)
	var alt *jsast.Block
	if i.Else != nil {
		alt = buildExprInNewScope(i.Else, temp, ctx)
	}
	*stmts = append(*stmts, &jsast.If{Cond: cond, Cons: cons, Alt: alt})
	return &jsast.Ident{Name: temp}
}

func buildTemplate(t *ast.TemplateLiteral, stmts *[]jsast.Stmt, ctx *Context) *jsast.Tpl {
	quasis := make([]jsast.TplQuasi, len(t.Quasis))
	for i, q := range t.Quasis {
		quasis[i] = jsast.TplQuasi{Cooked: q, Raw: q}
	}
	exprs := make([]jsast.Expr, len(t.Exprs))
	for i, e := range t.Exprs {
		exprs[i] = BuildExpr(e, stmts, ctx)
	}
	return &jsast.Tpl{Quasis: quasis, Exprs: exprs}
}

func buildJSX(j *ast.JSXElement, stmts *[]jsast.Stmt, ctx *Context) *jsast.JSXElement {
	attrs := make([]jsast.JSXAttr, len(j.Attrs))
	for i, a := range j.Attrs {
		var v jsast.Expr
		if a.Value != nil {
			v = BuildExpr(a.Value, stmts, ctx)
		}
		attrs[i] = jsast.JSXAttr{Name: a.Name, Value: v}
	}
	children := make([]jsast.Expr, len(j.Children))
	for i, c := range j.Children {
		children[i] = BuildExpr(c, stmts, ctx)
	}
	return &jsast.JSXElement{Tag: j.Tag, Attrs: attrs, Children: children}
}
