package jsprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crochet-lang/crochet/internal/jsast"
)

func TestPrintExprLiterals(t *testing.T) {
	assert.Equal(t, `"hi"`, PrintExpr(&jsast.Lit{Kind: jsast.LitString, Value: "hi"}))
	assert.Equal(t, "5", PrintExpr(&jsast.Lit{Kind: jsast.LitNumber, Value: "5"}))
	assert.Equal(t, "null", PrintExpr(&jsast.Lit{Kind: jsast.LitNull}))
	assert.Equal(t, "undefined", PrintExpr(&jsast.Lit{Kind: jsast.LitUndefined}))
}

func TestPrintExprParenIsLiteral(t *testing.T) {
	x := &jsast.Paren{X: &jsast.Binary{Op: "+", Left: &jsast.Ident{Name: "a"}, Right: &jsast.Ident{Name: "b"}}}
	assert.Equal(t, "(a + b)", PrintExpr(x))
}

func TestPrintExprMemberAndCall(t *testing.T) {
	m := &jsast.Member{Obj: &jsast.Ident{Name: "obj"}, Prop: &jsast.Ident{Name: "prop"}}
	assert.Equal(t, "obj.prop", PrintExpr(m))

	computed := &jsast.Member{Obj: &jsast.Ident{Name: "obj"}, Prop: &jsast.Lit{Kind: jsast.LitString, Value: "k"}, Computed: true}
	assert.Equal(t, `obj["k"]`, PrintExpr(computed))

	call := &jsast.Call{
		Callee: &jsast.Ident{Name: "f"},
		Args: []jsast.Arg{
			{Value: &jsast.Ident{Name: "x"}},
			{Value: &jsast.Ident{Name: "rest"}, Spread: true},
		},
	}
	assert.Equal(t, "f(x, ...rest)", PrintExpr(call))
}

func TestPrintExprArrow(t *testing.T) {
	arrow := &jsast.Arrow{
		Async:    true,
		Params:   []jsast.Pattern{&jsast.IdentPattern{Name: "x"}},
		BodyExpr: &jsast.Ident{Name: "x"},
	}
	assert.Equal(t, "async (x) => x", PrintExpr(arrow))
}

func TestPrintStmtDeclAndIfElse(t *testing.T) {
	decl := &jsast.Decl{
		Kind:   jsast.DeclConst,
		Target: &jsast.IdentPattern{Name: "x"},
		Init:   &jsast.Lit{Kind: jsast.LitNumber, Value: "1"},
	}
	out := Print([]jsast.Stmt{decl})
	assert.Equal(t, "const x = 1;\n", out)

	ifStmt := &jsast.If{
		Cond: &jsast.Ident{Name: "cond"},
		Cons: &jsast.Block{Stmts: []jsast.Stmt{&jsast.Return{X: &jsast.Lit{Kind: jsast.LitNumber, Value: "1"}}}},
		Alt:  &jsast.Block{Stmts: []jsast.Stmt{&jsast.Return{X: &jsast.Lit{Kind: jsast.LitNumber, Value: "2"}}}},
	}
	out = Print([]jsast.Stmt{ifStmt})
	assert.Equal(t, "if (cond) {\n  return 1;\n} else {\n  return 2;\n}\n", out)
}

func TestPrintObjectAndArrayPatterns(t *testing.T) {
	pat := &jsast.ObjectPattern{
		Props: []jsast.ObjectPatternProp{
			{Key: "a"},
			{Key: "b", Value: &jsast.IdentPattern{Name: "bb"}},
		},
		Rest: "rest",
	}
	decl := &jsast.Decl{Kind: jsast.DeclConst, Target: pat, Init: &jsast.Ident{Name: "obj"}}
	out := Print([]jsast.Stmt{decl})
	assert.Equal(t, "const { a, b: bb, ...rest } = obj;\n", out)

	arrPat := &jsast.ArrayPattern{
		Elems: []jsast.ArrayPatternElem{{Pat: &jsast.IdentPattern{Name: "x"}}, {}},
	}
	decl2 := &jsast.Decl{Kind: jsast.DeclLet, Target: arrPat, Init: &jsast.Ident{Name: "arr"}}
	out = Print([]jsast.Stmt{decl2})
	assert.Equal(t, "let [x, ] = arr;\n", out)
}

func TestPrintTemplateLiteral(t *testing.T) {
	tpl := &jsast.Tpl{
		Quasis: []jsast.TplQuasi{{Raw: "hello "}, {Raw: "!"}},
		Exprs:  []jsast.Expr{&jsast.Ident{Name: "name"}},
	}
	assert.Equal(t, "`hello ${name}!`", PrintExpr(tpl))
}
