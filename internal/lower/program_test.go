package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/jsast"
)

func ident(name string) *ast.Ident {
	return &ast.Ident{Name: name}
}

func TestBuildProgramVarDecl(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{
			Pattern: &ast.IdentPattern{Name: "x"},
			Init:    &ast.Lit{Kind: ast.LitNumber, Value: "1"},
		},
	}}
	ctx := NewContext()
	stmts := BuildProgram(prog, ctx)
	require.NoError(t, ctx.Err())
	require.Len(t, stmts, 1)
	decl, ok := stmts[0].(*jsast.Decl)
	require.True(t, ok, "expected *jsast.Decl, got %T", stmts[0])
	assert.Equal(t, jsast.DeclConst, decl.Kind)
	assert.Equal(t, "x", decl.Target.(*jsast.IdentPattern).Name)
}

func TestBuildProgramDeclareAndTypeDeclErase(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Pattern: &ast.IdentPattern{Name: "x"}, Declare: true, Annotation: &ast.KeywordAnn{Name: "number"}},
		&ast.TypeDecl{Name: "Foo", Annotation: &ast.KeywordAnn{Name: "number"}},
	}}
	ctx := NewContext()
	stmts := BuildProgram(prog, ctx)
	require.NoError(t, ctx.Err())
	assert.Empty(t, stmts)
}

func TestBuildProgramExprStmt(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.ExprStmt{X: &ast.App{Fn: ident("f"), Args: []ast.Arg{{Value: ident("x")}}}},
	}}
	ctx := NewContext()
	stmts := BuildProgram(prog, ctx)
	require.NoError(t, ctx.Err())
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*jsast.ExprStmt)
	require.True(t, ok)
	_, ok = es.X.(*jsast.Call)
	assert.True(t, ok)
}

func TestBuildProgramNonAssignablePatternFails(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Pattern: &ast.WildcardPattern{}, Init: &ast.Lit{Kind: ast.LitNumber, Value: "1"}},
	}}
	ctx := NewContext()
	BuildProgram(prog, ctx)
	require.Error(t, ctx.Err())
}

func TestBuildProgramSharesCounterAcrossStatements(t *testing.T) {
	letExpr := &ast.Let{Init: ident("a"), Body: ident("a")}
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.ExprStmt{X: letExpr},
		&ast.ExprStmt{X: letExpr},
	}}
	ctx := NewContext()
	BuildProgram(prog, ctx)
	require.NoError(t, ctx.Err())
	assert.Equal(t, 2, ctx.n)
}
