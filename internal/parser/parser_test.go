package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crochet-lang/crochet/internal/ast"
)

func TestParseVarDecl(t *testing.T) {
	prog, err := ParseProgram(`let x = 1 + 2;`, "t.croc")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	decl, ok := prog.Statements[0].(*ast.VarDecl)
	require.True(t, ok, "expected *ast.VarDecl, got %T", prog.Statements[0])
	ident, ok := decl.Pattern.(*ast.IdentPattern)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)

	bin, ok := decl.Init.(*ast.Binary)
	require.True(t, ok, "expected *ast.Binary, got %T", decl.Init)
	assert.Equal(t, "+", bin.Op)
}

func TestParseDeclareVarDecl(t *testing.T) {
	prog, err := ParseProgram(`declare let x: number;`, "t.croc")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	decl, ok := prog.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.True(t, decl.Declare)
	assert.Nil(t, decl.Init)
	_, ok = decl.Annotation.(*ast.KeywordAnn)
	assert.True(t, ok, "expected *ast.KeywordAnn, got %T", decl.Annotation)
}

func TestParseDeclareVarDeclWithoutAnnotation(t *testing.T) {
	prog, err := ParseProgram(`declare let x;`, "t.croc")
	require.NoError(t, err)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.True(t, decl.Declare)
	assert.Nil(t, decl.Annotation)
}

func TestParseTypeDecl(t *testing.T) {
	prog, err := ParseProgram(`type Pair<A, B> = [A, B];`, "t.croc")
	require.NoError(t, err)
	decl, ok := prog.Statements[0].(*ast.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Pair", decl.Name)
	assert.Equal(t, []string{"A", "B"}, decl.TypeParams)
	_, ok = decl.Annotation.(*ast.TupleAnn)
	assert.True(t, ok)
}

func TestParseLambdaVsParenDisambiguation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // "lambda" or "tuple" or "paren"
	}{
		{"empty tuple", `(());`, "empty-tuple"},
		{"single paren", `(1 + 2);`, "paren"},
		{"tuple", `(1, 2);`, "tuple"},
		{"lambda no params", `() => 1;`, "lambda"},
		{"lambda one param", `(x) => x;`, "lambda"},
		{"lambda multi param", `(x, y) => x + y;`, "lambda"},
		{"async lambda", `async (x) => await x;`, "lambda"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseProgram(tt.src, "t.croc")
			require.NoError(t, err, tt.src)
			stmt, ok := prog.Statements[0].(*ast.ExprStmt)
			require.True(t, ok)
			switch tt.want {
			case "lambda":
				_, ok := stmt.X.(*ast.Lambda)
				assert.True(t, ok, "expected *ast.Lambda, got %T", stmt.X)
			case "tuple":
				tup, ok := stmt.X.(*ast.Tuple)
				require.True(t, ok, "expected *ast.Tuple, got %T", stmt.X)
				assert.Len(t, tup.Elems, 2)
			case "empty-tuple":
				tup, ok := stmt.X.(*ast.Tuple)
				require.True(t, ok, "expected *ast.Tuple, got %T", stmt.X)
				assert.Len(t, tup.Elems, 0, "the outer parentheses only group the empty tuple")
			case "paren":
				_, ok := stmt.X.(*ast.Binary)
				assert.True(t, ok, "expected unwrapped *ast.Binary, got %T", stmt.X)
			}
		})
	}
}

func TestParseBlockDesugarsToNestedLet(t *testing.T) {
	prog, err := ParseProgram(`(() => { let a = 1; let b = 2; a + b });`, "t.croc")
	require.NoError(t, err)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	lam := stmt.X.(*ast.Lambda)

	outer, ok := lam.Body.(*ast.Let)
	require.True(t, ok, "expected *ast.Let, got %T", lam.Body)
	require.NotNil(t, outer.Pattern)
	assert.Equal(t, "a", outer.Pattern.(*ast.IdentPattern).Name)

	inner, ok := outer.Body.(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Pattern.(*ast.IdentPattern).Name)

	_, ok = inner.Body.(*ast.Binary)
	assert.True(t, ok)
}

func TestParseBlockSequencing(t *testing.T) {
	prog, err := ParseProgram(`(() => { sideEffect(); 42 });`, "t.croc")
	require.NoError(t, err)
	lam := prog.Statements[0].(*ast.ExprStmt).X.(*ast.Lambda)
	seq, ok := lam.Body.(*ast.Let)
	require.True(t, ok, "expected *ast.Let sequencing node, got %T", lam.Body)
	assert.Nil(t, seq.Pattern)
	_, ok = seq.Init.(*ast.App)
	assert.True(t, ok)
}

func TestParseIfLet(t *testing.T) {
	prog, err := ParseProgram(`if let x = maybe() { x } else { 0 };`, "t.croc")
	require.NoError(t, err)
	ifElse := prog.Statements[0].(*ast.ExprStmt).X.(*ast.IfElse)
	letExpr, ok := ifElse.Cond.(*ast.LetExpr)
	require.True(t, ok, "expected *ast.LetExpr condition, got %T", ifElse.Cond)
	assert.Equal(t, "x", letExpr.Pattern.(*ast.IdentPattern).Name)
}

func TestParseMatch(t *testing.T) {
	prog, err := ParseProgram(`match shape {
		{ kind: "circle", radius } if radius > 0 => radius,
		_ => 0,
	};`, "t.croc")
	require.NoError(t, err)
	m := prog.Statements[0].(*ast.ExprStmt).X.(*ast.Match)
	require.Len(t, m.Arms, 2)
	assert.NotNil(t, m.Arms[0].Guard)
	_, ok := m.Arms[0].Pattern.(*ast.ObjectPattern)
	assert.True(t, ok)
	_, ok = m.Arms[1].Pattern.(*ast.WildcardPattern)
	assert.True(t, ok)
}

func TestParseTypeAnnotationPrecedence(t *testing.T) {
	prog, err := ParseProgram(`declare let x: string | number & boolean;`, "t.croc")
	require.NoError(t, err)
	decl := prog.Statements[0].(*ast.VarDecl)
	union, ok := decl.Annotation.(*ast.UnionAnn)
	require.True(t, ok, "expected *ast.UnionAnn, got %T", decl.Annotation)
	require.Len(t, union.Members, 2)
	_, ok = union.Members[1].(*ast.IntersectionAnn)
	assert.True(t, ok, "expected second union member to be *ast.IntersectionAnn, got %T", union.Members[1])
}

func TestParseArrayAnnotation(t *testing.T) {
	prog, err := ParseProgram(`declare let x: string[];`, "t.croc")
	require.NoError(t, err)
	decl := prog.Statements[0].(*ast.VarDecl)
	arr, ok := decl.Annotation.(*ast.ArrayAnn)
	require.True(t, ok, "expected *ast.ArrayAnn, got %T", decl.Annotation)
	_, ok = arr.Elem.(*ast.KeywordAnn)
	assert.True(t, ok)
}

func TestParseObjectPatternWithRestAndDefault(t *testing.T) {
	prog, err := ParseProgram(`let { a, b = 2, ...rest } = obj;`, "t.croc")
	require.NoError(t, err)
	decl := prog.Statements[0].(*ast.VarDecl)
	pat, ok := decl.Pattern.(*ast.ObjectPattern)
	require.True(t, ok, "expected *ast.ObjectPattern, got %T", decl.Pattern)
	require.Len(t, pat.Props, 3)
	assert.Equal(t, ast.ObjPropShorthand, pat.Props[0].Kind)
	assert.Equal(t, ast.ObjPropShorthand, pat.Props[1].Kind)
	assert.NotNil(t, pat.Props[1].Default)
	assert.Equal(t, ast.ObjPropRest, pat.Props[2].Kind)
}

func TestParseErrorHaltsAtFirstFailure(t *testing.T) {
	_, err := ParseProgram(`let x = ;`, "t.croc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAR001")
}
