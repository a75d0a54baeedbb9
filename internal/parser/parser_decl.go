package parser

import (
	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/lexer"
)

func stmtBase(tok lexer.Token) ast.Span {
	pos := ast.Pos{Line: tok.Line, Column: tok.Column, File: tok.File}
	return ast.Span{Start: pos, End: pos}
}

// parseStatement parses one top-level form: a `declare let`/`let` VarDecl,
// a `type` alias declaration, or a bare expression statement.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(lexer.DECLARE):
		return p.parseDeclareVarDecl()
	case p.curIs(lexer.LET):
		return p.parseVarDecl()
	case p.curIs(lexer.TYPE):
		return p.parseTypeDecl()
	default:
		start := p.cur()
		x := p.parseExpr(LOWEST)
		p.consumeSemi()
		return &ast.ExprStmt{Span: stmtBase(start), X: x}
	}
}

// parseDeclareVarDecl parses `declare let pattern (: annotation)?`. The
// annotation is syntactically optional; a missing one is a semantic
// error the inferencer reports (diag.DeclareWithoutAnnotation), not a
// parse error, matching the spec's VarDecl grammar.
func (p *Parser) parseDeclareVarDecl() ast.Statement {
	start := p.advance() // 'declare'
	p.expect(lexer.LET)
	pat := p.parsePattern()
	var ann ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.advance()
		ann = p.parseTypeAnnotation()
	}
	p.consumeSemi()
	return &ast.VarDecl{Span: stmtBase(start), Pattern: pat, Annotation: ann, Declare: true}
}

func (p *Parser) parseVarDecl() ast.Statement {
	start := p.advance() // 'let'
	pat := p.parsePattern()
	var ann ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.advance()
		ann = p.parseTypeAnnotation()
	}
	p.expect(lexer.ASSIGN)
	init := p.parseExpr(LOWEST)
	p.consumeSemi()
	return &ast.VarDecl{Span: stmtBase(start), Pattern: pat, Annotation: ann, Init: init}
}

func (p *Parser) parseTypeDecl() ast.Statement {
	start := p.advance() // 'type'
	name := p.expectIdent()
	var typeParams []string
	if p.curIs(lexer.LT) {
		p.advance()
		for !p.curIs(lexer.GT) && p.err == nil {
			typeParams = append(typeParams, p.expectIdent())
			if p.curIs(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(lexer.GT)
	}
	p.expect(lexer.ASSIGN)
	ann := p.parseTypeAnnotation()
	p.consumeSemi()
	return &ast.TypeDecl{Span: stmtBase(start), Name: name, TypeParams: typeParams, Annotation: ann}
}
