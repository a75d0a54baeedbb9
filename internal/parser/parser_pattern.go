package parser

import (
	"fmt"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/lexer"
)

func patBase(tok lexer.Token) ast.PatternBase {
	pos := ast.Pos{Line: tok.Line, Column: tok.Column, File: tok.File}
	return ast.PatternBase{Span: ast.Span{Start: pos, End: pos}}
}

// parsePattern parses the pattern sublanguage used by VarDecl, lambda
// parameters, let-bindings, and match arms (spec §3.1).
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.cur()
	switch tok.Type {
	case lexer.IDENT:
		if tok.Literal == "_" {
			p.advance()
			return &ast.WildcardPattern{PatternBase: patBase(tok)}
		}
		p.advance()
		if p.curIs(lexer.IS) {
			p.advance()
			kind := p.patternTypeName()
			return &ast.IsPattern{PatternBase: patBase(tok), Bind: tok.Literal, Kind: kind}
		}
		return &ast.IdentPattern{PatternBase: patBase(tok), Name: tok.Literal}
	case lexer.MUT:
		p.advance()
		name := p.expectIdent()
		return &ast.IdentPattern{PatternBase: patBase(tok), Name: name, Mutable: true}
	case lexer.ELLIPSIS:
		p.advance()
		inner := p.parsePattern()
		return &ast.RestPattern{PatternBase: patBase(tok), Inner: inner}
	case lexer.NUMBER:
		p.advance()
		return &ast.LitPattern{PatternBase: patBase(tok), Lit: &ast.Lit{ExprBase: base(tok), Kind: ast.LitNumber, Value: tok.Literal}}
	case lexer.STRING:
		p.advance()
		return &ast.LitPattern{PatternBase: patBase(tok), Lit: &ast.Lit{ExprBase: base(tok), Kind: ast.LitString, Value: tok.Literal}}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.LitPattern{PatternBase: patBase(tok), Lit: &ast.Lit{ExprBase: base(tok), Kind: ast.LitBool, Value: tok.Literal}}
	case lexer.LBRACKET:
		return p.parseArrayPattern()
	case lexer.LBRACE:
		return p.parseObjectPattern()
	default:
		p.fail(fmt.Sprintf("expected pattern, got %s %q", tok.Type, tok.Literal))
		p.advance()
		return &ast.WildcardPattern{PatternBase: patBase(tok)}
	}
}

// patternTypeName reads the type name on the right of `name is <Kind>`;
// "string"/"number"/"boolean" lex as plain identifiers (they are only
// keywords in annotation position), so any identifier is accepted here.
func (p *Parser) patternTypeName() string {
	return p.expectIdent()
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	start := p.advance() // '['
	var elems []ast.ArrayElem
	for !p.curIs(lexer.RBRACKET) && p.err == nil {
		if p.curIs(lexer.COMMA) {
			elems = append(elems, ast.ArrayElem{})
			p.advance()
			continue
		}
		elems = append(elems, ast.ArrayElem{Pat: p.parsePattern()})
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACKET)
	var ann ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.advance()
		ann = p.parseTypeAnnotation()
	}
	return &ast.ArrayPattern{PatternBase: patBase(start), Elems: elems, Annotation: ann}
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	start := p.advance() // '{'
	var props []ast.ObjPatternProp
	for !p.curIs(lexer.RBRACE) && p.err == nil {
		if p.curIs(lexer.ELLIPSIS) {
			p.advance()
			name := p.expectIdent()
			props = append(props, ast.ObjPatternProp{
				Kind: ast.ObjPropRest,
				Arg:  &ast.IdentPattern{PatternBase: patBase(start), Name: name},
			})
		} else {
			name := p.expectIdent()
			if p.curIs(lexer.COLON) {
				p.advance()
				sub := p.parsePattern()
				props = append(props, ast.ObjPatternProp{Kind: ast.ObjPropKeyValue, Key: name, Sub: sub})
			} else {
				var def ast.Expr
				if p.curIs(lexer.ASSIGN) {
					p.advance()
					def = p.parseExpr(ASSIGNP)
				}
				props = append(props, ast.ObjPatternProp{Kind: ast.ObjPropShorthand, Ident: name, Default: def})
			}
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACE)
	var ann ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.advance()
		ann = p.parseTypeAnnotation()
	}
	return &ast.ObjectPattern{PatternBase: patBase(start), Props: props, Annotation: ann}
}
