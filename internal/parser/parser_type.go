package parser

import (
	"fmt"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/lexer"
)

func annBase(tok lexer.Token) ast.TypeAnnBase {
	pos := ast.Pos{Line: tok.Line, Column: tok.Column, File: tok.File}
	return ast.TypeAnnBase{Span: ast.Span{Start: pos, End: pos}}
}

var keywordAnnNames = map[string]bool{
	"number": true, "string": true, "boolean": true, "symbol": true,
	"null": true, "undefined": true, "never": true,
}

// parseTypeAnnotation parses the full structural type-annotation grammar
// (spec §1): unions of intersections of postfix-indexed primaries.
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	start := p.cur()
	first := p.parseIntersectionAnn()
	if !p.curIs(lexer.PIPE) {
		return first
	}
	members := []ast.TypeAnnotation{first}
	for p.curIs(lexer.PIPE) {
		p.advance()
		members = append(members, p.parseIntersectionAnn())
	}
	return &ast.UnionAnn{TypeAnnBase: annBase(start), Members: members}
}

func (p *Parser) parseIntersectionAnn() ast.TypeAnnotation {
	start := p.cur()
	first := p.parsePostfixAnn()
	if !p.curIs(lexer.AMP) {
		return first
	}
	members := []ast.TypeAnnotation{first}
	for p.curIs(lexer.AMP) {
		p.advance()
		members = append(members, p.parsePostfixAnn())
	}
	return &ast.IntersectionAnn{TypeAnnBase: annBase(start), Members: members}
}

func (p *Parser) parsePostfixAnn() ast.TypeAnnotation {
	start := p.cur()
	t := p.parsePrimaryAnn()
	for p.curIs(lexer.LBRACKET) {
		p.advance()
		if p.curIs(lexer.RBRACKET) {
			p.advance()
			t = &ast.ArrayAnn{TypeAnnBase: annBase(start), Elem: t}
			continue
		}
		idx := p.parseTypeAnnotation()
		p.expect(lexer.RBRACKET)
		t = &ast.IndexAccessAnn{TypeAnnBase: annBase(start), Object: t, Index: idx}
	}
	return t
}

func (p *Parser) parsePrimaryAnn() ast.TypeAnnotation {
	tok := p.cur()
	switch tok.Type {
	case lexer.THIS:
		p.advance()
		return &ast.ThisAnn{TypeAnnBase: annBase(tok)}
	case lexer.KEYOF:
		p.advance()
		return &ast.KeyOfAnn{TypeAnnBase: annBase(tok), X: p.parsePostfixAnn()}
	case lexer.NUMBER:
		p.advance()
		return &ast.LitAnn{TypeAnnBase: annBase(tok), Value: tok.Literal}
	case lexer.STRING:
		p.advance()
		return &ast.LitAnn{TypeAnnBase: annBase(tok), Value: fmt.Sprintf("%q", tok.Literal)}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.LitAnn{TypeAnnBase: annBase(tok), Value: tok.Literal}
	case lexer.LBRACKET:
		return p.parseTupleAnn()
	case lexer.LBRACE:
		return p.parseObjectAnn()
	case lexer.LPAREN:
		return p.parseFuncAnn(nil)
	case lexer.LT:
		p.advance()
		var typeParams []string
		for !p.curIs(lexer.GT) && p.err == nil {
			typeParams = append(typeParams, p.expectIdent())
			if p.curIs(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(lexer.GT)
		return p.parseFuncAnn(typeParams)
	case lexer.IDENT:
		p.advance()
		if keywordAnnNames[tok.Literal] {
			return &ast.KeywordAnn{TypeAnnBase: annBase(tok), Name: tok.Literal}
		}
		var args []ast.TypeAnnotation
		if p.curIs(lexer.LT) {
			p.advance()
			for !p.curIs(lexer.GT) && p.err == nil {
				args = append(args, p.parseTypeAnnotation())
				if p.curIs(lexer.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(lexer.GT)
		}
		return &ast.RefAnn{TypeAnnBase: annBase(tok), Name: tok.Literal, TypeArgs: args}
	default:
		p.fail(fmt.Sprintf("expected type annotation, got %s %q", tok.Type, tok.Literal))
		p.advance()
		return &ast.KeywordAnn{TypeAnnBase: annBase(tok), Name: "undefined"}
	}
}

func (p *Parser) parseFuncAnn(typeParams []string) ast.TypeAnnotation {
	start := p.expect(lexer.LPAREN)
	var params []ast.FnParamAnn
	for !p.curIs(lexer.RPAREN) && p.err == nil {
		name := p.expectIdent()
		optional := false
		if p.curIs(lexer.QUESTION) {
			optional = true
			p.advance()
		}
		p.expect(lexer.COLON)
		ann := p.parseTypeAnnotation()
		params = append(params, ast.FnParamAnn{Name: name, Ann: ann, Optional: optional})
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.FARROW)
	ret := p.parseTypeAnnotation()
	return &ast.FuncAnn{TypeAnnBase: annBase(start), Params: params, Return: ret, TypeParams: typeParams}
}

func (p *Parser) parseTupleAnn() ast.TypeAnnotation {
	start := p.advance() // '['
	var elems []ast.TypeAnnotation
	for !p.curIs(lexer.RBRACKET) && p.err == nil {
		if p.curIs(lexer.ELLIPSIS) {
			restTok := p.advance()
			elems = append(elems, &ast.RestAnn{TypeAnnBase: annBase(restTok), Elem: p.parseTypeAnnotation()})
		} else {
			elems = append(elems, p.parseTypeAnnotation())
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACKET)
	return &ast.TupleAnn{TypeAnnBase: annBase(start), Elems: elems}
}

func (p *Parser) parseObjectAnn() ast.TypeAnnotation {
	start := p.advance() // '{'
	var elems []ast.ObjAnnElem
	for !p.curIs(lexer.RBRACE) && p.err == nil {
		indexMutable := false
		if p.curIs(lexer.MUT) && p.peek().Type == lexer.LBRACKET {
			indexMutable = true
			p.advance()
		}
		if p.curIs(lexer.LBRACKET) {
			p.advance()
			p.expectIdent() // index signature's key name carries no type information
			p.expect(lexer.COLON)
			keyAnn := p.parseTypeAnnotation()
			p.expect(lexer.RBRACKET)
			p.expect(lexer.COLON)
			valAnn := p.parseTypeAnnotation()
			elems = append(elems, ast.ObjAnnElem{Kind: ast.ObjAnnIndex, KeyAnn: keyAnn, Ann: valAnn, Mutable: indexMutable})
		} else if p.curIs(lexer.LPAREN) {
			fn := p.parseFuncAnn(nil).(*ast.FuncAnn)
			elems = append(elems, ast.ObjAnnElem{Kind: ast.ObjAnnCall, Callable: fn})
		} else {
			mutable := false
			if p.curIs(lexer.MUT) {
				mutable = true
				p.advance()
			}
			name := p.expectIdent()
			optional := false
			if p.curIs(lexer.QUESTION) {
				optional = true
				p.advance()
			}
			p.expect(lexer.COLON)
			ann := p.parseTypeAnnotation()
			elems = append(elems, ast.ObjAnnElem{Kind: ast.ObjAnnProp, Name: name, Optional: optional, Mutable: mutable, Ann: ann})
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACE)
	return &ast.ObjectAnn{TypeAnnBase: annBase(start), Elems: elems}
}
