// Package parser is a recursive-descent, precedence-climbing parser that
// turns a token stream from internal/lexer into an internal/ast.Program
// (spec §3.1). It tokenizes the whole input up front so that the few
// genuinely ambiguous productions (parenthesized tuple vs. lambda
// parameter list) can be resolved by speculative parsing with a saved
// cursor, instead of unbounded token lookahead.
package parser

import (
	"fmt"

	"github.com/crochet-lang/crochet/internal/ast"
	"github.com/crochet-lang/crochet/internal/diag"
	"github.com/crochet-lang/crochet/internal/lexer"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGNP
	LOGICOR
	LOGICAND
	EQUALITY
	COMPARE
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   ASSIGNP,
	lexer.PLUSEQ:   ASSIGNP,
	lexer.MINUSEQ:  ASSIGNP,
	lexer.OR:       LOGICOR,
	lexer.AND:      LOGICAND,
	lexer.EQ:       EQUALITY,
	lexer.NEQ:      EQUALITY,
	lexer.LT:       COMPARE,
	lexer.GT:       COMPARE,
	lexer.LTE:      COMPARE,
	lexer.GTE:      COMPARE,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.STAR:     PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.DOT:      CALL,
	lexer.LBRACKET: CALL,
}

// Parser holds the full token buffer for a file and a cursor into it.
type Parser struct {
	file   string
	tokens []lexer.Token
	pos    int
	err    error
}

// New tokenizes src (which should already have passed through
// lexer.Normalize) and returns a Parser positioned at the first token.
func New(src string, file string) *Parser {
	l := lexer.New(src, file)
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return &Parser{file: file, tokens: tokens}
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}
func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}
func (p *Parser) curIs(t lexer.TokenType) bool { return p.err == nil && p.cur().Type == t }

func (p *Parser) span(start lexer.Token) ast.Span {
	end := p.tokens[p.pos]
	if p.pos > 0 {
		end = p.tokens[p.pos-1]
	}
	return ast.Span{
		Start: ast.Pos{Line: start.Line, Column: start.Column, File: start.File},
		End:   ast.Pos{Line: end.Line, Column: end.Column, File: end.File},
	}
}

func (p *Parser) posOf(t lexer.Token) ast.Span {
	pos := ast.Pos{Line: t.Line, Column: t.Column, File: t.File}
	return ast.Span{Start: pos, End: pos}
}

// fail records the first parse error; matches the lowerer's and
// inferencer's first-error-wins, no-recovery discipline.
func (p *Parser) fail(msg string) {
	if p.err == nil {
		p.err = diag.SyntaxError(msg, p.posOf(p.cur()))
	}
}

func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if p.cur().Type != t {
		p.fail(fmt.Sprintf("expected %s, got %s %q", t, p.cur().Type, p.cur().Literal))
		return p.cur()
	}
	return p.advance()
}

func (p *Parser) expectIdent() string {
	if p.cur().Type != lexer.IDENT {
		p.fail(fmt.Sprintf("expected identifier, got %s %q", p.cur().Type, p.cur().Literal))
		return ""
	}
	return p.advance().Literal
}

// consumeSemi swallows an optional trailing ';' between statements.
func (p *Parser) consumeSemi() {
	if p.curIs(lexer.SEMI) {
		p.advance()
	}
}

// mark/reset implement the save-and-restore used by speculative parses
// (currently only the lambda-parameter-list lookahead in tryParseLambda).
func (p *Parser) mark() int { return p.pos }
func (p *Parser) reset(m int) {
	p.pos = m
	p.err = nil
}

// ParseProgram parses the whole token stream into a Program. Parsing
// halts and returns the first error encountered, matching the core's
// no-recovery discipline (spec Non-goals).
func ParseProgram(src string, file string) (*ast.Program, error) {
	p := New(src, file)
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) && p.err == nil {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

// ParseTypeAnnotation parses src as a standalone type-annotation string
// (no surrounding declaration), for collaborators that source annotations
// from outside a .croc file — declloader's YAML manifest (spec-full §B.4)
// being the only caller today.
func ParseTypeAnnotation(src string, file string) (ast.TypeAnnotation, error) {
	p := New(src, file)
	ann := p.parseTypeAnnotation()
	if p.err != nil {
		return nil, p.err
	}
	if !p.curIs(lexer.EOF) {
		return nil, diag.SyntaxError(fmt.Sprintf("unexpected trailing token %s %q", p.cur().Type, p.cur().Literal), p.posOf(p.cur()))
	}
	return ann, nil
}

func base(start lexer.Token) ast.ExprBase {
	pos := ast.Pos{Line: start.Line, Column: start.Column, File: start.File}
	return ast.ExprBase{Span: ast.Span{Start: pos, End: pos}}
}

// parseExpr is the Pratt-parser entry point: parse a prefix production,
// then fold in infix/postfix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parsePrefix()
	for p.err == nil {
		tokPrec, ok := precedences[p.cur().Type]
		if !ok || tokPrec <= minPrec {
			break
		}
		left = p.parseInfix(left, tokPrec)
	}
	return left
}

func (p *Parser) parseInfix(left ast.Expr, prec int) ast.Expr {
	switch p.cur().Type {
	case lexer.LPAREN:
		return p.parseCall(left)
	case lexer.DOT:
		start := p.advance()
		name := p.expectIdent()
		return &ast.Member{ExprBase: base(start), Obj: left, Prop: name}
	case lexer.LBRACKET:
		start := p.advance()
		idx := p.parseExpr(LOWEST)
		p.expect(lexer.RBRACKET)
		return &ast.Member{ExprBase: base(start), Obj: left, Computed: idx}
	case lexer.ASSIGN, lexer.PLUSEQ, lexer.MINUSEQ:
		start := p.cur()
		op := ast.AssignOp(p.advance().Literal)
		right := p.parseExpr(prec - 1) // right-associative
		return &ast.Assign{ExprBase: base(start), Left: left, Op: op, Right: right}
	default:
		start := p.cur()
		op := p.advance().Literal
		right := p.parseExpr(prec)
		return &ast.Binary{ExprBase: base(start), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	start := p.advance() // '('
	var args []ast.Arg
	for !p.curIs(lexer.RPAREN) && p.err == nil {
		if p.curIs(lexer.ELLIPSIS) {
			p.advance()
			args = append(args, ast.Arg{Value: p.parseExpr(ASSIGNP), Spread: true})
		} else {
			args = append(args, ast.Arg{Value: p.parseExpr(ASSIGNP)})
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	return &ast.App{ExprBase: base(start), Fn: fn, Args: args}
}

// parsePrefix dispatches on the current token for every production that
// is not a left-recursive binary/postfix form.
func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return &ast.Lit{ExprBase: base(tok), Kind: ast.LitNumber, Value: tok.Literal}
	case lexer.STRING:
		p.advance()
		return &ast.Lit{ExprBase: base(tok), Kind: ast.LitString, Value: tok.Literal}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.Lit{ExprBase: base(tok), Kind: ast.LitBool, Value: tok.Literal}
	case lexer.IDENT:
		p.advance()
		return &ast.Ident{ExprBase: base(tok), Name: tok.Literal}
	case lexer.NOT, lexer.MINUS:
		p.advance()
		x := p.parseExpr(PREFIX)
		return &ast.Unary{ExprBase: base(tok), Op: tok.Literal, X: x}
	case lexer.AWAIT:
		p.advance()
		x := p.parseExpr(PREFIX)
		return &ast.Await{ExprBase: base(tok), X: x}
	case lexer.ASYNC, lexer.LPAREN:
		return p.parseParenOrLambda()
	case lexer.LBRACE:
		return p.parseObj()
	case lexer.IF:
		return p.parseIfElse()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.LET:
		return p.parseLetIn()
	default:
		p.fail(fmt.Sprintf("unexpected token %s %q", tok.Type, tok.Literal))
		p.advance()
		return &ast.Empty{ExprBase: base(tok)}
	}
}

// parseParenOrLambda resolves the one real ambiguity in the grammar: a
// leading '(' (or 'async') starts either a parenthesized/tuple expression
// or a lambda's parameter list. It speculatively tries the lambda
// production first and falls back to the parenthesized form if that
// fails, restoring the cursor exactly as it found it either way.
func (p *Parser) parseParenOrLambda() ast.Expr {
	m := p.mark()
	if lam := p.tryParseLambda(); lam != nil && p.err == nil {
		return lam
	}
	p.reset(m)
	return p.parseParenOrTuple()
}

func (p *Parser) tryParseLambda() (result ast.Expr) {
	start := p.cur()
	async := false
	if p.curIs(lexer.ASYNC) {
		async = true
		p.advance()
	}
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
	if !p.curIs(lexer.LPAREN) {
		p.err = diag.SyntaxError("not a lambda", p.posOf(p.cur()))
		return nil
	}
	p.advance()
	var params []ast.Pattern
	for !p.curIs(lexer.RPAREN) && p.err == nil {
		params = append(params, p.parsePattern())
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	var retAnn ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.advance()
		retAnn = p.parseTypeAnnotation()
	}
	if !p.curIs(lexer.FARROW) {
		p.err = diag.SyntaxError("not a lambda", p.posOf(p.cur()))
		return nil
	}
	p.advance()
	if p.err != nil {
		return nil
	}
	var body ast.Expr
	if p.curIs(lexer.LBRACE) {
		body = p.parseBlock()
	} else {
		body = p.parseExpr(ASSIGNP)
	}
	return &ast.Lambda{ExprBase: base(start), Params: params, Body: body, Async: async, ReturnAnn: retAnn, TypeParams: typeParams}
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	start := p.advance() // '('
	if p.curIs(lexer.RPAREN) {
		p.advance()
		return &ast.Tuple{ExprBase: base(start)}
	}
	first := p.parseExpr(LOWEST)
	if p.curIs(lexer.COMMA) {
		elems := []ast.Expr{first}
		for p.curIs(lexer.COMMA) {
			p.advance()
			if p.curIs(lexer.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpr(LOWEST))
		}
		p.expect(lexer.RPAREN)
		return &ast.Tuple{ExprBase: base(start), Elems: elems}
	}
	p.expect(lexer.RPAREN)
	return first
}

func (p *Parser) parseObj() ast.Expr {
	start := p.advance() // '{'
	var props []ast.ObjProp
	for !p.curIs(lexer.RBRACE) && p.err == nil {
		key := p.expectIdent()
		p.expect(lexer.COLON)
		val := p.parseExpr(ASSIGNP)
		props = append(props, ast.ObjProp{Key: key, Value: val})
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACE)
	return &ast.Obj{ExprBase: base(start), Props: props}
}

// parseBlock parses `{ binding* tail }` into a right-nested chain of
// ast.Let with sequencing (nil-pattern) links, per ast.Let's doc comment.
func (p *Parser) parseBlock() ast.Expr {
	start := p.advance() // '{'
	return p.parseBlockBody(start)
}

func (p *Parser) parseBlockBody(start lexer.Token) ast.Expr {
	if p.curIs(lexer.RBRACE) {
		p.advance()
		return &ast.Empty{ExprBase: base(start)}
	}
	if p.curIs(lexer.LET) {
		letTok := p.advance()
		pat := p.parsePattern()
		var ann ast.TypeAnnotation
		if p.curIs(lexer.COLON) {
			p.advance()
			ann = p.parseTypeAnnotation()
		}
		p.expect(lexer.ASSIGN)
		init := p.parseExpr(LOWEST)
		p.consumeSemi()
		body := p.parseBlockBody(start)
		return &ast.Let{ExprBase: base(letTok), Pattern: pat, Annotation: ann, Init: init, Body: body}
	}
	e := p.parseExpr(LOWEST)
	if p.curIs(lexer.RBRACE) {
		p.advance()
		return e
	}
	p.consumeSemi()
	if p.curIs(lexer.RBRACE) {
		p.advance()
		return e
	}
	body := p.parseBlockBody(start)
	return &ast.Let{ExprBase: base(start), Init: e, Body: body}
}

func (p *Parser) parseIfElse() ast.Expr {
	start := p.advance() // 'if'
	var cond ast.Expr
	if p.curIs(lexer.LET) {
		letTok := p.advance()
		pat := p.parsePattern()
		p.expect(lexer.ASSIGN)
		x := p.parseExpr(LOWEST)
		cond = &ast.LetExpr{ExprBase: base(letTok), Pattern: pat, X: x}
	} else {
		cond = p.parseExpr(LOWEST)
	}
	then := p.parseBlock()
	var els ast.Expr
	if p.curIs(lexer.ELSE) {
		p.advance()
		if p.curIs(lexer.IF) {
			els = p.parseIfElse()
		} else {
			els = p.parseBlock()
		}
	}
	return &ast.IfElse{ExprBase: base(start), Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseLetIn() ast.Expr {
	start := p.advance() // 'let'
	pat := p.parsePattern()
	var ann ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.advance()
		ann = p.parseTypeAnnotation()
	}
	p.expect(lexer.ASSIGN)
	init := p.parseExpr(LOWEST)
	p.expect(lexer.IN)
	body := p.parseExpr(LOWEST)
	return &ast.Let{ExprBase: base(start), Pattern: pat, Annotation: ann, Init: init, Body: body}
}

func (p *Parser) parseMatch() ast.Expr {
	start := p.advance() // 'match'
	scrutinee := p.parseExpr(LOWEST)
	p.expect(lexer.LBRACE)
	var arms []ast.MatchArm
	for !p.curIs(lexer.RBRACE) && p.err == nil {
		pat := p.parsePattern()
		var guard ast.Expr
		if p.curIs(lexer.IF) {
			p.advance()
			guard = p.parseExpr(LOWEST)
		}
		p.expect(lexer.FARROW)
		var body ast.Expr
		if p.curIs(lexer.LBRACE) {
			body = p.parseBlock()
		} else {
			body = p.parseExpr(ASSIGNP)
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.Match{ExprBase: base(start), Scrutinee: scrutinee, Arms: arms}
}
