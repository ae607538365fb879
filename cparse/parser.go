package cparse

import (
	"fmt"

	"github.com/shadowdp-go/shadowdp/cast"
)

// Parser parses source text into a *cast.Program. The restricted
// grammar's one reference implementation is *ReferenceParser; a real C
// front end can be substituted by implementing the same interface.
type Parser interface {
	Parse(filename, src string) (*cast.Program, error)
}

// Unparser renders a *cast.Program back to source text.
type Unparser interface {
	Unparse(prog *cast.Program) (string, error)
}

// ReferenceParser is a small recursive-descent parser (its unparsing
// counterpart is TextUnparser) for the grammar of §3: function definitions, scalar/array declarations,
// assignments, if/else, while, return, and the Lap/assume/assert/havoc
// call forms.
type ReferenceParser struct{}

func NewReferenceParser() *ReferenceParser { return &ReferenceParser{} }

type parser struct {
	filename string
	tokens   []Token
	pos      int
}

func (p *ReferenceParser) Parse(filename, src string) (*cast.Program, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	pp := &parser{filename: filename, tokens: tokens}
	return pp.parseProgram()
}

// ParseExpr parses a single standalone expression, the entry point the
// annotation scanner uses for `assume(<expr>)` clauses and sampling
// selector/eta-distance sublanguage.
func ParseExpr(filename, src string) (cast.Expr, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	pp := &parser{filename: filename, tokens: tokens}
	expr := pp.parseExpr()
	if !pp.atEOF() {
		return nil, pp.errorf("unexpected trailing input after expression")
	}
	return expr, nil
}

func (p *parser) cur() Token  { return p.tokens[p.pos] }
func (p *parser) atEOF() bool { return p.cur().Kind == TokEOF }

func (p *parser) pos2(tok Token) cast.Pos {
	return cast.Pos{File: p.filename, Line: tok.Line, Col: tok.Col}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	tok := p.cur()
	return fmt.Errorf("%s:%d:%d: %s", p.filename, tok.Line, tok.Col, fmt.Sprintf(format, args...))
}

func (p *parser) advance() Token {
	t := p.cur()
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expectPunct(text string) (Token, error) {
	if p.cur().Kind == TokPunct && p.cur().Text == text {
		return p.advance(), nil
	}
	return Token{}, p.errorf("expected %q, found %q", text, p.cur().Text)
}

func (p *parser) expectKeyword(text string) (Token, error) {
	if p.cur().Kind == TokKeyword && p.cur().Text == text {
		return p.advance(), nil
	}
	return Token{}, p.errorf("expected keyword %q, found %q", text, p.cur().Text)
}

func (p *parser) expectIdent() (Token, error) {
	if p.cur().Kind == TokIdent {
		return p.advance(), nil
	}
	return Token{}, p.errorf("expected identifier, found %q", p.cur().Text)
}

func (p *parser) isPunct(text string) bool {
	return p.cur().Kind == TokPunct && p.cur().Text == text
}

func (p *parser) isType() bool {
	t := p.cur()
	return t.Kind == TokKeyword && (t.Text == "int" || t.Text == "float" || t.Text == "void")
}

// --- program / function structure ---

func (p *parser) parseProgram() (*cast.Program, error) {
	prog := &cast.Program{}
	for !p.atEOF() {
		fn, err := p.parseFuncDecl()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	if len(prog.Functions) == 0 {
		return nil, fmt.Errorf("%s: empty source, expected at least one function definition", p.filename)
	}
	return prog, nil
}

func (p *parser) parseFuncDecl() (*cast.FuncDecl, error) {
	typeTok, err := p.parseTypeKeyword()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []*cast.Param
	if !p.isPunct(")") {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &cast.FuncDecl{
		Name:   nameTok.Text,
		Params: params,
		Return: typeTok.Text,
		Body:   body,
		Pos:    p.pos2(nameTok),
	}, nil
}

func (p *parser) parseTypeKeyword() (Token, error) {
	if !p.isType() {
		return Token{}, p.errorf("expected a type keyword (int/float/void), found %q", p.cur().Text)
	}
	return p.advance(), nil
}

func (p *parser) parseParam() (*cast.Param, error) {
	typeTok, err := p.parseTypeKeyword()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	isArray := false
	if p.isPunct("[") {
		p.advance()
		if _, err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		isArray = true
	}
	return &cast.Param{Name: nameTok.Text, Type: typeTok.Text, IsArray: isArray, Pos: p.pos2(nameTok)}, nil
}

// --- statements ---

func (p *parser) parseBlock() (*cast.Block, error) {
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	block := cast.NewBlock()
	for !p.isPunct("}") {
		if p.atEOF() {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Append(stmt)
	}
	p.advance() // "}"
	return block, nil
}

func (p *parser) parseStmt() (cast.Stmt, error) {
	tok := p.cur()
	switch {
	case tok.Kind == TokKeyword && tok.Text == "if":
		return p.parseIf()
	case tok.Kind == TokKeyword && tok.Text == "while":
		return p.parseWhile()
	case tok.Kind == TokKeyword && tok.Text == "return":
		return p.parseReturn()
	case p.isType():
		return p.parseDecl()
	case tok.Kind == TokString:
		return p.parseExprStmtOrAnnotation()
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *parser) parseDecl() (*cast.Decl, error) {
	typeTok, err := p.parseTypeKeyword()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var init cast.Expr
	if p.isPunct("=") {
		p.advance()
		init = p.parseExpr()
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &cast.Decl{Name: nameTok.Text, Type: typeTok.Text, Init: init, Pos: p.pos2(nameTok)}, nil
}

func (p *parser) parseExprStmtOrAnnotation() (cast.Stmt, error) {
	tok := p.advance()
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	lit := &cast.StringLiteral{Value: tok.Text, Pos: p.pos2(tok)}
	return &cast.ExprStmt{X: lit, Pos: lit.Pos}, nil
}

func (p *parser) parseAssignOrExprStmt() (cast.Stmt, error) {
	startTok := p.cur()
	expr := p.parseExpr()
	if p.isPunct("=") {
		p.advance()
		rvalue := p.parseExpr()
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		return &cast.Assign{Lvalue: expr, Rvalue: rvalue, Pos: p.pos2(startTok)}, nil
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &cast.ExprStmt{X: expr, Pos: p.pos2(startTok)}, nil
}

func (p *parser) parseIf() (*cast.If, error) {
	ifTok := p.advance()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond := p.parseExpr()
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock *cast.Block
	if p.cur().Kind == TokKeyword && p.cur().Text == "else" {
		p.advance()
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &cast.If{Cond: cond, Then: then, Else: elseBlock, Pos: p.pos2(ifTok)}, nil
}

func (p *parser) parseWhile() (*cast.While, error) {
	whileTok := p.advance()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond := p.parseExpr()
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &cast.While{Cond: cond, Body: body, Pos: p.pos2(whileTok)}, nil
}

func (p *parser) parseReturn() (*cast.Return, error) {
	returnTok := p.advance()
	var value cast.Expr
	if !p.isPunct(";") {
		value = p.parseExpr()
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &cast.Return{Value: value, Pos: p.pos2(returnTok)}, nil
}

// --- expressions, precedence-climbing ---

func (p *parser) parseExpr() cast.Expr { return p.parseTernary() }

func (p *parser) parseTernary() cast.Expr {
	cond := p.parseLogicalOr()
	if p.isPunct("?") {
		tok := p.advance()
		ifTrue := p.parseExpr()
		if _, err := p.expectPunct(":"); err != nil {
			return cond
		}
		ifFalse := p.parseExpr()
		return &cast.TernaryOp{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse, Pos: p.pos2(tok)}
	}
	return cond
}

func (p *parser) parseLogicalOr() cast.Expr {
	left := p.parseLogicalAnd()
	for p.isPunct("||") {
		tok := p.advance()
		right := p.parseLogicalAnd()
		left = &cast.BinaryOp{Op: "||", Left: left, Right: right, Pos: p.pos2(tok)}
	}
	return left
}

func (p *parser) parseLogicalAnd() cast.Expr {
	left := p.parseEquality()
	for p.isPunct("&&") {
		tok := p.advance()
		right := p.parseEquality()
		left = &cast.BinaryOp{Op: "&&", Left: left, Right: right, Pos: p.pos2(tok)}
	}
	return left
}

func (p *parser) parseEquality() cast.Expr {
	left := p.parseRelational()
	for p.isPunct("==") || p.isPunct("!=") {
		tok := p.advance()
		right := p.parseRelational()
		left = &cast.BinaryOp{Op: tok.Text, Left: left, Right: right, Pos: p.pos2(tok)}
	}
	return left
}

func (p *parser) parseRelational() cast.Expr {
	left := p.parseAdditive()
	for p.isPunct("<") || p.isPunct("<=") || p.isPunct(">") || p.isPunct(">=") {
		tok := p.advance()
		right := p.parseAdditive()
		left = &cast.BinaryOp{Op: tok.Text, Left: left, Right: right, Pos: p.pos2(tok)}
	}
	return left
}

func (p *parser) parseAdditive() cast.Expr {
	left := p.parseMultiplicative()
	for p.isPunct("+") || p.isPunct("-") {
		tok := p.advance()
		right := p.parseMultiplicative()
		left = &cast.BinaryOp{Op: tok.Text, Left: left, Right: right, Pos: p.pos2(tok)}
	}
	return left
}

func (p *parser) parseMultiplicative() cast.Expr {
	left := p.parseUnary()
	for p.isPunct("*") || p.isPunct("/") || p.isPunct("%") {
		tok := p.advance()
		right := p.parseUnary()
		left = &cast.BinaryOp{Op: tok.Text, Left: left, Right: right, Pos: p.pos2(tok)}
	}
	return left
}

func (p *parser) parseUnary() cast.Expr {
	if p.isPunct("-") || p.isPunct("!") {
		tok := p.advance()
		operand := p.parseUnary()
		return &cast.UnaryOp{Op: tok.Text, Operand: operand, Pos: p.pos2(tok)}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() cast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.isPunct("["):
			tok := p.advance()
			index := p.parseExpr()
			if _, err := p.expectPunct("]"); err != nil {
				return expr
			}
			ident, ok := expr.(*cast.Ident)
			if !ok {
				return expr
			}
			expr = &cast.ArrayRef{Name: ident.Name, Index: index, Pos: p.pos2(tok)}
		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() cast.Expr {
	tok := p.cur()
	switch {
	case tok.Kind == TokInt:
		p.advance()
		return &cast.Constant{Value: tok.Text, Kind: "int", Pos: p.pos2(tok)}
	case tok.Kind == TokFloat:
		p.advance()
		return &cast.Constant{Value: tok.Text, Kind: "float", Pos: p.pos2(tok)}
	case tok.Kind == TokString:
		p.advance()
		return &cast.StringLiteral{Value: tok.Text, Pos: p.pos2(tok)}
	case p.isPunct("("):
		p.advance()
		inner := p.parseExpr()
		p.expectPunct(")") //nolint:errcheck // best-effort recovery; caller sees EOF/unexpected-token error downstream
		return inner
	case tok.Kind == TokIdent:
		p.advance()
		if p.isPunct("(") {
			return p.parseCall(tok)
		}
		return &cast.Ident{Name: tok.Text, Pos: p.pos2(tok)}
	default:
		p.advance()
		return &cast.Ident{Name: tok.Text, Pos: p.pos2(tok)}
	}
}

func (p *parser) parseCall(nameTok Token) cast.Expr {
	p.advance() // "("
	var args []cast.Expr
	if !p.isPunct(")") {
		for {
			args = append(args, p.parseExpr())
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	p.expectPunct(")") //nolint:errcheck // best-effort recovery; see parsePrimary
	return &cast.Call{Name: nameTok.Text, Args: args, Pos: p.pos2(nameTok)}
}
