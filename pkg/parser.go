package quill

// maxNesting bounds how deeply expressions and blocks may nest, so
// pathological input fails with a ParseError instead of exhausting the stack.
const maxNesting = 10000

type Parser struct {
	tokens []Token
	pos    int
	depth  int
}

// NewParser returns a parser over tokens. The slice is read, never modified.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
	}
}

// Parse builds a Program from tokens, stopping at the first error.
func Parse(tokens []Token) (*Program, error) {
	return NewParser(tokens).Run()
}

func (p *Parser) Run() (*Program, error) {
	prog := &Program{}

	for !p.check(TokenEOF) {
		if p.check(TokenFunc) {
			fn, err := p.funcDecl()
			if err != nil {
				return nil, err
			}

			prog.Functions = append(prog.Functions, fn)
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

// peek returns the current token. Past the end of the slice it returns an
// EOF token, so input without a terminator still parses.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		var loc *Location
		if n := len(p.tokens); n > 0 {
			loc = p.tokens[n-1].Loc
		}

		return Token{Typ: TokenEOF, Loc: loc}
	}

	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType) (Token, error) {
	return p.expectf(typ, typ.String())
}

// expectf consumes a token of type typ, or fails describing what was expected.
func (p *Parser) expectf(typ TokenType, what string) (Token, error) {
	if tok := p.peek(); tok.Typ != typ {
		return tok, p.errorAt(tok, what)
	}

	return p.next(), nil
}

func (p *Parser) errorAt(found Token, expected string) error {
	return &ParseError{
		Loc:      found.Loc,
		Expected: expected,
		Found:    found,
	}
}

func (p *Parser) funcDecl() (*Function, error) {
	if _, err := p.expect(TokenFunc); err != nil {
		return nil, err
	}

	name, err := p.expectf(TokenIdentifier, "function name")
	if err != nil {
		return nil, err
	}

	params, err := p.paramList()
	if err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	return &Function{
		Name:   name.Value,
		Params: params,
		Body:   body,
	}, nil
}

func (p *Parser) paramList() ([]string, error) {
	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	var params []string
	if !p.check(TokenCloseParentheses) {
		for {
			param, err := p.expectf(TokenIdentifier, "parameter name")
			if err != nil {
				return nil, err
			}

			params = append(params, param.Value)

			if !p.check(TokenComma) {
				break
			}

			p.next() // Skip the comma
		}
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return params, nil
}

// enter records one more level of nesting; the caller must defer leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNesting {
		return p.errorAt(p.peek(), "shallower nesting")
	}

	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) blockStmt() ([]Stmt, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	if _, err := p.expectf(TokenOpenCurly, "'{' to open block"); err != nil {
		return nil, err
	}

	var stmts []Stmt
	for !p.check(TokenCloseCurly) {
		if p.check(TokenEOF) {
			return nil, p.errorAt(p.peek(), "'}' to close block")
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	p.next() // Skip the closing curly

	return stmts, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch p.peek().Typ {
	case TokenPrint:
		return p.printStmt()
	case TokenIf:
		return p.ifStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() (Stmt, error) {
	p.next() // Skip print

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &PrintStmt{Value: value}, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	p.next() // Skip if

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	then, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{
		Cond: cond,
		Then: then,
	}

	if p.check(TokenElse) {
		p.next()

		if stmt.Else, err = p.blockStmt(); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

// exprStmt parses an expression and turns it into an assignment when it is
// followed by '='. Only a bare variable may be assigned to.
func (p *Parser) exprStmt() (Stmt, error) {
	start := p.peek()

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if !p.check(TokenAssign) {
		return &ExprStmt{X: expr}, nil
	}

	id, ok := expr.(*Identifier)
	if !ok {
		return nil, p.errorAt(start, "assignment target (a variable)")
	}

	p.next() // Skip =

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &AssignStmt{
		Name:  id.Name,
		Value: value,
	}, nil
}

func (p *Parser) expr() (Expr, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	return p.equalityExpr()
}

var (
	equalityOps = map[TokenType]BinaryOp{
		TokenEqual:    OpEq,
		TokenNotEqual: OpNe,
	}
	comparisonOps = map[TokenType]BinaryOp{
		TokenLess:         OpLt,
		TokenLessEqual:    OpLe,
		TokenGreater:      OpGt,
		TokenGreaterEqual: OpGe,
	}
	additiveOps = map[TokenType]BinaryOp{
		TokenPlus:  OpAdd,
		TokenMinus: OpSub,
	}
	multiplicativeOps = map[TokenType]BinaryOp{
		TokenMulti: OpMul,
		TokenDiv:   OpDiv,
	}
)

func (p *Parser) equalityExpr() (Expr, error) {
	return p.binaryExpr(equalityOps, p.comparisonExpr)
}

func (p *Parser) comparisonExpr() (Expr, error) {
	return p.binaryExpr(comparisonOps, p.additiveExpr)
}

func (p *Parser) additiveExpr() (Expr, error) {
	return p.binaryExpr(additiveOps, p.multiplicativeExpr)
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	return p.binaryExpr(multiplicativeOps, p.postfixExpr)
}

// binaryExpr parses one precedence level: operands come from operand and are
// folded to the left, so 1 - 2 - 3 is (1 - 2) - 3.
func (p *Parser) binaryExpr(ops map[TokenType]BinaryOp, operand func() (Expr, error)) (Expr, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.peek().Typ]
		if !ok {
			return lhs, nil
		}

		p.next()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) postfixExpr() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.check(TokenDot) {
		p.next()

		if tok := p.peek(); tok.Typ != TokenIdentifier || tok.Value != "length" {
			return nil, p.errorAt(tok, "'length' after '.'")
		}

		p.next()

		if _, err := p.expect(TokenOpenParentheses); err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenCloseParentheses); err != nil {
			return nil, err
		}

		expr = &LengthExpr{Operand: expr}
	}

	return expr, nil
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		return p.identifier()
	case TokenString:
		p.next()
		return &StringLiteral{Value: tok.Value}, nil
	case TokenNumber:
		p.next()
		return &IntLiteral{Value: tok.Int()}, nil
	default:
		return nil, p.errorAt(tok, "expression")
	}
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	p.next() // Skip (

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectf(TokenCloseParentheses, "closing parenthesis"); err != nil {
		return nil, err
	}

	return expr, nil
}

// identifier parses a variable reference or, when followed by '(', a call.
func (p *Parser) identifier() (Expr, error) {
	name := p.next().Value

	if !p.check(TokenOpenParentheses) {
		return &Identifier{Name: name}, nil
	}

	return p.funcCall(name)
}

func (p *Parser) funcCall(name string) (Expr, error) {
	p.next() // Skip (

	var args []Expr
	if !p.check(TokenCloseParentheses) {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if !p.check(TokenComma) {
				break
			}

			p.next() // Skip the comma
		}
	}

	if _, err := p.expectf(TokenCloseParentheses, "')' to close call"); err != nil {
		return nil, err
	}

	return &FuncCall{
		Name: name,
		Args: args,
	}, nil
}
