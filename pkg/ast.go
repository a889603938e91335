package quill

// Node is any element of a parsed tree: *Program, *Function, a Stmt or an
// Expr.
type Node interface{}

type Program struct {
	Functions  []*Function
	Statements []Stmt
}

type Function struct {
	Name   string
	Params []string
	Body   []Stmt
}

// Stmt is implemented by *AssignStmt, *PrintStmt, *IfStmt and *ExprStmt.
type Stmt interface {
	stmtNode()
}

type AssignStmt struct {
	Name  string
	Value Expr
}

type PrintStmt struct {
	Value Expr
}

type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// ExprStmt is an expression evaluated for its side effects, usually a call.
type ExprStmt struct {
	X Expr
}

func (*AssignStmt) stmtNode() {}
func (*PrintStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()   {}

// Expr is implemented by *StringLiteral, *IntLiteral, *Identifier,
// *BinaryExpr, *FuncCall and *LengthExpr.
type Expr interface {
	exprNode()
}

type StringLiteral struct {
	Value string
}

type IntLiteral struct {
	Value int64
}

// Identifier is a reference to a variable.
type Identifier struct {
	Name string
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// OpPlus and OpMinus are reserved for unary sign operators. The parser
	// never produces them; binary + and - are OpAdd and OpSub.
	OpPlus
	OpMinus
)

var binaryOpNames = [...]string{
	OpAdd:   "Add",
	OpSub:   "Sub",
	OpMul:   "Mul",
	OpDiv:   "Div",
	OpEq:    "Eq",
	OpNe:    "Ne",
	OpLt:    "Lt",
	OpLe:    "Le",
	OpGt:    "Gt",
	OpGe:    "Ge",
	OpPlus:  "Plus",
	OpMinus: "Minus",
}

var binaryOpSymbols = [...]string{
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpEq:    "==",
	OpNe:    "!=",
	OpLt:    "<",
	OpLe:    "<=",
	OpGt:    ">",
	OpGe:    ">=",
	OpPlus:  "+",
	OpMinus: "-",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "BinaryOp(?)"
	}

	return binaryOpNames[op]
}

// Symbol returns the operator as written in source.
func (op BinaryOp) Symbol() string {
	if op < 0 || int(op) >= len(binaryOpSymbols) {
		return "?"
	}

	return binaryOpSymbols[op]
}

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type FuncCall struct {
	Name string
	Args []Expr
}

// LengthExpr is the postfix `.length()` applied to Operand.
type LengthExpr struct {
	Operand Expr
}

func (*StringLiteral) exprNode() {}
func (*IntLiteral) exprNode()    {}
func (*Identifier) exprNode()    {}
func (*BinaryExpr) exprNode()    {}
func (*FuncCall) exprNode()      {}
func (*LengthExpr) exprNode()    {}
