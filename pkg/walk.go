package quill

import "fmt"

// Inspect traverses the tree rooted at node depth-first, in source order. It
// calls f(node); if that returns true, Inspect visits each child of node and
// then calls f(nil).
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, fn := range n.Functions {
			Inspect(fn, f)
		}

		inspectStmts(n.Statements, f)
	case *Function:
		inspectStmts(n.Body, f)
	case *AssignStmt:
		Inspect(n.Value, f)
	case *PrintStmt:
		Inspect(n.Value, f)
	case *IfStmt:
		Inspect(n.Cond, f)
		inspectStmts(n.Then, f)
		inspectStmts(n.Else, f)
	case *ExprStmt:
		Inspect(n.X, f)
	case *BinaryExpr:
		Inspect(n.Op1, f)
		Inspect(n.Op2, f)
	case *FuncCall:
		for _, arg := range n.Args {
			Inspect(arg, f)
		}
	case *LengthExpr:
		Inspect(n.Operand, f)
	case *StringLiteral, *IntLiteral, *Identifier:
		// Leaves
	default:
		panic(fmt.Sprintf("quill.Inspect: unexpected node type %T", n))
	}

	f(nil)
}

func inspectStmts(stmts []Stmt, f func(Node) bool) {
	for _, stmt := range stmts {
		Inspect(stmt, f)
	}
}
