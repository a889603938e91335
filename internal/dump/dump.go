// Package dump renders parsed programs for people: Go-syntax trees, YAML
// documents and compact S-expressions.
package dump

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	quill "go.quill.dev/pkg"
)

type Format string

const (
	FormatPretty Format = "pretty"
	FormatYAML   Format = "yaml"
	FormatSexpr  Format = "sexpr"
)

var Formats = []Format{FormatPretty, FormatYAML, FormatSexpr}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}

	return "", errors.Errorf("unknown output format %q", s)
}

// Write renders prog to w in the given format.
func Write(w io.Writer, prog *quill.Program, format Format) error {
	var (
		out string
		err error
	)

	switch format {
	case FormatPretty:
		out = Pretty(prog)
	case FormatYAML:
		out, err = YAML(prog)
	case FormatSexpr:
		out = Sexpr(prog)
	default:
		return errors.Errorf("unknown output format %q", format)
	}

	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return errors.Wrap(err, "writing output")
}

func Pretty(prog *quill.Program) string {
	return pretty.Sprintf("%# v\n", prog)
}

// YAML renders prog as a YAML document. Statements and expressions are
// mappings whose "kind" key names the node type.
func YAML(prog *quill.Program) (string, error) {
	doc := mapping(
		"functions", functionsNode(prog.Functions),
		"statements", stmtsNode(prog.Statements),
	)

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return "", errors.Wrap(err, "encoding yaml")
	}

	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "encoding yaml")
	}

	return b.String(), nil
}

func functionsNode(fns []*quill.Function) *yaml.Node {
	seq := sequence()
	for _, fn := range fns {
		params := sequence()
		params.Style = yaml.FlowStyle
		for _, p := range fn.Params {
			params.Content = append(params.Content, scalar(p))
		}

		seq.Content = append(seq.Content, mapping(
			"name", scalar(fn.Name),
			"params", params,
			"body", stmtsNode(fn.Body),
		))
	}

	return seq
}

func stmtsNode(stmts []quill.Stmt) *yaml.Node {
	seq := sequence()
	for _, s := range stmts {
		seq.Content = append(seq.Content, stmtNode(s))
	}

	return seq
}

func stmtNode(stmt quill.Stmt) *yaml.Node {
	switch s := stmt.(type) {
	case *quill.AssignStmt:
		return mapping("kind", scalar("assign"), "name", scalar(s.Name), "value", exprNode(s.Value))
	case *quill.PrintStmt:
		return mapping("kind", scalar("print"), "value", exprNode(s.Value))
	case *quill.IfStmt:
		return mapping(
			"kind", scalar("if"),
			"cond", exprNode(s.Cond),
			"then", stmtsNode(s.Then),
			"else", stmtsNode(s.Else),
		)
	case *quill.ExprStmt:
		return mapping("kind", scalar("expr"), "expr", exprNode(s.X))
	default:
		panic(fmt.Sprintf("dump: unexpected statement %T", s))
	}
}

func exprNode(expr quill.Expr) *yaml.Node {
	switch e := expr.(type) {
	case *quill.StringLiteral:
		return mapping("kind", scalar("string"), "value", scalar(e.Value))
	case *quill.IntLiteral:
		n := scalar(strconv.FormatInt(e.Value, 10))
		n.Tag = "!!int"
		return mapping("kind", scalar("int"), "value", n)
	case *quill.Identifier:
		return mapping("kind", scalar("var"), "name", scalar(e.Name))
	case *quill.BinaryExpr:
		return mapping(
			"kind", scalar("binary"),
			"op", scalar(e.Operation.String()),
			"left", exprNode(e.Op1),
			"right", exprNode(e.Op2),
		)
	case *quill.FuncCall:
		args := sequence()
		for _, a := range e.Args {
			args.Content = append(args.Content, exprNode(a))
		}

		return mapping("kind", scalar("call"), "name", scalar(e.Name), "args", args)
	case *quill.LengthExpr:
		return mapping("kind", scalar("length"), "operand", exprNode(e.Operand))
	default:
		panic(fmt.Sprintf("dump: unexpected expression %T", e))
	}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// mapping builds a mapping node from alternating keys and values, keeping
// their order.
func mapping(kv ...interface{}) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i < len(kv); i += 2 {
		n.Content = append(n.Content, scalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}

	return n
}

// Sexpr renders prog as one S-expression per line, functions first.
func Sexpr(prog *quill.Program) string {
	var b strings.Builder
	for _, fn := range prog.Functions {
		fmt.Fprintf(&b, "(fn %s (%s)", fn.Name, strings.Join(fn.Params, " "))
		for _, s := range fn.Body {
			b.WriteByte(' ')
			b.WriteString(SexprStmt(s))
		}
		b.WriteString(")\n")
	}

	for _, s := range prog.Statements {
		b.WriteString(SexprStmt(s))
		b.WriteByte('\n')
	}

	return b.String()
}

func SexprStmt(stmt quill.Stmt) string {
	switch s := stmt.(type) {
	case *quill.AssignStmt:
		return fmt.Sprintf("(= %s %s)", s.Name, SexprExpr(s.Value))
	case *quill.PrintStmt:
		return fmt.Sprintf("(print %s)", SexprExpr(s.Value))
	case *quill.IfStmt:
		return fmt.Sprintf("(if %s %s %s)", SexprExpr(s.Cond), sexprBlock(s.Then), sexprBlock(s.Else))
	case *quill.ExprStmt:
		return SexprExpr(s.X)
	default:
		panic(fmt.Sprintf("dump: unexpected statement %T", s))
	}
}

func sexprBlock(stmts []quill.Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = SexprStmt(s)
	}

	return "(" + strings.Join(parts, " ") + ")"
}

func SexprExpr(expr quill.Expr) string {
	switch e := expr.(type) {
	case *quill.StringLiteral:
		return strconv.Quote(e.Value)
	case *quill.IntLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *quill.Identifier:
		return e.Name
	case *quill.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Operation.Symbol(), SexprExpr(e.Op1), SexprExpr(e.Op2))
	case *quill.FuncCall:
		parts := []string{"call", e.Name}
		for _, a := range e.Args {
			parts = append(parts, SexprExpr(a))
		}

		return "(" + strings.Join(parts, " ") + ")"
	case *quill.LengthExpr:
		return fmt.Sprintf("(length %s)", SexprExpr(e.Operand))
	default:
		panic(fmt.Sprintf("dump: unexpected expression %T", e))
	}
}

// Stats counts the nodes of a tree by kind.
type Stats map[string]int

func Count(node quill.Node) Stats {
	stats := Stats{}
	quill.Inspect(node, func(n quill.Node) bool {
		if n != nil {
			stats[kindOf(n)]++
		}

		return true
	})

	return stats
}

// String lists the counts sorted by kind, e.g. "call=2 var=3".
func (s Stats) String() string {
	kinds := make([]string, 0, len(s))
	for k := range s {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k, s[k])
	}

	return strings.Join(parts, " ")
}

func kindOf(n quill.Node) string {
	switch n.(type) {
	case *quill.Program:
		return "program"
	case *quill.Function:
		return "function"
	case *quill.AssignStmt:
		return "assign"
	case *quill.PrintStmt:
		return "print"
	case *quill.IfStmt:
		return "if"
	case *quill.ExprStmt:
		return "expr"
	case *quill.StringLiteral:
		return "string"
	case *quill.IntLiteral:
		return "int"
	case *quill.Identifier:
		return "var"
	case *quill.BinaryExpr:
		return "binary"
	case *quill.FuncCall:
		return "call"
	case *quill.LengthExpr:
		return "length"
	default:
		return fmt.Sprintf("%T", n)
	}
}
