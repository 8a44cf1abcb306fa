package vm

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/chazu/sol/pkg/ast"
)

// ---------------------------------------------------------------------------
// Syntax tree builders
// ---------------------------------------------------------------------------

func intLit(n int64) *ast.Literal {
	return &ast.Literal{Class: ast.LiteralInteger, Value: strconv.FormatInt(n, 10)}
}

func strLit(s string) *ast.Literal {
	return &ast.Literal{Class: ast.LiteralString, Value: s}
}

func classLit(name string) *ast.Literal {
	return &ast.Literal{Class: ast.LiteralClass, Value: name}
}

func ref(name string) *ast.Variable {
	return &ast.Variable{Name: name}
}

func send(recv ast.Expr, selector string, args ...ast.Expr) *ast.MessageSend {
	return &ast.MessageSend{Selector: selector, Receiver: recv, Args: args}
}

func assign(name string, e ast.Expr) *ast.Assignment {
	return &ast.Assignment{Variable: name, Expr: e}
}

func block(params []string, stmts ...*ast.Assignment) *ast.Block {
	b := &ast.Block{Arity: len(params)}
	for i, p := range params {
		b.Parameters = append(b.Parameters, &ast.Parameter{Name: p, Order: i + 1})
	}
	for i, s := range stmts {
		s.Order = i + 1
		b.Statements = append(b.Statements, s)
	}
	return b
}

func method(selector string, body *ast.Block) *ast.Method {
	return &ast.Method{Selector: selector, Body: body}
}

func class(name, parent string, methods ...*ast.Method) *ast.Class {
	return &ast.Class{Name: name, Parent: parent, Methods: methods}
}

func program(classes ...*ast.Class) *ast.Program {
	return &ast.Program{Language: "SOL26", Classes: classes}
}

// mainRun builds a program whose Main>>run has the given statements.
func mainRun(stmts ...*ast.Assignment) *ast.Program {
	return program(class("Main", "Object", method("run", block(nil, stmts...))))
}

// ---------------------------------------------------------------------------
// VM helpers
// ---------------------------------------------------------------------------

func newTestVM(t *testing.T, opts ...Option) *VM {
	t.Helper()
	vm, err := NewVM(opts...)
	if err != nil {
		t.Fatalf("NewVM: %v", err)
	}
	return vm
}

// runWithOutput runs prog on a fresh VM and returns its result and output.
func runWithOutput(t *testing.T, prog *ast.Program, input string, opts ...Option) (*Object, string, error) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{
		WithOutput(&out),
		WithInput(NewLineReader(strings.NewReader(input))),
	}, opts...)
	vm := newTestVM(t, opts...)
	result, err := vm.Run(prog)
	if vm.Depth() != 0 {
		t.Errorf("Depth after Run = %d, want 0", vm.Depth())
	}
	return result, out.String(), err
}

func mustRun(t *testing.T, prog *ast.Program, opts ...Option) *Object {
	t.Helper()
	result, _, err := runWithOutput(t, prog, "", opts...)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

// eval evaluates a single expression inside a Main>>run activation.
func eval(t *testing.T, e ast.Expr, opts ...Option) (*Object, error) {
	t.Helper()
	result, _, err := runWithOutput(t, mainRun(assign("_", e)), "", opts...)
	return result, err
}

func mustEval(t *testing.T, e ast.Expr, opts ...Option) *Object {
	t.Helper()
	result, err := eval(t, e, opts...)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	return result
}

func wantKind(t *testing.T, err error, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got no error", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want kind %v", err, want)
	}
}

func wantInt(t *testing.T, got *Object, want int64) {
	t.Helper()
	if got == nil || !got.IsInteger() || got.Int() != want {
		t.Errorf("got %v, want Integer %d", got, want)
	}
}

func wantStr(t *testing.T, got *Object, want string) {
	t.Helper()
	if got == nil || !got.IsString() || got.Str() != want {
		t.Errorf("got %v, want String %q", got, want)
	}
}

func wantPrim(t *testing.T, got *Object, want Primitive) {
	t.Helper()
	if got == nil || got.Primitive() != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
