// Package ast defines the syntax tree handed to the SOL runtime.
//
// The tree is produced outside the runtime (ParseXML reads the XML form
// emitted by the SOL front end) and is treated as read-only once built.
package ast

import "strings"

// Program is the root of a SOL syntax tree.
type Program struct {
	Language    string
	Description string
	Classes     []*Class
}

// FindClass returns the class with the given name, or nil.
func (p *Program) FindClass(name string) *Class {
	for _, c := range p.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Class represents a user class definition.
type Class struct {
	Name    string
	Parent  string
	Methods []*Method
}

// FindMethod returns the method defined directly on this class, or nil.
func (c *Class) FindMethod(selector string) *Method {
	for _, m := range c.Methods {
		if m.Selector == selector {
			return m
		}
	}
	return nil
}

// Method binds a selector to its body block.
type Method struct {
	Selector string
	Body     *Block
}

// Block is a parameterized statement sequence. It is both a method body
// and an expression (a block literal).
type Block struct {
	Arity      int
	Parameters []*Parameter  // sorted by Order
	Statements []*Assignment // sorted by Order
}

func (*Block) expr() {}

// ParamNames returns the parameter names in declaration order.
func (b *Block) ParamNames() []string {
	names := make([]string, len(b.Parameters))
	for i, p := range b.Parameters {
		names[i] = p.Name
	}
	return names
}

// Parameter is a 1-based positional block parameter.
type Parameter struct {
	Name  string
	Order int
}

// Assignment is the only statement form: evaluate Expr and bind the
// result to Variable. The name "_" discards the result.
type Assignment struct {
	Order    int
	Variable string
	Expr     Expr
}

// DiscardName is the assignment target that drops the result.
const DiscardName = "_"

// Expr is implemented by *Literal, *Variable, *MessageSend and *Block.
type Expr interface {
	expr()
}

// Literal kinds as they appear in the class attribute of a literal.
const (
	LiteralInteger = "Integer"
	LiteralString  = "String"
	LiteralTrue    = "True"
	LiteralFalse   = "False"
	LiteralNil     = "Nil"
	LiteralClass   = "class"
)

// Literal is a constant: Class names the literal kind, Value its text.
type Literal struct {
	Class string
	Value string
}

func (*Literal) expr() {}

// Variable is a name reference, including the pseudo-variables self,
// super, true, false and nil.
type Variable struct {
	Name string
}

func (*Variable) expr() {}

// IsSuper reports whether the variable is the super pseudo-variable.
func (v *Variable) IsSuper() bool { return v.Name == "super" }

// MessageSend sends Selector to Receiver with Args in order.
type MessageSend struct {
	Selector string
	Receiver Expr
	Args     []Expr
}

func (*MessageSend) expr() {}

// SelectorArity returns the number of arguments a selector takes, which
// is the number of keyword colons in it.
func SelectorArity(selector string) int {
	return strings.Count(selector, ":")
}
