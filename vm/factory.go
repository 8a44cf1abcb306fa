package vm

import (
	"strconv"
	"strings"

	"github.com/chazu/sol/pkg/ast"
)

// Factory creates runtime values for one VM. The nil, true and false
// singletons are created on first use and shared afterwards.
type Factory struct {
	classes *ClassTable

	nilObj   *Object
	trueObj  *Object
	falseObj *Object
}

// NewFactory creates a factory over a bootstrapped class table.
func NewFactory(classes *ClassTable) *Factory {
	return &Factory{classes: classes}
}

// Nil returns the nil singleton.
func (f *Factory) Nil() *Object {
	if f.nilObj == nil {
		f.nilObj = &Object{class: f.classes.Get("Nil"), prim: PrimNil}
	}
	return f.nilObj
}

// True returns the true singleton.
func (f *Factory) True() *Object {
	if f.trueObj == nil {
		f.trueObj = &Object{class: f.classes.Get("True"), prim: PrimTrue}
	}
	return f.trueObj
}

// False returns the false singleton.
func (f *Factory) False() *Object {
	if f.falseObj == nil {
		f.falseObj = &Object{class: f.classes.Get("False"), prim: PrimFalse}
	}
	return f.falseObj
}

// Bool returns the singleton for b.
func (f *Factory) Bool(b bool) *Object {
	if b {
		return f.True()
	}
	return f.False()
}

// NewInteger creates an Integer.
func (f *Factory) NewInteger(n int64) *Object {
	return &Object{class: f.classes.Get("Integer"), prim: PrimInteger, intVal: n}
}

// NewString creates a String.
func (f *Factory) NewString(s string) *Object {
	return &Object{class: f.classes.Get("String"), prim: PrimString, strVal: s}
}

// NewBlock creates a Block value over node capturing the defining frame.
func (f *Factory) NewBlock(node *ast.Block, defining *Frame) *Object {
	return &Object{
		class: f.classes.Get("Block"),
		prim:  PrimBlock,
		block: &Block{Node: node, Defining: defining},
	}
}

// New creates an instance of cls the way the class-side new does: the
// singletons for Nil, True and False, a zero payload for classes derived
// from Integer or String, a plain instance otherwise.
func (f *Factory) New(cls *Class) *Object {
	switch cls.Name {
	case "Nil":
		return f.Nil()
	case "True":
		return f.True()
	case "False":
		return f.False()
	}
	return cls.NewInstance()
}

// FromLiteral creates the value a literal of the given kind denotes.
func (f *Factory) FromLiteral(kind, value string) (*Object, error) {
	switch kind {
	case ast.LiteralInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, typeError("Integer", "", "invalid integer literal %q", value)
		}
		return f.NewInteger(n), nil
	case ast.LiteralString:
		return f.NewString(value), nil
	case ast.LiteralTrue:
		return f.True(), nil
	case ast.LiteralFalse:
		return f.False(), nil
	case ast.LiteralNil:
		return f.Nil(), nil
	case ast.LiteralClass:
		cls, err := f.classes.Lookup(value)
		if err != nil {
			return nil, err
		}
		return cls.Object(), nil
	default:
		return nil, typeError("", "", "invalid literal class %q", kind)
	}
}
