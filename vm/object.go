package vm

import (
	"sort"
	"strconv"
)

// ---------------------------------------------------------------------------
// Object: the universal runtime value
// ---------------------------------------------------------------------------

// Primitive identifies the built-in payload an object carries.
type Primitive uint8

const (
	PrimNone Primitive = iota
	PrimNil
	PrimTrue
	PrimFalse
	PrimInteger
	PrimString
	PrimBlock
)

var primitiveNames = [...]string{
	PrimNone:    "Object",
	PrimNil:     "Nil",
	PrimTrue:    "True",
	PrimFalse:   "False",
	PrimInteger: "Integer",
	PrimString:  "String",
	PrimBlock:   "Block",
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "Primitive(" + strconv.Itoa(int(p)) + ")"
}

// Object is every value a SOL program can see: instances, literals, blocks
// and classes themselves. The payload fields are meaningful only for the
// matching Primitive.
type Object struct {
	class   *Class
	isClass bool
	prim    Primitive
	attrs   map[string]*Object

	intVal int64
	strVal string
	block  *Block
}

// Class returns the object's class. A class object's class is itself.
func (o *Object) Class() *Class { return o.class }

// IsClassObject reports whether o stands for a class rather than an
// instance.
func (o *Object) IsClassObject() bool { return o.isClass }

// AsClass returns the class o stands for, or nil if o is an instance.
func (o *Object) AsClass() *Class {
	if o.isClass {
		return o.class
	}
	return nil
}

// Primitive returns the payload kind.
func (o *Object) Primitive() Primitive { return o.prim }

// ---------------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------------

// Attr returns the attribute stored under name.
func (o *Object) Attr(name string) (*Object, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// HasAttr reports whether an attribute is stored under name.
func (o *Object) HasAttr(name string) bool {
	_, ok := o.attrs[name]
	return ok
}

// SetAttr stores value under name and returns it.
func (o *Object) SetAttr(name string, value *Object) *Object {
	if o.attrs == nil {
		o.attrs = make(map[string]*Object)
	}
	o.attrs[name] = value
	return value
}

// AttrNames returns the stored attribute names in sorted order.
func (o *Object) AttrNames() []string {
	names := make([]string, 0, len(o.attrs))
	for name := range o.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o *Object) copyAttrsFrom(other *Object) {
	for name, v := range other.attrs {
		o.SetAttr(name, v)
	}
}

// ---------------------------------------------------------------------------
// Payload access
// ---------------------------------------------------------------------------

func (o *Object) IsNil() bool     { return o.prim == PrimNil }
func (o *Object) IsInteger() bool { return o.prim == PrimInteger }
func (o *Object) IsString() bool  { return o.prim == PrimString }
func (o *Object) IsBlock() bool   { return o.prim == PrimBlock && o.block != nil }

// Int returns the Integer payload.
func (o *Object) Int() int64 { return o.intVal }

// Str returns the String payload.
func (o *Object) Str() string { return o.strVal }

// Block returns the Block payload, or nil.
func (o *Object) Block() *Block { return o.block }

// String renders the object for logs and error messages.
func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	if o.isClass {
		return o.class.Name
	}
	switch o.prim {
	case PrimInteger:
		return strconv.FormatInt(o.intVal, 10)
	case PrimString:
		return strconv.Quote(o.strVal)
	case PrimNil:
		return "nil"
	case PrimTrue:
		return "true"
	case PrimFalse:
		return "false"
	case PrimBlock:
		return "a Block"
	}
	return "a " + o.class.Name
}
