package vm

import (
	"fmt"

	"github.com/chazu/sol/pkg/ast"
)

// Builtin is a primitive method implemented in Go.
//
// The arity-specialized wrappers below let primitives take their
// arguments as parameters; Invoke is only called with exactly Arity()
// arguments.
type Builtin interface {
	Invoke(vm *VM, receiver *Object, args []*Object) (*Object, error)
	Name() string
	Arity() int
}

// Method0Func is a primitive taking no arguments.
type Method0Func func(vm *VM, receiver *Object) (*Object, error)

// Method1Func is a primitive taking one argument.
type Method1Func func(vm *VM, receiver, arg1 *Object) (*Object, error)

// Method2Func is a primitive taking two arguments.
type Method2Func func(vm *VM, receiver, arg1, arg2 *Object) (*Object, error)

// Method3Func is a primitive taking three arguments.
type Method3Func func(vm *VM, receiver, arg1, arg2, arg3 *Object) (*Object, error)

// ---------------------------------------------------------------------------
// Arity-specialized method wrappers
// ---------------------------------------------------------------------------

// Method0 wraps a zero-argument primitive.
type Method0 struct {
	name string
	fn   Method0Func
}

func (m *Method0) Invoke(vm *VM, receiver *Object, args []*Object) (*Object, error) {
	return m.fn(vm, receiver)
}

func (m *Method0) Name() string { return m.name }
func (m *Method0) Arity() int   { return 0 }

// Method1 wraps a one-argument primitive.
type Method1 struct {
	name string
	fn   Method1Func
}

func (m *Method1) Invoke(vm *VM, receiver *Object, args []*Object) (*Object, error) {
	return m.fn(vm, receiver, args[0])
}

func (m *Method1) Name() string { return m.name }
func (m *Method1) Arity() int   { return 1 }

// Method2 wraps a two-argument primitive.
type Method2 struct {
	name string
	fn   Method2Func
}

func (m *Method2) Invoke(vm *VM, receiver *Object, args []*Object) (*Object, error) {
	return m.fn(vm, receiver, args[0], args[1])
}

func (m *Method2) Name() string { return m.name }
func (m *Method2) Arity() int   { return 2 }

// Method3 wraps a three-argument primitive.
type Method3 struct {
	name string
	fn   Method3Func
}

func (m *Method3) Invoke(vm *VM, receiver *Object, args []*Object) (*Object, error) {
	return m.fn(vm, receiver, args[0], args[1], args[2])
}

func (m *Method3) Name() string { return m.name }
func (m *Method3) Arity() int   { return 3 }

// ---------------------------------------------------------------------------
// BuiltinTable
// ---------------------------------------------------------------------------

type builtinKey struct {
	class     string
	selector  string
	classSide bool
}

// BuiltinTable is the flat (class, selector, class-side) to primitive map
// shared by every class of a VM.
type BuiltinTable struct {
	entries map[builtinKey]Builtin
}

// NewBuiltinTable creates an empty table.
func NewBuiltinTable() *BuiltinTable {
	return &BuiltinTable{entries: make(map[builtinKey]Builtin)}
}

// Register adds a primitive. The selector's colon count must match the
// primitive's arity.
func (t *BuiltinTable) Register(class, selector string, classSide bool, m Builtin) {
	if ast.SelectorArity(selector) != m.Arity() {
		panic(fmt.Sprintf("vm: builtin %s>>%s registered with arity %d", class, selector, m.Arity()))
	}
	t.entries[builtinKey{class, selector, classSide}] = m
}

// Lookup returns the primitive registered for exactly this class, or nil.
func (t *BuiltinTable) Lookup(class, selector string, classSide bool) Builtin {
	return t.entries[builtinKey{class, selector, classSide}]
}

// Len returns the number of registered primitives.
func (t *BuiltinTable) Len() int { return len(t.entries) }

// AddMethod0 registers a zero-argument instance-side primitive.
func (t *BuiltinTable) AddMethod0(class, name string, fn Method0Func) {
	t.Register(class, name, false, &Method0{name: name, fn: fn})
}

// AddMethod1 registers a one-argument instance-side primitive.
func (t *BuiltinTable) AddMethod1(class, name string, fn Method1Func) {
	t.Register(class, name, false, &Method1{name: name, fn: fn})
}

// AddMethod2 registers a two-argument instance-side primitive.
func (t *BuiltinTable) AddMethod2(class, name string, fn Method2Func) {
	t.Register(class, name, false, &Method2{name: name, fn: fn})
}

// AddMethod3 registers a three-argument instance-side primitive.
func (t *BuiltinTable) AddMethod3(class, name string, fn Method3Func) {
	t.Register(class, name, false, &Method3{name: name, fn: fn})
}

// AddClassMethod0 registers a zero-argument class-side primitive.
func (t *BuiltinTable) AddClassMethod0(class, name string, fn Method0Func) {
	t.Register(class, name, true, &Method0{name: name, fn: fn})
}

// AddClassMethod1 registers a one-argument class-side primitive.
func (t *BuiltinTable) AddClassMethod1(class, name string, fn Method1Func) {
	t.Register(class, name, true, &Method1{name: name, fn: fn})
}
