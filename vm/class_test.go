package vm

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/sol/pkg/ast"
)

// ---------------------------------------------------------------------------
// Class tests
// ---------------------------------------------------------------------------

func TestNewClass(t *testing.T) {
	c := NewClass("Object", nil)
	if c.Name != "Object" {
		t.Errorf("Name = %q, want %q", c.Name, "Object")
	}
	if c.Superclass != nil {
		t.Error("root class should have nil superclass")
	}
	obj := c.Object()
	if !obj.IsClassObject() {
		t.Error("class object should be flagged as a class")
	}
	if obj.Class() != c {
		t.Error("a class object's class should be itself")
	}
	if obj.AsClass() != c {
		t.Error("AsClass should return the class")
	}
}

func TestIsSubclassOf(t *testing.T) {
	object := NewClass("Object", nil)
	point := NewClass("Point", object)
	colorPoint := NewClass("ColorPoint", point)
	other := NewClass("Other", object)

	tests := []struct {
		c, other *Class
		want     bool
	}{
		{object, object, true},
		{point, point, true},
		{point, object, true},
		{colorPoint, object, true},
		{object, point, false},
		{other, point, false},
	}
	for _, tt := range tests {
		if got := tt.c.IsSubclassOf(tt.other); got != tt.want {
			t.Errorf("%s.IsSubclassOf(%s) = %v, want %v", tt.c.Name, tt.other.Name, got, tt.want)
		}
	}
	if !object.IsSuperclassOf(colorPoint) {
		t.Error("Object should be a superclass of ColorPoint")
	}
}

func TestClassPrimitiveInherited(t *testing.T) {
	vm := newTestVM(t)
	if err := vm.Classes.CreateClassesFromAST([]*ast.Class{
		class("Counter", "Integer"),
		class("Deep", "Counter"),
		class("Plain", "Object"),
	}); err != nil {
		t.Fatal(err)
	}
	if p := vm.Classes.Get("Deep").Primitive(); p != PrimInteger {
		t.Errorf("Deep primitive = %v, want Integer", p)
	}
	if p := vm.Classes.Get("Plain").Primitive(); p != PrimNone {
		t.Errorf("Plain primitive = %v, want none", p)
	}
}

func TestNewInstance(t *testing.T) {
	c := NewClass("Point", NewClass("Object", nil))
	a := c.NewInstance()
	b := c.NewInstance()
	if a == b {
		t.Error("NewInstance should create distinct objects")
	}
	if a.Class() != c || a.IsClassObject() {
		t.Error("instance should belong to its class and not be a class object")
	}
	if len(a.AttrNames()) != 0 {
		t.Error("fresh instance should have no attributes")
	}
}

func TestLookupMethodWalksChain(t *testing.T) {
	base := NewClass("Base", nil)
	derived := NewClass("Derived", base)
	m := method("foo", block(nil))
	base.AddMethod(m)

	if derived.Method("foo") != nil {
		t.Error("Method should only look at the class itself")
	}
	if derived.LookupMethod("foo") != m {
		t.Error("LookupMethod should find the inherited method")
	}
	if derived.LookupMethod("bar") != nil {
		t.Error("LookupMethod should return nil for unknown selectors")
	}
}

// ---------------------------------------------------------------------------
// ClassTable tests
// ---------------------------------------------------------------------------

func TestClassTableRegister(t *testing.T) {
	ct := NewClassTable()
	c := NewClass("Point", nil)

	if old := ct.Register(c); old != nil {
		t.Error("first Register should return nil")
	}
	if !ct.Has("Point") {
		t.Error("Has(Point) = false after Register")
	}
	if c.Registry != ct {
		t.Error("Register should set the registry handle")
	}
	if c.Builtins() != ct.Builtins {
		t.Error("class should reach the shared built-in table")
	}
	if ct.Len() != 1 {
		t.Errorf("Len = %d, want 1", ct.Len())
	}
}

func TestClassTableLookup(t *testing.T) {
	ct := NewClassTable()
	c := NewClass("Point", nil)
	ct.Register(c)

	got, err := ct.Lookup("Point")
	if err != nil || got != c {
		t.Errorf("Lookup(Point) = %v, %v", got, err)
	}
	_, err = ct.Lookup("Missing")
	if !errors.Is(err, ErrDoesNotUnderstand) {
		t.Errorf("Lookup(Missing) error = %v, want DoesNotUnderstand", err)
	}
	if ct.Get("Missing") != nil {
		t.Error("Get(Missing) should be nil")
	}
}

func TestClassTableNames(t *testing.T) {
	ct := NewClassTable()
	ct.Register(NewClass("B", nil))
	ct.Register(NewClass("A", nil))
	names := ct.Names()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Names = %v, want [A B]", names)
	}
}

func TestCreateClassesFromASTForwardReference(t *testing.T) {
	vm := newTestVM(t)
	err := vm.Classes.CreateClassesFromAST([]*ast.Class{
		class("Child", "Parent", method("foo", block(nil))),
		class("Parent", "Object"),
	})
	if err != nil {
		t.Fatalf("CreateClassesFromAST: %v", err)
	}
	child := vm.Classes.Get("Child")
	parent := vm.Classes.Get("Parent")
	if child.Superclass != parent {
		t.Error("Child should be linked to Parent")
	}
	if parent.Superclass != vm.Classes.Get("Object") {
		t.Error("Parent should be linked to Object")
	}
	if child.Method("foo") == nil {
		t.Error("methods should be attached")
	}
}

func TestCreateClassesFromASTMissingParent(t *testing.T) {
	vm := newTestVM(t)
	err := vm.Classes.CreateClassesFromAST([]*ast.Class{class("Orphan", "Nowhere")})
	if !errors.Is(err, ErrDoesNotUnderstand) {
		t.Fatalf("error = %v, want DoesNotUnderstand", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Orphan") || !strings.Contains(msg, "Nowhere") {
		t.Errorf("error %q should name both classes", msg)
	}
}

func TestCreateClassesFromASTRedefinition(t *testing.T) {
	vm := newTestVM(t)
	err := vm.Classes.CreateClassesFromAST([]*ast.Class{class("Integer", "Object")})
	if !errors.Is(err, ErrDoesNotUnderstand) {
		t.Errorf("redefining Integer: error = %v", err)
	}
}

func TestCreateClassesFromASTCycle(t *testing.T) {
	vm := newTestVM(t)
	err := vm.Classes.CreateClassesFromAST([]*ast.Class{
		class("A", "B"),
		class("B", "A"),
	})
	if !errors.Is(err, ErrDoesNotUnderstand) {
		t.Errorf("cycle: error = %v", err)
	}
}

func TestBuiltinTableArityCheck(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a mismatched arity should panic")
		}
	}()
	NewBuiltinTable().AddMethod0("Object", "foo:", func(vm *VM, recv *Object) (*Object, error) {
		return recv, nil
	})
}

func TestBuiltinTableClassSideSeparate(t *testing.T) {
	vm := newTestVM(t)
	b := vm.Builtins()
	if b.Lookup("Object", "new", true) == nil {
		t.Error("Object class>>new missing")
	}
	if b.Lookup("Object", "new", false) != nil {
		t.Error("new should not be an instance-side built-in")
	}
	if b.Lookup("String", "read", true) == nil {
		t.Error("String class>>read missing")
	}
}
