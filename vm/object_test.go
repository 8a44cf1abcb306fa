package vm

import "testing"

func TestObjectAttributes(t *testing.T) {
	vm := newTestVM(t)
	obj := NewClass("Point", vm.Classes.Get("Object")).NewInstance()
	five := vm.Factory.NewInteger(5)

	if obj.HasAttr("x") {
		t.Error("fresh object should not have x")
	}
	if got := obj.SetAttr("x", five); got != five {
		t.Error("SetAttr should return the stored value")
	}
	got, ok := obj.Attr("x")
	if !ok || got != five {
		t.Errorf("Attr(x) = %v, %v", got, ok)
	}

	// Overwrite
	obj.SetAttr("x", vm.Nil())
	if got, _ := obj.Attr("x"); got != vm.Nil() {
		t.Error("SetAttr should overwrite")
	}

	obj.SetAttr("a", five)
	names := obj.AttrNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "x" {
		t.Errorf("AttrNames = %v, want [a x]", names)
	}
}

func TestObjectPayloads(t *testing.T) {
	vm := newTestVM(t)

	n := vm.Factory.NewInteger(-3)
	if !n.IsInteger() || n.Int() != -3 || n.Class().Name != "Integer" {
		t.Errorf("integer = %v", n)
	}
	s := vm.Factory.NewString("hi")
	if !s.IsString() || s.Str() != "hi" || s.IsInteger() {
		t.Errorf("string = %v", s)
	}
	if !vm.Nil().IsNil() {
		t.Error("nil should report IsNil")
	}
	b := vm.Factory.NewBlock(block([]string{"x"}), nil)
	if !b.IsBlock() || b.Block().Arity() != 1 {
		t.Errorf("block = %v", b)
	}
}

func TestObjectString(t *testing.T) {
	vm := newTestVM(t)
	tests := []struct {
		obj  *Object
		want string
	}{
		{vm.Factory.NewInteger(42), "42"},
		{vm.Factory.NewString("a"), `"a"`},
		{vm.Nil(), "nil"},
		{vm.True(), "true"},
		{vm.Classes.Get("Integer").Object(), "Integer"},
		{vm.Classes.Get("Object").NewInstance(), "a Object"},
	}
	for _, tt := range tests {
		if got := tt.obj.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
