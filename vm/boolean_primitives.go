package vm

// ---------------------------------------------------------------------------
// Boolean Primitives (True, False)
// ---------------------------------------------------------------------------

func (ct *ClassTable) registerBooleanPrimitives() {
	t := ct.Builtins

	// True class
	t.AddMethod0("True", "not", func(vm *VM, recv *Object) (*Object, error) {
		return vm.False(), nil
	})

	// and: evaluates the argument only when the receiver is true.
	t.AddMethod1("True", "and:", func(vm *VM, recv, block *Object) (*Object, error) {
		return vm.Send(block, "value", nil)
	})

	t.AddMethod1("True", "or:", func(vm *VM, recv, block *Object) (*Object, error) {
		return vm.True(), nil
	})

	t.AddMethod2("True", "ifTrue:ifFalse:", func(vm *VM, recv, trueBlock, falseBlock *Object) (*Object, error) {
		return vm.Send(trueBlock, "value", nil)
	})

	t.AddMethod0("True", "asString", func(vm *VM, recv *Object) (*Object, error) {
		return vm.Factory.NewString("true"), nil
	})

	// False class
	t.AddMethod0("False", "not", func(vm *VM, recv *Object) (*Object, error) {
		return vm.True(), nil
	})

	t.AddMethod1("False", "and:", func(vm *VM, recv, block *Object) (*Object, error) {
		return vm.False(), nil
	})

	// or: evaluates the argument only when the receiver is false.
	t.AddMethod1("False", "or:", func(vm *VM, recv, block *Object) (*Object, error) {
		return vm.Send(block, "value", nil)
	})

	t.AddMethod2("False", "ifTrue:ifFalse:", func(vm *VM, recv, trueBlock, falseBlock *Object) (*Object, error) {
		return vm.Send(falseBlock, "value", nil)
	})

	t.AddMethod0("False", "asString", func(vm *VM, recv *Object) (*Object, error) {
		return vm.Factory.NewString("false"), nil
	})
}
