package vm

// ---------------------------------------------------------------------------
// Block Primitives
// ---------------------------------------------------------------------------

func (ct *ClassTable) registerBlockPrimitives() {
	t := ct.Builtins

	t.AddMethod0("Block", "value", func(vm *VM, recv *Object) (*Object, error) {
		return vm.CallBlock(recv, "value", nil)
	})

	t.AddMethod1("Block", "value:", func(vm *VM, recv, a1 *Object) (*Object, error) {
		return vm.CallBlock(recv, "value:", []*Object{a1})
	})

	t.AddMethod2("Block", "value:value:", func(vm *VM, recv, a1, a2 *Object) (*Object, error) {
		return vm.CallBlock(recv, "value:value:", []*Object{a1, a2})
	})

	t.AddMethod3("Block", "value:value:value:", func(vm *VM, recv, a1, a2, a3 *Object) (*Object, error) {
		return vm.CallBlock(recv, "value:value:value:", []*Object{a1, a2, a3})
	})

	// whileTrue: stops as soon as the condition is anything but the true
	// singleton.
	t.AddMethod1("Block", "whileTrue:", func(vm *VM, recv, body *Object) (*Object, error) {
		if !recv.IsBlock() {
			return nil, typeError(recv.Class().Name, "whileTrue:", "receiver must be a Block")
		}
		last := vm.Nil()
		for {
			cond, err := vm.Send(recv, "value", nil)
			if err != nil {
				return nil, err
			}
			if cond != vm.True() {
				return last, nil
			}
			v, err := vm.Send(body, "value", nil)
			if err != nil {
				return nil, err
			}
			last = v
		}
	})

	t.AddMethod0("Block", "isBlock", func(vm *VM, recv *Object) (*Object, error) {
		return vm.True(), nil
	})

	t.AddMethod0("Block", "asString", func(vm *VM, recv *Object) (*Object, error) {
		return vm.Factory.NewString("a Block"), nil
	})
}
