package vm

// ---------------------------------------------------------------------------
// Object Primitives
// ---------------------------------------------------------------------------

func (ct *ClassTable) registerObjectPrimitives() {
	t := ct.Builtins

	t.AddMethod1("Object", "identicalTo:", func(vm *VM, recv, arg *Object) (*Object, error) {
		return vm.Factory.Bool(recv == arg), nil
	})

	// equalTo: defaults to identity; Integer and String refine it.
	t.AddMethod1("Object", "equalTo:", func(vm *VM, recv, arg *Object) (*Object, error) {
		return vm.Factory.Bool(recv == arg), nil
	})

	t.AddMethod0("Object", "asString", func(vm *VM, recv *Object) (*Object, error) {
		return vm.Factory.NewString(""), nil
	})

	for _, sel := range []string{"isNumber", "isString", "isBlock", "isNil"} {
		t.AddMethod0("Object", sel, func(vm *VM, recv *Object) (*Object, error) {
			return vm.False(), nil
		})
	}

	// Class side
	t.AddClassMethod0("Object", "new", func(vm *VM, recv *Object) (*Object, error) {
		cls := recv.AsClass()
		if cls == nil {
			return nil, typeError(recv.Class().Name, "new", "receiver is not a class")
		}
		return vm.Factory.New(cls), nil
	})

	// from: builds an instance of the receiver class out of a related
	// object, taking over its attributes and, where the receiver class can
	// hold it, its Integer or String payload.
	t.AddClassMethod1("Object", "from:", func(vm *VM, recv, arg *Object) (*Object, error) {
		cls := recv.AsClass()
		if cls == nil {
			return nil, typeError(recv.Class().Name, "from:", "receiver is not a class")
		}
		argClass := arg.Class()
		if !argClass.IsSubclassOf(cls) && !cls.IsSubclassOf(argClass) {
			return nil, doesNotUnderstand(cls.Name, "from:",
				"%s is not compatible with %s", argClass.Name, cls.Name)
		}

		result := vm.Factory.New(cls)
		switch result.prim {
		case PrimNil, PrimTrue, PrimFalse:
			// Singletons are shared and never take over state.
			return result, nil
		case PrimInteger:
			if arg.IsInteger() {
				result.intVal = arg.intVal
			}
		case PrimString:
			if arg.IsString() {
				result.strVal = arg.strVal
			}
		}
		result.copyAttrsFrom(arg)
		return result, nil
	})
}

// ---------------------------------------------------------------------------
// Nil Primitives
// ---------------------------------------------------------------------------

func (ct *ClassTable) registerNilPrimitives() {
	t := ct.Builtins

	t.AddMethod0("Nil", "asString", func(vm *VM, recv *Object) (*Object, error) {
		return vm.Factory.NewString("nil"), nil
	})

	t.AddMethod0("Nil", "isNil", func(vm *VM, recv *Object) (*Object, error) {
		return vm.True(), nil
	})
}
