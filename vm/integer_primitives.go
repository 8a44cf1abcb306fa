package vm

import "strconv"

// ---------------------------------------------------------------------------
// Integer Primitives
// ---------------------------------------------------------------------------

// integerOperands checks that both sides of an arithmetic primitive are
// Integers.
func integerOperands(selector string, recv, arg *Object) error {
	if !recv.IsInteger() {
		return typeError(recv.Class().Name, selector, "receiver must be an Integer")
	}
	if !arg.IsInteger() {
		return typeError(recv.Class().Name, selector, "argument must be an Integer, got %s", arg.Class().Name)
	}
	return nil
}

func (ct *ClassTable) registerIntegerPrimitives() {
	t := ct.Builtins

	t.AddMethod1("Integer", "equalTo:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if !recv.IsInteger() || !arg.IsInteger() {
			return vm.False(), nil
		}
		return vm.Factory.Bool(recv.Int() == arg.Int()), nil
	})

	t.AddMethod1("Integer", "greaterThan:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if err := integerOperands("greaterThan:", recv, arg); err != nil {
			return nil, err
		}
		return vm.Factory.Bool(recv.Int() > arg.Int()), nil
	})

	// Arithmetic
	t.AddMethod1("Integer", "plus:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if err := integerOperands("plus:", recv, arg); err != nil {
			return nil, err
		}
		return vm.Factory.NewInteger(recv.Int() + arg.Int()), nil
	})

	t.AddMethod1("Integer", "minus:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if err := integerOperands("minus:", recv, arg); err != nil {
			return nil, err
		}
		return vm.Factory.NewInteger(recv.Int() - arg.Int()), nil
	})

	t.AddMethod1("Integer", "multiplyBy:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if err := integerOperands("multiplyBy:", recv, arg); err != nil {
			return nil, err
		}
		return vm.Factory.NewInteger(recv.Int() * arg.Int()), nil
	})

	// divBy: truncates toward zero.
	t.AddMethod1("Integer", "divBy:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if err := integerOperands("divBy:", recv, arg); err != nil {
			return nil, err
		}
		if arg.Int() == 0 {
			return nil, valueError(recv.Class().Name, "divBy:", "division by zero")
		}
		return vm.Factory.NewInteger(recv.Int() / arg.Int()), nil
	})

	// Conversion
	t.AddMethod0("Integer", "asString", func(vm *VM, recv *Object) (*Object, error) {
		if !recv.IsInteger() {
			return nil, typeError(recv.Class().Name, "asString", "receiver must be an Integer")
		}
		return vm.Factory.NewString(strconv.FormatInt(recv.Int(), 10)), nil
	})

	t.AddMethod0("Integer", "asInteger", func(vm *VM, recv *Object) (*Object, error) {
		return recv, nil
	})

	// timesRepeat: passes the 1-based counter to the block.
	t.AddMethod1("Integer", "timesRepeat:", func(vm *VM, recv, block *Object) (*Object, error) {
		if !recv.IsInteger() {
			return nil, typeError(recv.Class().Name, "timesRepeat:", "receiver must be an Integer")
		}
		last := vm.Nil()
		for i := int64(1); i <= recv.Int(); i++ {
			v, err := vm.Send(block, "value:", []*Object{vm.Factory.NewInteger(i)})
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	})

	t.AddMethod0("Integer", "isNumber", func(vm *VM, recv *Object) (*Object, error) {
		return vm.True(), nil
	})
}
