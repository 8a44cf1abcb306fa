package vm

import "strconv"

// ---------------------------------------------------------------------------
// String Primitives
// ---------------------------------------------------------------------------

// parseInteger accepts an optional sign followed by at least one ASCII
// digit and nothing else.
func parseInteger(s string) (int64, bool) {
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// substring returns the characters of s from 1-based start up to, but not
// including, end.
func substring(s string, start, end int64) string {
	if end <= start {
		return ""
	}
	runes := []rune(s)
	if start > int64(len(runes)) {
		return ""
	}
	from := start - 1
	to := end - 1
	if to > int64(len(runes)) {
		to = int64(len(runes))
	}
	return string(runes[from:to])
}

func (ct *ClassTable) registerStringPrimitives() {
	t := ct.Builtins

	t.AddMethod0("String", "asString", func(vm *VM, recv *Object) (*Object, error) {
		return recv, nil
	})

	t.AddMethod0("String", "print", func(vm *VM, recv *Object) (*Object, error) {
		if !recv.IsString() {
			return nil, typeError(recv.Class().Name, "print", "receiver must be a String")
		}
		if err := vm.write(recv.Str()); err != nil {
			return nil, err
		}
		return recv, nil
	})

	t.AddMethod1("String", "equalTo:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if !recv.IsString() || !arg.IsString() {
			return vm.False(), nil
		}
		return vm.Factory.Bool(recv.Str() == arg.Str()), nil
	})

	t.AddMethod0("String", "asInteger", func(vm *VM, recv *Object) (*Object, error) {
		if !recv.IsString() {
			return nil, typeError(recv.Class().Name, "asInteger", "receiver must be a String")
		}
		n, ok := parseInteger(recv.Str())
		if !ok {
			return vm.Nil(), nil
		}
		return vm.Factory.NewInteger(n), nil
	})

	t.AddMethod1("String", "concatenateWith:", func(vm *VM, recv, arg *Object) (*Object, error) {
		if !recv.IsString() {
			return nil, typeError(recv.Class().Name, "concatenateWith:", "receiver must be a String")
		}
		if !arg.IsString() {
			return vm.Nil(), nil
		}
		return vm.Factory.NewString(recv.Str() + arg.Str()), nil
	})

	t.AddMethod2("String", "startsWith:endsBefore:", func(vm *VM, recv, start, end *Object) (*Object, error) {
		if !recv.IsString() {
			return nil, typeError(recv.Class().Name, "startsWith:endsBefore:", "receiver must be a String")
		}
		if !start.IsInteger() || !end.IsInteger() {
			return vm.Nil(), nil
		}
		if start.Int() <= 0 || end.Int() <= 0 {
			return vm.Nil(), nil
		}
		return vm.Factory.NewString(substring(recv.Str(), start.Int(), end.Int())), nil
	})

	t.AddMethod0("String", "isString", func(vm *VM, recv *Object) (*Object, error) {
		return vm.True(), nil
	})

	// Class side
	t.AddClassMethod0("String", "read", func(vm *VM, recv *Object) (*Object, error) {
		line, err := vm.readLine()
		if err != nil {
			return nil, err
		}
		return vm.Factory.NewString(line), nil
	})
}
