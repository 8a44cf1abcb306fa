package vm

import (
	"strings"

	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// Message dispatch
// ---------------------------------------------------------------------------

// Send dispatches selector to receiver with already-evaluated arguments.
func (vm *VM) Send(receiver *Object, selector string, args []*Object) (*Object, error) {
	return vm.send(receiver, selector, args, false)
}

// SendSuper dispatches selector starting the lookup at the parent of the
// receiver's class.
func (vm *VM) SendSuper(receiver *Object, selector string, args []*Object) (*Object, error) {
	return vm.send(receiver, selector, args, true)
}

// send resolves a message in this order:
//
//  1. attribute read (no arguments, not super, attribute present)
//  2. one walk of the class chain; at each class the user method, then the
//     built-in registered for that class (class side for class objects)
//  3. attribute write (one argument, selector ends in a colon, not super)
//  4. DoesNotUnderstand
//
// With SettersEager the attribute write is tried before step 2.
func (vm *VM) send(receiver *Object, selector string, args []*Object, super bool) (*Object, error) {
	debug := vm.log.AllowLevel(commonlog.Debug)

	if len(args) == 0 && !super {
		if v, ok := receiver.Attr(selector); ok {
			if debug {
				vm.log.Debugf("%s %s: attribute read", receiver, selector)
			}
			return v, nil
		}
	}

	setter := !super && len(args) == 1 && strings.HasSuffix(selector, ":")
	if setter && vm.Options.Setters == SettersEager {
		return vm.storeAttr(receiver, selector, args[0], debug), nil
	}

	start := receiver.Class()
	if super {
		start = start.Superclass
	}
	classSide := receiver.IsClassObject()
	builtins := vm.Classes.Builtins

	for c := start; c != nil; c = c.Superclass {
		if !classSide {
			if m := c.Methods[selector]; m != nil {
				if debug {
					vm.log.Debugf("%s %s: method in %s", receiver, selector, c.Name)
				}
				if m.Body.Arity != len(args) {
					return nil, doesNotUnderstand(receiver.Class().Name, selector,
						"method expects %d arguments, got %d", m.Body.Arity, len(args))
				}
				return vm.ExecuteMethod(receiver, m, args, super)
			}
		}
		if b := builtins.Lookup(c.Name, selector, classSide); b != nil {
			if debug {
				vm.log.Debugf("%s %s: built-in of %s", receiver, selector, c.Name)
			}
			if b.Arity() != len(args) {
				return nil, doesNotUnderstand(receiver.Class().Name, selector,
					"expected %d arguments, got %d", b.Arity(), len(args))
			}
			return b.Invoke(vm, receiver, args)
		}
	}

	if setter {
		return vm.storeAttr(receiver, selector, args[0], debug), nil
	}

	return nil, doesNotUnderstand(receiver.Class().Name, selector,
		"message %s not understood by %s", selector, receiver)
}

func (vm *VM) storeAttr(receiver *Object, selector string, value *Object, debug bool) *Object {
	name := strings.TrimSuffix(selector, ":")
	if debug {
		vm.log.Debugf("%s %s: attribute write", receiver, selector)
	}
	return receiver.SetAttr(name, value)
}
