package vm

import (
	"github.com/chazu/sol/pkg/ast"
)

// ---------------------------------------------------------------------------
// Activations
// ---------------------------------------------------------------------------

// ExecuteMethod runs a user method body against receiver.
func (vm *VM) ExecuteMethod(receiver *Object, m *ast.Method, args []*Object, super bool) (*Object, error) {
	return vm.ExecuteBlock(m.Body, receiver, args, super, nil)
}

// ExecuteBlock runs body in a new frame bound to self. lexical is the
// defining frame for block values and nil for methods. The frame is popped
// on every path. The value of the last statement is returned, or nil for
// an empty body.
func (vm *VM) ExecuteBlock(body *ast.Block, self *Object, args []*Object, super bool, lexical *Frame) (*Object, error) {
	frame, err := vm.pushFrame(self, super, lexical)
	if err != nil {
		return nil, err
	}
	defer vm.popFrame()

	for i, p := range body.Parameters {
		if i >= len(args) {
			return nil, doesNotUnderstand(self.Class().Name, "",
				"missing argument for parameter %s", p.Name)
		}
		frame.Set(p.Name, args[i])
	}

	result := vm.Nil()
	for _, stmt := range body.Statements {
		v, err := vm.Evaluate(stmt.Expr)
		if err != nil {
			return nil, err
		}
		if stmt.Variable != ast.DiscardName {
			frame.Set(stmt.Variable, v)
		}
		result = v
	}
	return result, nil
}

// CallBlock runs a Block value with args. The block runs against the
// self of the frame that is current when it is called.
func (vm *VM) CallBlock(block *Object, selector string, args []*Object) (*Object, error) {
	b := block.Block()
	if b == nil {
		return nil, typeError(block.Class().Name, selector, "receiver is not a block")
	}
	if b.Arity() != len(args) {
		return nil, doesNotUnderstand("Block", selector,
			"block takes %d arguments, got %d", b.Arity(), len(args))
	}
	self := vm.Nil()
	if vm.frame != nil {
		self = vm.frame.Self
	}
	return vm.ExecuteBlock(b.Node, self, args, false, b.Defining)
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Evaluate computes the value of an expression in the current frame.
func (vm *VM) Evaluate(expr ast.Expr) (*Object, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return vm.Factory.FromLiteral(e.Class, e.Value)

	case *ast.Variable:
		return vm.lookupVariable(e.Name)

	case *ast.Block:
		return vm.Factory.NewBlock(e, vm.frame), nil

	case *ast.MessageSend:
		receiver, err := vm.Evaluate(e.Receiver)
		if err != nil {
			return nil, err
		}
		super := false
		if v, ok := e.Receiver.(*ast.Variable); ok && v.IsSuper() {
			super = true
		}
		args := make([]*Object, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := vm.Evaluate(a)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return vm.send(receiver, e.Selector, args, super)

	default:
		return nil, internalError("unknown expression %T", expr)
	}
}

func (vm *VM) lookupVariable(name string) (*Object, error) {
	switch name {
	case "true":
		return vm.True(), nil
	case "false":
		return vm.False(), nil
	case "nil":
		return vm.Nil(), nil
	}
	if vm.frame == nil {
		return nil, internalError("variable %s used outside an activation", name)
	}
	if name == "self" || name == "super" {
		return vm.frame.Self, nil
	}
	if v, ok := vm.frame.Lookup(name, vm.Options.Closures); ok {
		return v, nil
	}
	return nil, doesNotUnderstand(vm.frame.Self.Class().Name, "", "variable %s is not defined", name)
}
