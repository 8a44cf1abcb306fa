package vm

import (
	"testing"

	"github.com/chazu/sol/pkg/ast"
)

// ---------------------------------------------------------------------------
// Block evaluation tests
// ---------------------------------------------------------------------------

// summingBlock returns a block over n parameters yielding their sum, or 7
// when n is zero.
func summingBlock(n int) *ast.Block {
	names := []string{"a", "b", "c"}[:n]
	if n == 0 {
		return block(nil, assign("r", intLit(7)))
	}
	var sum ast.Expr = ref(names[0])
	for _, name := range names[1:] {
		sum = send(sum, "plus:", ref(name))
	}
	return block(names, assign("r", sum))
}

func TestBlockValueArities(t *testing.T) {
	tests := []struct {
		sel  string
		args []int64
		want int64
	}{
		{"value", nil, 7},
		{"value:", []int64{3}, 3},
		{"value:value:", []int64{3, 4}, 7},
		{"value:value:value:", []int64{1, 2, 3}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			vm := newTestVM(t)
			blk := vm.Factory.NewBlock(summingBlock(len(tt.args)), nil)
			args := make([]*Object, len(tt.args))
			for i, n := range tt.args {
				args[i] = vm.Factory.NewInteger(n)
			}
			got, err := vm.Send(blk, tt.sel, args)
			if err != nil {
				t.Fatalf("Send(%s): %v", tt.sel, err)
			}
			wantInt(t, got, tt.want)
			if vm.Depth() != 0 {
				t.Errorf("Depth = %d, want 0", vm.Depth())
			}
		})
	}
}

func TestBlockWrongArity(t *testing.T) {
	vm := newTestVM(t)
	blk := vm.Factory.NewBlock(summingBlock(2), nil)
	_, err := vm.Send(blk, "value:", []*Object{vm.Nil()})
	wantKind(t, err, ErrDoesNotUnderstand)
}

func TestBlockEmptyBodyReturnsNil(t *testing.T) {
	wantPrim(t, mustEval(t, send(block(nil), "value")), PrimNil)
}

func TestCallBlockRejectsNonBlock(t *testing.T) {
	vm := newTestVM(t)
	_, err := vm.CallBlock(vm.Factory.NewInteger(1), "value", nil)
	wantKind(t, err, ErrTypeError)
}

func TestBlockAsString(t *testing.T) {
	wantStr(t, mustEval(t, send(block(nil), "asString")), "a Block")
}

// ---------------------------------------------------------------------------
// whileTrue:
// ---------------------------------------------------------------------------

func TestBlockWhileTrue(t *testing.T) {
	// i := 0. [i < 5] whileTrue: [i := i + 1], with i kept as an attribute.
	cond := block(nil, assign("r", send(intLit(5), "greaterThan:", send(ref("self"), "i"))))
	body := block(nil, assign("r", send(ref("self"), "i:", send(send(ref("self"), "i"), "plus:", intLit(1)))))
	result := mustRun(t, mainRun(
		assign("_", send(ref("self"), "i:", intLit(0))),
		assign("last", send(cond, "whileTrue:", body)),
		assign("r", send(ref("self"), "i")),
	))
	wantInt(t, result, 5)
}

func TestBlockWhileTrueNeverRuns(t *testing.T) {
	result := mustEval(t, send(block(nil, assign("r", ref("false"))), "whileTrue:", block(nil)))
	wantPrim(t, result, PrimNil)
}

func TestBlockWhileTrueStopsOnNonBoolean(t *testing.T) {
	// Anything other than the true singleton ends the loop.
	result := mustEval(t, send(block(nil, assign("r", intLit(1))), "whileTrue:", block(nil)))
	wantPrim(t, result, PrimNil)
}

func TestBlockWhileTrueReturnsLastBodyValue(t *testing.T) {
	cond := block(nil, assign("r", send(intLit(3), "greaterThan:", send(ref("self"), "i"))))
	body := block(nil, assign("r", send(ref("self"), "i:", send(send(ref("self"), "i"), "plus:", intLit(1)))))
	result := mustRun(t, mainRun(
		assign("_", send(ref("self"), "i:", intLit(0))),
		assign("r", send(cond, "whileTrue:", body)),
	))
	wantInt(t, result, 3)
}
