package vm

import "github.com/chazu/sol/pkg/ast"

// Block is the payload of a Block value: the body to run and the frame
// that was current when the block expression was evaluated.
type Block struct {
	Node     *ast.Block
	Defining *Frame
}

// Arity returns the declared parameter count.
func (b *Block) Arity() int { return b.Node.Arity }
