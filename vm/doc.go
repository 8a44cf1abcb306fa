// Package vm implements the SOL runtime.
//
// This package contains:
//   - the object model (Object, Class, Block) and the per-VM class table
//   - the built-in method table and the primitive class implementations
//   - message dispatch with attribute accessors, inheritance and super
//   - frames and the tree-walking interpreter that runs method and block
//     bodies
package vm
