package vm

// ---------------------------------------------------------------------------
// Frame: one method or block activation
// ---------------------------------------------------------------------------

// Frame holds the locals of one activation. Parent is the calling frame
// and is restored when the activation exits. Lexical is the frame a block
// was defined in; it is nil for method activations.
type Frame struct {
	Self    *Object
	Super   bool
	Parent  *Frame
	Lexical *Frame
	Depth   int

	locals map[string]*Object
}

// NewFrame creates a frame with self pre-bound.
func NewFrame(self *Object, super bool, parent, lexical *Frame) *Frame {
	f := &Frame{
		Self:    self,
		Super:   super,
		Parent:  parent,
		Lexical: lexical,
		locals:  map[string]*Object{"self": self},
	}
	if parent != nil {
		f.Depth = parent.Depth + 1
	}
	return f
}

// Set binds name in this frame.
func (f *Frame) Set(name string, value *Object) {
	f.locals[name] = value
}

// Local returns a name bound directly in this frame.
func (f *Frame) Local(name string) (*Object, bool) {
	v, ok := f.locals[name]
	return v, ok
}

// Has reports whether name is bound directly in this frame.
func (f *Frame) Has(name string) bool {
	_, ok := f.locals[name]
	return ok
}

// Lookup resolves a variable. Under the dynamic policy only this frame is
// consulted; under the lexical policy the defining frames of enclosing
// blocks are searched outward.
func (f *Frame) Lookup(name string, policy ClosurePolicy) (*Object, bool) {
	if v, ok := f.locals[name]; ok {
		return v, true
	}
	if policy != ClosuresLexical {
		return nil, false
	}
	for env := f.Lexical; env != nil; env = env.Lexical {
		if v, ok := env.locals[name]; ok {
			return v, true
		}
	}
	return nil, false
}
