package vm

import (
	"fmt"
	"io"
)

// ClosurePolicy selects how a block body resolves names it does not bind
// itself.
type ClosurePolicy string

const (
	// ClosuresDynamic resolves names in the block's own activation only.
	ClosuresDynamic ClosurePolicy = "dynamic"
	// ClosuresLexical also searches the frames the block was defined in.
	ClosuresLexical ClosurePolicy = "lexical"
)

// SetterPolicy selects when a one-argument keyword send falls back to
// storing an attribute.
type SetterPolicy string

const (
	// SettersFallback stores an attribute only when no method matches.
	SettersFallback SetterPolicy = "fallback"
	// SettersEager stores an attribute before any method lookup.
	SettersEager SetterPolicy = "eager"
)

// Options configures a VM.
type Options struct {
	Closures ClosurePolicy
	Setters  SetterPolicy
	// MaxDepth limits nested activations; zero means no limit.
	MaxDepth int
}

// DefaultOptions returns the options a VM uses when none are given.
func DefaultOptions() Options {
	return Options{Closures: ClosuresDynamic, Setters: SettersFallback}
}

// withDefaults fills unset policies.
func (o Options) withDefaults() Options {
	if o.Closures == "" {
		o.Closures = ClosuresDynamic
	}
	if o.Setters == "" {
		o.Setters = SettersFallback
	}
	return o
}

// Validate rejects unknown policies and a negative depth.
func (o Options) Validate() error {
	switch o.Closures {
	case ClosuresDynamic, ClosuresLexical:
	default:
		return fmt.Errorf("unknown closure policy %q", o.Closures)
	}
	switch o.Setters {
	case SettersFallback, SettersEager:
	default:
		return fmt.Errorf("unknown setter policy %q", o.Setters)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", o.MaxDepth)
	}
	return nil
}

// Option configures a VM at construction.
type Option func(*VM)

// WithOptions replaces the runtime options.
func WithOptions(o Options) Option {
	return func(vm *VM) { vm.Options = o }
}

// WithInput sets the source String read consumes lines from.
func WithInput(r LineReader) Option {
	return func(vm *VM) { vm.input = r }
}

// WithOutput sets where String print writes.
func WithOutput(w io.Writer) Option {
	return func(vm *VM) { vm.output = w }
}
