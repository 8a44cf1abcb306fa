package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/sol/pkg/ast"
)

var log = commonlog.GetLogger("sol.vm")

// ---------------------------------------------------------------------------
// VM: one program execution
// ---------------------------------------------------------------------------

// VM holds everything one program execution needs. VMs share nothing, so
// several can run side by side in one process.
type VM struct {
	// ID tags this VM's log lines.
	ID string

	Classes *ClassTable
	Factory *Factory
	Options Options

	input  LineReader
	output io.Writer

	frame *Frame
	depth int

	log commonlog.Logger
}

// NewVM creates and bootstraps a VM.
func NewVM(opts ...Option) (*VM, error) {
	vm := &VM{
		ID:      uuid.NewString(),
		Classes: NewClassTable(),
		Options: DefaultOptions(),
		input:   NewLineReader(strings.NewReader("")),
		output:  io.Discard,
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.Options = vm.Options.withDefaults()
	if err := vm.Options.Validate(); err != nil {
		return nil, internalError("%v", err)
	}
	vm.log = commonlog.NewKeyValueLogger(log, "vm", vm.ID)

	if err := vm.Classes.InitializeBuiltInClasses(); err != nil {
		return nil, err
	}
	vm.Factory = NewFactory(vm.Classes)
	// Create the singletons up front so they exist before any user code.
	vm.Factory.Nil()
	vm.Factory.True()
	vm.Factory.False()

	vm.log.Debug("vm created",
		"closures", string(vm.Options.Closures),
		"setters", string(vm.Options.Setters),
		"maxDepth", vm.Options.MaxDepth)
	return vm, nil
}

// Builtins returns the VM's built-in method table.
func (vm *VM) Builtins() *BuiltinTable { return vm.Classes.Builtins }

// Nil, True and False return the VM's singletons.
func (vm *VM) Nil() *Object   { return vm.Factory.Nil() }
func (vm *VM) True() *Object  { return vm.Factory.True() }
func (vm *VM) False() *Object { return vm.Factory.False() }

// CurrentFrame returns the active frame, or nil outside any activation.
func (vm *VM) CurrentFrame() *Frame { return vm.frame }

// Depth returns the number of active frames.
func (vm *VM) Depth() int { return vm.depth }

// Load creates the program's classes.
func (vm *VM) Load(prog *ast.Program) error {
	return vm.Classes.CreateClassesFromAST(prog.Classes)
}

// Run loads prog, instantiates Main and sends it run. The value of run's
// last statement is the result.
func (vm *VM) Run(prog *ast.Program) (*Object, error) {
	if err := vm.Load(prog); err != nil {
		return nil, err
	}
	main, err := vm.Classes.Lookup("Main")
	if err != nil {
		return nil, doesNotUnderstand("Main", "", "class Main not found")
	}
	run := main.LookupMethod("run")
	if run == nil {
		return nil, doesNotUnderstand("Main", "run", "method run not found in class Main")
	}
	instance := vm.Factory.New(main)

	vm.log.Debug("running program", "classes", len(prog.Classes))
	result, err := vm.ExecuteMethod(instance, run, nil, false)
	if err != nil {
		vm.log.Debugf("program failed: %v", err)
		return nil, err
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Frame stack
// ---------------------------------------------------------------------------

func (vm *VM) pushFrame(self *Object, super bool, lexical *Frame) (*Frame, error) {
	if vm.Options.MaxDepth > 0 && vm.depth >= vm.Options.MaxDepth {
		return nil, internalError("activation depth limit %d exceeded", vm.Options.MaxDepth)
	}
	f := NewFrame(self, super, vm.frame, lexical)
	vm.frame = f
	vm.depth++
	if vm.log.AllowLevel(commonlog.Debug) {
		vm.log.Debugf("push frame depth=%d self=%s", vm.depth, self)
	}
	return f, nil
}

func (vm *VM) popFrame() {
	if vm.frame == nil {
		return
	}
	vm.frame = vm.frame.Parent
	vm.depth--
	if vm.log.AllowLevel(commonlog.Debug) {
		vm.log.Debugf("pop frame depth=%d", vm.depth)
	}
}

// write sends program output to the configured writer.
func (vm *VM) write(s string) error {
	if _, err := io.WriteString(vm.output, s); err != nil {
		return internalError("writing output: %v", err)
	}
	return nil
}

// readLine reads one input line; end of input yields "".
func (vm *VM) readLine() (string, error) {
	line, ok, err := vm.input.ReadLine()
	if err != nil {
		return "", internalError("reading input: %v", err)
	}
	if !ok {
		return "", nil
	}
	return line, nil
}

func (vm *VM) String() string {
	return fmt.Sprintf("VM(%s)", vm.ID)
}
