package vm

import (
	"sort"

	"github.com/chazu/sol/pkg/ast"
)

// ---------------------------------------------------------------------------
// Class
// ---------------------------------------------------------------------------

// Class is a SOL class. Built-in classes carry a Primitive; user classes
// inherit the payload kind of their nearest built-in ancestor.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*ast.Method

	// Registry is the shared handle to the class table and its built-in
	// method table.
	Registry *ClassTable

	prim   Primitive
	object *Object
}

// NewClass creates a class with the given name and superclass. The
// superclass may be nil while classes are being linked.
func NewClass(name string, superclass *Class) *Class {
	c := &Class{
		Name:       name,
		Superclass: superclass,
		Methods:    make(map[string]*ast.Method),
	}
	c.object = &Object{class: c, isClass: true}
	return c
}

// Object returns the value that stands for this class in programs.
func (c *Class) Object() *Object { return c.object }

// IsSubclassOf returns true if c is other or inherits from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for current := c; current != nil; current = current.Superclass {
		if current == other {
			return true
		}
	}
	return false
}

// IsSuperclassOf returns true if c is other or one of its ancestors.
func (c *Class) IsSuperclassOf(other *Class) bool {
	return other.IsSubclassOf(c)
}

// Primitive returns the payload kind instances of c carry.
func (c *Class) Primitive() Primitive {
	for current := c; current != nil; current = current.Superclass {
		if current.prim != PrimNone {
			return current.prim
		}
	}
	return PrimNone
}

// NewInstance creates a fresh, attribute-less instance of c.
func (c *Class) NewInstance() *Object {
	return &Object{class: c, prim: c.Primitive()}
}

// AddMethod registers a user-defined method on this class.
func (c *Class) AddMethod(m *ast.Method) {
	c.Methods[m.Selector] = m
}

// Method returns the method defined directly on this class, or nil.
func (c *Class) Method(selector string) *ast.Method {
	return c.Methods[selector]
}

// LookupMethod walks the superclass chain for a user-defined method.
func (c *Class) LookupMethod(selector string) *ast.Method {
	for current := c; current != nil; current = current.Superclass {
		if m := current.Methods[selector]; m != nil {
			return m
		}
	}
	return nil
}

// Builtins returns the shared built-in method table, or nil for a class
// that was never registered.
func (c *Class) Builtins() *BuiltinTable {
	if c.Registry == nil {
		return nil
	}
	return c.Registry.Builtins
}

// ---------------------------------------------------------------------------
// ClassTable: per-VM class registry
// ---------------------------------------------------------------------------

// ClassTable maps class names to classes and owns the built-in method
// table. It is filled once at startup and only read afterwards.
type ClassTable struct {
	classes  map[string]*Class
	Builtins *BuiltinTable
}

// NewClassTable creates an empty class table with an empty built-in table.
func NewClassTable() *ClassTable {
	return &ClassTable{
		classes:  make(map[string]*Class),
		Builtins: NewBuiltinTable(),
	}
}

// Register adds a class to the table.
// Returns the previous class with this name, or nil.
func (ct *ClassTable) Register(c *Class) *Class {
	old := ct.classes[c.Name]
	ct.classes[c.Name] = c
	c.Registry = ct
	return old
}

// Lookup finds a class by name.
func (ct *ClassTable) Lookup(name string) (*Class, error) {
	c, ok := ct.classes[name]
	if !ok {
		return nil, doesNotUnderstand(name, "", "class not found")
	}
	return c, nil
}

// Get returns the named class, or nil.
func (ct *ClassTable) Get(name string) *Class {
	return ct.classes[name]
}

// Has returns true if a class with this name is registered.
func (ct *ClassTable) Has(name string) bool {
	_, ok := ct.classes[name]
	return ok
}

// Names returns the registered class names in sorted order.
func (ct *ClassTable) Names() []string {
	names := make([]string, 0, len(ct.classes))
	for name := range ct.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered classes.
func (ct *ClassTable) Len() int {
	return len(ct.classes)
}

// ---------------------------------------------------------------------------
// Bootstrap and user classes
// ---------------------------------------------------------------------------

var builtinClasses = []struct {
	name string
	prim Primitive
}{
	{"Nil", PrimNil},
	{"True", PrimTrue},
	{"False", PrimFalse},
	{"Integer", PrimInteger},
	{"String", PrimString},
	{"Block", PrimBlock},
}

// InitializeBuiltInClasses creates Object and its built-in subclasses and
// fills the built-in method table.
func (ct *ClassTable) InitializeBuiltInClasses() error {
	object := NewClass("Object", nil)
	ct.Register(object)
	for _, bc := range builtinClasses {
		c := NewClass(bc.name, object)
		c.prim = bc.prim
		ct.Register(c)
	}

	ct.registerObjectPrimitives()
	ct.registerNilPrimitives()
	ct.registerBooleanPrimitives()
	ct.registerIntegerPrimitives()
	ct.registerStringPrimitives()
	ct.registerBlockPrimitives()

	if !ct.Has("Object") {
		return internalError("built-in class Object was not initialized")
	}
	for _, bc := range builtinClasses {
		if !ct.Has(bc.name) {
			return internalError("built-in class %s was not initialized", bc.name)
		}
	}
	log.Debugf("bootstrapped %d classes, %d built-in methods", ct.Len(), ct.Builtins.Len())
	return nil
}

// CreateClassesFromAST registers user classes in two passes: every name
// first, then parent links and methods, so classes may refer to classes
// declared later.
func (ct *ClassTable) CreateClassesFromAST(classes []*ast.Class) error {
	created := make([]*Class, len(classes))
	for i, node := range classes {
		if ct.Has(node.Name) {
			return doesNotUnderstand(node.Name, "", "class is already defined")
		}
		c := NewClass(node.Name, nil)
		for _, m := range node.Methods {
			c.AddMethod(m)
		}
		ct.Register(c)
		created[i] = c
	}

	for i, node := range classes {
		parent := ct.Get(node.Parent)
		if parent == nil {
			return doesNotUnderstand(node.Name, "",
				"parent class %s not found for class %s", node.Parent, node.Name)
		}
		created[i].Superclass = parent
	}

	// Parent links may form a cycle among user classes.
	for _, c := range created {
		seen := map[*Class]bool{}
		for current := c; current != nil; current = current.Superclass {
			if seen[current] {
				return doesNotUnderstand(c.Name, "", "inheritance cycle")
			}
			seen[current] = true
		}
	}

	log.Debugf("created %d user classes", len(created))
	return nil
}
