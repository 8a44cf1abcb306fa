package ast

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sol.ast")

var (
	// ErrMalformedXML is returned when the input is not well-formed XML.
	ErrMalformedXML = errors.New("malformed XML")

	// ErrInvalidStructure is returned when the XML is well-formed but does
	// not have the shape of a SOL program.
	ErrInvalidStructure = errors.New("invalid source structure")
)

// ---------------------------------------------------------------------------
// Raw XML shapes
// ---------------------------------------------------------------------------

type xmlProgram struct {
	XMLName     xml.Name   `xml:"program"`
	Language    string     `xml:"language,attr"`
	Description string     `xml:"description,attr"`
	Classes     []xmlClass `xml:"class"`
}

type xmlClass struct {
	Name    *string     `xml:"name,attr"`
	Parent  *string     `xml:"parent,attr"`
	Methods []xmlMethod `xml:"method"`
}

type xmlMethod struct {
	Selector *string    `xml:"selector,attr"`
	Blocks   []xmlBlock `xml:"block"`
}

type xmlBlock struct {
	Arity   *string     `xml:"arity,attr"`
	Params  []xmlParam  `xml:"parameter"`
	Assigns []xmlAssign `xml:"assign"`
}

type xmlParam struct {
	Name  *string `xml:"name,attr"`
	Order *string `xml:"order,attr"`
}

type xmlAssign struct {
	Order *string   `xml:"order,attr"`
	Vars  []xmlVar  `xml:"var"`
	Exprs []xmlExpr `xml:"expr"`
}

type xmlVar struct {
	Name *string `xml:"name,attr"`
}

type xmlLiteral struct {
	Class *string `xml:"class,attr"`
	Value *string `xml:"value,attr"`
}

type xmlSend struct {
	Selector *string   `xml:"selector,attr"`
	Exprs    []xmlExpr `xml:"expr"`
	Args     []xmlArg  `xml:"arg"`
}

type xmlArg struct {
	Order *string   `xml:"order,attr"`
	Exprs []xmlExpr `xml:"expr"`
}

type xmlUnknown struct {
	XMLName xml.Name
}

// xmlExpr holds exactly one of its children in a valid tree.
type xmlExpr struct {
	Literals []xmlLiteral `xml:"literal"`
	Vars     []xmlVar     `xml:"var"`
	Sends    []xmlSend    `xml:"send"`
	Blocks   []xmlBlock   `xml:"block"`
	Other    []xmlUnknown `xml:",any"`
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseXML reads a SOL program in its XML representation.
//
// Only direct children are considered at each level. Parameters,
// statements and arguments are ordered by their order attribute.
func ParseXML(r io.Reader) (*Program, error) {
	dec := xml.NewDecoder(r)
	var raw xmlProgram
	if err := dec.Decode(&raw); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
		}
		if strings.Contains(err.Error(), "expected element type <program>") {
			return nil, fmt.Errorf("%w: root element must be <program>", ErrInvalidStructure)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	// Anything after the root must still be well-formed.
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}
	}

	prog := &Program{Language: raw.Language, Description: raw.Description}
	for i := range raw.Classes {
		c, err := buildClass(&raw.Classes[i])
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, c)
	}
	log.Debugf("parsed program with %d classes", len(prog.Classes))
	return prog, nil
}

func structuref(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStructure, fmt.Sprintf(format, args...))
}

func buildClass(raw *xmlClass) (*Class, error) {
	if raw.Name == nil || *raw.Name == "" || raw.Parent == nil || *raw.Parent == "" {
		return nil, structuref("class: missing name or parent attribute")
	}
	c := &Class{Name: *raw.Name, Parent: *raw.Parent}
	for i := range raw.Methods {
		m, err := buildMethod(&raw.Methods[i])
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		c.Methods = append(c.Methods, m)
	}
	return c, nil
}

func buildMethod(raw *xmlMethod) (*Method, error) {
	if raw.Selector == nil || *raw.Selector == "" {
		return nil, structuref("method: missing selector attribute")
	}
	if len(raw.Blocks) != 1 {
		return nil, structuref("method %s: must contain exactly one block", *raw.Selector)
	}
	body, err := buildBlock(&raw.Blocks[0])
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", *raw.Selector, err)
	}
	if body.Arity != SelectorArity(*raw.Selector) {
		return nil, structuref("method %s: block arity %d does not match selector", *raw.Selector, body.Arity)
	}
	return &Method{Selector: *raw.Selector, Body: body}, nil
}

func parseOrder(s *string, what string) (int, error) {
	if s == nil {
		return 0, structuref("%s: missing order attribute", what)
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil || n < 1 {
		return 0, structuref("%s: invalid order %q", what, *s)
	}
	return n, nil
}

func buildBlock(raw *xmlBlock) (*Block, error) {
	if raw.Arity == nil {
		return nil, structuref("block: missing arity attribute")
	}
	arity, err := strconv.Atoi(strings.TrimSpace(*raw.Arity))
	if err != nil || arity < 0 {
		return nil, structuref("block: invalid arity %q", *raw.Arity)
	}
	b := &Block{Arity: arity}

	for i := range raw.Params {
		p := &raw.Params[i]
		if p.Name == nil || *p.Name == "" {
			return nil, structuref("parameter: missing name attribute")
		}
		order, err := parseOrder(p.Order, "parameter "+*p.Name)
		if err != nil {
			return nil, err
		}
		b.Parameters = append(b.Parameters, &Parameter{Name: *p.Name, Order: order})
	}
	sort.SliceStable(b.Parameters, func(i, j int) bool {
		return b.Parameters[i].Order < b.Parameters[j].Order
	})
	for i, p := range b.Parameters {
		if p.Order != i+1 {
			return nil, structuref("parameter %s: orders are not contiguous", p.Name)
		}
	}
	if len(b.Parameters) != arity {
		return nil, structuref("block: arity %d but %d parameters", arity, len(b.Parameters))
	}

	for i := range raw.Assigns {
		a, err := buildAssign(&raw.Assigns[i])
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, a)
	}
	sort.SliceStable(b.Statements, func(i, j int) bool {
		return b.Statements[i].Order < b.Statements[j].Order
	})
	return b, nil
}

func buildAssign(raw *xmlAssign) (*Assignment, error) {
	order, err := parseOrder(raw.Order, "assign")
	if err != nil {
		return nil, err
	}
	if len(raw.Vars) != 1 || raw.Vars[0].Name == nil || *raw.Vars[0].Name == "" {
		return nil, structuref("assign %d: must contain one named var", order)
	}
	if len(raw.Exprs) != 1 {
		return nil, structuref("assign %d: must contain one expr", order)
	}
	e, err := buildExpr(&raw.Exprs[0])
	if err != nil {
		return nil, err
	}
	return &Assignment{Order: order, Variable: *raw.Vars[0].Name, Expr: e}, nil
}

func buildExpr(raw *xmlExpr) (Expr, error) {
	n := len(raw.Literals) + len(raw.Vars) + len(raw.Sends) + len(raw.Blocks)
	if len(raw.Other) > 0 {
		return nil, structuref("expr: unknown element <%s>", raw.Other[0].XMLName.Local)
	}
	if n != 1 {
		return nil, structuref("expr: expected exactly one child, got %d", n)
	}

	switch {
	case len(raw.Literals) == 1:
		lit := raw.Literals[0]
		if lit.Class == nil || *lit.Class == "" {
			return nil, structuref("literal: missing class attribute")
		}
		value := ""
		if lit.Value != nil {
			value = *lit.Value
		}
		if *lit.Class == LiteralString {
			value = unescapeString(value)
		}
		return &Literal{Class: *lit.Class, Value: value}, nil

	case len(raw.Vars) == 1:
		v := raw.Vars[0]
		if v.Name == nil || *v.Name == "" {
			return nil, structuref("var: missing name attribute")
		}
		return &Variable{Name: *v.Name}, nil

	case len(raw.Sends) == 1:
		return buildSend(&raw.Sends[0])

	default:
		return buildBlock(&raw.Blocks[0])
	}
}

func buildSend(raw *xmlSend) (*MessageSend, error) {
	if raw.Selector == nil || *raw.Selector == "" {
		return nil, structuref("send: missing selector attribute")
	}
	sel := *raw.Selector
	if len(raw.Exprs) != 1 {
		return nil, structuref("send %s: must contain one receiver expr", sel)
	}
	recv, err := buildExpr(&raw.Exprs[0])
	if err != nil {
		return nil, err
	}

	type orderedArg struct {
		order int
		expr  Expr
	}
	args := make([]orderedArg, 0, len(raw.Args))
	for i := range raw.Args {
		a := &raw.Args[i]
		order, err := parseOrder(a.Order, "arg of "+sel)
		if err != nil {
			return nil, err
		}
		if len(a.Exprs) != 1 {
			return nil, structuref("arg %d of %s: must contain one expr", order, sel)
		}
		e, err := buildExpr(&a.Exprs[0])
		if err != nil {
			return nil, err
		}
		args = append(args, orderedArg{order, e})
	}
	sort.SliceStable(args, func(i, j int) bool { return args[i].order < args[j].order })
	if len(args) != SelectorArity(sel) {
		return nil, structuref("send %s: expected %d args, got %d", sel, SelectorArity(sel), len(args))
	}

	send := &MessageSend{Selector: sel, Receiver: recv}
	for _, a := range args {
		send.Args = append(send.Args, a.expr)
	}
	return send, nil
}

// unescapeString decodes the escape sequences SOL string literals keep in
// their XML form: \n, \' and \\. Unknown sequences are left as written.
func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case 'n':
			sb.WriteByte('\n')
		case '\'':
			sb.WriteByte('\'')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte(c)
			continue
		}
		i++
	}
	return sb.String()
}
