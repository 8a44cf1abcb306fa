package ast

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical encoding so equal trees produce equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("ast: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// wireVersion is bumped whenever the wire structs change shape.
const wireVersion = 1

// exprKind tags the variant carried by a wireExpr.
type exprKind uint8

const (
	exprLiteral exprKind = 1
	exprVar     exprKind = 2
	exprSend    exprKind = 3
	exprBlock   exprKind = 4
)

type wireProgram struct {
	Version     int         `cbor:"1,keyasint"`
	Language    string      `cbor:"2,keyasint,omitempty"`
	Description string      `cbor:"3,keyasint,omitempty"`
	Classes     []wireClass `cbor:"4,keyasint,omitempty"`
}

type wireClass struct {
	Name    string       `cbor:"1,keyasint"`
	Parent  string       `cbor:"2,keyasint"`
	Methods []wireMethod `cbor:"3,keyasint,omitempty"`
}

type wireMethod struct {
	Selector string    `cbor:"1,keyasint"`
	Body     wireBlock `cbor:"2,keyasint"`
}

type wireBlock struct {
	Arity      int          `cbor:"1,keyasint"`
	Parameters []string     `cbor:"2,keyasint,omitempty"` // in order
	Statements []wireAssign `cbor:"3,keyasint,omitempty"` // in order
}

type wireAssign struct {
	Variable string   `cbor:"1,keyasint"`
	Expr     wireExpr `cbor:"2,keyasint"`
}

// wireExpr is the envelope for every expression variant.
type wireExpr struct {
	Kind     exprKind   `cbor:"1,keyasint"`
	Class    string     `cbor:"2,keyasint,omitempty"` // literal class
	Text     string     `cbor:"3,keyasint,omitempty"` // literal value, var name or selector
	Receiver *wireExpr  `cbor:"4,keyasint,omitempty"`
	Args     []wireExpr `cbor:"5,keyasint,omitempty"`
	Block    *wireBlock `cbor:"6,keyasint,omitempty"`
}

// MarshalProgram serializes a Program to CBOR bytes.
func MarshalProgram(p *Program) ([]byte, error) {
	w := wireProgram{Version: wireVersion, Language: p.Language, Description: p.Description}
	for _, c := range p.Classes {
		wc := wireClass{Name: c.Name, Parent: c.Parent}
		for _, m := range c.Methods {
			body, err := toWireBlock(m.Body)
			if err != nil {
				return nil, fmt.Errorf("ast: marshal %s>>%s: %w", c.Name, m.Selector, err)
			}
			wc.Methods = append(wc.Methods, wireMethod{Selector: m.Selector, Body: body})
		}
		w.Classes = append(w.Classes, wc)
	}
	return cborEncMode.Marshal(&w)
}

// UnmarshalProgram deserializes a Program from CBOR bytes.
func UnmarshalProgram(data []byte) (*Program, error) {
	var w wireProgram
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("ast: unmarshal program: %w", err)
	}
	if w.Version != wireVersion {
		return nil, fmt.Errorf("ast: unsupported wire version %d", w.Version)
	}
	p := &Program{Language: w.Language, Description: w.Description}
	for _, wc := range w.Classes {
		c := &Class{Name: wc.Name, Parent: wc.Parent}
		for _, wm := range wc.Methods {
			body, err := fromWireBlock(&wm.Body)
			if err != nil {
				return nil, fmt.Errorf("ast: unmarshal %s>>%s: %w", wc.Name, wm.Selector, err)
			}
			c.Methods = append(c.Methods, &Method{Selector: wm.Selector, Body: body})
		}
		p.Classes = append(p.Classes, c)
	}
	return p, nil
}

func toWireBlock(b *Block) (wireBlock, error) {
	w := wireBlock{Arity: b.Arity, Parameters: b.ParamNames()}
	for _, s := range b.Statements {
		e, err := toWireExpr(s.Expr)
		if err != nil {
			return wireBlock{}, err
		}
		w.Statements = append(w.Statements, wireAssign{Variable: s.Variable, Expr: e})
	}
	return w, nil
}

func toWireExpr(e Expr) (wireExpr, error) {
	switch e := e.(type) {
	case *Literal:
		return wireExpr{Kind: exprLiteral, Class: e.Class, Text: e.Value}, nil
	case *Variable:
		return wireExpr{Kind: exprVar, Text: e.Name}, nil
	case *MessageSend:
		recv, err := toWireExpr(e.Receiver)
		if err != nil {
			return wireExpr{}, err
		}
		w := wireExpr{Kind: exprSend, Text: e.Selector, Receiver: &recv}
		for _, a := range e.Args {
			wa, err := toWireExpr(a)
			if err != nil {
				return wireExpr{}, err
			}
			w.Args = append(w.Args, wa)
		}
		return w, nil
	case *Block:
		b, err := toWireBlock(e)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: exprBlock, Block: &b}, nil
	default:
		return wireExpr{}, fmt.Errorf("unsupported expression %T", e)
	}
}

func fromWireBlock(w *wireBlock) (*Block, error) {
	b := &Block{Arity: w.Arity}
	for i, name := range w.Parameters {
		b.Parameters = append(b.Parameters, &Parameter{Name: name, Order: i + 1})
	}
	for i := range w.Statements {
		e, err := fromWireExpr(&w.Statements[i].Expr)
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, &Assignment{
			Order:    i + 1,
			Variable: w.Statements[i].Variable,
			Expr:     e,
		})
	}
	return b, nil
}

func fromWireExpr(w *wireExpr) (Expr, error) {
	switch w.Kind {
	case exprLiteral:
		return &Literal{Class: w.Class, Value: w.Text}, nil
	case exprVar:
		return &Variable{Name: w.Text}, nil
	case exprSend:
		if w.Receiver == nil {
			return nil, fmt.Errorf("send %s without receiver", w.Text)
		}
		recv, err := fromWireExpr(w.Receiver)
		if err != nil {
			return nil, err
		}
		s := &MessageSend{Selector: w.Text, Receiver: recv}
		for i := range w.Args {
			a, err := fromWireExpr(&w.Args[i])
			if err != nil {
				return nil, err
			}
			s.Args = append(s.Args, a)
		}
		return s, nil
	case exprBlock:
		if w.Block == nil {
			return nil, errors.New("block expression without body")
		}
		return fromWireBlock(w.Block)
	default:
		return nil, fmt.Errorf("unknown expression kind %d", w.Kind)
	}
}

// ---------------------------------------------------------------------------
// On-disk cache
// ---------------------------------------------------------------------------

// Cache stores parsed programs on disk, keyed by the SHA-256 of their XML
// source. A zero Dir disables the cache.
type Cache struct {
	Dir string
}

// Key returns the cache key for an XML source.
func Key(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(source []byte) string {
	return filepath.Join(c.Dir, Key(source)+".cbor")
}

// Load returns the cached program for source. The boolean is false on a
// miss; a corrupt entry is reported as an error.
func (c *Cache) Load(source []byte) (*Program, bool, error) {
	if c == nil || c.Dir == "" {
		return nil, false, nil
	}
	data, err := os.ReadFile(c.path(source))
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("cache miss %s", Key(source))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ast: reading cache: %w", err)
	}
	p, err := UnmarshalProgram(data)
	if err != nil {
		return nil, false, err
	}
	log.Debugf("cache hit %s", Key(source))
	return p, true, nil
}

// Store writes p under the key for source. The entry is written to a
// temporary file first and renamed into place.
func (c *Cache) Store(source []byte, p *Program) error {
	if c == nil || c.Dir == "" {
		return nil
	}
	data, err := MarshalProgram(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("ast: creating cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.Dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("ast: creating cache entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("ast: writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("ast: writing cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(source)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("ast: committing cache entry: %w", err)
	}
	return nil
}
