package domain

import "errors"

// ErrSyntax is wrapped by parse failures caused by invalid source. A parser
// may return it alongside the definitions it could still recover.
var ErrSyntax = errors.New("source contains syntax errors")

// Definition is one function or class definition found in a source file,
// reduced to the facts enrichment and complexity estimation need.
//
// Class is the enclosing class when the definition sits directly in its
// body. Nested marks definitions inside a function body. Parameters are the
// positional parameter names, self/cls included. Source is the definition
// text, decorators included and comments removed.
type Definition struct {
	Name         string     `json:"name"`
	Kind         EntityKind `json:"kind"`
	Class        string     `json:"class,omitempty"`
	Nested       bool       `json:"nested,omitempty"`
	Line         int        `json:"line"`
	Depth        int        `json:"depth"`
	Parameters   []string   `json:"parameters,omitempty"`
	HasDocstring bool       `json:"has_docstring"`
	ReturnType   string     `json:"return_type,omitempty"`
	Branches     int        `json:"branches"`
	Calls        int        `json:"calls"`
	Returns      int        `json:"returns"`
	Source       string     `json:"-"`
}

// SourceFile is a parsed source file. Definitions are in breadth-first tree
// order, so the first match for a name is the shallowest one.
type SourceFile struct {
	Path        string       `json:"path"`
	Definitions []Definition `json:"definitions"`
}

// Find returns the first definition that an entity of the given kind and
// name resolves to. Methods resolve to function definitions whose enclosing
// class is className.
func (f *SourceFile) Find(kind EntityKind, name, className string) *Definition {
	if f == nil {
		return nil
	}
	for i := range f.Definitions {
		d := &f.Definitions[i]
		if d.Name != name {
			continue
		}
		switch kind {
		case KindFunction, KindClass:
			if d.Kind == kind {
				return d
			}
		case KindMethod:
			if d.Kind == KindFunction && d.Class == className {
				return d
			}
		}
	}
	return nil
}
