package parser

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/openkraft/testgap/internal/domain"
)

// branchNodes are the statements counted as branches. elif clauses count
// separately because each one is its own conditional.
var branchNodes = map[string]bool{
	"if_statement":    true,
	"elif_clause":     true,
	"for_statement":   true,
	"while_statement": true,
}

// transparentNodes do not add a nesting level of their own.
var transparentNodes = map[string]bool{
	"module":               true,
	"block":                true,
	"decorated_definition": true,
	"else_clause":          true,
	"finally_clause":       true,
}

// PythonParser implements domain.SourceParser using tree-sitter.
type PythonParser struct{}

func New() *PythonParser {
	return &PythonParser{}
}

func (p *PythonParser) ParseFile(ctx context.Context, path string) (*domain.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(ctx, path, content)
}

// Parse extracts the function and class definitions of content. When the
// source has syntax errors the definitions outside the broken regions are
// still returned, together with an error wrapping domain.ErrSyntax.
func (p *PythonParser) Parse(ctx context.Context, path string, content []byte) (*domain.SourceFile, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parsing %s: empty tree", path)
	}

	w := &walker{content: content}
	w.walk(root, scope{})

	// Level order: shallower definitions first, document order within a level.
	sort.SliceStable(w.defs, func(i, j int) bool {
		return w.defs[i].Depth < w.defs[j].Depth
	})

	file := &domain.SourceFile{Path: path, Definitions: w.defs}
	if root.HasError() {
		return file, fmt.Errorf("parsing %s: %w", path, domain.ErrSyntax)
	}
	return file, nil
}

type scope struct {
	depth  int
	class  string
	nested bool
}

type walker struct {
	content []byte
	defs    []domain.Definition
}

func (w *walker) walk(n *sitter.Node, s scope) {
	if n.Type() == "ERROR" {
		return
	}
	child := s
	if !transparentNodes[n.Type()] {
		child.depth++
	}

	switch n.Type() {
	case "function_definition", "class_definition":
		// Definitions that contain a syntax error are not reported.
		if n.HasError() {
			return
		}
	}

	switch n.Type() {
	case "function_definition":
		w.defs = append(w.defs, w.function(n, s))
		child.class = ""
		child.nested = true
	case "class_definition":
		def := w.class(n, s)
		w.defs = append(w.defs, def)
		child.class = def.Name
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i), child)
	}
}

func (w *walker) function(n *sitter.Node, s scope) domain.Definition {
	def := w.definition(n, s, domain.KindFunction)
	def.Parameters = positionalParams(n.ChildByFieldName("parameters"), w.content)
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		def.ReturnType = rt.Content(w.content)
	}
	return def
}

func (w *walker) class(n *sitter.Node, s scope) domain.Definition {
	return w.definition(n, s, domain.KindClass)
}

func (w *walker) definition(n *sitter.Node, s scope, kind domain.EntityKind) domain.Definition {
	def := domain.Definition{
		Kind:   kind,
		Class:  s.class,
		Nested: s.nested,
		Line:   int(n.StartPoint().Row) + 1,
		Depth:  s.depth + 1,
	}
	if name := n.ChildByFieldName("name"); name != nil {
		def.Name = name.Content(w.content)
	}
	def.HasDocstring = hasDocstring(n.ChildByFieldName("body"), w.content)

	// Decorators belong to the definition for counting and rendering.
	span := n
	if parent := n.Parent(); parent != nil && parent.Type() == "decorated_definition" {
		span = parent
	}
	def.Source = withoutComments(span, w.content)
	countNodes(span, &def)
	return def
}

// withoutComments returns the text of n with every comment removed, so
// marker words in comments do not count as code.
func withoutComments(n *sitter.Node, content []byte) string {
	start, end := n.StartByte(), n.EndByte()
	var b strings.Builder
	pos := start
	for _, c := range comments(n, nil) {
		if c.StartByte() < pos || c.EndByte() > end {
			continue
		}
		b.Write(content[pos:c.StartByte()])
		pos = c.EndByte()
	}
	b.Write(content[pos:end])
	return b.String()
}

// comments lists the comment nodes under n in document order.
func comments(n *sitter.Node, acc []*sitter.Node) []*sitter.Node {
	if n.Type() == "comment" {
		return append(acc, n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		acc = comments(n.NamedChild(i), acc)
	}
	return acc
}

func countNodes(n *sitter.Node, def *domain.Definition) {
	switch t := n.Type(); {
	case branchNodes[t]:
		def.Branches++
	case t == "call":
		def.Calls++
	case t == "return_statement":
		def.Returns++
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		countNodes(n.NamedChild(i), def)
	}
}

// hasDocstring reports whether the first statement of body is a bare plain
// string literal. f-strings and bytes literals are not docstrings.
func hasDocstring(body *sitter.Node, content []byte) bool {
	if body == nil {
		return false
	}
	var first *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() != "comment" {
			first = c
			break
		}
	}
	if first == nil || first.Type() != "expression_statement" || first.NamedChildCount() != 1 {
		return false
	}

	expr := first.NamedChild(0)
	switch expr.Type() {
	case "string":
		return isPlainString(expr, content)
	case "concatenated_string":
		for i := 0; i < int(expr.NamedChildCount()); i++ {
			part := expr.NamedChild(i)
			if part.Type() == "string" && !isPlainString(part, content) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isPlainString(n *sitter.Node, content []byte) bool {
	text := n.Content(content)
	quote := strings.IndexAny(text, `"'`)
	if quote < 0 {
		return false
	}
	prefix := strings.ToLower(text[:quote])
	return !strings.ContainsAny(prefix, "fb")
}

// positionalParams lists the names of parameters that can be passed
// positionally. Collection stops at the first *args, bare * or **kwargs.
func positionalParams(params *sitter.Node, content []byte) []string {
	if params == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, p.Content(content))
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(content))
			}
		case "typed_parameter":
			if p.NamedChildCount() == 0 {
				continue
			}
			inner := p.NamedChild(0)
			if inner.Type() != "identifier" {
				return names
			}
			names = append(names, inner.Content(content))
		case "list_splat_pattern", "dictionary_splat_pattern", "keyword_separator":
			return names
		}
	}
	return names
}
