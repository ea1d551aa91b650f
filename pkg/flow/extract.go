package flow

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yashsidana/code-clarified/pkg/pysrc"
)

// Extract walks a parsed syntax tree and produces the flow structure for
// every function definition it contains.
//
// Functions are visited depth-first in document order; nested definitions
// become independent top-level entries keyed by their own name. Statements
// other than if/for/while/return yield no step and no error.
func Extract(tree *pysrc.Tree) *Structure {
	s := NewStructure()
	walkDefs(tree.Root(), tree.Source(), s)
	return s
}

// walkDefs recurses through the whole tree looking for function definitions.
// Recording happens before descending, so a nested function appears after
// its enclosing function.
func walkDefs(n *sitter.Node, src []byte, s *Structure) {
	if n == nil {
		return
	}
	if n.Type() == "function_definition" {
		s.Add(extractFunction(n, src, s))
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkDefs(n.Child(i), src, s)
	}
}

// extractFunction builds the FunctionFlow for one function_definition node.
func extractFunction(n *sitter.Node, src []byte, s *Structure) FunctionFlow {
	f := FunctionFlow{
		Name:   pysrc.Text(n.ChildByFieldName("name"), src),
		Params: extractParams(n.ChildByFieldName("parameters"), src),
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return f
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if step, ok := classify(stmt, src, s); ok {
			f.Steps = append(f.Steps, step)
		}
	}
	return f
}

// classify maps one body-level statement to its flow step, if any.
func classify(stmt *sitter.Node, src []byte, s *Structure) (Step, bool) {
	switch stmt.Type() {
	case "if_statement":
		return Decision(exprText(stmt.ChildByFieldName("condition"), src, s)), true

	case "for_statement":
		target := exprText(stmt.ChildByFieldName("left"), src, s)
		iterable := exprText(stmt.ChildByFieldName("right"), src, s)
		return ForLoop(target, iterable), true

	case "while_statement":
		return WhileLoop(exprText(stmt.ChildByFieldName("condition"), src, s)), true

	case "return_statement":
		if stmt.NamedChildCount() == 0 {
			return BareReturn(), true
		}
		return Return(exprText(stmt.NamedChild(0), src, s)), true
	}

	return Step{}, false
}

// extractParams returns parameter names in declared order.
// Wrapped forms (type annotations, defaults, splats) reduce to the
// underlying identifier.
func extractParams(params *sitter.Node, src []byte) []string {
	if params == nil {
		return nil
	}

	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, pysrc.Text(p, src))
		case "typed_parameter", "default_parameter", "typed_default_parameter",
			"list_splat_pattern", "dictionary_splat_pattern":
			if name := paramName(p, src); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// paramName digs the identifier out of a wrapped parameter form.
func paramName(p *sitter.Node, src []byte) string {
	if name := p.ChildByFieldName("name"); name != nil {
		return pysrc.Text(name, src)
	}
	for i := 0; i < int(p.NamedChildCount()); i++ {
		if c := p.NamedChild(i); c.Type() == "identifier" {
			return pysrc.Text(c, src)
		}
	}
	return ""
}

// exprText renders a sub-expression to source text, substituting
// [PlaceholderExpr] when the node is absent or cannot be rendered.
// The recovery is counted on the structure so callers can log it.
func exprText(n *sitter.Node, src []byte, s *Structure) string {
	if n == nil || n.IsMissing() {
		s.recovered++
		return PlaceholderExpr
	}
	text := pysrc.Text(n, src)
	if text == "" {
		s.recovered++
		return PlaceholderExpr
	}
	return text
}
