// Package pysrc parses raw Python source text into a syntax tree.
//
// This package is the input boundary of the analysis pipeline: it owns the
// tree-sitter parser, translates tree-sitter's error-tolerant output into a
// hard accept/reject decision, and hands downstream components a tree they
// can assume is valid. Components past this boundary never see raw text.
//
// A fresh parser is created per call; tree-sitter parsers are not safe for
// concurrent use, and per-call construction keeps concurrent analysis
// requests fully independent.
package pysrc

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/yashsidana/code-clarified/pkg/errors"
)

// Tree wraps a parsed syntax tree together with the source bytes it was
// parsed from. Node text extraction needs both.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses Python source into a syntax tree.
//
// tree-sitter always produces a tree, marking unparseable regions with
// ERROR and missing nodes rather than failing. Parse converts the first
// such region into a PARSE_FAILED error with its position, matching the
// contract that malformed input never reaches the extractor.
//
// The caller must Close the returned tree.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailed, err, "parse source")
	}

	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		tree.Close()
		if bad != nil {
			return nil, errors.New(errors.ErrCodeParseFailed,
				"invalid Python syntax at line %d, column %d",
				bad.StartPoint().Row+1, bad.StartPoint().Column+1)
		}
		return nil, errors.New(errors.ErrCodeParseFailed, "invalid Python syntax")
	}

	return &Tree{tree: tree, src: src}, nil
}

// Root returns the root node of the parsed tree.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the source bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.src
}

// Close releases the tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Text extracts the source text spanned by a node.
// Returns "" for nil nodes or spans outside the source bounds.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start >= uint32(len(src)) || end > uint32(len(src)) {
		return ""
	}
	return string(src[start:end])
}

// firstError finds the first ERROR or missing node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
