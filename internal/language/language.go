package language

import (
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// Error is the parser's located error type.
type Error = gqlerror.Error

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SourcePosition locates a node in the query source. Line and Column are
// 1-based; Offset is a byte offset into the input.
type SourcePosition struct {
	Offset int `json:"-"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// PositionOf converts a parser position. A nil position yields the zero value.
func PositionOf(p *Position) SourcePosition {
	if p == nil {
		return SourcePosition{}
	}
	return SourcePosition{Offset: byteOffset(p), Line: p.Line, Column: p.Column}
}

// byteOffset converts the parser's rune offset into a byte offset.
func byteOffset(p *Position) int {
	if p.Src == nil || p.Start <= 0 {
		return p.Start
	}
	runes := 0
	for i := range p.Src.Input {
		if runes == p.Start {
			return i
		}
		runes++
	}
	return len(p.Src.Input)
}

// DefinitionNode is either an *OperationDefinition or a *FragmentDefinition.
type DefinitionNode interface {
	GetPosition() *Position
}

type operationNode struct{ *OperationDefinition }

func (o operationNode) GetPosition() *Position { return o.Position }

type fragmentNode struct{ *FragmentDefinition }

func (f fragmentNode) GetPosition() *Position { return f.Position }

// Definitions returns the operations and fragments of doc interleaved in
// source order. The parser stores them in two separate lists.
func Definitions(doc *QueryDocument) []DefinitionNode {
	out := make([]DefinitionNode, 0, len(doc.Operations)+len(doc.Fragments))
	for _, op := range doc.Operations {
		out = append(out, operationNode{op})
	}
	for _, f := range doc.Fragments {
		out = append(out, fragmentNode{f})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return start(out[i].GetPosition()) < start(out[j].GetPosition())
	})
	return out
}

// AsOperation unwraps a definition produced by Definitions.
func AsOperation(d DefinitionNode) (*OperationDefinition, bool) {
	o, ok := d.(operationNode)
	if !ok {
		return nil, false
	}
	return o.OperationDefinition, true
}

// AsFragment unwraps a definition produced by Definitions.
func AsFragment(d DefinitionNode) (*FragmentDefinition, bool) {
	f, ok := d.(fragmentNode)
	if !ok {
		return nil, false
	}
	return f.FragmentDefinition, true
}

func start(p *Position) int {
	if p == nil {
		return 0
	}
	return p.Start
}
