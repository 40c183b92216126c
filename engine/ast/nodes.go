package ast

import (
	"reflect"
	"strings"

	"github.com/omniql-engine/sqlkit/mapping"
)

// ============================================================================
// CONDITION TREE - AND/OR combined WHERE predicates
// ============================================================================

// Combinator joins a node to the nodes rendered before it.
type Combinator string

const (
	And Combinator = "AND"
	Or  Combinator = "OR"
)

func (c Combinator) keyword() string {
	if kw, ok := mapping.Combinators[strings.ToUpper(string(c))]; ok {
		return kw
	}
	return "AND"
}

// Node is either a *Leaf or a *Group.
type Node interface {
	node()
	Combinator() Combinator
}

// Leaf is a single comparison. A leaf without an operator is a raw expression
// rendered in parentheses.
type Leaf struct {
	Logic    Combinator
	Field    string
	Operator string
	Value    any
}

// Group is a nested sub-tree rendered in parentheses.
type Group struct {
	Logic Combinator
	Tree  *Tree
}

func (*Leaf) node()  {}
func (*Group) node() {}

func (l *Leaf) Combinator() Combinator  { return l.Logic }
func (g *Group) Combinator() Combinator { return g.Logic }

// Tree holds nodes in insertion order.
type Tree struct {
	nodes []Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add appends a comparison leaf.
func (t *Tree) Add(logic Combinator, field, operator string, value any) *Tree {
	t.nodes = append(t.nodes, &Leaf{Logic: logic, Field: field, Operator: operator, Value: value})
	return t
}

// AddRaw appends a raw expression leaf.
func (t *Tree) AddRaw(logic Combinator, expr string) *Tree {
	t.nodes = append(t.nodes, &Leaf{Logic: logic, Field: expr})
	return t
}

// AddGroup appends sub as a parenthesized group. sub is copied.
func (t *Tree) AddGroup(logic Combinator, sub *Tree) *Tree {
	if sub == nil {
		return t
	}
	t.nodes = append(t.nodes, &Group{Logic: logic, Tree: sub.Clone()})
	return t
}

// Merge appends pre-built leaves in order.
func (t *Tree) Merge(leaves ...Leaf) *Tree {
	for i := range leaves {
		l := leaves[i]
		t.nodes = append(t.nodes, &l)
	}
	return t
}

// Len returns the number of top-level nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Clone deep-copies the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return NewTree()
	}
	c := &Tree{nodes: make([]Node, 0, len(t.nodes))}
	for _, n := range t.nodes {
		switch v := n.(type) {
		case *Leaf:
			l := *v
			c.nodes = append(c.nodes, &l)
		case *Group:
			c.nodes = append(c.nodes, &Group{Logic: v.Logic, Tree: v.Tree.Clone()})
		}
	}
	return c
}

// Render returns " WHERE <clause>" or "" for an empty tree.
func (t *Tree) Render() string {
	clause := t.Clause()
	if clause == "" {
		return ""
	}
	return " WHERE " + clause
}

// Clause renders the predicate without the WHERE keyword.
// The first rendered node never carries its combinator; empty groups are skipped.
func (t *Tree) Clause() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, n := range t.nodes {
		var part string
		switch v := n.(type) {
		case *Leaf:
			part = renderLeaf(v)
		case *Group:
			sub := v.Tree.Clause()
			if sub == "" {
				continue
			}
			part = "(" + sub + ")"
		}
		if sb.Len() > 0 {
			sb.WriteString(" " + n.Combinator().keyword() + " ")
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func renderLeaf(l *Leaf) string {
	op := mapping.NormalizeOperator(l.Operator)
	if op == "" {
		return "(" + l.Field + ")"
	}
	field := EscapeIdentifier(l.Field)
	if mapping.IsNullOperator(op) && l.Value == nil {
		return field + " " + op
	}
	values, ok := listValues(l.Value)
	if !ok && mapping.IsListOperator(op) {
		values, ok = []any{l.Value}, true
	}
	if ok {
		if len(values) == 0 {
			return "FALSE"
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = QuoteLiteral(v)
		}
		return field + " " + op + " (" + strings.Join(quoted, ",") + ")"
	}
	return field + " " + op + " " + QuoteLiteral(l.Value)
}

// listValues flattens any slice except []byte.
func listValues(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if _, isBytes := v.([]byte); isBytes {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
