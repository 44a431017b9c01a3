package ccg

import (
	"strings"
)

// LeafRule is the rule label of nodes built from lexicon entries
const LeafRule = "Leaf"

// Node represents a single node in a derivation tree
type Node struct {
	// Children nodes
	Children []*Node

	// Symbol in current node, the category or the word
	Symbol string

	// Category of the node, nil for word nodes
	Category Category

	// Rule tag of the node, LeafRule for lexical nodes, empty for word nodes
	Rule string
}

// Tree represents a derivation tree
type Tree struct {
	*Node
}

// BuildTree expands the backpointers of c into a derivation tree. Shared
// constituents are expanded once per occurrence
func BuildTree(c *Constituent) *Tree {
	return &Tree{Node: buildNode(c)}
}

func buildNode(c *Constituent) *Node {
	if c.IsLeaf() {
		word := &Node{Symbol: c.Word}
		return &Node{
			Children: []*Node{word},
			Symbol:   c.Category.String(),
			Category: c.Category,
			Rule:     LeafRule,
		}
	}

	children := []*Node{}
	for _, child := range c.Children() {
		children = append(children, buildNode(child))
	}
	return &Node{
		Children: children,
		Symbol:   c.Category.String(),
		Category: c.Category,
		Rule:     c.Rule.Tag(),
	}
}

// Walk calls f for n and its descendants in pre-order
func (n *Node) Walk(f func(*Node)) {
	f(n)
	for _, child := range n.Children {
		child.Walk(f)
	}
}

// Words returns the words under n, left to right
func (n *Node) Words() []string {
	words := []string{}
	n.Walk(func(node *Node) {
		if node.Children == nil {
			words = append(words, node.Symbol)
		}
	})
	return words
}

// Convert the node to string
func (n *Node) String() string {
	return n.repr(0)
}

// repr get the string representation of the node recursively
func (n *Node) repr(level int) string {
	// Don't wrap with parentheses when it's a word
	prefix := strings.Repeat(" ", level*2)
	if level != 0 {
		prefix = "\n" + prefix
	}

	if n.Children == nil {
		return prefix + n.Symbol
	}

	label := n.Symbol
	if n.Rule != "" {
		label += " " + n.Rule
	}
	childrenReprs := []string{}
	for _, child := range n.Children {
		childrenReprs = append(childrenReprs, child.repr(level+1))
	}
	return prefix + "(" + label + strings.Join(childrenReprs, "") + ")"
}
