package core

import "github.com/leapstack-labs/nail/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// GetSpan returns the source range the node was parsed from.
	GetSpan() token.Span
}

// NodeInfo carries the source span of a node and implements Node.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

// SetSpan records the source span of the node.
func (n *NodeInfo) SetSpan(span token.Span) {
	n.Span = span
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	String() string
	exprNode() // Marker method to distinguish expressions
}

// Command is a marker interface for top-level statements.
type Command interface {
	Node
	commandNode() // Marker method to distinguish commands
}
