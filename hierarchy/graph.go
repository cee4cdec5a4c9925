// Package hierarchy models a lexical hierarchy: nodes (synsets) holding
// lemmas, connected by broader (hypernym) and narrower (hyponym) edges.
package hierarchy

import "errors"

// MWEJoiner joins the words of a multi-word lemma name.
const MWEJoiner = "_"

// NodeID identifies a node of a hierarchy.
type NodeID string

/*
Lemma is a word form of a node.

Name uses MWEJoiner between the words of a multi-word expression. Count is
the corpus usage frequency, possibly zero.
*/
type Lemma struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

/*
Graph is a read-only lexical hierarchy.

Nodes returns every node in a stable order. The slices returned by all
methods must not be modified.
*/
type Graph interface {
	Nodes() []NodeID
	Lemmas(id NodeID) []Lemma
	Broader(id NodeID) []NodeID
	Narrower(id NodeID) []NodeID
}

var (
	// ErrDuplicateNode is returned when a node id is added twice
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrNodeNotFound is returned when an edge references an unknown node
	ErrNodeNotFound = errors.New("node not found")
)
