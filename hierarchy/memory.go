package hierarchy

import "fmt"

type node struct {
	lemmas   []Lemma
	broader  []NodeID
	narrower []NodeID
}

/*
Memory is an in-memory Graph.

Nodes are reported in insertion order.
*/
type Memory struct {
	order []NodeID
	nodes map[NodeID]*node
}

/*
NewMemory creates an empty hierarchy
*/
func NewMemory() *Memory {
	return &Memory{nodes: make(map[NodeID]*node)}
}

/*
AddNode adds a node with its lemmas
*/
func (m *Memory) AddNode(id NodeID, lemmas ...Lemma) error {
	if _, exists := m.nodes[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	m.nodes[id] = &node{lemmas: lemmas}
	m.order = append(m.order, id)
	return nil
}

/*
AddHypernym records parent as broader than child, and child as narrower than parent.

Repeated edges are stored once.
*/
func (m *Memory) AddHypernym(child, parent NodeID) error {
	c, ok := m.nodes[child]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, child)
	}
	p, ok := m.nodes[parent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, parent)
	}
	if contains(c.broader, parent) {
		return nil
	}
	c.broader = append(c.broader, parent)
	p.narrower = append(p.narrower, child)
	return nil
}

// Len returns the number of nodes.
func (m *Memory) Len() int {
	return len(m.order)
}

func (m *Memory) Nodes() []NodeID {
	return m.order
}

func (m *Memory) Lemmas(id NodeID) []Lemma {
	if n, ok := m.nodes[id]; ok {
		return n.lemmas
	}
	return nil
}

func (m *Memory) Broader(id NodeID) []NodeID {
	if n, ok := m.nodes[id]; ok {
		return n.broader
	}
	return nil
}

func (m *Memory) Narrower(id NodeID) []NodeID {
	if n, ok := m.nodes[id]; ok {
		return n.narrower
	}
	return nil
}

func contains(ids []NodeID, id NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
