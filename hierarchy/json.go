package hierarchy

import (
	"encoding/json"
	"errors"
	"io"

	"wordnet-walk/input"
)

/*
jsonNode is one node of the JSON hierarchy file:

	{"nodes": [{"id": "dog.n.01", "lemmas": [{"name": "dog", "count": 42}], "hypernyms": ["canine.n.02"]}]}
*/
type jsonNode struct {
	ID        NodeID   `json:"id"`
	Lemmas    []Lemma  `json:"lemmas"`
	Hypernyms []NodeID `json:"hypernyms"`
}

type jsonFile struct {
	Nodes []jsonNode `json:"nodes"`
}

/*
LoadJSON reads a hierarchy from a JSON file
*/
func LoadJSON(path string) (*Memory, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadJSON(f, path)
}

/*
ReadJSON reads a JSON hierarchy from r; path names the input in errors.

Hyponym edges are derived from the hypernym lists.
*/
func ReadJSON(r io.Reader, path string) (*Memory, error) {
	var file jsonFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, &input.RecordError{Path: path, Msg: err.Error(), Err: input.ErrMalformedRecord}
	}
	if len(file.Nodes) == 0 {
		return nil, input.Empty(path)
	}

	m := NewMemory()
	for _, n := range file.Nodes {
		if n.ID == "" {
			return nil, &input.RecordError{Path: path, Msg: "node without id", Err: input.ErrMalformedRecord}
		}
		if err := m.AddNode(n.ID, n.Lemmas...); err != nil {
			return nil, &input.RecordError{Path: path, Msg: err.Error(), Err: input.ErrMalformedRecord}
		}
	}
	for _, n := range file.Nodes {
		for _, parent := range n.Hypernyms {
			if err := m.AddHypernym(n.ID, parent); err != nil {
				if errors.Is(err, ErrNodeNotFound) {
					return nil, &input.RecordError{Path: path, Msg: "hypernym of " + string(n.ID) + ": " + err.Error(), Err: input.ErrMalformedRecord}
				}
				return nil, err
			}
		}
	}
	return m, nil
}
