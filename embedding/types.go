package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
Table maps words to rows of an embedding matrix
*/
type Table struct {
	Vocab   map[string]int
	Vectors *mat.Dense
}

/*
NewTable checks that every vocabulary index addresses a row of vectors
*/
func NewTable(vocab map[string]int, vectors *mat.Dense) (*Table, error) {
	rows, _ := vectors.Dims()
	for word, idx := range vocab {
		if idx < 0 || idx >= rows {
			return nil, fmt.Errorf("%w: %q -> %d (rows=%d)", ErrIndexOutOfRange, word, idx, rows)
		}
	}
	return &Table{Vocab: vocab, Vectors: vectors}, nil
}

// Dim returns the vector dimension.
func (t *Table) Dim() int {
	_, cols := t.Vectors.Dims()
	return cols
}

// Len returns the number of rows.
func (t *Table) Len() int {
	rows, _ := t.Vectors.Dims()
	return rows
}

/*
Lookup returns the vector of word.

The slice aliases the matrix and must not be modified.
*/
func (t *Table) Lookup(word string) ([]float64, bool) {
	idx, ok := t.Vocab[word]
	if !ok {
		return nil, false
	}
	return t.Vectors.RawRowView(idx), true
}

/*
Mean returns the mean of all rows of the matrix
*/
func (t *Table) Mean() []float64 {
	rows, cols := t.Vectors.Dims()
	mean := make([]float64, cols)
	for i := 0; i < rows; i++ {
		floats.Add(mean, t.Vectors.RawRowView(i))
	}
	if rows > 0 {
		floats.Scale(1/float64(rows), mean)
	}
	return mean
}

/*
Subset returns a table holding only the given words, in the given order.
Words missing from t are returned separately; duplicates are kept once.
*/
func (t *Table) Subset(words []string) (*Table, []string) {
	vocab := make(map[string]int, len(words))
	var data []float64
	var missing []string

	for _, word := range words {
		if _, seen := vocab[word]; seen {
			continue
		}
		vec, ok := t.Lookup(word)
		if !ok {
			missing = append(missing, word)
			continue
		}
		vocab[word] = len(vocab)
		data = append(data, vec...)
	}

	if len(vocab) == 0 {
		return &Table{Vocab: vocab, Vectors: &mat.Dense{}}, missing
	}
	return &Table{Vocab: vocab, Vectors: mat.NewDense(len(vocab), t.Dim(), data)}, missing
}
