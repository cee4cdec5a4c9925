package embedding

import (
	"gonum.org/v1/gonum/floats"
)

/*
Concat returns the concatenation of a and b in a new slice
*/
func Concat(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

/*
CosineSimilarity calculates the cosine similarity between two vectors

Returns:
float64 - A value between -1 and 1, where 1 means identical direction,
0 means orthogonal, and -1 means opposite directions. A zero vector has
similarity 0 with everything.
*/
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrInvalidDimensions
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	similarity := floats.Dot(a, b) / (normA * normB)

	// Correct for floating point precision issues
	if similarity > 1.0 {
		similarity = 1.0
	} else if similarity < -1.0 {
		similarity = -1.0
	}

	return similarity, nil
}
