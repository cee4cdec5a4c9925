package embedding

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"wordnet-walk/input"
)

/*
ReadWord2Vec reads a word2vec binary file into a table.

Layout: header "count dim\n", then per word the word bytes terminated by a
space followed by dim little-endian float32 values. An optional newline after
each vector is tolerated. With lower set words are lower-cased; the first
occurrence of a folded word wins.
*/
func ReadWord2Vec(r io.Reader, path string, lower bool) (*Table, error) {
	reader := bufio.NewReader(r)

	// Read word count and vector dimension
	var wordCount, vectorDim int
	if _, err := fmt.Fscanf(reader, "%d %d", &wordCount, &vectorDim); err != nil {
		return nil, input.Malformed(path, 1, "bad header: %v", err)
	}
	// Consume the newline
	if _, err := reader.ReadByte(); err != nil {
		return nil, input.Malformed(path, 1, "error reading newline: %v", err)
	}
	if wordCount == 0 {
		return nil, input.Empty(path)
	}
	if wordCount < 0 || vectorDim <= 0 {
		return nil, input.Malformed(path, 1, "bad shape %dx%d", wordCount, vectorDim)
	}

	vocab := make(map[string]int, wordCount)
	data := make([]float64, 0, wordCount*vectorDim)
	vector := make([]float32, vectorDim)
	rows := 0

	for i := 0; i < wordCount; i++ {
		word, err := readWord(reader)
		if err != nil {
			return nil, &input.RecordError{Path: path, Msg: fmt.Sprintf("error reading word %d: %v", i+1, err), Err: input.ErrMalformedRecord}
		}
		if err := binary.Read(reader, binary.LittleEndian, vector); err != nil {
			return nil, &input.RecordError{Path: path, Msg: fmt.Sprintf("error reading vector %d: %v", i+1, err), Err: input.ErrMalformedRecord}
		}

		if lower {
			word = strings.ToLower(word)
		}
		if _, seen := vocab[word]; seen {
			continue
		}
		vocab[word] = rows
		for _, v := range vector {
			data = append(data, float64(v))
		}
		rows++
	}

	return NewTable(vocab, mat.NewDense(rows, vectorDim, data))
}

// readWord reads a space-terminated word, skipping the newline that some
// writers put after each vector
func readWord(reader *bufio.Reader) (string, error) {
	var word []byte
	char, err := reader.ReadByte()
	for err == nil && char == '\n' {
		char, err = reader.ReadByte()
	}

	for err == nil && char != ' ' {
		word = append(word, char)
		char, err = reader.ReadByte()
	}

	if err != nil && len(word) == 0 {
		return "", err
	}

	return string(word), nil
}
