package embedding

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"wordnet-walk/input"
)

/*
Load reads an embedding table.

With a vocabulary path the table is read in the indexed layout (JSON word to
row mapping plus binary matrix); without one vecPath is parsed as retrofit text.
*/
func Load(vocabPath, vecPath string) (*Table, error) {
	if vocabPath != "" {
		return LoadIndexed(vocabPath, vecPath)
	}
	return LoadRetrofit(vecPath)
}

/*
LoadIndexed reads a JSON vocabulary ({"word": row}) and a binary matrix.

The matrix file starts with an ASCII header "rows cols\n" followed by
rows*cols little-endian float32 values in row-major order.
*/
func LoadIndexed(vocabPath, matrixPath string) (*Table, error) {
	vocab, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}

	f, err := input.Open(matrixPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vectors, err := ReadMatrix(bufio.NewReader(f), matrixPath)
	if err != nil {
		return nil, err
	}
	return NewTable(vocab, vectors)
}

func loadVocab(path string) (map[string]int, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var vocab map[string]int
	if err := json.NewDecoder(f).Decode(&vocab); err != nil {
		return nil, &input.RecordError{Path: path, Msg: err.Error(), Err: input.ErrMalformedRecord}
	}
	return vocab, nil
}

/*
ReadMatrix reads a binary matrix in the indexed layout from r.
*/
func ReadMatrix(r *bufio.Reader, path string) (*mat.Dense, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, input.Malformed(path, 1, "missing matrix header: %v", err)
	}
	var rows, cols int
	if _, err := fmt.Sscanf(header, "%d %d", &rows, &cols); err != nil {
		return nil, input.Malformed(path, 1, "bad matrix header %q", strings.TrimSpace(header))
	}
	if rows == 0 {
		return nil, input.Empty(path)
	}
	if rows < 0 || cols <= 0 {
		return nil, input.Malformed(path, 1, "bad matrix shape %dx%d", rows, cols)
	}

	data := make([]float64, rows*cols)
	row := make([]float32, cols)
	for i := 0; i < rows; i++ {
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return nil, &input.RecordError{Path: path, Msg: fmt.Sprintf("row %d: %v", i, err), Err: input.ErrMalformedRecord}
		}
		for j, v := range row {
			data[i*cols+j] = float64(v)
		}
	}
	return mat.NewDense(rows, cols, data), nil
}

/*
LoadRetrofit reads a "word v1 v2 ..." text file, one word per line.

Blank lines are skipped. Every row must have the dimension of the first.
A repeated word keeps its last row.
*/
func LoadRetrofit(path string) (*Table, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRetrofit(f, path)
}

/*
ReadRetrofit parses retrofit text from r; path is used in errors
*/
func ReadRetrofit(r io.Reader, path string) (*Table, error) {
	vocab := make(map[string]int)
	var data []float64
	dim, rows := 0, 0

	err := input.EachLine(r, path, func(lineNo int, line string) error {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}
		if len(fields) == 1 {
			return input.Malformed(path, lineNo, "word %q has no vector", fields[0])
		}
		if dim == 0 {
			dim = len(fields) - 1
		} else if len(fields)-1 != dim {
			return input.Malformed(path, lineNo, "dimension %d, expected %d", len(fields)-1, dim)
		}
		for _, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return input.Malformed(path, lineNo, "bad value %q", field)
			}
			data = append(data, v)
		}
		vocab[fields[0]] = rows
		rows++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, input.Empty(path)
	}
	return NewTable(vocab, mat.NewDense(rows, dim, data))
}

/*
SaveIndexed writes a table in the indexed layout
*/
func SaveIndexed(t *Table, vocabPath, matrixPath string) error {
	vocabFile, err := os.Create(vocabPath)
	if err != nil {
		return err
	}
	defer vocabFile.Close()

	if err := json.NewEncoder(vocabFile).Encode(t.Vocab); err != nil {
		return err
	}

	matrixFile, err := os.Create(matrixPath)
	if err != nil {
		return err
	}
	defer matrixFile.Close()

	bw := bufio.NewWriter(matrixFile)
	if err := WriteMatrix(bw, t.Vectors); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return matrixFile.Close()
}

/*
WriteMatrix writes m in the indexed binary layout.

Values outside the float32 range are rejected.
*/
func WriteMatrix(w io.Writer, m *mat.Dense) error {
	rows, cols := m.Dims()
	if _, err := fmt.Fprintf(w, "%d %d\n", rows, cols); err != nil {
		return err
	}
	row := make([]float32, cols)
	for i := 0; i < rows; i++ {
		for j, v := range m.RawRowView(i) {
			if math.Abs(v) > math.MaxFloat32 {
				return fmt.Errorf("row %d col %d: value %g overflows float32", i, j, v)
			}
			row[j] = float32(v)
		}
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}
