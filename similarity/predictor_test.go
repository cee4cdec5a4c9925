package similarity

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"wordnet-walk/config"
	"wordnet-walk/embedding"
	"wordnet-walk/input"
)

const epsilon = 1e-9

func table(t *testing.T, text string) *embedding.Table {
	t.Helper()
	tbl, err := embedding.ReadRetrofit(strings.NewReader(text), "fixture.txt")
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return tbl
}

func TestScoreCatDog(t *testing.T) {
	p := NewPredictor(table(t, "cat 1 0\ndog 0 1\n"), nil, false, false, nil)

	if got := p.Score("cat", "dog"); math.Abs(got) > epsilon {
		t.Errorf("Expected cat/dog ~0, got %v", got)
	}
	if got := p.Score("cat", "cat"); math.Abs(got-1) > epsilon {
		t.Errorf("Expected cat/cat ~1, got %v", got)
	}
	if p.Score("cat", "dog") != p.Score("dog", "cat") {
		t.Error("Score is not symmetric")
	}
}

func TestUnknownWords(t *testing.T) {
	primary := table(t, "cat 1 0\ndog 0 1\n")

	p := NewPredictor(primary, nil, false, false, nil)
	v := p.Vector("fish")
	if v[0] != 0 || v[1] != 0 {
		t.Errorf("Expected zero vector without default, got %v", v)
	}
	if got := p.Score("fish", "cat"); got != 0 {
		t.Errorf("Expected 0 against a zero vector, got %v", got)
	}
	if p.Misses() == 0 {
		t.Error("Expected misses to be counted")
	}

	withDefault := NewPredictor(primary, nil, false, true, nil)
	v = withDefault.Vector("fish")
	if math.Abs(v[0]-0.5) > epsilon || math.Abs(v[1]-0.5) > epsilon {
		t.Errorf("Expected mean vector [0.5 0.5], got %v", v)
	}
	// the default applies to the second word of a pair too
	if got := withDefault.Score("cat", "fish"); math.Abs(got-1/math.Sqrt2) > epsilon {
		t.Errorf("Expected 1/sqrt(2), got %v", got)
	}
}

func TestSumMultiWordExpressions(t *testing.T) {
	primary := table(t, "ice 1 0\ncream 0 1\nice_cream 5 5\n")

	summed := NewPredictor(primary, nil, true, false, nil)
	v := summed.Vector("ice cream")
	if v[0] != 1 || v[1] != 1 {
		t.Errorf("Expected summed [1 1], got %v", v)
	}

	whole := NewPredictor(primary, nil, false, false, nil)
	v = whole.Vector("ice cream")
	if v[0] != 0 || v[1] != 0 {
		t.Errorf("Expected unknown whole-string key to give zeros, got %v", v)
	}
}

func TestTwoTablesConcatenate(t *testing.T) {
	primary := table(t, "cat 1 0\ndog 0 1\n")
	secondary := table(t, "cat 2 2 2\nbird 1 1 1\n")

	p := NewPredictor(primary, secondary, false, false, nil)
	if p.Dim() != 5 {
		t.Fatalf("Expected dim 5, got %d", p.Dim())
	}

	want := map[string][]float64{
		"cat":  {1, 0, 2, 2, 2},
		"dog":  {0, 1, 0, 0, 0},
		"bird": {0, 0, 1, 1, 1},
	}
	for word, expect := range want {
		got := p.Vector(word)
		for i := range expect {
			if got[i] != expect[i] {
				t.Errorf("%s: expected %v, got %v", word, expect, got)
				break
			}
		}
	}

	withDefault := NewPredictor(primary, secondary, false, true, nil)
	got := withDefault.Vector("dog")
	if got[2] != 1.5 || got[4] != 1.5 {
		t.Errorf("Expected secondary mean padding, got %v", got)
	}
}

func TestPredict(t *testing.T) {
	p := NewPredictor(table(t, "cat 1 0\ndog 0 1\n"), nil, false, false, nil)

	var out bytes.Buffer
	n, err := p.Predict(strings.NewReader("cat\tdog\nCAT\tcat\n"), &out, "pairs.tsv")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 pairs, got %d", n)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 score lines, got %q", out.String())
	}
	first, _ := strconv.ParseFloat(lines[0], 64)
	second, _ := strconv.ParseFloat(lines[1], 64)
	if math.Abs(first) > epsilon || math.Abs(second-1) > epsilon {
		t.Errorf("Unexpected scores %v", lines)
	}
}

func TestPredictMalformedLine(t *testing.T) {
	p := NewPredictor(table(t, "cat 1 0\n"), nil, false, false, nil)

	tests := []struct {
		name string
		text string
		line int
	}{
		{"one field", "cat\tcat\ncat\n", 2},
		{"three fields", "cat\tcat\tcat\n", 1},
		{"space separated", "cat cat\n", 1},
	}

	for _, test := range tests {
		var out bytes.Buffer
		_, err := p.Predict(strings.NewReader(test.text), &out, "pairs.tsv")
		if !errors.Is(err, input.ErrMalformedRecord) {
			t.Errorf("%s: expected ErrMalformedRecord, got %v", test.name, err)
			continue
		}
		var rec *input.RecordError
		if !errors.As(err, &rec) || rec.Line != test.line {
			t.Errorf("%s: expected error at line %d, got %v", test.name, test.line, err)
		}
	}
}

func TestFromConfigAndPredictFile(t *testing.T) {
	dir := t.TempDir()
	vecs := filepath.Join(dir, "vecs.txt")
	pairs := filepath.Join(dir, "pairs.tsv")
	out := filepath.Join(dir, "scores.txt")

	if err := os.WriteFile(vecs, []byte("cat 1 0\ndog 0 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write vectors: %v", err)
	}
	if err := os.WriteFile(pairs, []byte("cat\tdog\ncat\tcat\n"), 0644); err != nil {
		t.Fatalf("Failed to write pairs: %v", err)
	}

	p, err := FromConfig(config.SimilarityConfig{Vecs1: vecs, Test: pairs, Out: out}, nil)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if _, err := p.PredictFile(pairs, out); err != nil {
		t.Fatalf("PredictFile failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read scores: %v", err)
	}
	if string(data) != "0\n1\n" {
		t.Errorf("Unexpected scores %q", string(data))
	}

	if _, err := p.PredictFile(filepath.Join(dir, "missing.tsv"), out); !errors.Is(err, input.ErrInputNotFound) {
		t.Errorf("Expected ErrInputNotFound, got %v", err)
	}
	if _, err := FromConfig(config.SimilarityConfig{Vecs1: filepath.Join(dir, "nope.txt")}, nil); !errors.Is(err, input.ErrInputNotFound) {
		t.Errorf("Expected ErrInputNotFound, got %v", err)
	}
}
