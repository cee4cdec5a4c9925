// Package similarity scores word pairs by the cosine similarity of their embeddings.
package similarity

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"wordnet-walk/config"
	"wordnet-walk/embedding"
	"wordnet-walk/input"
)

/*
Predictor builds query vectors from one or two embedding tables.

With two tables the query vector is the concatenation of the per-table parts;
a table that lacks a word contributes zeros (or its mean vector when
UseDefault is set) in its own half.
*/
type Predictor struct {
	Primary   *embedding.Table
	Secondary *embedding.Table
	// split queries on spaces and sum the parts
	SumMWE bool
	// use a table's mean vector for unknown words
	UseDefault bool

	defaults [2][]float64
	logger   *log.Entry
	misses   int
}

/*
NewPredictor creates a predictor; secondary may be nil
*/
func NewPredictor(primary, secondary *embedding.Table, sumMWE, useDefault bool, logger *log.Entry) *Predictor {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	p := &Predictor{
		Primary:    primary,
		Secondary:  secondary,
		SumMWE:     sumMWE,
		UseDefault: useDefault,
		logger:     logger,
	}
	if useDefault {
		p.defaults[0] = primary.Mean()
		if secondary != nil {
			p.defaults[1] = secondary.Mean()
		}
	}
	return p
}

/*
FromConfig loads the tables named by cfg and builds a predictor
*/
func FromConfig(cfg config.SimilarityConfig, logger *log.Entry) (*Predictor, error) {
	primary, err := embedding.Load(cfg.Word2Idx1, cfg.Vecs1)
	if err != nil {
		return nil, err
	}

	var secondary *embedding.Table
	if cfg.Vecs2 != "" {
		secondary, err = embedding.Load(cfg.Word2Idx2, cfg.Vecs2)
		if err != nil {
			return nil, err
		}
	}

	p := NewPredictor(primary, secondary, cfg.SumMWE, cfg.Default, logger)
	p.logger.WithFields(log.Fields{
		"words1": primary.Len(),
		"dim":    p.Dim(),
	}).Info("Loaded embeddings")
	return p, nil
}

// Dim returns the dimension of query vectors.
func (p *Predictor) Dim() int {
	dim := p.Primary.Dim()
	if p.Secondary != nil {
		dim += p.Secondary.Dim()
	}
	return dim
}

// Misses returns how many lookups found no vector in some table.
func (p *Predictor) Misses() int {
	return p.misses
}

/*
Vector returns the query vector for word.

The word is used as given; callers fold case.
*/
func (p *Predictor) Vector(word string) []float64 {
	parts := []string{word}
	if p.SumMWE {
		parts = strings.Split(word, " ")
	}

	first := make([]float64, p.Primary.Dim())
	var second []float64
	if p.Secondary != nil {
		second = make([]float64, p.Secondary.Dim())
	}

	for _, part := range parts {
		p.accumulate(first, p.Primary, p.defaults[0], part)
		if p.Secondary != nil {
			p.accumulate(second, p.Secondary, p.defaults[1], part)
		}
	}

	if p.Secondary == nil {
		return first
	}
	return embedding.Concat(first, second)
}

func (p *Predictor) accumulate(dst []float64, table *embedding.Table, def []float64, word string) {
	vec, ok := table.Lookup(word)
	if !ok {
		p.misses++
		if def == nil {
			return
		}
		vec = def
	}
	// dst is sized from the same table
	floats.Add(dst, vec)
}

/*
Score returns the cosine similarity of the query vectors of a and b
*/
func (p *Predictor) Score(a, b string) float64 {
	// both vectors have Dim() entries
	score, _ := embedding.CosineSimilarity(p.Vector(a), p.Vector(b))
	return score
}

/*
Predict scores every "word1<TAB>word2" line of r and writes one score per line to w.

Lines are trimmed and lower-cased. A line without exactly two fields is a
MalformedRecord error; path names the input in errors.
*/
func (p *Predictor) Predict(r io.Reader, w io.Writer, path string) (int, error) {
	bw := bufio.NewWriter(w)
	pairs := 0

	err := input.EachLine(r, path, func(lineNo int, line string) error {
		fields := strings.Split(strings.ToLower(strings.TrimSpace(line)), "\t")
		if len(fields) != 2 {
			return input.Malformed(path, lineNo, "expected 2 tab-separated fields, got %d", len(fields))
		}
		score := p.Score(fields[0], fields[1])
		if _, err := bw.WriteString(strconv.FormatFloat(score, 'f', -1, 64) + "\n"); err != nil {
			return err
		}
		pairs++
		return nil
	})
	if err != nil {
		return pairs, err
	}
	return pairs, bw.Flush()
}

/*
PredictFile scores testPath and writes the scores to outPath
*/
func (p *Predictor) PredictFile(testPath, outPath string) (int, error) {
	in, err := input.Open(testPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	pairs, err := p.Predict(in, out, testPath)
	if err != nil {
		return pairs, err
	}
	p.logger.WithFields(log.Fields{
		"pairs":  pairs,
		"misses": p.misses,
	}).Info("Wrote similarity scores")
	return pairs, out.Close()
}
