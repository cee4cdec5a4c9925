// Package corpus computes descriptive statistics over a sentence-per-line corpus.
package corpus

import (
	"io"
	"sort"
	"strings"

	"wordnet-walk/input"
)

// RareThreshold is the frequency below which a token type is rare.
const RareThreshold = 10

/*
Stats accumulates counts over the sentences of one corpus.

A sentence is a lower-cased line split on single spaces. Tokens of one-token
sentences are counted as tokens and types but not in the frequency table.
*/
type Stats struct {
	// sentence lengths in tokens, in corpus order
	lengths []int
	tokens  int

	// distinct tokens in first-seen order
	types   []string
	typeSet map[string]struct{}

	// frequencies from sentences longer than one token, in first-counted order
	freq      map[string]int
	freqOrder []string

	// bag-of-words keys, nil when unique sentence tracking is off
	bags map[string]int
}

/*
NewStats creates an empty accumulator.

trackUnique enables bag-of-words bookkeeping for duplicate detection.
*/
func NewStats(trackUnique bool) *Stats {
	s := &Stats{
		typeSet: make(map[string]struct{}),
		freq:    make(map[string]int),
	}
	if trackUnique {
		s.bags = make(map[string]int)
	}
	return s
}

/*
Tokenize lower-cases a line and splits it on single spaces.

Surrounding whitespace is trimmed first, so a blank line is one empty token.
*/
func Tokenize(line string) []string {
	return strings.Split(strings.ToLower(strings.TrimSpace(line)), " ")
}

/*
BagOfWords returns the order-independent form of a sentence: its distinct
tokens sorted and joined by a space.
*/
func BagOfWords(tokens []string) string {
	set := make(map[string]struct{}, len(tokens))
	uniq := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := set[tok]; ok {
			continue
		}
		set[tok] = struct{}{}
		uniq = append(uniq, tok)
	}
	sort.Strings(uniq)
	return strings.Join(uniq, " ")
}

/*
Add accumulates one corpus line
*/
func (s *Stats) Add(line string) {
	tokens := Tokenize(line)
	s.lengths = append(s.lengths, len(tokens))
	s.tokens += len(tokens)

	for _, tok := range tokens {
		if _, ok := s.typeSet[tok]; !ok {
			s.typeSet[tok] = struct{}{}
			s.types = append(s.types, tok)
		}

		// one-word sentences do not count towards rare word frequencies
		if len(tokens) == 1 {
			continue
		}
		if _, ok := s.freq[tok]; !ok {
			s.freqOrder = append(s.freqOrder, tok)
		}
		s.freq[tok]++
	}

	if s.bags != nil {
		s.bags[BagOfWords(tokens)]++
	}
}

/*
Analyze reads every line of r into a new Stats.

path is only used for error messages. A reader without lines yields ErrEmptyCorpus.
*/
func Analyze(r io.Reader, path string, trackUnique bool) (*Stats, error) {
	s := NewStats(trackUnique)
	err := input.EachLine(r, path, func(_ int, line string) error {
		s.Add(line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Sentences() == 0 {
		return nil, input.Empty(path)
	}
	return s, nil
}

/*
AnalyzeFile opens path and analyzes it
*/
func AnalyzeFile(path string, trackUnique bool) (*Stats, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Analyze(f, path, trackUnique)
}

// Sentences returns the number of sentences.
func (s *Stats) Sentences() int {
	return len(s.lengths)
}

// Tokens returns the total number of tokens.
func (s *Stats) Tokens() int {
	return s.tokens
}

// Types returns the distinct tokens in first-seen order.
func (s *Stats) Types() []string {
	return s.types
}

// Frequency returns the counted frequency of a token.
func (s *Stats) Frequency(token string) int {
	return s.freq[token]
}

/*
RareWords returns every counted token with frequency below RareThreshold,
each once, in the order it was first counted.
*/
func (s *Stats) RareWords() []string {
	var rare []string
	for _, tok := range s.freqOrder {
		if s.freq[tok] < RareThreshold {
			rare = append(rare, tok)
		}
	}
	return rare
}

/*
UniqueSentences returns the number of distinct bag-of-words forms.

Returns -1 when the accumulator does not track unique sentences.
*/
func (s *Stats) UniqueSentences() int {
	if s.bags == nil {
		return -1
	}
	return len(s.bags)
}

/*
DuplicateSentences returns the number of sentences whose bag-of-words form
was already seen earlier in the corpus.

Returns -1 when the accumulator does not track unique sentences.
*/
func (s *Stats) DuplicateSentences() int {
	if s.bags == nil {
		return -1
	}
	return s.Sentences() - len(s.bags)
}

/*
LengthHistogram returns sentence counts by length.

Index i holds the number of sentences with i tokens, for 1 <= i <= max length;
index 0 is always zero.
*/
func (s *Stats) LengthHistogram() []int {
	maxLen := 0
	for _, n := range s.lengths {
		if n > maxLen {
			maxLen = n
		}
	}
	hist := make([]int, maxLen+1)
	for _, n := range s.lengths {
		hist[n]++
	}
	return hist
}

// AverageLength returns the mean sentence length in tokens.
func (s *Stats) AverageLength() float64 {
	return float64(s.tokens) / float64(s.Sentences())
}

// RarePercent returns the rare types as a percentage of all types.
func (s *Stats) RarePercent() float64 {
	return 100 * float64(len(s.RareWords())) / float64(len(s.types))
}
