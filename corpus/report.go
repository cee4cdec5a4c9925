package corpus

import (
	"bufio"
	"fmt"
	"io"
)

/*
WriteRareList prints every rare word, one per line
*/
func (s *Stats) WriteRareList(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, tok := range s.RareWords() {
		fmt.Fprintln(bw, tok)
	}
	return bw.Flush()
}

/*
WriteReport prints the statistics report.

With unique set the report includes duplicate and unique sentence counts and
the sentence length histogram; the accumulator must then track unique
sentences.
*/
func (s *Stats) WriteReport(w io.Writer, unique bool) error {
	bw := bufio.NewWriter(w)
	n := s.Sentences()

	fmt.Fprintf(bw, "### For a %d sentence-strong corpus ###\n", n)

	if unique && s.bags != nil {
		dup, uniq := s.DuplicateSentences(), s.UniqueSentences()
		fmt.Fprintf(bw, "Number of identical sentences: %d which is %g percent of the corpus\n", dup, percent(dup, n))
		fmt.Fprintf(bw, "Number of unique sentences: %d which is %g percent of the corpus\n\n", uniq, percent(uniq, n))

		hist := s.LengthHistogram()
		for length := 1; length < len(hist); length++ {
			fmt.Fprintf(bw, "Number of %d-word sentences: %d which is %g percent of the corpus\n", length, hist[length], percent(hist[length], n))
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintf(bw, "Average sentence length (in tokens): %g\n", s.AverageLength())
	fmt.Fprintf(bw, "Total number of tokens (words) is: %d\n", s.Tokens())
	fmt.Fprintf(bw, "Number of types (unique words): %d\n", len(s.Types()))
	fmt.Fprintf(bw, "Number of \"rare\" word types (with frequency<%d): %d\n", RareThreshold, len(s.RareWords()))
	fmt.Fprintf(bw, "Percentage of \"rare\" words (types): %g\n", s.RarePercent())

	return bw.Flush()
}

func percent(part, whole int) float64 {
	return 100 * float64(part) / float64(whole)
}
