package hierarchy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fluhus/gostuff/nlp/wordnet"
	log "github.com/sirupsen/logrus"

	"wordnet-walk/input"
)

// WordNet pointer symbols of the semantic hierarchy.
const (
	hypernymSymbol = "@"
	hyponymSymbol  = "~"
)

// senseKey joins a lemma to its synset for count lookups.
type senseKey struct {
	lemma  string
	pos    byte
	offset string
}

/*
LoadWordNet parses a WordNet dict directory into a hierarchy.

Lemma counts come from the directory's index.sense file; without it every
count is zero, which the walk treats as weight 1.
*/
func LoadWordNet(dir string, logger *log.Entry) (*Memory, error) {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", input.ErrInputNotFound, dir, err)
	}

	wn, err := wordnet.Parse(dir)
	if err != nil {
		return nil, fmt.Errorf("parse wordnet %s: %w", dir, err)
	}

	counts, err := loadSenseCounts(filepath.Join(dir, "index.sense"))
	if err != nil {
		if !errors.Is(err, input.ErrInputNotFound) {
			return nil, err
		}
		logger.Warn("No index.sense in WordNet dir, all lemma counts are zero")
	}

	m, err := FromWordNet(wn, counts)
	if err != nil {
		return nil, err
	}
	logger.WithFields(log.Fields{
		"synsets": m.Len(),
		"counted": len(counts),
	}).Info("Loaded WordNet")
	return m, nil
}

/*
FromWordNet converts a parsed WordNet into a hierarchy.

Synsets become nodes keyed by their WordNet id, in sorted id order. Only
hypernym and hyponym pointers become edges.
*/
func FromWordNet(wn *wordnet.WordNet, counts map[senseKey]int) (*Memory, error) {
	ids := make([]string, 0, len(wn.Synset))
	for id := range wn.Synset {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	m := NewMemory()
	for _, id := range ids {
		ss := wn.Synset[id]
		lemmas := make([]Lemma, 0, len(ss.Word))
		for _, word := range ss.Word {
			name := stripMarker(word)
			lemmas = append(lemmas, Lemma{
				Name:  name,
				Count: counts[senseKey{strings.ToLower(name), normalizePos(ss.Pos), ss.Offset}],
			})
		}
		if err := m.AddNode(NodeID(id), lemmas...); err != nil {
			return nil, err
		}
	}

	for _, id := range ids {
		for _, ptr := range wn.Synset[id].Pointer {
			if _, ok := wn.Synset[ptr.Synset]; !ok {
				continue
			}
			var err error
			switch ptr.Symbol {
			case hypernymSymbol:
				err = m.AddHypernym(NodeID(id), NodeID(ptr.Synset))
			case hyponymSymbol:
				err = m.AddHypernym(NodeID(ptr.Synset), NodeID(id))
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// stripMarker drops adjective position markers such as "(p)" in "ablaze(p)".
func stripMarker(word string) string {
	if i := strings.IndexByte(word, '('); i > 0 && strings.HasSuffix(word, ")") {
		return word[:i]
	}
	return word
}

// normalizePos folds adjective satellites into adjectives; both live in data.adj.
func normalizePos(pos string) byte {
	if pos == "" {
		return 0
	}
	if pos[0] == 's' {
		return 'a'
	}
	return pos[0]
}

func loadSenseCounts(path string) (map[senseKey]int, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readSenseCounts(f, path)
}

/*
readSenseCounts parses index.sense lines:

	sense_key synset_offset sense_number tag_cnt

where sense_key is lemma%ss_type:lex_filenum:lex_id:head_word:head_id.
*/
func readSenseCounts(r io.Reader, path string) (map[senseKey]int, error) {
	counts := make(map[senseKey]int)
	err := input.EachLine(r, path, func(lineNo int, line string) error {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}
		if len(fields) != 4 {
			return input.Malformed(path, lineNo, "expected 4 fields, got %d", len(fields))
		}

		lemma, rest, ok := strings.Cut(fields[0], "%")
		if !ok || rest == "" {
			return input.Malformed(path, lineNo, "bad sense key %q", fields[0])
		}
		pos, ok := ssTypePos(rest[0])
		if !ok {
			return input.Malformed(path, lineNo, "bad synset type in %q", fields[0])
		}
		count, err := strconv.Atoi(fields[3])
		if err != nil {
			return input.Malformed(path, lineNo, "bad tag count %q", fields[3])
		}

		counts[senseKey{lemma, pos, fields[1]}] = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func ssTypePos(t byte) (byte, bool) {
	switch t {
	case '1':
		return 'n', true
	case '2':
		return 'v', true
	case '3', '5':
		return 'a', true
	case '4':
		return 'r', true
	default:
		return 0, false
	}
}
