// Package walk generates a synthetic corpus by random walks over a lexical hierarchy.
package walk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"wordnet-walk/config"
	"wordnet-walk/hierarchy"
)

// progressEvery is the counter interval between progress lines.
const progressEvery = 1000

// stallWarnEvery is the number of consecutive rejected walks between warnings.
const stallWarnEvery = 100000

// ErrEmptyHierarchy is returned when the hierarchy has no nodes to start from.
var ErrEmptyHierarchy = errors.New("hierarchy has no nodes")

/*
LemmaRef is a lemma picked during a walk, identified by its node and its
position in the node's lemma list.
*/
type LemmaRef struct {
	Node  hierarchy.NodeID
	Index int
	Lemma hierarchy.Lemma
}

type lemmaKey struct {
	node  hierarchy.NodeID
	index int
}

/*
Generator produces sentences by walking a hierarchy.

Each walk starts at a uniformly chosen node. While a coin with probability
Alpha comes up heads, it picks a lemma of the current node weighted by its
count (zero counts weigh 1), appends it unless the sentence already holds it,
and moves to a uniformly chosen neighbour in the configured direction. A walk
also ends at a node without neighbours and at a node whose lemmas are all in
the sentence already.
*/
type Generator struct {
	graph  hierarchy.Graph
	cfg    config.WalkConfig
	rng    *rand.Rand
	nodes  []hierarchy.NodeID
	logger *log.Entry
	// consecutive rejected walks between stall warnings
	stallWalks int

	// Progress receives a line each time the counter passes a multiple of 1000.
	Progress io.Writer
}

/*
Result summarizes a generation run.
*/
type Result struct {
	Ledger *Ledger
	// accepted sentences
	Sentences int
	// rendered tokens of accepted sentences
	Tokens int
	// final value of the size counter, in the configured unit
	Counter int
	// all walks, accepted or not
	Walks int
	// nodes in the hierarchy
	TotalNodes int
}

// AverageLength returns the mean accepted sentence length in tokens.
func (r *Result) AverageLength() float64 {
	if r.Sentences == 0 {
		return 0
	}
	return float64(r.Tokens) / float64(r.Sentences)
}

/*
NewGenerator creates a generator over graph.

Only the walk parameters of cfg are used; paths are the caller's business.
*/
func NewGenerator(graph hierarchy.Graph, cfg config.WalkConfig, rng *rand.Rand, logger *log.Entry) (*Generator, error) {
	if err := cfg.ValidateParams(); err != nil {
		return nil, err
	}
	nodes := graph.Nodes()
	if len(nodes) == 0 {
		return nil, ErrEmptyHierarchy
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Generator{
		graph:      graph,
		cfg:        cfg,
		rng:        rng,
		nodes:      nodes,
		logger:     logger,
		stallWalks: stallWarnEvery,
	}, nil
}

/*
Walk performs one walk and returns its sentence, which may be empty.

Every node the walk starts at or moves to is recorded in ledger.
*/
func (g *Generator) Walk(ledger *Ledger) []LemmaRef {
	current := g.nodes[g.rng.IntN(len(g.nodes))]
	ledger.Start(current)

	var sentence []LemmaRef
	used := make(map[lemmaKey]struct{})

	for g.proceed() {
		lemmas := g.graph.Lemmas(current)
		if g.exhausted(current, lemmas, used) {
			break
		}

		idx := g.chooseLemma(lemmas)
		key := lemmaKey{current, idx}
		if _, dup := used[key]; dup {
			// redraw at the same node after a fresh coin flip
			continue
		}
		used[key] = struct{}{}
		sentence = append(sentence, LemmaRef{Node: current, Index: idx, Lemma: lemmas[idx]})

		edges := g.edges(current)
		if len(edges) == 0 {
			break
		}
		current = edges[g.rng.IntN(len(edges))]
		ledger.Step(current)
	}
	return sentence
}

// proceed flips the continuation coin.
func (g *Generator) proceed() bool {
	return distuv.Bernoulli{P: g.cfg.Alpha, Src: g.rng}.Rand() == 1
}

// exhausted reports whether every lemma of node is already used.
func (g *Generator) exhausted(node hierarchy.NodeID, lemmas []hierarchy.Lemma, used map[lemmaKey]struct{}) bool {
	for i := range lemmas {
		if _, ok := used[lemmaKey{node, i}]; !ok {
			return false
		}
	}
	return true
}

// chooseLemma draws a lemma index with probability proportional to its count.
func (g *Generator) chooseLemma(lemmas []hierarchy.Lemma) int {
	if len(lemmas) == 1 {
		return 0
	}
	weights := make([]float64, len(lemmas))
	for i, l := range lemmas {
		if l.Count > 0 {
			weights[i] = float64(l.Count)
		} else {
			weights[i] = 1
		}
	}
	return int(distuv.NewCategorical(weights, g.rng).Rand())
}

// edges returns the neighbours allowed by the configured direction.
func (g *Generator) edges(node hierarchy.NodeID) []hierarchy.NodeID {
	switch g.cfg.Direction {
	case config.DirectionUp:
		return g.graph.Broader(node)
	case config.DirectionDown:
		return g.graph.Narrower(node)
	default:
		broader, narrower := g.graph.Broader(node), g.graph.Narrower(node)
		both := make([]hierarchy.NodeID, 0, len(broader)+len(narrower))
		both = append(both, broader...)
		return append(both, narrower...)
	}
}

/*
Run writes accepted sentences to w, one per line, until the counter reaches
the configured size.

A sentence is accepted when it has at least Min lemmas. The counter grows by
one per sentence, or by the sentence's token count when the unit is token;
in token mode the last sentence may take the counter past Size.

Run does not return while no walk reaches Min lemmas, as on a hierarchy whose
walks are all shorter than Min. A warning is logged every 100000 rejected
walks in a row.
*/
func (g *Generator) Run(w io.Writer) (*Result, error) {
	bw := bufio.NewWriter(w)
	res := &Result{Ledger: NewLedger(), TotalNodes: len(g.nodes)}
	nextReport := progressEvery
	rejected := 0

	for res.Counter < g.cfg.Size {
		sentence := g.Walk(res.Ledger)
		res.Walks++
		if len(sentence) < g.cfg.Min {
			rejected++
			if rejected%g.stallWalks == 0 {
				g.logger.WithFields(log.Fields{
					"rejected": rejected,
					"min":      g.cfg.Min,
				}).Warn("No walk reached the minimum sentence length")
			}
			continue
		}
		rejected = 0

		text := Render(sentence, g.cfg.SplitMWE)
		if _, err := bw.WriteString(text + "\n"); err != nil {
			return res, err
		}
		tokens := len(strings.Fields(text))
		res.Sentences++
		res.Tokens += tokens

		if g.cfg.Unit == config.UnitToken {
			res.Counter += tokens
		} else {
			res.Counter++
		}

		for res.Counter >= nextReport {
			g.progress(nextReport)
			nextReport += progressEvery
		}
	}

	if err := bw.Flush(); err != nil {
		return res, err
	}
	g.logger.WithFields(log.Fields{
		"sentences": res.Sentences,
		"tokens":    res.Tokens,
		"walks":     res.Walks,
	}).Info("Generation finished")
	return res, nil
}

func (g *Generator) progress(n int) {
	unit := "sentences"
	if g.cfg.Unit == config.UnitToken {
		unit = "tokens"
	}
	g.logger.Debugf("Generated %d %s", n, unit)
	if g.Progress != nil {
		fmt.Fprintf(g.Progress, "Generated %d %s...\n", n, unit)
	}
}
