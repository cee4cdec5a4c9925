package walk

import (
	"sort"

	"wordnet-walk/hierarchy"
)

/*
Visits counts how a node was reached: Init as the start of a walk, Walk by
following an edge.
*/
type Visits struct {
	Init int
	Walk int
}

// Total returns all visits of the node.
func (v Visits) Total() int {
	return v.Init + v.Walk
}

/*
Ledger records node visits over one run. It only grows.
*/
type Ledger struct {
	visits map[hierarchy.NodeID]*Visits
}

/*
NewLedger creates an empty ledger
*/
func NewLedger() *Ledger {
	return &Ledger{visits: make(map[hierarchy.NodeID]*Visits)}
}

func (l *Ledger) entry(id hierarchy.NodeID) *Visits {
	v, ok := l.visits[id]
	if !ok {
		v = &Visits{}
		l.visits[id] = v
	}
	return v
}

// Start records id as the start of a walk.
func (l *Ledger) Start(id hierarchy.NodeID) {
	l.entry(id).Init++
}

// Step records id as reached by an edge.
func (l *Ledger) Step(id hierarchy.NodeID) {
	l.entry(id).Walk++
}

// Visits returns the counters of id.
func (l *Ledger) Visits(id hierarchy.NodeID) Visits {
	if v, ok := l.visits[id]; ok {
		return *v
	}
	return Visits{}
}

// Visited returns the number of distinct nodes ever visited.
func (l *Ledger) Visited() int {
	return len(l.visits)
}

/*
Coverage returns the fraction of total nodes visited, in [0, 1]
*/
func (l *Ledger) Coverage(total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(l.Visited()) / float64(total)
}

/*
FreqCount says that Nodes nodes were visited exactly Visits times.
*/
type FreqCount struct {
	Visits int
	Nodes  int
}

// TotalFreq breaks visited nodes down by total visits.
func (l *Ledger) TotalFreq() []FreqCount {
	return l.freqOf(Visits.Total)
}

// InitFreq breaks visited nodes down by start visits.
func (l *Ledger) InitFreq() []FreqCount {
	return l.freqOf(func(v Visits) int { return v.Init })
}

// WalkFreq breaks visited nodes down by edge visits.
func (l *Ledger) WalkFreq() []FreqCount {
	return l.freqOf(func(v Visits) int { return v.Walk })
}

// freqOf counts visited nodes per value of count, ascending by value.
func (l *Ledger) freqOf(count func(Visits) int) []FreqCount {
	byCount := make(map[int]int)
	for _, v := range l.visits {
		byCount[count(*v)]++
	}

	out := make([]FreqCount, 0, len(byCount))
	for visits, nodes := range byCount {
		out = append(out, FreqCount{Visits: visits, Nodes: nodes})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Visits < out[j].Visits
	})
	return out
}
