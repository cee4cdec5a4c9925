package walk

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"wordnet-walk/config"
	"wordnet-walk/hierarchy"
)

// animals builds a small hierarchy:
//
//	entity -> animal -> {dog, cat}, entity -> food -> hot_dog
func animals(t *testing.T) *hierarchy.Memory {
	t.Helper()
	m := hierarchy.NewMemory()
	nodes := []struct {
		id     hierarchy.NodeID
		lemmas []hierarchy.Lemma
	}{
		{"entity", []hierarchy.Lemma{{Name: "entity", Count: 5}}},
		{"animal", []hierarchy.Lemma{{Name: "animal", Count: 10}, {Name: "beast", Count: 0}, {Name: "creature", Count: 2}}},
		{"dog", []hierarchy.Lemma{{Name: "dog", Count: 40}, {Name: "domestic_dog", Count: 0}}},
		{"cat", []hierarchy.Lemma{{Name: "cat", Count: 20}, {Name: "true_cat"}}},
		{"food", []hierarchy.Lemma{{Name: "food", Count: 7}, {Name: "nutrient"}}},
		{"hot_dog", []hierarchy.Lemma{{Name: "hot_dog", Count: 1}, {Name: "frank's"}}},
	}
	for _, n := range nodes {
		if err := m.AddNode(n.id, n.lemmas...); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}
	for _, e := range [][2]hierarchy.NodeID{{"animal", "entity"}, {"dog", "animal"}, {"cat", "animal"}, {"food", "entity"}, {"hot_dog", "food"}} {
		if err := m.AddHypernym(e[0], e[1]); err != nil {
			t.Fatalf("AddHypernym failed: %v", err)
		}
	}
	return m
}

func walkConfig() config.WalkConfig {
	cfg := config.DefaultConfig().Walk
	cfg.Size = 200
	return cfg
}

func newGenerator(t *testing.T, g hierarchy.Graph, cfg config.WalkConfig, seed uint64) *Generator {
	t.Helper()
	gen, err := NewGenerator(g, cfg, rand.New(rand.NewPCG(seed, seed+1)), nil)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	return gen
}

func TestWalkInvariants(t *testing.T) {
	graph := animals(t)

	for _, dir := range []config.Direction{config.DirectionUp, config.DirectionDown, config.DirectionBoth} {
		cfg := walkConfig()
		cfg.Direction = dir
		gen := newGenerator(t, graph, cfg, 7)
		ledger := NewLedger()

		for i := 0; i < 500; i++ {
			sentence := gen.Walk(ledger)

			seen := make(map[lemmaKey]bool)
			for j, ref := range sentence {
				key := lemmaKey{ref.Node, ref.Index}
				if seen[key] {
					t.Fatalf("%v: lemma %v repeated in %v", dir, key, sentence)
				}
				seen[key] = true

				if graph.Lemmas(ref.Node)[ref.Index] != ref.Lemma {
					t.Fatalf("%v: ref %v does not match its node", dir, ref)
				}
				if j == 0 {
					continue
				}
				prev := sentence[j-1].Node
				var allowed []hierarchy.NodeID
				switch dir {
				case config.DirectionUp:
					allowed = graph.Broader(prev)
				case config.DirectionDown:
					allowed = graph.Narrower(prev)
				default:
					allowed = append(append([]hierarchy.NodeID{}, graph.Broader(prev)...), graph.Narrower(prev)...)
				}
				if !containsNode(allowed, ref.Node) {
					t.Fatalf("%v: step %s -> %s not allowed", dir, prev, ref.Node)
				}
			}
		}

		starts := 0
		for _, id := range graph.Nodes() {
			starts += ledger.Visits(id).Init
		}
		if starts != 500 {
			t.Errorf("%v: expected 500 start visits, got %d", dir, starts)
		}
	}
}

func containsNode(ids []hierarchy.NodeID, id hierarchy.NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func TestExhaustedNodeEndsWalk(t *testing.T) {
	// a <-> b with one lemma each: a walk can never grow past two lemmas
	m := hierarchy.NewMemory()
	m.AddNode("a", hierarchy.Lemma{Name: "alpha"})
	m.AddNode("b", hierarchy.Lemma{Name: "beta"})
	m.AddHypernym("a", "b")

	cfg := walkConfig()
	cfg.Alpha = 0.99
	gen := newGenerator(t, m, cfg, 3)
	ledger := NewLedger()
	for i := 0; i < 200; i++ {
		if n := len(gen.Walk(ledger)); n > 2 {
			t.Fatalf("Expected at most 2 lemmas, got %d", n)
		}
	}
}

func TestNodeWithoutLemmas(t *testing.T) {
	m := hierarchy.NewMemory()
	m.AddNode("empty")

	gen := newGenerator(t, m, walkConfig(), 1)
	if s := gen.Walk(NewLedger()); len(s) != 0 {
		t.Errorf("Expected empty sentence, got %v", s)
	}
}

func TestChooseLemmaWeighted(t *testing.T) {
	gen := newGenerator(t, animals(t), walkConfig(), 11)
	lemmas := []hierarchy.Lemma{{Name: "common", Count: 1000}, {Name: "rare", Count: 0}}

	picks := 0
	for i := 0; i < 1000; i++ {
		if gen.chooseLemma(lemmas) == 0 {
			picks++
		}
	}
	// expected ~999
	if picks < 980 {
		t.Errorf("Expected the heavy lemma almost always, got %d/1000", picks)
	}

	zero := []hierarchy.Lemma{{Name: "a"}, {Name: "b"}}
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[gen.chooseLemma(zero)] = true
	}
	if !seen[0] || !seen[1] {
		t.Error("Zero-count lemmas should all be reachable")
	}
}

func TestRunLineUnit(t *testing.T) {
	cfg := walkConfig()
	cfg.Min = 2
	gen := newGenerator(t, animals(t), cfg, 42)

	var out bytes.Buffer
	res, err := gen.Run(&out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != cfg.Size || res.Sentences != cfg.Size || res.Counter != cfg.Size {
		t.Errorf("Expected exactly %d sentences, got lines=%d sentences=%d counter=%d", cfg.Size, len(lines), res.Sentences, res.Counter)
	}

	tokens := 0
	for _, line := range lines {
		n := len(strings.Fields(line))
		tokens += n
		if n < cfg.Min {
			t.Errorf("Sentence %q shorter than min %d", line, cfg.Min)
		}
	}
	if tokens != res.Tokens {
		t.Errorf("Expected %d tokens, counted %d", res.Tokens, tokens)
	}
	if res.Walks < res.Sentences {
		t.Errorf("Walks %d < sentences %d", res.Walks, res.Sentences)
	}
}

func TestRunTokenUnit(t *testing.T) {
	cfg := walkConfig()
	cfg.Unit = config.UnitToken
	cfg.Size = 500
	gen := newGenerator(t, animals(t), cfg, 5)

	var out bytes.Buffer
	res, err := gen.Run(&out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Counter != res.Tokens {
		t.Errorf("Token counter %d != tokens %d", res.Counter, res.Tokens)
	}
	if res.Counter < cfg.Size {
		t.Errorf("Counter %d below size %d", res.Counter, cfg.Size)
	}
	if got := len(strings.Fields(out.String())); got != res.Tokens {
		t.Errorf("Output has %d tokens, result says %d", got, res.Tokens)
	}
}

func TestRunProgress(t *testing.T) {
	cfg := walkConfig()
	cfg.Size = 2500
	gen := newGenerator(t, animals(t), cfg, 9)

	var progress bytes.Buffer
	gen.Progress = &progress
	if _, err := gen.Run(&bytes.Buffer{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "Generated 1000 sentences...\nGenerated 2000 sentences...\n"
	if progress.String() != want {
		t.Errorf("Expected progress %q, got %q", want, progress.String())
	}
}

func TestCoverageMonotonic(t *testing.T) {
	graph := animals(t)
	prev := -1.0
	for _, size := range []int{1, 5, 50, 200} {
		cfg := walkConfig()
		cfg.Size = size
		gen := newGenerator(t, graph, cfg, 21)
		res, err := gen.Run(&bytes.Buffer{})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		cov := res.Ledger.Coverage(res.TotalNodes)
		if cov < 0 || cov > 1 {
			t.Fatalf("Coverage %v out of [0, 1]", cov)
		}
		if cov < prev {
			t.Errorf("Coverage dropped from %v to %v at size %d", prev, cov, size)
		}
		prev = cov
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	if _, err := NewGenerator(hierarchy.NewMemory(), walkConfig(), rand.New(rand.NewPCG(1, 1)), nil); !errors.Is(err, ErrEmptyHierarchy) {
		t.Errorf("Expected ErrEmptyHierarchy, got %v", err)
	}

	cfg := walkConfig()
	cfg.Alpha = 1
	if _, err := NewGenerator(animals(t), cfg, rand.New(rand.NewPCG(1, 1)), nil); err == nil {
		t.Error("Expected error for alpha 1")
	}
}

func TestRender(t *testing.T) {
	sentence := []LemmaRef{
		{Lemma: hierarchy.Lemma{Name: "hot_dog"}},
		{Lemma: hierarchy.Lemma{Name: "frank's"}},
		{Lemma: hierarchy.Lemma{Name: "food"}},
	}

	tests := []struct {
		split bool
		want  string
	}{
		{false, "hot_dog frank 's food"},
		{true, "hot dog frank 's food"},
	}
	for _, test := range tests {
		if got := Render(sentence, test.split); got != test.want {
			t.Errorf("Render(split=%v) = %q, want %q", test.split, got, test.want)
		}
	}
	if got := Render(nil, true); got != "" {
		t.Errorf("Expected empty rendering, got %q", got)
	}
}

func TestLedgerFreq(t *testing.T) {
	l := NewLedger()
	l.Start("a")
	l.Step("a")
	l.Start("b")
	l.Step("c")
	l.Step("c")

	if l.Visited() != 3 {
		t.Fatalf("Expected 3 visited nodes, got %d", l.Visited())
	}
	if v := l.Visits("a"); v.Init != 1 || v.Walk != 1 || v.Total() != 2 {
		t.Errorf("Unexpected visits for a: %+v", v)
	}
	if got := l.Coverage(6); got != 0.5 {
		t.Errorf("Expected coverage 0.5, got %v", got)
	}

	check := func(name string, got, want []FreqCount) {
		if len(got) != len(want) {
			t.Errorf("%s: expected %v, got %v", name, want, got)
			return
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: expected %v, got %v", name, want, got)
				return
			}
		}
	}
	check("total", l.TotalFreq(), []FreqCount{{Visits: 1, Nodes: 1}, {Visits: 2, Nodes: 2}})
	check("init", l.InitFreq(), []FreqCount{{Visits: 0, Nodes: 1}, {Visits: 1, Nodes: 2}})
	check("walk", l.WalkFreq(), []FreqCount{{Visits: 0, Nodes: 1}, {Visits: 1, Nodes: 1}, {Visits: 2, Nodes: 1}})
}

func TestWriteReport(t *testing.T) {
	l := NewLedger()
	l.Start("a")
	l.Step("b")
	res := &Result{Ledger: l, Sentences: 2, Tokens: 5, TotalNodes: 4}

	var out bytes.Buffer
	if err := WriteReport(&out, res); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	report := out.String()
	for _, want := range append([]string{
		"Visited: 2 out of 4 nodes, i.e. 50 percent",
		"Average sentence length is: 2.5 tokens.",
	}, reportHeaders...) {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q:\n%s", want, report)
		}
	}
}

func TestStepVisitsMatchLemmas(t *testing.T) {
	// every node has an edge, so each appended lemma is followed by one step
	m := hierarchy.NewMemory()
	m.AddNode("a", hierarchy.Lemma{Name: "a1"}, hierarchy.Lemma{Name: "a2"}, hierarchy.Lemma{Name: "a3"})
	m.AddNode("b", hierarchy.Lemma{Name: "b1", Count: 4}, hierarchy.Lemma{Name: "b2"})
	m.AddHypernym("a", "b")

	gen := newGenerator(t, m, walkConfig(), 13)
	ledger := NewLedger()
	lemmas := 0
	for i := 0; i < 1000; i++ {
		lemmas += len(gen.Walk(ledger))
	}

	steps, starts := 0, 0
	for _, id := range m.Nodes() {
		steps += ledger.Visits(id).Walk
		starts += ledger.Visits(id).Init
	}
	if steps != lemmas {
		t.Errorf("Expected %d edge visits, got %d", lemmas, steps)
	}
	if starts != 1000 {
		t.Errorf("Expected 1000 start visits, got %d", starts)
	}
}

func TestTokenOvershootBound(t *testing.T) {
	for _, size := range []int{1, 7, 100, 333} {
		cfg := walkConfig()
		cfg.Unit = config.UnitToken
		cfg.Size = size
		gen := newGenerator(t, animals(t), cfg, uint64(size))

		var out bytes.Buffer
		res, err := gen.Run(&out)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
		last := len(strings.Fields(lines[len(lines)-1]))

		// the counter was below size before the last sentence
		if res.Counter < size || res.Counter-last >= size {
			t.Errorf("size %d: counter %d with last sentence of %d tokens", size, res.Counter, last)
		}
	}
}

func TestRunWarnsWhenNothingAccepted(t *testing.T) {
	m := hierarchy.NewMemory()
	m.AddNode("a", hierarchy.Lemma{Name: "alpha"})
	m.AddNode("b", hierarchy.Lemma{Name: "beta"})
	m.AddHypernym("a", "b")

	var logs bytes.Buffer
	logger := log.New()
	logger.SetOutput(&logs)

	cfg := walkConfig()
	cfg.Alpha = 0.01
	cfg.Min = 2
	cfg.Size = 1
	gen, err := NewGenerator(m, cfg, rand.New(rand.NewPCG(17, 18)), log.NewEntry(logger))
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	gen.stallWalks = 10

	res, err := gen.Run(&bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Walks <= 10 {
		t.Skipf("Accepted after %d walks, nothing to warn about", res.Walks)
	}
	if !strings.Contains(logs.String(), "No walk reached the minimum sentence length") {
		t.Errorf("Expected a stall warning, got %q", logs.String())
	}
}
