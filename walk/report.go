package walk

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// reportHeaders name the columns of the visit table.
var reportHeaders = []string{"total_nodes", "total_visits", "init_nodes", "init_visits", "walk_nodes", "walk_visits"}

/*
WriteReport prints hierarchy coverage, the average sentence length and the
visit frequency table of a run.
*/
func WriteReport(w io.Writer, res *Result) error {
	visited := res.Ledger.Visited()
	if _, err := fmt.Fprintf(w, "\nVisited: %d out of %d nodes, i.e. %g percent of the hierarchy.\n",
		visited, res.TotalNodes, 100*res.Ledger.Coverage(res.TotalNodes)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Average sentence length is: %g tokens.\n", res.AverageLength()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Number of nodes visited:"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, VisitTable(res.Ledger).Render())
	return err
}

/*
VisitTable lays the three frequency-of-frequency breakdowns side by side,
each ascending by visit count. Shorter columns are padded with blanks.
*/
func VisitTable(l *Ledger) *table.Table {
	columns := [][]FreqCount{l.TotalFreq(), l.InitFreq(), l.WalkFreq()}

	rows := 0
	for _, col := range columns {
		rows = max(rows, len(col))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(reportHeaders...)
	for i := 0; i < rows; i++ {
		row := make([]string, 0, len(reportHeaders))
		for _, col := range columns {
			if i < len(col) {
				row = append(row, strconv.Itoa(col[i].Nodes), strconv.Itoa(col[i].Visits))
			} else {
				row = append(row, "", "")
			}
		}
		t.Row(row...)
	}
	return t
}
