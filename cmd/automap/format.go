package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"ca-map/internal/automaton"
	"ca-map/internal/storage"

	"github.com/dustin/go-humanize"
)

func writeMap(w io.Writer, m *automaton.Map) error {
	for s, t := range m.Transitions() {
		if _, err := fmt.Fprintf(w, "%d -> %d\n", s, t); err != nil {
			return err
		}
	}
	return nil
}

type mapJSON struct {
	ID            string                `json:"id,omitempty"`
	Width         int                   `json:"width"`
	Height        int                   `json:"height"`
	States        int                   `json:"states"`
	Wrap          bool                  `json:"wrap"`
	Diagonal      bool                  `json:"diagonal"`
	ClipDiagonals bool                  `json:"clip_diagonals,omitempty"`
	Transitions   []automaton.Signature `json:"transitions"`
}

func writeMapJSON(w io.Writer, id string, m *automaton.Map) error {
	s := m.Shape()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mapJSON{
		ID:            id,
		Width:         s.Width,
		Height:        s.Height,
		States:        m.States(),
		Wrap:          s.Wrap,
		Diagonal:      s.Diagonal,
		ClipDiagonals: s.ClipDiagonals,
		Transitions:   m.Transitions(),
	})
}

// writeAnalysis prints the attractor table. limit caps the rows; zero prints
// all. When a is set, each listed cycle's first configuration follows.
func writeAnalysis(w io.Writer, m *automaton.Map, an automaton.Analysis, limit int, a *automaton.Automaton) error {
	fmt.Fprintf(w, "shape %s, %d states, %s configurations\n", m.Shape(), m.States(), humanize.Comma(int64(m.Len())))
	fmt.Fprintf(w, "attractors %s, fixed points %s, garden of eden %s\n",
		humanize.Comma(int64(len(an.Attractors))),
		humanize.Comma(int64(len(an.FixedPoints))),
		humanize.Comma(int64(len(an.GardenOfEden))),
	)

	rows := an.Attractors
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tBASIN\tSHARE\tCYCLE")
	for _, at := range rows {
		share := float64(at.Basin) / float64(m.Len()) * 100
		fmt.Fprintf(tw, "%d\t%s\t%s%%\t%s\n", at.Period(), humanize.Comma(int64(at.Basin)), humanize.FtoaWithDigits(share, 2), formatCycle(at.Cycle, 8))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if hidden := len(an.Attractors) - len(rows); hidden > 0 {
		fmt.Fprintf(w, "... %s more\n", humanize.Comma(int64(hidden)))
	}

	if a == nil {
		return nil
	}
	for _, at := range rows {
		g, err := a.Grid(at.Cycle[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nsignature %d (period %d)\n%s\n", at.Cycle[0], at.Period(), g)
	}
	return nil
}

// formatCycle joins up to limit signatures with arrows.
func formatCycle(c []automaton.Signature, limit int) string {
	parts := make([]string, 0, min(len(c), limit)+1)
	for i, s := range c {
		if i == limit {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, strconv.FormatUint(uint64(s), 10))
	}
	return strings.Join(parts, " -> ")
}

func writeGeneration(w io.Writer, gen int, g *automaton.Grid) {
	fmt.Fprintf(w, "generation %d signature %d\n%s\n", gen, g.Signature(), g)
}

func writeSummaries(w io.Writer, summaries []storage.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "no saved maps")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSHAPE\tSTATES\tCONFIGURATIONS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			s.CreatedAt.Format(time.RFC3339),
			s.Shape,
			s.States,
			humanize.Comma(int64(s.Domain)),
		)
	}
	return tw.Flush()
}
