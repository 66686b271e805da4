package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/poissongauss/internal/clt"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	modeStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
)

// SummaryHeaders are the columns of Summary.
var SummaryHeaders = []string{"count", "hours", "sigma", "mode", "P(mode)", "G(mean)", "Poisson mean±std", "label"}

// SummaryRows returns one row of text cells per series.
func SummaryRows(series []clt.Series) [][]string {
	rows := make([][]string, 0, len(series))
	for _, s := range series {
		peak := 0.0
		if i := s.Count; i < len(s.Gauss) {
			peak = s.Gauss[i]
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.Count),
			clt.FormatHours(s.Hours),
			fmt.Sprintf("%.4g", s.Sigma),
			fmt.Sprintf("%g", s.Mode.X),
			fmt.Sprintf("%.4g", s.Mode.Y),
			fmt.Sprintf("%.4g", peak),
			fmt.Sprintf("%.4g ± %.4g", s.PoissonMean, s.PoissonStd),
			s.Label,
		})
	}
	return rows
}

// Summary renders the per-count table.
func Summary(series []clt.Series) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(faintStyle).
		Headers(SummaryHeaders...).
		Rows(SummaryRows(series)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// Detail lists the probabilities of both curves around the Poisson mode.
// The mode rows are highlighted.
func Detail(s clt.Series, radius int) string {
	if len(s.Counts) == 0 || len(s.Mode.Indices) == 0 {
		return ""
	}
	first, last := s.Mode.Indices[0], s.Mode.Indices[len(s.Mode.Indices)-1]
	lo, hi := max(0, first-radius), min(len(s.Counts)-1, last+radius)

	tied := make(map[int]bool, len(s.Mode.Indices))
	for _, i := range s.Mode.Indices {
		tied[i] = true
	}

	rows := make([][]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("%g", s.Counts[i]),
			fmt.Sprintf("%.6f", s.Poisson[i]),
			fmt.Sprintf("%.6f", s.Gauss[i]),
			fmt.Sprintf("%+.6f", s.Poisson[i]-s.Gauss[i]),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(faintStyle).
		Headers("count value", "Poisson", "Gauss", "difference").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case tied[lo+row]:
				return modeStyle
			}
			return cellStyle
		})

	var b strings.Builder
	b.WriteString(headerStyle.Render(s.Label))
	b.WriteString(faintStyle.Render(fmt.Sprintf("  mean %g  sigma %.4g  %d count values", s.Mean, s.Sigma, len(s.Counts))))
	b.WriteString("\n")
	b.WriteString(t.String())
	return b.String()
}
