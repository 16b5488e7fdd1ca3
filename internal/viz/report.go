package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/quansim/internal/epr"
	"github.com/san-kum/quansim/internal/sweep"
)

const cellWidth = 12

// Report renders the dressed frequencies and the chi matrix of a result.
func Report(title string, labels []string, res *epr.Result) string {
	var rows []string
	rows = append(rows, Title.Render(title))

	freq := []string{row(HeaderStyle, "mode", "freq (GHz)", "overlap")}
	for i, l := range labels {
		overlap := "-"
		if i < len(res.SingleOverlaps) {
			overlap = fmt.Sprintf("%.4f", res.SingleOverlaps[i])
		}
		freq = append(freq, lipgloss.JoinHorizontal(lipgloss.Top,
			cell(MetricLabel, l),
			cell(MetricValue, fmt.Sprintf("%.6f", res.FrequenciesGHz[i])),
			cell(Subtle, overlap),
		))
	}
	rows = append(rows, Panel.Render(strings.Join(freq, "\n")))

	header := append([]string{"chi (MHz)"}, labels...)
	chi := []string{row(HeaderStyle, header...)}
	for i, l := range labels {
		cells := []string{cell(MetricLabel, l)}
		for j := range labels {
			style := MetricValue
			if i == j {
				style = DiagonalValue
			}
			cells = append(cells, cell(style, formatMHz(res.ChiMHz[i][j])))
		}
		chi = append(chi, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, Panel.Render(strings.Join(chi, "\n")))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SweepTable renders one line per sweep point with the change from the
// previous point.
func SweepTable(points []sweep.Point, tol float64) string {
	lines := []string{row(HeaderStyle, "fock", "cosine", "change (MHz)")}
	for _, p := range points {
		change := "-"
		style := MetricValue
		if !math.IsInf(p.MaxChange, 1) {
			change = fmt.Sprintf("%.3g", p.MaxChange)
			if p.MaxChange >= tol {
				style = Warning
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			cell(MetricLabel, fmt.Sprint(p.Fock)),
			cell(MetricLabel, fmt.Sprint(p.Cosine)),
			cell(style, change),
		))
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

func row(style lipgloss.Style, values ...string) string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = cell(style, v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func cell(style lipgloss.Style, s string) string {
	return style.Width(cellWidth).Render(s)
}

func formatMHz(v float64) string {
	if math.Abs(v) >= 1e-3 || v == 0 {
		return fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("%.3e", v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
