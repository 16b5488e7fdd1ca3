package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quansim/internal/sweep"
)

// ConvergencePlot plots chi[i][j] across the sweep points.
func ConvergencePlot(points []sweep.Point, labels []string, i, j int) string {
	if len(points) == 0 {
		return ""
	}
	data := sweep.Series(points, i, j)
	if len(data) == 1 {
		data = append(data, data[0])
	}

	caption := fmt.Sprintf("%s anharmonicity (MHz) vs point", labels[i])
	if i != j {
		caption = fmt.Sprintf("%s - %s dispersive shift (MHz) vs point", labels[i], labels[j])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
}
