package telemetry

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// RenderTable writes merged telemetry rows as an aligned table. Metrics
// with no sample at a timestamp render as "-".
func RenderTable(w io.Writer, rows []Row, metrics []string) {
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	header := "TIMESTAMP\tENDPOINT"
	for _, m := range metrics {
		header += "\t" + strings.ToUpper(m)
	}
	fmt.Fprintln(tw, header)

	for _, row := range rows {
		line := row.Timestamp.Format("2006-01-02 15:04:05") + "\t" + row.Endpoint
		for _, m := range metrics {
			if v, ok := row.Values[m]; ok {
				line += "\t" + strconv.FormatFloat(v, 'f', 2, 64)
			} else {
				line += "\t-"
			}
		}
		fmt.Fprintln(tw, line)
	}
	tw.Flush()
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a metric series as a one-line chart. Empty series
// render as an empty string.
func Sparkline(points []lattice.MetricPoint) string {
	if len(points) == 0 {
		return ""
	}

	min, max := points[0].Value, points[0].Value
	for _, p := range points {
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
	}

	var b strings.Builder
	for _, p := range points {
		idx := 0
		if max > min {
			idx = int((p.Value - min) / (max - min) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// RenderCharts writes one sparkline per (endpoint, metric) series.
func RenderCharts(w io.Writer, series []lattice.MetricSeries) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		min, max := s.Points[0].Value, s.Points[0].Value
		for _, p := range s.Points {
			if p.Value < min {
				min = p.Value
			}
			if p.Value > max {
				max = p.Value
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t[%.2f .. %.2f]\n", s.Endpoint, s.Metric, Sparkline(s.Points), min, max)
	}
	tw.Flush()
}
