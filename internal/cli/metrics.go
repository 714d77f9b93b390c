package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// printMetrics writes every non-empty series gathered from g.
// Histograms are shown as sample count and sum.
func printMetrics(w io.Writer, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		printWarning(w, "gather metrics: %v", err)
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render("Metrics"))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			var value string
			switch {
			case m.GetCounter() != nil:
				value = fmt.Sprintf("%g", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				value = fmt.Sprintf("%g", m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				value = fmt.Sprintf("%d samples, sum %gs", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			fmt.Fprintln(w, StyleDim.Render(name)+" "+StyleValue.Render(value))
		}
	}
}
