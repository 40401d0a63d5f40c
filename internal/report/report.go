// Package report renders a completed analysis: the console report, a PNG
// plot of the condition channels, and an optional interactive HTML chart.
package report

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/telemetry.report/internal/telemetry"
	"github.com/banshee-data/telemetry.report/internal/units"
)

// previewRows is how many leading rows of the aligned table are echoed
// before the results, mirroring the original analysis script.
const previewRows = 5

// pressureChannels are reported in the selected display unit; the remaining
// channels are unit-less logger values.
var pressureChannels = map[int]bool{
	telemetry.BrakePressureChannel: true,
	telemetry.FrontCircuitChannel:  true,
	telemetry.RearCircuitChannel:   true,
	telemetry.DerivedChannel:       true,
}

// Print writes the full console report: table preview, per-channel summary
// statistics, and the three condition results in fixed order.
func Print(w io.Writer, a *telemetry.Analysis, unit string) {
	printPreview(w, a.Table)
	printSummary(w, a.Table, unit)
	printResults(w, a.Results)
}

func printPreview(w io.Writer, t *telemetry.Table) {
	fmt.Fprintf(w, "Processed Data (First %d Rows):\n\n", previewRows)

	channels := t.Channels()
	fmt.Fprint(w, "time")
	for _, ch := range channels {
		fmt.Fprintf(w, "\tChannel_%d", ch)
	}
	fmt.Fprintln(w)

	n := t.Len()
	if n > previewRows {
		n = previewRows
	}
	for i := 0; i < n; i++ {
		fmt.Fprint(w, formatFloat(t.Times()[i]))
		for _, ch := range channels {
			s := t.At(ch, i)
			if s.Valid {
				fmt.Fprintf(w, "\t%s", formatFloat(s.Value))
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, t *telemetry.Table, unit string) {
	fmt.Fprintln(w, "Channel Summary:")
	for _, ch := range t.Channels() {
		var values []float64
		for i := 0; i < t.Len(); i++ {
			s := t.At(ch, i)
			if !s.Valid {
				continue
			}
			v := s.Value
			if pressureChannels[ch] {
				v = units.ConvertPressure(v, unit)
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			fmt.Fprintf(w, "  Channel_%d: no readings\n", ch)
			continue
		}
		suffix := ""
		if pressureChannels[ch] {
			suffix = units.Label(unit)
		}
		fmt.Fprintf(w, "  Channel_%d: n=%d mean=%.3f stddev=%.3f min=%.3f max=%.3f%s\n",
			ch, len(values),
			stat.Mean(values, nil), stat.StdDev(values, nil),
			floats.Min(values), floats.Max(values), suffix)
	}
	fmt.Fprintln(w)
}

func printResults(w io.Writer, results []telemetry.Result) {
	labels := map[telemetry.Condition]string{
		telemetry.CondC2:   "First Time Channel_2 < -0.5 is Met",
		telemetry.CondC7:   "First Time Channel_7 < 0 is Met",
		telemetry.CondBoth: "First Time Both Conditions are Met",
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s: %s\n", labels[r.Condition], FormatFirstTime(r))
	}
}

// FormatFirstTime renders a condition result's time, or the not-found
// sentinel text.
func FormatFirstTime(r telemetry.Result) string {
	if !r.Found {
		return "not found"
	}
	return formatFloat(r.FirstTime)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
