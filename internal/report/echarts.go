package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/telemetry.report/internal/telemetry"
)

// WriteHTML renders the same condition channels as WritePNG into a
// self-contained interactive chart using go-echarts. Absent cells become
// gaps in the line rather than zeros.
func WriteHTML(path, title string, t *telemetry.Table, results []telemetry.Result) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: resultSubtitle(results)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Channel Value"}),
	)

	x := make([]string, t.Len())
	for i, tm := range t.Times() {
		x[i] = formatFloat(tm)
	}

	line.SetXAxis(x).
		AddSeries("Channel_2", lineData(t, telemetry.BrakePressureChannel)).
		AddSeries("Channel_7", lineData(t, telemetry.DerivedChannel)).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func lineData(t *telemetry.Table, ch int) []opts.LineData {
	data := make([]opts.LineData, t.Len())
	for i := 0; i < t.Len(); i++ {
		s := t.At(ch, i)
		if s.Valid {
			data[i] = opts.LineData{Value: s.Value}
		} else {
			data[i] = opts.LineData{Value: "-"}
		}
	}
	return data
}

func resultSubtitle(results []telemetry.Result) string {
	sub := ""
	for _, r := range results {
		if sub != "" {
			sub += "  "
		}
		sub += fmt.Sprintf("%s=%s", r.Condition.Name(), FormatFirstTime(r))
	}
	return sub
}
