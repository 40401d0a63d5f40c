package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/telemetry.report/internal/telemetry"
)

var (
	channel2Color = color.RGBA{B: 255, A: 255}
	channel7Color = color.RGBA{R: 255, A: 255}
	markerColor   = color.RGBA{G: 160, A: 255}
)

// WritePNG renders channels 2 and 7 over time with their thresholds and a
// vertical marker at the first time both conditions hold, then saves the
// figure to path. Absent cells are dropped from the series rather than drawn
// as zeros.
func WritePNG(path, title string, t *telemetry.Table, results []telemetry.Result) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Channel Value"

	ch2 := seriesPoints(t, telemetry.BrakePressureChannel)
	ch7 := seriesPoints(t, telemetry.DerivedChannel)
	if len(ch2) == 0 && len(ch7) == 0 {
		return fmt.Errorf("no observed points to plot")
	}

	if err := addSeries(p, "Channel_2", ch2, channel2Color); err != nil {
		return err
	}
	if err := addSeries(p, "Channel_7", ch7, channel7Color); err != nil {
		return err
	}

	xmin, xmax := timeRange(t)
	ymin, ymax := valueRange(ch2, ch7)

	if err := addThreshold(p, "Channel_2 Threshold", telemetry.BrakePressureThreshold, xmin, xmax, channel2Color); err != nil {
		return err
	}
	if err := addThreshold(p, "Channel_7 Threshold", telemetry.DerivedThreshold, xmin, xmax, channel7Color); err != nil {
		return err
	}

	for _, r := range results {
		if r.Condition == telemetry.CondBoth && r.Found {
			if err := addBothMarker(p, r.FirstTime, ymin, ymax); err != nil {
				return err
			}
		}
	}

	return p.Save(16*vg.Inch, 8*vg.Inch, path)
}

func seriesPoints(t *telemetry.Table, ch int) plotter.XYs {
	pts := make(plotter.XYs, 0, t.Len())
	for i, tm := range t.Times() {
		s := t.At(ch, i)
		if s.Valid {
			pts = append(pts, plotter.XY{X: tm, Y: s.Value})
		}
	}
	return pts
}

func addSeries(p *plot.Plot, name string, pts plotter.XYs, c color.Color) error {
	if len(pts) == 0 {
		return nil
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("build %s series: %w", name, err)
	}
	line.Color = c
	line.Width = vg.Points(1)
	points.Color = c
	points.Radius = vg.Points(2)
	p.Add(line, points)
	p.Legend.Add(name, line, points)
	return nil
}

func addThreshold(p *plot.Plot, name string, y, xmin, xmax float64, c color.Color) error {
	line, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: y}, {X: xmax, Y: y}})
	if err != nil {
		return fmt.Errorf("build %s line: %w", name, err)
	}
	line.Color = c
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

func addBothMarker(p *plot.Plot, at, ymin, ymax float64) error {
	line, err := plotter.NewLine(plotter.XYs{{X: at, Y: ymin}, {X: at, Y: ymax}})
	if err != nil {
		return fmt.Errorf("build marker line: %w", err)
	}
	line.Color = markerColor
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	p.Legend.Add("First Both Conditions Met", line)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: at, Y: 0}},
		Labels: []string{formatFloat(at)},
	})
	if err != nil {
		return fmt.Errorf("build marker label: %w", err)
	}
	p.Add(labels)
	return nil
}

func timeRange(t *telemetry.Table) (xmin, xmax float64) {
	times := t.Times()
	if len(times) == 0 {
		return 0, 1
	}
	return times[0], times[len(times)-1]
}

func valueRange(series ...plotter.XYs) (ymin, ymax float64) {
	ymin, ymax = telemetry.BrakePressureThreshold, telemetry.DerivedThreshold
	for _, pts := range series {
		for _, pt := range pts {
			if pt.Y < ymin {
				ymin = pt.Y
			}
			if pt.Y > ymax {
				ymax = pt.Y
			}
		}
	}
	return ymin, ymax
}
