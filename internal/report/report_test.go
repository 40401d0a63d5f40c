package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/telemetry.report/internal/telemetry"
	"github.com/banshee-data/telemetry.report/internal/units"
)

func sampleAnalysis(t *testing.T) *telemetry.Analysis {
	t.Helper()
	records := []telemetry.RawRecord{
		{Channel: 2, Time: 1.0, Value: telemetry.Reading(0.2)},
		{Channel: 4, Time: 1.0, Value: telemetry.Reading(2.0)},
		{Channel: 5, Time: 1.0, Value: telemetry.Reading(3.0)},

		{Channel: 2, Time: 2.0, Value: telemetry.Reading(-0.8)},
		{Channel: 4, Time: 2.0, Value: telemetry.Reading(3.0)},
		{Channel: 5, Time: 2.0, Value: telemetry.Reading(2.0)},

		{Channel: 2, Time: 3.0, Value: telemetry.Reading(0.1)},
	}
	table := telemetry.Align(records)
	table.Derive()
	return &telemetry.Analysis{
		Records: records,
		Table:   table,
		Results: telemetry.Evaluate(table),
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, sampleAnalysis(t), units.Raw)
	out := buf.String()

	for _, want := range []string{
		"Processed Data",
		"Channel_2",
		"Channel Summary:",
		"First Time Channel_2 < -0.5 is Met: 2",
		"First Time Channel_7 < 0 is Met: 2",
		"First Time Both Conditions are Met: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q in output:\n%s", want, out)
		}
	}
}

func TestPrintNotFound(t *testing.T) {
	a := sampleAnalysis(t)
	a.Results[2] = telemetry.Result{Condition: telemetry.CondBoth, FirstTime: math.NaN()}

	var buf bytes.Buffer
	Print(&buf, a, units.Raw)
	if !strings.Contains(buf.String(), "First Time Both Conditions are Met: not found") {
		t.Errorf("expected not-found sentinel in output:\n%s", buf.String())
	}
}

func TestFormatFirstTime(t *testing.T) {
	r := telemetry.Result{Condition: telemetry.CondC2, FirstTime: 200.7, Found: true}
	if got := FormatFirstTime(r); got != "200.7" {
		t.Errorf("FormatFirstTime = %q, want 200.7", got)
	}
	r = telemetry.Result{Condition: telemetry.CondC2, FirstTime: math.NaN()}
	if got := FormatFirstTime(r); got != "not found" {
		t.Errorf("FormatFirstTime = %q, want not found", got)
	}
}

func TestWritePNG(t *testing.T) {
	a := sampleAnalysis(t)
	path := filepath.Join(t.TempDir(), "practice_no_fill.png")

	if err := WritePNG(path, "Conditions Visualization - practice.dat", a.Table, a.Results); err != nil {
		t.Fatalf("WritePNG() failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestWriteHTML(t *testing.T) {
	a := sampleAnalysis(t)
	path := filepath.Join(t.TempDir(), "practice_no_fill.html")

	if err := WriteHTML(path, "Conditions Visualization - practice.dat", a.Table, a.Results); err != nil {
		t.Fatalf("WriteHTML() failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	for _, want := range []string{"Channel_2", "Channel_7"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("chart output missing %q", want)
		}
	}
}
