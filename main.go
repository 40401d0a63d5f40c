// Command telemetry-report analyzes one race session export: it aligns the
// logger's channel samples onto a common time base, derives channel 7 from
// the brake circuit channels, optionally fills gaps, reports the first time
// each braking condition is met, and writes a plot of the session.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/telemetry.report/internal/db"
	"github.com/banshee-data/telemetry.report/internal/report"
	"github.com/banshee-data/telemetry.report/internal/telemetry"
	"github.com/banshee-data/telemetry.report/internal/units"
	"github.com/banshee-data/telemetry.report/internal/version"
)

var (
	inputPath   string
	fillMissing bool
	fillMethod  string
	plotDir     string
	displayUnit string
	htmlChart   bool
	archivePath string
	showVersion bool
)

func init() {
	flag.StringVar(&inputPath, "i", "", "Input data file path (required)")
	flag.StringVar(&inputPath, "input", "", "Input data file path (required)")
	flag.BoolVar(&fillMissing, "f", false, "Fill missing values")
	flag.BoolVar(&fillMissing, "fill", false, "Fill missing values")
	flag.StringVar(&fillMethod, "m", telemetry.MethodInterpolate, "Fill method (interpolate, ffill, bfill); ignored without -f")
	flag.StringVar(&fillMethod, "method", telemetry.MethodInterpolate, "Fill method (interpolate, ffill, bfill); ignored without -f")
	flag.StringVar(&plotDir, "plot-dir", "plots", "Directory for plot output")
	flag.StringVar(&displayUnit, "units", units.Raw, "Display units for pressure channels ("+units.GetValidUnitsString()+")")
	flag.BoolVar(&htmlChart, "html", false, "Also write an interactive HTML chart")
	flag.StringVar(&archivePath, "archive", "", "Optional SQLite database to archive the run in")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("telemetry-report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	opts, err := validateFlags()
	if err != nil {
		log.Fatalf("%v", err)
	}

	analysis, err := telemetry.Run(inputPath, opts)
	if err != nil {
		log.Fatalf("Failed to process %s: %v", inputPath, err)
	}

	report.Print(os.Stdout, analysis, displayUnit)

	if err := writeArtifacts(analysis, opts); err != nil {
		log.Fatalf("%v", err)
	}

	if archivePath != "" {
		if err := archiveRun(analysis, opts); err != nil {
			log.Fatalf("Failed to archive run: %v", err)
		}
	}
}

// validateFlags checks the argument contract before any parsing begins.
func validateFlags() (telemetry.Options, error) {
	if inputPath == "" {
		return telemetry.Options{}, fmt.Errorf("input file path is required (-i)")
	}

	method, err := telemetry.ParseMethod(fillMethod)
	if err != nil {
		return telemetry.Options{}, err
	}

	if !units.IsValid(displayUnit) {
		return telemetry.Options{}, fmt.Errorf("invalid units %q: choose from %s", displayUnit, units.GetValidUnitsString())
	}

	return telemetry.Options{Fill: fillMissing, Method: method}, nil
}

func writeArtifacts(analysis *telemetry.Analysis, opts telemetry.Options) error {
	if err := os.MkdirAll(plotDir, 0755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}

	stem := outputStem(inputPath, opts)
	title := plotTitle(inputPath, opts)

	pngPath := filepath.Join(plotDir, stem+".png")
	if err := report.WritePNG(pngPath, title, analysis.Table, analysis.Results); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	log.Printf("wrote plot %s", pngPath)

	if htmlChart {
		htmlPath := filepath.Join(plotDir, stem+".html")
		if err := report.WriteHTML(htmlPath, title, analysis.Table, analysis.Results); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		log.Printf("wrote chart %s", htmlPath)
	}
	return nil
}

func archiveRun(analysis *telemetry.Analysis, opts telemetry.Options) error {
	database, err := db.Open(archivePath)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.RecordRun(inputPath, opts, analysis)
	if err != nil {
		return err
	}
	log.Printf("archived run %s in %s", runID, archivePath)
	return nil
}

// outputStem names plot artifacts after the input file and the fill
// configuration, e.g. "practice_ffill" or "practice_no_fill".
func outputStem(input string, opts telemetry.Options) string {
	base := filepath.Base(input)
	base = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if opts.Fill {
		return base + "_" + opts.Method.String()
	}
	return base + "_no_fill"
}

func plotTitle(input string, opts telemetry.Options) string {
	if opts.Fill {
		return fmt.Sprintf("Conditions Visualization - %s - Fill Missing: %s", input, opts.Method)
	}
	return fmt.Sprintf("Conditions Visualization - %s - Fill Missing: false", input)
}
