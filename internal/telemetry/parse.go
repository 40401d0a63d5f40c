// Package telemetry implements the data-acquisition analysis pipeline:
// parsing vendor channel/time/value exports, aligning samples onto a common
// time base, deriving the differential pressure channel, filling gaps, and
// locating the first time threshold conditions are met.
package telemetry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Channels carried by the vendor logger. Channel numbering starts at 1.
// Channel 7 is reserved on input and always recomputed from channels 5 and 4.
const (
	BrakePressureChannel = 2
	FrontCircuitChannel  = 4
	RearCircuitChannel   = 5
	DerivedChannel       = 7
)

// requiredChannels must each carry at least one time-value pair for an
// export to be usable.
var requiredChannels = []int{BrakePressureChannel, FrontCircuitChannel, RearCircuitChannel}

// Sample is an optional reading. Valid is false when the cell is absent,
// which is distinct from a legitimate zero reading.
type Sample struct {
	Value float64
	Valid bool
}

// Reading returns a present sample with the given value.
func Reading(v float64) Sample {
	return Sample{Value: v, Valid: true}
}

// RawRecord is one row of the vendor export before alignment.
type RawRecord struct {
	Channel int
	Time    float64
	Value   Sample
}

// ParseError reports an export file that could not be ingested: a row that
// does not decompose into (channel, time, value), or a required channel with
// no readings at all.
type ParseError struct {
	Line int // 1-based line number, 0 when not tied to a row
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("parse error: %s", e.Msg)
}

// ParseFile reads a vendor export from disk. The file handle is released on
// all paths, including parse failure.
func ParseFile(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open telemetry file: %w", err)
	}
	defer f.Close()

	return ParseRecords(f)
}

// ParseRecords reads tab-separated channel/time/value rows. Rows may appear
// in any order and channels beyond 6 are accepted. A leading header row
// ("channel\ttime\tvalue") is skipped when present. An empty value field
// yields an absent sample.
func ParseRecords(r io.Reader) ([]RawRecord, error) {
	var records []RawRecord
	seen := make(map[int]int) // channel -> count of present readings

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if lineNo == 1 && isHeaderRow(line) {
			continue
		}

		rec, err := parseRow(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		records = append(records, rec)
		if rec.Value.Valid {
			seen[rec.Channel]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read telemetry file: %w", err)
	}

	for _, ch := range requiredChannels {
		if seen[ch] == 0 {
			return nil, &ParseError{Msg: fmt.Sprintf("channel %d has no time-value pairs", ch)}
		}
	}

	return records, nil
}

func parseRow(line string) (RawRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return RawRecord{}, fmt.Errorf("expected 3 tab-separated fields, got %d", len(fields))
	}

	channel, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return RawRecord{}, fmt.Errorf("invalid channel %q", fields[0])
	}
	if channel < 1 {
		return RawRecord{}, fmt.Errorf("channel must be positive, got %d", channel)
	}

	t, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return RawRecord{}, fmt.Errorf("invalid time %q", fields[1])
	}

	rec := RawRecord{Channel: channel, Time: t}
	if raw := strings.TrimSpace(fields[2]); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return RawRecord{}, fmt.Errorf("invalid value %q", fields[2])
		}
		rec.Value = Reading(v)
	}
	return rec, nil
}

func isHeaderRow(line string) bool {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	return err != nil
}
