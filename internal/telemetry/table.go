package telemetry

import "sort"

// Table holds channel samples aligned onto a common time base. The row index
// is the ascending set of distinct times observed across the sourced channels;
// each channel is a column of optional samples over that index.
//
// The table is built once per run, mutated in place by derivation and filling,
// and read-only afterwards.
type Table struct {
	times   []float64
	columns map[int][]Sample
}

// Align builds a Table from a flat record sequence. A cell is populated when
// a record exists for that (channel, time) pair; otherwise it stays absent.
// Duplicate (channel, time) pairs resolve to the last record seen. Channel 7
// input values are discarded here: that column is always derived.
func Align(records []RawRecord) *Table {
	// channel -> time -> value
	cells := make(map[int]map[float64]float64)
	timeSet := make(map[float64]struct{})

	for _, rec := range records {
		if !rec.Value.Valid {
			continue
		}
		if rec.Channel == DerivedChannel {
			continue
		}
		col := cells[rec.Channel]
		if col == nil {
			col = make(map[float64]float64)
			cells[rec.Channel] = col
		}
		col[rec.Time] = rec.Value.Value
		timeSet[rec.Time] = struct{}{}
	}

	times := make([]float64, 0, len(timeSet))
	for t := range timeSet {
		times = append(times, t)
	}
	sort.Float64s(times)

	columns := make(map[int][]Sample, len(cells)+1)
	for ch, col := range cells {
		samples := make([]Sample, len(times))
		for i, t := range times {
			if v, ok := col[t]; ok {
				samples[i] = Reading(v)
			}
		}
		columns[ch] = samples
	}

	return &Table{times: times, columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.times)
}

// Times returns the ascending row index. The caller must not modify it.
func (t *Table) Times() []float64 {
	return t.times
}

// Channels returns the channel ids present in the table, ascending.
func (t *Table) Channels() []int {
	chs := make([]int, 0, len(t.columns))
	for ch := range t.columns {
		chs = append(chs, ch)
	}
	sort.Ints(chs)
	return chs
}

// At returns the sample for a channel at row i. A channel the table has never
// seen reads as absent.
func (t *Table) At(ch, i int) Sample {
	col, ok := t.columns[ch]
	if !ok {
		return Sample{}
	}
	return col[i]
}

// Column returns a copy of a channel's samples over the row index.
func (t *Table) Column(ch int) []Sample {
	col, ok := t.columns[ch]
	if !ok {
		return make([]Sample, len(t.times))
	}
	out := make([]Sample, len(col))
	copy(out, col)
	return out
}

// setColumn replaces a channel's samples. The slice length must match the
// row index.
func (t *Table) setColumn(ch int, samples []Sample) {
	t.columns[ch] = samples
}
