package telemetry

import "fmt"

// Method selects a gap-filling policy. Each method is a pure per-column
// transform over the time-ordered rows; none extrapolates past the observed
// range of a column.
type Method int

const (
	// Interpolate fills a gap linearly between its two nearest time-ordered
	// neighbors. The default method.
	Interpolate Method = iota
	// ForwardFill carries the most recent earlier reading into a gap.
	ForwardFill
	// BackwardFill carries the nearest later reading into a gap.
	BackwardFill
)

// Method flag values accepted on the command line.
const (
	MethodInterpolate = "interpolate"
	MethodFFill       = "ffill"
	MethodBFill       = "bfill"
)

// ParseMethod maps a flag value onto a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case MethodInterpolate:
		return Interpolate, nil
	case MethodFFill:
		return ForwardFill, nil
	case MethodBFill:
		return BackwardFill, nil
	}
	return 0, fmt.Errorf("invalid fill method %q: choose from %s, %s, %s", s, MethodInterpolate, MethodFFill, MethodBFill)
}

func (m Method) String() string {
	switch m {
	case Interpolate:
		return MethodInterpolate
	case ForwardFill:
		return MethodFFill
	case BackwardFill:
		return MethodBFill
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Fill replaces absent cells in every column per the method. Leading gaps
// survive interpolation and forward fill; trailing gaps survive interpolation
// and backward fill. A gap with no usable neighbor is not an error: it stays
// absent and reads as indeterminate during condition evaluation.
func (t *Table) Fill(m Method) {
	for ch, col := range t.columns {
		filled := make([]Sample, len(col))
		copy(filled, col)
		switch m {
		case Interpolate:
			interpolateColumn(t.times, filled)
		case ForwardFill:
			forwardFillColumn(filled)
		case BackwardFill:
			backwardFillColumn(filled)
		}
		t.columns[ch] = filled
	}
}

// interpolateColumn fills each interior gap linearly on the time axis
// between the bracketing readings.
func interpolateColumn(times []float64, col []Sample) {
	prev := -1 // index of last valid sample
	for i, s := range col {
		if !s.Valid {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			t0, v0 := times[prev], col[prev].Value
			t1, v1 := times[i], s.Value
			for j := prev + 1; j < i; j++ {
				frac := (times[j] - t0) / (t1 - t0)
				col[j] = Reading(v0 + frac*(v1-v0))
			}
		}
		prev = i
	}
}

func forwardFillColumn(col []Sample) {
	last := Sample{}
	for i, s := range col {
		if s.Valid {
			last = s
		} else if last.Valid {
			col[i] = last
		}
	}
}

func backwardFillColumn(col []Sample) {
	next := Sample{}
	for i := len(col) - 1; i >= 0; i-- {
		if col[i].Valid {
			next = col[i]
		} else if next.Valid {
			col[i] = next
		}
	}
}
