package telemetry

import "math"

// Thresholds for the braking conditions.
const (
	BrakePressureThreshold = -0.5 // channel 2
	DerivedThreshold       = 0.0  // channel 7
)

// Condition is one of the three fixed braking conditions. The set is closed;
// there is no open-ended predicate dispatch in this domain.
type Condition int

const (
	// CondC2 fires when channel 2 drops below -0.5.
	CondC2 Condition = iota
	// CondC7 fires when the derived channel 7 drops below 0.
	CondC7
	// CondBoth fires when both predicates hold on the same row. It is never
	// derived from the individual first times.
	CondBoth
)

func (c Condition) Name() string {
	switch c {
	case CondC2:
		return "C2"
	case CondC7:
		return "C7"
	case CondBoth:
		return "Both"
	}
	return "unknown"
}

// Result is one condition's first-crossing time. FirstTime is NaN and Found
// is false when no row satisfies the condition.
type Result struct {
	Condition Condition
	FirstTime float64
	Found     bool
}

// holds evaluates a condition on row i. A row where a required channel is
// absent is indeterminate (false here, but never recorded as a miss).
func (t *Table) holds(c Condition, i int) bool {
	switch c {
	case CondC2:
		s := t.At(BrakePressureChannel, i)
		return s.Valid && s.Value < BrakePressureThreshold
	case CondC7:
		s := t.At(DerivedChannel, i)
		return s.Valid && s.Value < DerivedThreshold
	case CondBoth:
		return t.holds(CondC2, i) && t.holds(CondC7, i)
	}
	return false
}

// Evaluate scans the table in ascending time order and reports each
// condition's first-crossing time, in the fixed order C2, C7, Both.
func Evaluate(t *Table) []Result {
	conditions := []Condition{CondC2, CondC7, CondBoth}
	results := make([]Result, 0, len(conditions))
	for _, c := range conditions {
		results = append(results, firstCrossing(t, c))
	}
	return results
}

func firstCrossing(t *Table, c Condition) Result {
	for i := range t.Times() {
		if t.holds(c, i) {
			return Result{Condition: c, FirstTime: t.Times()[i], Found: true}
		}
	}
	return Result{Condition: c, FirstTime: math.NaN()}
}
