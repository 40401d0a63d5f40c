package telemetry

// Derive computes channel 7 as channel 5 minus channel 4 over the whole row
// index, overwriting anything already in the channel 7 column. A row where
// either operand is absent leaves channel 7 absent there; gaps are left for
// the fill stage, which treats the derived column like any sourced channel.
//
// Runs exactly once per pipeline, after alignment and before filling.
func (t *Table) Derive() {
	derived := make([]Sample, t.Len())
	for i := range t.times {
		rear := t.At(RearCircuitChannel, i)
		front := t.At(FrontCircuitChannel, i)
		if rear.Valid && front.Valid {
			derived[i] = Reading(rear.Value - front.Value)
		}
	}
	t.setColumn(DerivedChannel, derived)
}
