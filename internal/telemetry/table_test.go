package telemetry

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAlign(t *testing.T) {
	records := []RawRecord{
		{Channel: 5, Time: 2.0, Value: Reading(3.0)},
		{Channel: 2, Time: 1.0, Value: Reading(0.5)},
		{Channel: 4, Time: 2.0, Value: Reading(1.0)},
		{Channel: 2, Time: 3.0, Value: Reading(-0.7)},
		{Channel: 3, Time: 2.5, Value: Reading(9.0)}, // a row only channel 3 observes
	}
	table := Align(records)

	wantTimes := []float64{1.0, 2.0, 2.5, 3.0}
	if diff := cmp.Diff(wantTimes, table.Times()); diff != "" {
		t.Errorf("row index mismatch (-want +got):\n%s", diff)
	}

	// Channel 2 observed at rows 0 and 3 only.
	wantCh2 := []Sample{Reading(0.5), {}, {}, Reading(-0.7)}
	if diff := cmp.Diff(wantCh2, table.Column(2)); diff != "" {
		t.Errorf("channel 2 mismatch (-want +got):\n%s", diff)
	}

	// The channel-3-only row leaves every other channel absent there.
	for _, ch := range []int{2, 4, 5} {
		if table.At(ch, 2).Valid {
			t.Errorf("channel %d should be absent at t=2.5", ch)
		}
	}
}

func TestAlignDiscardsChannel7Input(t *testing.T) {
	records := []RawRecord{
		{Channel: 2, Time: 1.0, Value: Reading(0.1)},
		{Channel: 4, Time: 1.0, Value: Reading(2.0)},
		{Channel: 5, Time: 1.0, Value: Reading(3.0)},
		{Channel: 7, Time: 1.0, Value: Reading(99.0)},
		{Channel: 7, Time: 5.0, Value: Reading(99.0)},
	}
	table := Align(records)

	if table.At(DerivedChannel, 0).Valid {
		t.Error("channel 7 input must not populate the derived column")
	}
	// A time observed only by channel 7 contributes no row.
	if table.Len() != 1 {
		t.Errorf("expected 1 row, got %d", table.Len())
	}
}

func TestAlignDuplicatePairLastWins(t *testing.T) {
	records := []RawRecord{
		{Channel: 2, Time: 1.0, Value: Reading(0.1)},
		{Channel: 2, Time: 1.0, Value: Reading(0.9)},
	}
	table := Align(records)
	got := table.At(2, 0)
	if !got.Valid || got.Value != 0.9 {
		t.Errorf("expected last duplicate to win, got %+v", got)
	}
}

func TestAlignRowOrderInvariance(t *testing.T) {
	records, err := ParseFile(filepath.Join("testdata", "practice.dat"))
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	base := analyze(records, Options{})

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 3; trial++ {
		shuffled := make([]RawRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := analyze(shuffled, Options{})
		if diff := cmp.Diff(base.Table.Times(), got.Table.Times()); diff != "" {
			t.Fatalf("trial %d: row index changed under shuffle (-want +got):\n%s", trial, diff)
		}
		for _, ch := range base.Table.Channels() {
			if diff := cmp.Diff(base.Table.Column(ch), got.Table.Column(ch)); diff != "" {
				t.Fatalf("trial %d: channel %d changed under shuffle (-want +got):\n%s", trial, ch, diff)
			}
		}
		if diff := cmp.Diff(base.Results, got.Results, cmpopts.EquateNaNs()); diff != "" {
			t.Fatalf("trial %d: results changed under shuffle (-want +got):\n%s", trial, diff)
		}
	}
}

func TestAlignExtraChannelInvariance(t *testing.T) {
	records, err := ParseFile(filepath.Join("testdata", "practice.dat"))
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	base := analyze(records, Options{Fill: true, Method: Interpolate})

	// Extra channels at already-observed times must not disturb channels 1-7.
	extra := append([]RawRecord{}, records...)
	extra = append(extra,
		RawRecord{Channel: 9, Time: 200.7, Value: Reading(1.0)},
		RawRecord{Channel: 12, Time: 215.7, Value: Reading(-5.0)},
	)
	got := analyze(extra, Options{Fill: true, Method: Interpolate})

	for ch := 1; ch <= 7; ch++ {
		if diff := cmp.Diff(base.Table.Column(ch), got.Table.Column(ch)); diff != "" {
			t.Errorf("channel %d changed when extra channels were added (-want +got):\n%s", ch, diff)
		}
	}
	if diff := cmp.Diff(base.Results, got.Results, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("results changed when extra channels were added (-want +got):\n%s", diff)
	}
}

func TestDerive(t *testing.T) {
	records := []RawRecord{
		{Channel: 2, Time: 1.0, Value: Reading(0.1)},
		{Channel: 4, Time: 1.0, Value: Reading(2.0)},
		{Channel: 5, Time: 1.0, Value: Reading(3.5)},
		{Channel: 4, Time: 2.0, Value: Reading(2.0)}, // channel 5 absent here
		{Channel: 5, Time: 3.0, Value: Reading(1.0)}, // channel 4 absent here
	}
	table := Align(records)
	table.Derive()

	got := table.At(DerivedChannel, 0)
	if !got.Valid || got.Value != 1.5 {
		t.Errorf("expected derived 1.5 at t=1.0, got %+v", got)
	}
	if table.At(DerivedChannel, 1).Valid {
		t.Error("derived channel must stay absent when channel 5 is missing")
	}
	if table.At(DerivedChannel, 2).Valid {
		t.Error("derived channel must stay absent when channel 4 is missing")
	}
}
