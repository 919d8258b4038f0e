package dataset

import (
	"encoding/json"
	"testing"
)

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

func boundary(district string, state *string) BoundaryRecord {
	return BoundaryRecord{
		District: district,
		State:    state,
		Geometry: json.RawMessage(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`),
		Key:      NormalizeKey(district),
	}
}

func stat(district string, predicted, mean *float64) StatRecord {
	return StatRecord{
		District:       district,
		StabilityClass: sptr("Stable Acreage"),
		Predicted:      predicted,
		MeanAcreage:    mean,
		Key:            NormalizeKey(district),
	}
}

// TestJoin_EveryBoundaryAppears verifies that every boundary record shows
// up exactly once regardless of stat matches, and that unmatched
// boundaries carry no stat payload.
func TestJoin_EveryBoundaryAppears(t *testing.T) {
	boundaries := &BoundaryTable{Records: []BoundaryRecord{
		boundary("Alpha", nil),
		boundary("Orphan", nil),
	}}
	stats := &StatTable{
		Records: []StatRecord{stat("alpha ", fptr(12), fptr(10))},
		Columns: map[string]bool{"District": true},
	}

	joined := Join(boundaries, stats)
	if len(joined.Records) != 2 {
		t.Fatalf("expected 2 joined records, got %d", len(joined.Records))
	}
	if joined.Records[0].Stat == nil {
		t.Error("Alpha should have matched despite case/whitespace differences")
	}
	if joined.Records[1].Stat != nil {
		t.Error("Orphan should have no stat payload")
	}
}

// TestJoin_CollisionFansOut verifies the accepted fan-out behavior: a
// boundary key matching two stat rows produces two joined records.
func TestJoin_CollisionFansOut(t *testing.T) {
	boundaries := &BoundaryTable{Records: []BoundaryRecord{boundary("Alpha", nil)}}
	stats := &StatTable{
		Records: []StatRecord{
			stat("Alpha", fptr(1), nil),
			stat("ALPHA", fptr(2), nil),
		},
		Columns: map[string]bool{},
	}

	joined := Join(boundaries, stats)
	if len(joined.Records) != 2 {
		t.Fatalf("expected fan-out to 2 records, got %d", len(joined.Records))
	}
}

// TestJoin_StateBackfill verifies the state field comes from the boundary
// side when present there, and from the stat side otherwise.
func TestJoin_StateBackfill(t *testing.T) {
	withState := &BoundaryTable{
		Records:  []BoundaryRecord{boundary("Alpha", sptr("MP"))},
		HasState: true,
	}
	statNoState := &StatTable{
		Records: []StatRecord{stat("Alpha", fptr(1), nil)},
		Columns: map[string]bool{},
	}
	joined := Join(withState, statNoState)
	if joined.Records[0].State == nil || *joined.Records[0].State != "MP" {
		t.Error("expected state backfilled from the boundary side")
	}
	if !joined.HasState {
		t.Error("expected HasState true")
	}

	noState := &BoundaryTable{Records: []BoundaryRecord{boundary("Alpha", nil)}}
	withStateStat := &StatTable{
		Records:  []StatRecord{{District: "Alpha", State: sptr("MH"), Key: NormalizeKey("Alpha")}},
		Columns:  map[string]bool{},
		HasState: true,
	}
	joined = Join(noState, withStateStat)
	if joined.Records[0].State == nil || *joined.Records[0].State != "MH" {
		t.Error("expected state taken from the stat side when boundaries carry none")
	}
}

// TestDeltaVsMeanPct_ZeroOrMissingDenominator verifies the undefined
// policy for derived ratios.
func TestDeltaVsMeanPct_ZeroOrMissingDenominator(t *testing.T) {
	rec := JoinedRecord{Stat: &StatRecord{Predicted: fptr(1), MeanAcreage: fptr(0)}}
	if rec.DeltaVsMeanPct() != nil {
		t.Error("zero mean must yield an undefined delta")
	}

	rec = JoinedRecord{Stat: &StatRecord{Predicted: fptr(1)}}
	if rec.DeltaVsMeanPct() != nil {
		t.Error("missing mean must yield an undefined delta")
	}

	rec = JoinedRecord{}
	if rec.DeltaVsMeanPct() != nil {
		t.Error("unmatched boundary must yield an undefined delta")
	}

	rec = JoinedRecord{Stat: &StatRecord{Predicted: fptr(12), MeanAcreage: fptr(10)}}
	got := rec.DeltaVsMeanPct()
	if got == nil || *got != 20 {
		t.Errorf("expected 20.0, got %v", got)
	}
}

// TestBounds verifies envelope computation across records and the ok flag
// on geometry-free input.
func TestBounds(t *testing.T) {
	records := []JoinedRecord{
		{Geometry: json.RawMessage(`{"type":"Polygon","coordinates":[[[75,21],[76,21],[76,22],[75,21]]]}`)},
		{Geometry: json.RawMessage(`{"type":"MultiPolygon","coordinates":[[[[77,23],[78,23],[78,24],[77,23]]]]}`)},
	}
	bbox, ok := Bounds(records)
	if !ok {
		t.Fatal("expected bounds")
	}
	want := [4]float64{75, 21, 78, 24}
	if bbox != want {
		t.Errorf("expected %v, got %v", want, bbox)
	}

	if _, ok := Bounds(nil); ok {
		t.Error("expected no bounds for empty input")
	}
}
