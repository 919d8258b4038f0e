package dataset

import (
	"encoding/json"
	"fmt"
)

// StatRecord is one row of the district stat CSV. Optional numeric cells
// are pointers; nil means the value was absent or unparseable and must stay
// "undefined" downstream, never zero.
type StatRecord struct {
	District       string
	State          *string
	StabilityClass *string
	MeanAcreage    *float64
	StdAcreage     *float64
	CVPercent      *float64
	TrendSlope     *float64
	R2             *float64
	PriorYear      *float64
	Predicted      *float64
	YearsAvailable *float64

	// Key is the normalized join key derived from District.
	Key string
}

// StatTable is the parsed stat CSV plus the set of columns the file
// actually carried. Column-level presence drives which metrics the
// dashboard offers at all.
type StatTable struct {
	Records  []StatRecord
	Columns  map[string]bool
	HasState bool
}

func (t *StatTable) HasColumn(name string) bool {
	return t.Columns[name]
}

// BoundaryRecord is one feature of the boundary file. Geometry is carried
// as raw GeoJSON and handed through to the map layer untouched.
type BoundaryRecord struct {
	District string
	State    *string
	Geometry json.RawMessage
	Key      string
}

type BoundaryTable struct {
	Records  []BoundaryRecord
	HasState bool
}

// JoinedRecord is a boundary record with its matching stat payload, if any.
// Stat is nil for boundaries with no matching stat row.
type JoinedRecord struct {
	District string
	State    *string
	Geometry json.RawMessage
	Stat     *StatRecord
	Key      string
}

// StabilityClass returns the raw class label, nil when the record has no
// stat payload or the cell was blank.
func (r *JoinedRecord) StabilityClass() *string {
	if r.Stat == nil {
		return nil
	}
	return r.Stat.StabilityClass
}

// DeltaVsMeanPct is the predicted-vs-historical-mean delta in percent.
// Undefined (nil) when either side is missing or the mean is not positive.
func (r *JoinedRecord) DeltaVsMeanPct() *float64 {
	if r.Stat == nil || r.Stat.Predicted == nil {
		return nil
	}
	return pctDelta(*r.Stat.Predicted, r.Stat.MeanAcreage)
}

// DeltaVsPriorPct is the predicted-vs-prior-year delta in percent, with the
// same undefined policy as DeltaVsMeanPct.
func (r *JoinedRecord) DeltaVsPriorPct() *float64 {
	if r.Stat == nil || r.Stat.Predicted == nil {
		return nil
	}
	return pctDelta(*r.Stat.Predicted, r.Stat.PriorYear)
}

func pctDelta(value float64, base *float64) *float64 {
	if base == nil || *base <= 0 {
		return nil
	}
	d := (value - *base) / *base * 100
	return &d
}

// JoinedSet is the output of Join: the joined records plus the stat table's
// column presence, which survives the join for summary/table building.
type JoinedSet struct {
	Records  []JoinedRecord
	Columns  map[string]bool
	HasState bool
}

func (s *JoinedSet) HasColumn(name string) bool {
	return s.Columns[name]
}

// SchemaError reports a required column missing from an input source.
// It is fatal for the load; nothing renders on top of a partial schema.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q not found in %s", e.Column, e.Source)
}
