package dashboard

import (
	"github.com/AgriVista/acreage-backend/internal/dataset"
)

// Summary holds the portfolio KPIs over the filtered set. TotalMean and
// DeltaPct are nil when the mean column is absent from the dataset or the
// summed mean is not positive.
type Summary struct {
	TotalPredicted float64
	TotalMean      *float64
	DeltaPct       *float64
}

// Summarize computes the KPI row. Nil cells are skipped, never coerced to
// zero. hasMeanColumn is a column-level check: a dataset without the mean
// column gets no mean KPI even if every row happens to be nil anyway.
func Summarize(records []dataset.JoinedRecord, hasMeanColumn bool) Summary {
	var s Summary
	for _, rec := range records {
		if rec.Stat == nil {
			continue
		}
		if rec.Stat.Predicted != nil {
			s.TotalPredicted += *rec.Stat.Predicted
		}
	}

	if !hasMeanColumn {
		return s
	}

	totalMean := 0.0
	for _, rec := range records {
		if rec.Stat != nil && rec.Stat.MeanAcreage != nil {
			totalMean += *rec.Stat.MeanAcreage
		}
	}
	s.TotalMean = &totalMean

	if totalMean > 0 {
		d := (s.TotalPredicted - totalMean) / totalMean * 100
		s.DeltaPct = &d
	}
	return s
}
