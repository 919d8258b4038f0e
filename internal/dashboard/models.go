package dashboard

import (
	"encoding/json"

	"github.com/AgriVista/acreage-backend/internal/chart"
)

type SummaryOut struct {
	TotalPredicted   float64  `json:"total_predicted"`
	TotalMeanAcreage *float64 `json:"total_mean_acreage,omitempty"`
	DeltaPct         *float64 `json:"delta_pct,omitempty"`
}

type FiltersOut struct {
	States  []string `json:"states"`
	Classes []string `json:"classes"`
}

type DetailOut struct {
	District         string        `json:"district"`
	State            *string       `json:"state,omitempty"`
	StabilityClass   *string       `json:"stability_class,omitempty"`
	Color            string        `json:"color"`
	CVPercent        *float64      `json:"cv_percent,omitempty"`
	TrendSlope       *float64      `json:"trend_slope,omitempty"`
	TrendDirection   string        `json:"trend_direction,omitempty"`
	R2               *float64      `json:"r2,omitempty"`
	MeanAcreage      *float64      `json:"mean_acreage,omitempty"`
	PriorYearAcreage *float64      `json:"prior_year_acreage,omitempty"`
	PredictedAcreage *float64      `json:"predicted_acreage,omitempty"`
	DeltaVsMeanPct   *float64      `json:"delta_vs_mean_pct,omitempty"`
	DeltaVsPriorPct  *float64      `json:"delta_vs_prior_pct,omitempty"`
	Narrative        string        `json:"narrative"`
	Chart            []chart.Point `json:"chart"`
}

// TableOut is the filtered district table: an ordered column list plus
// positional row values, so the frontend renders columns in the intended
// order without re-deriving it.
type TableOut struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type featureOut struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// geoJSONOut is a FeatureCollection with bbox and center carried as
// foreign members for initial map framing.
type geoJSONOut struct {
	Type     string       `json:"type"`
	BBox     []float64    `json:"bbox,omitempty"`
	Center   []float64    `json:"center,omitempty"`
	Features []featureOut `json:"features"`
}
