package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/AgriVista/acreage-backend/internal/chart"
	"github.com/AgriVista/acreage-backend/internal/config"
	"github.com/AgriVista/acreage-backend/internal/dataset"
	"github.com/AgriVista/acreage-backend/internal/session"
	"github.com/AgriVista/acreage-backend/internal/utils"
)

// SessionCell abstracts the per-session selected-district cell so handler
// tests can swap in a fake.
type SessionCell interface {
	Selected(sessionID string) string
	SetSelected(sessionID, district string) error
}

type sessionStore struct{}

func (sessionStore) Selected(id string) string { return session.SelectedDistrict(id) }
func (sessionStore) SetSelected(id, district string) error {
	return session.SetSelectedDistrict(id, district)
}

var Sessions SessionCell = sessionStore{}

var errNoMatches = errors.New("no districts match the selected filters")

func parseSelection(r *http.Request) Selection {
	q := r.URL.Query()

	state := q.Get("state")
	if state == "" {
		state = "All"
	}
	sel := Selection{State: state}

	vals, ok := q["classes"]
	if !ok {
		// Absent parameter means the widget default: all four classes.
		sel.Classes = AllClasses()
		return sel
	}
	for _, v := range vals {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				sel.Classes = append(sel.Classes, c)
			}
		}
	}
	return sel
}

// currentView runs one render cycle's pipeline: load (cached), join,
// filter. An empty filtered set is reported as errNoMatches and halts the
// cycle before any summary or detail work.
func currentView(r *http.Request) (*dataset.JoinedSet, []dataset.JoinedRecord, error) {
	stats, err := Loader.StatTable(Cfg.StatPath)
	if err != nil {
		return nil, nil, err
	}
	boundaries, err := Loader.BoundaryTable(Cfg.BoundaryPath)
	if err != nil {
		return nil, nil, err
	}

	set := dataset.Join(boundaries, stats)
	filtered := Filter(set, parseSelection(r))
	if len(filtered) == 0 {
		return set, nil, errNoMatches
	}
	return set, filtered, nil
}

func writeViewError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoMatches) {
		http.Error(w, "No districts match the selected filters.", http.StatusNotFound)
		return
	}
	http.Error(w, "Error loading data: "+err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// resolveSelected applies the selection state machine for this cycle:
// session value if still in the filtered set, else the alphabetically
// first district, persisting the fallback back to the session.
func resolveSelected(r *http.Request, filtered []dataset.JoinedRecord) *dataset.JoinedRecord {
	names := DistrictNames(filtered)

	current := ""
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if ok {
		current = Sessions.Selected(sessionID)
	}

	resolved, changed := ResolveSelection(current, names)
	if changed && ok {
		if err := Sessions.SetSelected(sessionID, resolved); err != nil {
			log.Printf("[dashboard] failed to persist selection: %v", err)
		}
	}
	return FindByDistrict(filtered, resolved)
}

func chartSeries(rec *dataset.JoinedRecord) []chart.Point {
	var pts []chart.Point
	if rec == nil || rec.Stat == nil {
		return pts
	}
	if rec.Stat.MeanAcreage != nil {
		pts = append(pts, chart.Point{Label: "Mean", Value: *rec.Stat.MeanAcreage})
	}
	if rec.Stat.PriorYear != nil {
		pts = append(pts, chart.Point{Label: "Prior Year", Value: *rec.Stat.PriorYear})
	}
	if rec.Stat.Predicted != nil {
		pts = append(pts, chart.Point{Label: "2025 Pred", Value: *rec.Stat.Predicted})
	}
	return pts
}

func GeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	_, filtered, err := currentView(r)
	if err != nil {
		writeViewError(w, err)
		return
	}

	out := geoJSONOut{Type: "FeatureCollection", Features: []featureOut{}}
	if bbox, ok := dataset.Bounds(filtered); ok {
		out.BBox = bbox[:]
		out.Center = []float64{(bbox[1] + bbox[3]) / 2, (bbox[0] + bbox[2]) / 2}
	}

	for _, rec := range filtered {
		class := rec.StabilityClass()
		props := map[string]any{
			"district":        rec.District,
			"state":           rec.State,
			"stability_class": class,
			"color":           string(ColorFor(class)),
		}
		if rec.Stat != nil {
			props["predicted_acreage"] = rec.Stat.Predicted
			props["mean_acreage"] = rec.Stat.MeanAcreage
			props["delta_vs_mean_pct"] = rec.DeltaVsMeanPct()
		}
		out.Features = append(out.Features, featureOut{
			Type:       "Feature",
			Properties: props,
			Geometry:   rec.Geometry,
		})
	}

	writeJSON(w, out)
}

func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	set, filtered, err := currentView(r)
	if err != nil {
		writeViewError(w, err)
		return
	}

	s := Summarize(filtered, set.HasColumn(config.ColMean))
	writeJSON(w, SummaryOut{
		TotalPredicted:   s.TotalPredicted,
		TotalMeanAcreage: s.TotalMean,
		DeltaPct:         s.DeltaPct,
	})
}

func FiltersHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := Loader.StatTable(Cfg.StatPath)
	if err != nil {
		writeViewError(w, err)
		return
	}
	boundaries, err := Loader.BoundaryTable(Cfg.BoundaryPath)
	if err != nil {
		writeViewError(w, err)
		return
	}

	set := dataset.Join(boundaries, stats)
	writeJSON(w, FiltersOut{
		States:  States(set),
		Classes: AllClasses(),
	})
}

func DetailHandler(w http.ResponseWriter, r *http.Request) {
	_, filtered, err := currentView(r)
	if err != nil {
		writeViewError(w, err)
		return
	}

	rec := resolveSelected(r, filtered)
	if rec == nil {
		http.Error(w, "No districts match the selected filters.", http.StatusNotFound)
		return
	}

	class := rec.StabilityClass()
	out := DetailOut{
		District:       rec.District,
		State:          rec.State,
		StabilityClass: class,
		Color:          string(ColorFor(class)),
		Narrative:      Narrative(rec.District, class),
		Chart:          chartSeries(rec),
	}
	if out.Chart == nil {
		out.Chart = []chart.Point{}
	}
	if rec.Stat != nil {
		out.CVPercent = rec.Stat.CVPercent
		out.TrendSlope = rec.Stat.TrendSlope
		out.TrendDirection = TrendDirection(rec.Stat.TrendSlope)
		out.R2 = rec.Stat.R2
		out.MeanAcreage = rec.Stat.MeanAcreage
		out.PriorYearAcreage = rec.Stat.PriorYear
		out.PredictedAcreage = rec.Stat.Predicted
		out.DeltaVsMeanPct = rec.DeltaVsMeanPct()
		out.DeltaVsPriorPct = rec.DeltaVsPriorPct()
	}

	writeJSON(w, out)
}

func ChartHandler(w http.ResponseWriter, r *http.Request) {
	_, filtered, err := currentView(r)
	if err != nil {
		writeViewError(w, err)
		return
	}

	rec := resolveSelected(r, filtered)
	pts := chartSeries(rec)
	if len(pts) == 0 {
		http.Error(w, "No acreage values to chart", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := chart.RenderComparison(w, pts); err != nil {
		log.Printf("[dashboard] chart render failed: %v", err)
	}
}

func TableHandler(w http.ResponseWriter, r *http.Request) {
	set, filtered, err := currentView(r)
	if err != nil {
		writeViewError(w, err)
		return
	}

	preferred := []string{
		Cfg.Columns.District,
		config.ColStabilityClass,
		config.ColYears,
		config.ColMean,
		config.ColStd,
		config.ColCV,
		config.ColTrendSlope,
		config.ColR2,
		Cfg.Columns.PriorYear,
		config.ColPredicted,
	}
	var columns []string
	for _, c := range preferred {
		if c == Cfg.Columns.District || set.HasColumn(c) {
			columns = append(columns, c)
		}
	}

	rows := make([]dataset.JoinedRecord, len(filtered))
	copy(rows, filtered)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].District < rows[j].District
	})

	out := TableOut{Columns: columns, Rows: [][]any{}}
	for i := range rows {
		var cells []any
		for _, c := range columns {
			cells = append(cells, tableCell(&rows[i], c))
		}
		out.Rows = append(out.Rows, cells)
	}

	writeJSON(w, out)
}

func tableCell(rec *dataset.JoinedRecord, column string) any {
	if column == Cfg.Columns.District {
		return rec.District
	}
	if rec.Stat == nil {
		return nil
	}
	switch column {
	case config.ColStabilityClass:
		return rec.Stat.StabilityClass
	case config.ColYears:
		return rec.Stat.YearsAvailable
	case config.ColMean:
		return rec.Stat.MeanAcreage
	case config.ColStd:
		return rec.Stat.StdAcreage
	case config.ColCV:
		return rec.Stat.CVPercent
	case config.ColTrendSlope:
		return rec.Stat.TrendSlope
	case config.ColR2:
		return rec.Stat.R2
	case Cfg.Columns.PriorYear:
		return rec.Stat.PriorYear
	case config.ColPredicted:
		return rec.Stat.Predicted
	}
	return nil
}

func SelectHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		District string `json:"district"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.District == "" {
		http.Error(w, "district is required", http.StatusBadRequest)
		return
	}

	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	// A map click overwrites unconditionally; the next render re-validates
	// against whatever filters are active then.
	if err := Sessions.SetSelected(sessionID, input.District); err != nil {
		http.Error(w, "Failed to update selection", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"selected_district": input.District})
}
