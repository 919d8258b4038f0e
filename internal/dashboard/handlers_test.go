package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AgriVista/acreage-backend/internal/config"
	"github.com/AgriVista/acreage-backend/internal/dataset"
	"github.com/AgriVista/acreage-backend/internal/utils"
)

const testCSV = `District,State,Acreage_Stability_Class,Mean_Acreage,Predicted_2025_Acreage
Alpha,MP,Stable Acreage,10,12
Beta,MP,Marginal Acreage (Statistically Unstable),0,1
`

const testGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"District": "Alpha", "State": "MP"},
		 "geometry": {"type": "Polygon", "coordinates": [[[75,21],[76,21],[76,22],[75,21]]]}},
		{"type": "Feature", "properties": {"District": "Beta", "State": "MP"},
		 "geometry": {"type": "Polygon", "coordinates": [[[77,23],[78,23],[78,24],[77,23]]]}}
	]
}`

type fakeSessions struct {
	selected map[string]string
}

func (f *fakeSessions) Selected(id string) string { return f.selected[id] }
func (f *fakeSessions) SetSelected(id, district string) error {
	f.selected[id] = district
	return nil
}

// setupView points the package at a temp copy of the two-district scenario
// and swaps in a fake session cell.
func setupView(t *testing.T) *fakeSessions {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "stats.csv")
	geoPath := filepath.Join(dir, "bounds.geojson")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(geoPath, []byte(testGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cols := config.Columns{District: "District", State: "State", PriorYear: "Acreage_2024"}
	prevCfg, prevLoader, prevSessions := Cfg, Loader, Sessions
	Cfg = config.Config{StatPath: csvPath, BoundaryPath: geoPath, Columns: cols}
	Loader = dataset.NewLoader(cols)
	fake := &fakeSessions{selected: map[string]string{}}
	Sessions = fake
	t.Cleanup(func() {
		Cfg, Loader, Sessions = prevCfg, prevLoader, prevSessions
	})

	return fake
}

func getJSON(t *testing.T, handler http.HandlerFunc, target string, sessionID string, out any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if sessionID != "" {
		ctx := context.WithValue(req.Context(), utils.ContextSessionIDKey, sessionID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec
}

func stableOnly() string {
	q := url.Values{}
	q.Set("classes", "Stable Acreage")
	return "?" + q.Encode()
}

// TestSummaryHandler_FilteredScenario runs the two-district scenario:
// filtering to the stable class keeps Alpha only, total predicted 12,
// delta vs mean +20%.
func TestSummaryHandler_FilteredScenario(t *testing.T) {
	setupView(t)

	var out SummaryOut
	rec := getJSON(t, SummaryHandler, "/summary"+stableOnly(), "", &out)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if out.TotalPredicted != 12 {
		t.Errorf("expected total predicted 12, got %v", out.TotalPredicted)
	}
	if out.TotalMeanAcreage == nil || *out.TotalMeanAcreage != 10 {
		t.Errorf("expected mean total 10, got %v", out.TotalMeanAcreage)
	}
	if out.DeltaPct == nil || *out.DeltaPct != 20 {
		t.Errorf("expected delta 20%%, got %v", out.DeltaPct)
	}
}

// TestTableHandler_FilteredScenario checks row filtering and the ordered
// preferred-column subset.
func TestTableHandler_FilteredScenario(t *testing.T) {
	setupView(t)

	var out TableOut
	rec := getJSON(t, TableHandler, "/table"+stableOnly(), "", &out)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(out.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out.Rows))
	}
	if out.Rows[0][0] != "Alpha" {
		t.Errorf("expected Alpha, got %v", out.Rows[0][0])
	}
	// Std/CV/slope/R2/prior columns are absent from the CSV and must not appear.
	want := []string{"District", config.ColStabilityClass, config.ColMean, config.ColPredicted}
	if len(out.Columns) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, out.Columns)
	}
	for i, c := range want {
		if out.Columns[i] != c {
			t.Errorf("column %d: expected %s, got %s", i, c, out.Columns[i])
		}
	}
}

// TestGeoJSONHandler_ColorsAndBounds checks feature count, class colors
// and the framing envelope.
func TestGeoJSONHandler_ColorsAndBounds(t *testing.T) {
	setupView(t)

	var out struct {
		Type     string    `json:"type"`
		BBox     []float64 `json:"bbox"`
		Center   []float64 `json:"center"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	rec := getJSON(t, GeoJSONHandler, "/geojson", "", &out)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(out.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(out.Features))
	}
	colors := map[string]string{}
	for _, f := range out.Features {
		colors[f.Properties["district"].(string)] = f.Properties["color"].(string)
	}
	if colors["Alpha"] != string(ColorGreen) || colors["Beta"] != string(ColorRed) {
		t.Errorf("unexpected colors: %v", colors)
	}
	if len(out.BBox) != 4 || out.BBox[0] != 75 || out.BBox[3] != 24 {
		t.Errorf("unexpected bbox: %v", out.BBox)
	}
	if len(out.Center) != 2 || out.Center[0] != 22.5 || out.Center[1] != 76.5 {
		t.Errorf("unexpected center: %v", out.Center)
	}
}

// TestHandlers_NoMatches verifies the empty-result signal: an explicitly
// empty class selection halts with the no-matches notice.
func TestHandlers_NoMatches(t *testing.T) {
	setupView(t)

	rec := getJSON(t, SummaryHandler, "/summary?classes=", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No districts match the selected filters.") {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

// TestDetailHandler_FilterInvalidatesClick verifies the selection state
// machine through the HTTP layer: a click on Beta followed by a filter
// that drops Beta resolves to Alpha and persists the fallback.
func TestDetailHandler_FilterInvalidatesClick(t *testing.T) {
	fake := setupView(t)
	fake.selected["s1"] = "Beta" // prior map click

	var out DetailOut
	rec := getJSON(t, DetailHandler, "/detail"+stableOnly(), "s1", &out)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if out.District != "Alpha" {
		t.Errorf("expected fallback to Alpha, got %s", out.District)
	}
	if fake.selected["s1"] != "Alpha" {
		t.Errorf("expected fallback persisted, session holds %q", fake.selected["s1"])
	}
	if out.DeltaVsMeanPct == nil || *out.DeltaVsMeanPct != 20 {
		t.Errorf("expected detail delta 20%%, got %v", out.DeltaVsMeanPct)
	}
	if len(out.Chart) != 2 || out.Chart[0].Label != "Mean" || out.Chart[1].Label != "2025 Pred" {
		t.Errorf("unexpected chart series: %v", out.Chart)
	}
}

// TestDetailHandler_ZeroMeanUndefined verifies the detail delta stays
// undefined for Beta's zero mean.
func TestDetailHandler_ZeroMeanUndefined(t *testing.T) {
	fake := setupView(t)
	fake.selected["s1"] = "Beta"

	var out DetailOut
	rec := getJSON(t, DetailHandler, "/detail", "s1", &out)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if out.District != "Beta" {
		t.Fatalf("expected Beta, got %s", out.District)
	}
	if out.DeltaVsMeanPct != nil {
		t.Errorf("expected undefined delta for zero mean, got %v", *out.DeltaVsMeanPct)
	}
	if out.Color != string(ColorRed) {
		t.Errorf("expected red, got %s", out.Color)
	}
}

// TestSelectHandler_Overwrites verifies a click overwrites the session
// cell unconditionally.
func TestSelectHandler_Overwrites(t *testing.T) {
	fake := setupView(t)
	fake.selected["s1"] = "Alpha"

	body := strings.NewReader(`{"district":"Beta"}`)
	req := httptest.NewRequest(http.MethodPost, "/select", body)
	req = req.WithContext(context.WithValue(req.Context(), utils.ContextSessionIDKey, "s1"))
	rec := httptest.NewRecorder()
	SelectHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.selected["s1"] != "Beta" {
		t.Errorf("expected Beta selected, got %q", fake.selected["s1"])
	}
}

// TestFiltersHandler lists states and the fixed taxonomy.
func TestFiltersHandler(t *testing.T) {
	setupView(t)

	var out FiltersOut
	rec := getJSON(t, FiltersHandler, "/filters", "", &out)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(out.States) != 1 || out.States[0] != "MP" {
		t.Errorf("expected states [MP], got %v", out.States)
	}
	if len(out.Classes) != 4 {
		t.Errorf("expected the 4-class taxonomy, got %v", out.Classes)
	}
}
