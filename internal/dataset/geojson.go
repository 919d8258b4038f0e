package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AgriVista/acreage-backend/internal/config"
)

type geoFeature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

type featureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

// loadBoundaryTable reads a GeoJSON FeatureCollection of district
// boundaries. The district property is required across the collection;
// geometry is kept as raw GeoJSON for the map layer.
func loadBoundaryTable(path string, cols config.Columns) (*BoundaryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse boundary file: %w", err)
	}

	table := &BoundaryTable{}
	sawDistrict := false
	for _, f := range fc.Features {
		district := propString(f.Properties, cols.District)
		if _, ok := f.Properties[cols.District]; ok {
			sawDistrict = true
		}
		rec := BoundaryRecord{
			District: district,
			Geometry: f.Geometry,
			Key:      NormalizeKey(district),
		}
		if _, ok := f.Properties[cols.State]; ok {
			table.HasState = true
			if s := propString(f.Properties, cols.State); s != "" {
				rec.State = &s
			}
		}
		table.Records = append(table.Records, rec)
	}

	if len(fc.Features) > 0 && !sawDistrict {
		return nil, &SchemaError{Source: "boundary file", Column: cols.District}
	}

	return table, nil
}

func propString(props map[string]any, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bounds computes the [minLon, minLat, maxLon, maxLat] envelope of the
// given records for initial map framing. ok is false when no geometry
// contributed a coordinate.
func Bounds(records []JoinedRecord) (bbox [4]float64, ok bool) {
	for i := range records {
		walkGeometry(records[i].Geometry, &bbox, &ok)
	}
	return bbox, ok
}

func walkGeometry(geom json.RawMessage, bbox *[4]float64, ok *bool) {
	if len(geom) == 0 {
		return
	}
	var g struct {
		Type        string            `json:"type"`
		Coordinates any               `json:"coordinates"`
		Geometries  []json.RawMessage `json:"geometries"`
	}
	if err := json.Unmarshal(geom, &g); err != nil {
		return
	}
	for _, nested := range g.Geometries {
		walkGeometry(nested, bbox, ok)
	}
	walkCoords(g.Coordinates, bbox, ok)
}

// walkCoords descends nested coordinate arrays until it hits [lon, lat]
// positions (a slice whose first element is a number).
func walkCoords(node any, bbox *[4]float64, ok *bool) {
	arr, isArr := node.([]any)
	if !isArr || len(arr) == 0 {
		return
	}
	if lon, isNum := arr[0].(float64); isNum {
		if len(arr) < 2 {
			return
		}
		lat, isNum := arr[1].(float64)
		if !isNum {
			return
		}
		if !*ok {
			*bbox = [4]float64{lon, lat, lon, lat}
			*ok = true
			return
		}
		if lon < bbox[0] {
			bbox[0] = lon
		}
		if lat < bbox[1] {
			bbox[1] = lat
		}
		if lon > bbox[2] {
			bbox[2] = lon
		}
		if lat > bbox[3] {
			bbox[3] = lat
		}
		return
	}
	for _, child := range arr {
		walkCoords(child, bbox, ok)
	}
}
