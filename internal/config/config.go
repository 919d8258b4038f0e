package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Columns maps the configurable column names of the stat CSV and the
// boundary file. The stability-class and predicted-acreage columns are
// fixed upstream and are not remappable.
type Columns struct {
	District  string `yaml:"district"`
	State     string `yaml:"state"`
	PriorYear string `yaml:"prior_year"`
}

// Fixed upstream column names.
const (
	ColStabilityClass = "Acreage_Stability_Class"
	ColPredicted      = "Predicted_2025_Acreage"
	ColMean           = "Mean_Acreage"
	ColStd            = "Std_Acreage"
	ColCV             = "CV(%)"
	ColTrendSlope     = "Trend_Slope"
	ColR2             = "R2"
	ColYears          = "Years_Available"
)

// Config holds everything the server needs at boot.
type Config struct {
	StatPath     string  `yaml:"stat_csv"`
	BoundaryPath string  `yaml:"boundary_geojson"`
	Columns      Columns `yaml:"columns"`
}

func defaults() Config {
	return Config{
		StatPath:     "District_Acreage_Variation_R2_2025_f.csv",
		BoundaryPath: "3states.geojson",
		Columns: Columns{
			District:  "District",
			State:     "State",
			PriorYear: "Acreage_2024",
		},
	}
}

// LoadFromEnv builds the configuration from defaults, an optional YAML file
// (DASHBOARD_CONFIG) and environment overrides.
//
// Environment variables:
//   - DASHBOARD_CONFIG: path to a YAML config file (optional)
//   - STAT_CSV: path to the district stat CSV
//   - BOUNDARY_GEOJSON: path to the district boundary GeoJSON
func LoadFromEnv() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("DASHBOARD_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		// A file that clears a column name falls back to the default.
		cfg.Columns = cfg.Columns.withDefaults()
	}

	if v := os.Getenv("STAT_CSV"); v != "" {
		cfg.StatPath = v
	}
	if v := os.Getenv("BOUNDARY_GEOJSON"); v != "" {
		cfg.BoundaryPath = v
	}

	return cfg, nil
}

func (c Columns) withDefaults() Columns {
	d := defaults().Columns
	if c.District == "" {
		c.District = d.District
	}
	if c.State == "" {
		c.State = d.State
	}
	if c.PriorYear == "" {
		c.PriorYear = d.PriorYear
	}
	return c
}
