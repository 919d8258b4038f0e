package dashboard

import (
	"log"

	"github.com/AgriVista/acreage-backend/internal/config"
	"github.com/AgriVista/acreage-backend/internal/dataset"
)

var (
	Cfg    config.Config
	Loader *dataset.Loader
)

func Init() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load dashboard config: ", err)
	}
	Cfg = cfg
	Loader = dataset.NewLoader(cfg.Columns)

	log.Printf("[dashboard] stat source: %s", cfg.StatPath)
	log.Printf("[dashboard] boundary source: %s", cfg.BoundaryPath)
}
