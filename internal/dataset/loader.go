package dataset

import (
	"time"

	"github.com/AgriVista/acreage-backend/internal/config"
	gocache "github.com/patrickmn/go-cache"
)

// Loader reads the two input sources and caches parsed results by path, so
// repeated render cycles on unchanged inputs skip re-parsing. Load errors
// are never cached.
type Loader struct {
	cols  config.Columns
	cache *gocache.Cache
}

func NewLoader(cols config.Columns) *Loader {
	return &Loader{
		cols:  cols,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (l *Loader) StatTable(path string) (*StatTable, error) {
	key := "stat:" + path
	if cached, ok := l.cache.Get(key); ok {
		return cached.(*StatTable), nil
	}
	table, err := loadStatTable(path, l.cols)
	if err != nil {
		return nil, err
	}
	l.cache.Set(key, table, gocache.DefaultExpiration)
	return table, nil
}

func (l *Loader) BoundaryTable(path string) (*BoundaryTable, error) {
	key := "boundary:" + path
	if cached, ok := l.cache.Get(key); ok {
		return cached.(*BoundaryTable), nil
	}
	table, err := loadBoundaryTable(path, l.cols)
	if err != nil {
		return nil, err
	}
	l.cache.Set(key, table, gocache.DefaultExpiration)
	return table, nil
}

// Flush drops all cached tables so the next cycle re-reads from disk.
// Used by the admin reload endpoint when input files are replaced in place.
func (l *Loader) Flush() {
	l.cache.Flush()
}
