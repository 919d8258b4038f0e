package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/AgriVista/acreage-backend/internal/config"
)

// loadStatTable reads and validates the district stat CSV. Missing required
// columns are a *SchemaError; malformed numeric cells are not errors, they
// become nil and flow downstream as undefined.
func loadStatTable(path string, cols config.Columns) (*StatTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, errors.New("csv has no header row")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	present := map[string]bool{}
	for i, h := range header {
		name := strings.TrimSpace(h)
		col[name] = i
		present[name] = true
	}

	for _, required := range []string{cols.District, config.ColStabilityClass, config.ColPredicted} {
		if !present[required] {
			return nil, &SchemaError{Source: "stat table", Column: required}
		}
	}

	table := &StatTable{
		Columns:  present,
		HasState: present[cols.State],
	}

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		num := func(name string) *float64 {
			v, err := strconv.ParseFloat(get(name), 64)
			if err != nil {
				return nil
			}
			return &v
		}
		str := func(name string) *string {
			s := get(name)
			if s == "" {
				return nil
			}
			return &s
		}

		district := get(cols.District)
		row := StatRecord{
			District:       district,
			StabilityClass: str(config.ColStabilityClass),
			MeanAcreage:    num(config.ColMean),
			StdAcreage:     num(config.ColStd),
			CVPercent:      num(config.ColCV),
			TrendSlope:     num(config.ColTrendSlope),
			R2:             num(config.ColR2),
			PriorYear:      num(cols.PriorYear),
			Predicted:      num(config.ColPredicted),
			YearsAvailable: num(config.ColYears),
			Key:            NormalizeKey(district),
		}
		if table.HasState {
			row.State = str(cols.State)
		}
		table.Records = append(table.Records, row)
	}

	return table, nil
}
