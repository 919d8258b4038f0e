package dashboard

import (
	"sort"

	"github.com/AgriVista/acreage-backend/internal/dataset"
)

// DistrictNames returns the distinct raw district names of the records,
// sorted ascending. This ordering is the tie-break for "first district"
// when a selection has to fall back.
func DistrictNames(records []dataset.JoinedRecord) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range records {
		if rec.District == "" || seen[rec.District] {
			continue
		}
		seen[rec.District] = true
		out = append(out, rec.District)
	}
	sort.Strings(out)
	return out
}

// ResolveSelection validates the session's current district against the
// filtered district list. An unset or filtered-out district falls back to
// the alphabetically-first name. The second return reports whether the
// session cell must be rewritten.
func ResolveSelection(current string, names []string) (string, bool) {
	if len(names) == 0 {
		return "", current != ""
	}
	for _, n := range names {
		if n == current {
			return current, false
		}
	}
	return names[0], true
}

// FindByDistrict returns the first filtered record for the district.
// With fanned-out join collisions several records can share a name; the
// detail panel shows the first, matching input order.
func FindByDistrict(records []dataset.JoinedRecord, district string) *dataset.JoinedRecord {
	for i := range records {
		if records[i].District == district {
			return &records[i]
		}
	}
	return nil
}
