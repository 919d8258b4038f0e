package dashboard

import (
	"sort"

	"github.com/AgriVista/acreage-backend/internal/dataset"
)

// Selection is the transient filter state parsed from a request. A State
// of "All" (or blank) disables state scoping. An empty Classes set means
// the user deselected everything and the result is empty on purpose.
type Selection struct {
	State   string
	Classes []string
}

// AllClasses is the default selection covering the whole taxonomy.
func AllClasses() []string {
	out := make([]string, len(StabilityClasses))
	copy(out, StabilityClasses)
	return out
}

// Filter applies the state and class filters independently, preserving
// input order. The state filter is skipped when the scope is "All" or no
// record carries a state at all. Records without a stability class fail the
// class membership test, so unmatched boundaries only appear when the class
// filter would pass them explicitly.
func Filter(set *dataset.JoinedSet, sel Selection) []dataset.JoinedRecord {
	stateActive := sel.State != "" && sel.State != "All" && set.HasState

	classSet := make(map[string]bool, len(sel.Classes))
	for _, c := range sel.Classes {
		classSet[c] = true
	}

	out := []dataset.JoinedRecord{}
	for _, rec := range set.Records {
		if stateActive {
			if rec.State == nil || *rec.State != sel.State {
				continue
			}
		}
		class := rec.StabilityClass()
		if class == nil || !classSet[*class] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// States returns the distinct state names present in the set, sorted
// ascending, for populating the state filter widget.
func States(set *dataset.JoinedSet) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range set.Records {
		if rec.State == nil || *rec.State == "" || seen[*rec.State] {
			continue
		}
		seen[*rec.State] = true
		out = append(out, *rec.State)
	}
	sort.Strings(out)
	return out
}
