package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NullKey is the join key assigned to records with a blank district name.
// It is distinct from any real key so blank rows never accidentally match.
const NullKey = "__NO_DISTRICT__"

var upper = cases.Upper(language.Und)

// NormalizeKey produces the canonical join key for a district name:
// trimmed and uppercased. Both sides of the join must go through this so
// case and whitespace differences between sources never cause a miss.
func NormalizeKey(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return NullKey
	}
	return upper.String(trimmed)
}
