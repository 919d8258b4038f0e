package dashboard

import (
	"fmt"
	"strings"
)

// ColorToken is a map fill color for a stability class.
type ColorToken string

const (
	ColorRed    ColorToken = "#FF0000"
	ColorOrange ColorToken = "#FF7F00"
	ColorYellow ColorToken = "#FFFF00"
	ColorGreen  ColorToken = "#00A000"
	ColorGrey   ColorToken = "#CCCCCC" // no data / unrecognized
)

// StabilityClasses is the fixed 4-class taxonomy, in the order the filter
// widget presents it.
var StabilityClasses = []string{
	"Stable Acreage",
	"Moderately Variable",
	"Highly Volatile / Crop Switching Likely",
	"Marginal Acreage (Statistically Unstable)",
}

// ColorFor maps a stability-class label to its fill color. Labels are
// matched by substring because upstream attaches qualifiers to the base
// class names. The check order is fixed, highest risk first, and must not
// be reordered.
func ColorFor(class *string) ColorToken {
	if class == nil {
		return ColorGrey
	}
	switch {
	case strings.Contains(*class, "Marginal Acreage"):
		return ColorRed
	case strings.Contains(*class, "Highly Volatile"):
		return ColorOrange
	case strings.Contains(*class, "Moderately Variable"):
		return ColorYellow
	case strings.Contains(*class, "Stable Acreage"):
		return ColorGreen
	default:
		return ColorGrey
	}
}

// Narrative renders the risk interpretation text for a district.
func Narrative(district string, class *string) string {
	if class == nil {
		return fmt.Sprintf("Acreage stability class for %s is unclear or missing. Please verify input data.", district)
	}
	switch {
	case strings.Contains(*class, "Stable Acreage"):
		return fmt.Sprintf("%s is classified as stable acreage. Acreage shows low year-to-year variation and this district can be considered a relatively safe zone.", district)
	case strings.Contains(*class, "Moderately Variable"):
		return fmt.Sprintf("%s is classified as moderately variable acreage. Acreage fluctuates across years and this district can be considered a moderate-risk zone.", district)
	case strings.Contains(*class, "Highly Volatile"):
		return fmt.Sprintf("%s is classified as highly volatile / crop switching likely. Acreage changes significantly across years, often driven by rainfall timing or price signals. This district should be treated as a risk zone.", district)
	case strings.Contains(*class, "Marginal Acreage"):
		return fmt.Sprintf("%s is classified as marginal and statistically unstable acreage. The cropped area is small and variable, and this district should be treated as a marginal zone.", district)
	default:
		return fmt.Sprintf("Acreage stability class for %s is unclear or missing. Please verify input data.", district)
	}
}

// TrendDirection labels a trend slope for the detail panel.
func TrendDirection(slope *float64) string {
	if slope == nil {
		return ""
	}
	switch {
	case *slope > 0:
		return "increasing"
	case *slope < 0:
		return "decreasing"
	default:
		return "flat"
	}
}
