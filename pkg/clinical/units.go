package clinical

import (
	"strconv"
	"strings"
)

// NormalizeDose converts a recognized dosage string to the canonical unit:
// mcg becomes mg (value / 1000), g becomes mg (value * 1000), mg and ml pass
// through unchanged. A payload that fails to parse is returned as-is —
// malformed input is never fatal here.
func NormalizeDose(dose string) string {
	value := strings.ReplaceAll(strings.ToLower(dose), " ", "")

	switch {
	case strings.HasSuffix(value, "mcg"):
		if num, err := strconv.ParseFloat(strings.TrimSuffix(value, "mcg"), 64); err == nil {
			return formatDose(num/1000) + " mg"
		}
	case strings.HasSuffix(value, "mg"), strings.HasSuffix(value, "ml"):
		return dose
	case strings.HasSuffix(value, "g"):
		if num, err := strconv.ParseFloat(strings.TrimSuffix(value, "g"), 64); err == nil {
			return formatDose(num*1000) + " mg"
		}
	}

	return dose
}

// formatDose renders with up to 4 significant digits, trimming redundant
// trailing zeros.
func formatDose(num float64) string {
	return strconv.FormatFloat(num, 'g', 4, 64)
}
