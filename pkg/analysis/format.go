package analysis

import (
	"fmt"
	"math"
)

// FormatValue formats a measurement with appropriate units
func FormatValue(value float64, unit Unit, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	// Avoid printing "-0.00" for values that round to zero
	if math.Abs(value) < 0.5*math.Pow10(-decimals) {
		value = 0
	}
	if unit == "" {
		return fmt.Sprintf("%.*f", decimals, value)
	}
	if unit == Degrees {
		return fmt.Sprintf("%.*f°", decimals, value)
	}
	return fmt.Sprintf("%.*f %s", decimals, value, unit)
}
