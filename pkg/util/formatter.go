package util

import (
	"fmt"
	"math"
)

func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatConcentration prints a volume concentration in scientific
// notation, the working unit of the domain.
func FormatConcentration(value float64) string {
	return fmt.Sprintf("%.3e cm^-3", value)
}

// FormatArealDensity prints an areal density (traps, fixed charge counts).
func FormatArealDensity(value float64) string {
	return fmt.Sprintf("%.3e cm^-2", value)
}

// FormatCharge prints an areal charge density.
func FormatCharge(value float64) string {
	return fmt.Sprintf("%.3e C/m^2", value)
}

// FormatRate prints a surface recombination rate.
func FormatRate(value float64) string {
	return fmt.Sprintf("%.3e cm^-2/s", value)
}
