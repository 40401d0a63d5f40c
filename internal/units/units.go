// Package units provides shared constants and validation for pressure
// display units used by the report output.
package units

// Unit constants
const (
	Raw = "raw"
	Bar = "bar"
	PSI = "psi"
	KPA = "kpa"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Raw, Bar, PSI, KPA}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "raw, bar, psi, kpa"
}

// ConvertPressure converts a pressure from the logger's native bar reading
// to the target units. Raw leaves readings untouched.
func ConvertPressure(pressureBar float64, targetUnits string) float64 {
	switch targetUnits {
	case Raw, Bar:
		return pressureBar
	case PSI:
		return pressureBar * 14.503773773
	case KPA:
		return pressureBar * 100
	default:
		return pressureBar
	}
}

// Label returns the unit suffix shown next to converted values. Raw values
// carry no suffix.
func Label(unit string) string {
	if unit == Raw {
		return ""
	}
	return " " + unit
}
