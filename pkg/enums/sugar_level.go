package enums

import "fmt"

// SugarLevel is the drink customization percentage stored on a cart line.
type SugarLevel string

const (
	SugarLevelNone    SugarLevel = "0%"
	SugarLevelHalf    SugarLevel = "50%"
	SugarLevelSeventy SugarLevel = "75%"
	SugarLevelFull    SugarLevel = "100%"
)

var validSugarLevels = []SugarLevel{
	SugarLevelNone,
	SugarLevelHalf,
	SugarLevelSeventy,
	SugarLevelFull,
}

// DefaultSugarLevel is applied when a drink is added without a selection.
const DefaultSugarLevel = SugarLevelHalf

// String implements fmt.Stringer.
func (s SugarLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SugarLevel.
func (s SugarLevel) IsValid() bool {
	for _, candidate := range validSugarLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// SugarLevelOptions returns the selectable levels in display order.
func SugarLevelOptions() []string {
	options := make([]string, 0, len(validSugarLevels))
	for _, level := range validSugarLevels {
		options = append(options, string(level))
	}
	return options
}

// ParseSugarLevel converts raw input into a SugarLevel.
func ParseSugarLevel(value string) (SugarLevel, error) {
	for _, candidate := range validSugarLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sugar level %q", value)
}
