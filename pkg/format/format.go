package format

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "January 2, 2006"
	dateTimeLayout = "January 2, 2006 3:04 PM"
)

// Price renders a decimal amount as a display string, e.g. "$13.00".
func Price(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Date renders a timestamp as a long-form date.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateTime renders a timestamp with the time of day included.
func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// RelativeDate is used for review timestamps; zero values degrade to a
// friendly placeholder rather than a 1-January-0001 artifact.
func RelativeDate(t time.Time) string {
	if t.IsZero() {
		return "Recently"
	}
	return DateTime(t)
}

// Truncate shortens text to maxLen runes, appending an ellipsis when cut.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// Capitalize upper-cases the first rune of text.
func Capitalize(text string) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// SugarLevelLabel maps legacy sugar level slugs onto display labels.
// Unknown values pass through untouched.
func SugarLevelLabel(level string) string {
	labels := map[string]string{
		"no-sugar":    "No Sugar",
		"less-sweet":  "Less Sweet",
		"normal":      "Normal",
		"extra-sweet": "Extra Sweet",
	}
	if label, ok := labels[strings.TrimSpace(level)]; ok {
		return label
	}
	return level
}
