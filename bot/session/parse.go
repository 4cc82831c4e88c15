package session

import (
	"math"
	"strconv"
	"strings"

	"assistbot/bot/apperr"
)

var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ParseCheckIn parses user input in the day.month format ("15.05").
func ParseCheckIn(s string) (MonthDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return MonthDay{}, apperr.Validation("expected day.month, got %q", s)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return MonthDay{}, apperr.Validation("day is not a number in %q", s)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return MonthDay{}, apperr.Validation("month is not a number in %q", s)
	}
	if month < 1 || month > 12 || day < 1 || day > daysInMonth[month] {
		return MonthDay{}, apperr.Validation("no such calendar day: %q", s)
	}
	return MonthDay{Day: day, Month: month}, nil
}

// ParsePrice parses a positive decimal price per night.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Validation("price is not a number: %q", s)
	}
	if v <= 0 {
		return 0, apperr.Validation("price must be greater than zero")
	}
	return v, nil
}

// SplitTask splits "<text>, <category>" on the first comma. Both parts
// must be non-empty after trimming.
func SplitTask(s string) (text, category string, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return "", "", apperr.Validation("missing comma in task input")
	}
	text = strings.TrimSpace(parts[0])
	category = strings.TrimSpace(parts[1])
	if text == "" || category == "" {
		return "", "", apperr.Validation("task text and category must be non-empty")
	}
	return text, category, nil
}
