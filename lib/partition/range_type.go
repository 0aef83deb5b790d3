package partition

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RangeType defines whether partitions cover a day or a month.
type RangeType int

const (
	RangeTypeDaily RangeType = iota
	RangeTypeMonthly
)

// every RangeType must be listed here, range_type_test.go walks this list
// through all three switch sites below
var rangeTypes = []RangeType{RangeTypeDaily, RangeTypeMonthly}

const (
	dailySuffixLayout   = "20060102"
	monthlySuffixLayout = "200601"
)

func ParseRangeType(s string) (RangeType, error) {
	for _, rt := range rangeTypes {
		if strings.EqualFold(rt.String(), s) {
			return rt, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown range type '%s'", s)
}

func (rt RangeType) String() string {
	switch rt {
	case RangeTypeDaily:
		return "daily"
	case RangeTypeMonthly:
		return "monthly"
	}
	return fmt.Sprintf("RangeType(%d)", int(rt))
}

func (rt *RangeType) UnmarshalText(text []byte) error {
	parsed, err := ParseRangeType(string(text))
	if err != nil {
		return err
	}
	*rt = parsed
	return nil
}

func (rt RangeType) valid() bool {
	for _, known := range rangeTypes {
		if rt == known {
			return true
		}
	}
	return false
}

// formatSuffix renders the partition suffix for the period containing date.
func (rt RangeType) formatSuffix(date time.Time) string {
	switch rt {
	case RangeTypeDaily:
		return date.Format(dailySuffixLayout)
	case RangeTypeMonthly:
		return date.Format(monthlySuffixLayout)
	default:
		panic(fmt.Sprintf("formatSuffix: unhandled %s", rt))
	}
}

// parseSuffix returns the first instant of the period named by suffix.
// Monthly suffixes are parsed as the first day of that month.
func (rt RangeType) parseSuffix(suffix string) (time.Time, error) {
	if !isDigits(suffix) {
		return time.Time{}, errors.Errorf("suffix '%s' is not numeric", suffix)
	}
	switch rt {
	case RangeTypeDaily:
		return time.ParseInLocation(dailySuffixLayout, suffix, time.UTC)
	case RangeTypeMonthly:
		return time.ParseInLocation(dailySuffixLayout, suffix+"01", time.UTC)
	default:
		panic(fmt.Sprintf("parseSuffix: unhandled %s", rt))
	}
}

// advance moves date by n periods. Months are counted from the first of the
// month so that e.g. Jan 31 + 1 month lands in February, not March.
func (rt RangeType) advance(date time.Time, n int) time.Time {
	switch rt {
	case RangeTypeDaily:
		return date.AddDate(0, 0, n)
	case RangeTypeMonthly:
		return firstOfMonth(date).AddDate(0, n, 0)
	default:
		panic(fmt.Sprintf("advance: unhandled %s", rt))
	}
}

func rangeTypeForSuffix(suffix string) (RangeType, bool) {
	switch len(suffix) {
	case len(dailySuffixLayout):
		return RangeTypeDaily, true
	case len(monthlySuffixLayout):
		return RangeTypeMonthly, true
	}
	return 0, false
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// civilDate truncates t to midnight UTC of the calendar day t falls on in
// its own location.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
