package extract

import (
	"strconv"
	"strings"
	"time"
)

//nolint:gochecknoglobals //lookup table
var months = map[string]time.Month{
	"ene":  time.January,
	"feb":  time.February,
	"mar":  time.March,
	"abr":  time.April,
	"may":  time.May,
	"jun":  time.June,
	"jul":  time.July,
	"ago":  time.August,
	"sep":  time.September,
	"set":  time.September,
	"sept": time.September,
	"oct":  time.October,
	"nov":  time.November,
	"dic":  time.December,
}

// ParseDate resolves a date label such as "12 mar" to a day in UTC.
// The first table may start in December of the previous year and tables
// after the second may run into January of the next one.
func ParseDate(label string, table int, year int) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}

	switch {
	case month == time.December && table == 0:
		year--
	case month == time.January && table > 1:
		year++
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, false
	}

	return date, true
}
