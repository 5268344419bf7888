// Package copyright computes the year range shown in page footers.
package copyright

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried according to the separator found in the date.
var dateLayouts = map[string]string{
	"-": "2006-1-2",
	"/": "2006/1/2",
	".": "2006.1.2",
}

// Result is the footer text plus any warnings raised while resolving it.
type Result struct {
	Text     string
	Warnings []string
}

// Resolve returns the copyright year text for the given configuration.
//
// startDate wins over startYear. An unparsable startDate is discarded with a
// warning and startYear is used instead. A start year after currentYear
// yields just the current year, also with a warning.
func Resolve(startDate string, startYear int, hasStartYear bool, currentYear int) Result {
	var res Result

	year, ok := 0, false
	if startDate != "" {
		parsed, err := ParseStartYear(startDate)
		if err != nil {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("cannot parse start-date %q, ignoring it", startDate))
		} else {
			year, ok = parsed, true
		}
	}
	if !ok && hasStartYear {
		year, ok = startYear, true
	}

	current := strconv.Itoa(currentYear)
	switch {
	case !ok:
		res.Text = current
	case year > currentYear:
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("start year %d is after the current year %d, using the current year", year, currentYear))
		res.Text = current
	case year == currentYear:
		res.Text = current
	default:
		res.Text = fmt.Sprintf("%d-%d", year, currentYear)
	}
	return res
}

// ResolveNow is Resolve against the current local year.
func ResolveNow(startDate string, startYear int, hasStartYear bool) Result {
	return Resolve(startDate, startYear, hasStartYear, time.Now().Year())
}

// ParseStartYear extracts the year from YYYY-MM-DD, YYYY/MM/DD, YYYY.MM.DD
// or a bare year.
func ParseStartYear(date string) (int, error) {
	for _, sep := range []string{"-", "/", "."} {
		if !strings.Contains(date, sep) {
			continue
		}
		t, err := time.Parse(dateLayouts[sep], date)
		if err != nil {
			return 0, err
		}
		return t.Year(), nil
	}
	return strconv.Atoi(strings.TrimSpace(date))
}
