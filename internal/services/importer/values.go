package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// toFloat parses a spreadsheet cell value. Thousands separators are
// stripped; anything unparseable counts as zero, matching how the operator
// sheets mix blanks and dashes into numeric columns.
func toFloat(val string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

var digitRunRe = regexp.MustCompile(`[0-9]+`)

// extractServiceCode finds the 4-digit short code embedded in a service
// name. Only exact 4-digit runs count; longer runs are MSISDNs or dates.
func extractServiceCode(serviceName string) string {
	for _, run := range digitRunRe.FindAllString(serviceName, -1) {
		if len(run) == 4 {
			return run
		}
	}
	return ""
}

var nonDateCharRe = regexp.MustCompile(`[^\d.]`)

// parseColumnDate converts a report column date like "15.01.24" or
// "15.01.2024" into a time. Two-digit years are taken as 20xx.
func parseColumnDate(dateStr string) (time.Time, error) {
	cleaned := nonDateCharRe.ReplaceAllString(dateStr, "")
	parts := strings.Split(cleaned, ".")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date format: %q", dateStr)
	}

	day, month, year := parts[0], parts[1], parts[2]
	if len(year) == 2 {
		year = "20" + year
	}

	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in %q", dateStr)
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in %q", dateStr)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q", dateStr)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("date out of range: %q", dateStr)
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(m) || t.Year() != y {
		return time.Time{}, fmt.Errorf("nonexistent date: %q", dateStr)
	}
	return t, nil
}

// cleanColumnDate strips whitespace and a trailing dot from a raw date
// column header before it is used as a record key.
func cleanColumnDate(raw string) string {
	s := strings.Join(strings.Fields(raw), "")
	return strings.TrimSuffix(s, ".")
}
