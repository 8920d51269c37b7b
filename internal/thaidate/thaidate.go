// Package thaidate converts between Gregorian time values and the Thai
// display forms weighbridge slips use: "D/M/Y" with Buddhist-era years and
// "D <month name> Y" with Thai month names.
package thaidate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EraOffset is the difference between Buddhist-era and Gregorian years.
const EraOffset = 543

// beThreshold: any year above this is assumed to be Buddhist era.
const beThreshold = 2400

var monthsFull = []string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var monthsShort = []string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// MonthShort returns the abbreviated Thai name for month (1-12).
func MonthShort(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthsShort[month-1]
}

// FormatDisplayDate renders t as "D/M/Y" with a Buddhist-era year, the form
// the app shows everywhere.
func FormatDisplayDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+EraOffset)
}

// DayMonthKey renders t as the year-less "d/m" key used by the holiday and
// lucky-day tables.
func DayMonthKey(t time.Time) string {
	return fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}

// ParseDisplayDate parses "D/M/Y" (slashes, BE years above 2400 normalized
// to Gregorian) or "D <ThaiMonthName> Y" (full or abbreviated month name).
// ok is false when the string matches neither form; callers group such
// tickets under an unspecified bucket instead of failing.
func ParseDisplayDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, "/") {
		return parseSlashed(s)
	}
	return parseNamedMonth(s)
}

func parseSlashed(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	return makeDate(year, month, day)
}

func parseNamedMonth(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, false
	}

	month := 0
	for i := range monthsFull {
		if fields[1] == monthsFull[i] || fields[1] == monthsShort[i] {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, false
	}

	return makeDate(year, month, day)
}

func makeDate(year, month, day int) (time.Time, bool) {
	if year > beThreshold {
		year -= EraOffset
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
