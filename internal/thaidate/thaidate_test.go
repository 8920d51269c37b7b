package thaidate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDisplayDate(t *testing.T) {
	d := time.Date(2025, 2, 5, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "5/2/2568", FormatDisplayDate(d))
}

func TestDayMonthKey(t *testing.T) {
	assert.Equal(t, "13/4", DayMonthKey(time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1/1", DayMonthKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDisplayDateSlashed(t *testing.T) {
	got, ok := ParseDisplayDate("5/2/2568")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDisplayDateGregorianYear(t *testing.T) {
	got, ok := ParseDisplayDate("5/2/2025")
	require.True(t, ok)
	assert.Equal(t, 2025, got.Year())
}

func TestParseDisplayDateNamedMonth(t *testing.T) {
	got, ok := ParseDisplayDate("5 กุมภาพันธ์ 2568")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDisplayDate("5 ก.พ. 2568")
	require.True(t, ok)
	assert.Equal(t, time.February, got.Month())
}

func TestParseDisplayDateRoundTrip(t *testing.T) {
	d := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	got, ok := ParseDisplayDate(FormatDisplayDate(d))
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestParseDisplayDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"-",
		"not a date",
		"5/2",
		"32/1/2568",
		"5/13/2568",
		"5 ไม่ใช่เดือน 2568",
		"x/y/z",
	} {
		_, ok := ParseDisplayDate(s)
		assert.False(t, ok, "expected %q to be unparsable", s)
	}
}

func TestMonthShort(t *testing.T) {
	assert.Equal(t, "ม.ค.", MonthShort(time.January))
	assert.Equal(t, "ธ.ค.", MonthShort(time.December))
	assert.Equal(t, "", MonthShort(time.Month(13)))
}
