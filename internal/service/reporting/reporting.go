// Package reporting groups tickets into daily and monthly buckets and
// builds the cumulative series behind the trend chart.
package reporting

import (
	"fmt"
	"sort"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/thaidate"
)

// UnspecifiedBucket collects tickets whose display date cannot be parsed.
// Grouping never fails on bad input; it degrades here instead.
const UnspecifiedBucket = "unspecified"

// Bucket aggregates one day or month of deliveries.
type Bucket struct {
	Count           int     `json:"count"`
	TotalWeightTons float64 `json:"totalWeightTons"`
	TotalValue      float64 `json:"totalValue"`
}

// GroupByDay buckets tickets by calendar date (Gregorian "YYYY-MM-DD"
// keys). Ordering-insensitive: the result depends only on the set of
// tickets.
func GroupByDay(records []models.CaneTicket) map[string]Bucket {
	return group(records, func(r models.CaneTicket) string {
		if t, ok := thaidate.ParseDisplayDate(r.Date); ok {
			return t.Format("2006-01-02")
		}
		return UnspecifiedBucket
	})
}

// GroupByMonth buckets tickets by calendar month ("YYYY-MM" keys).
func GroupByMonth(records []models.CaneTicket) map[string]Bucket {
	return group(records, func(r models.CaneTicket) string {
		if t, ok := thaidate.ParseDisplayDate(r.Date); ok {
			return t.Format("2006-01")
		}
		return UnspecifiedBucket
	})
}

func group(records []models.CaneTicket, key func(models.CaneTicket) string) map[string]Bucket {
	out := make(map[string]Bucket)
	for _, r := range records {
		k := key(r)
		b := out[k]
		b.Count++
		b.TotalWeightTons += r.NetWeightKg / 1000
		if r.TotalValue != nil {
			b.TotalValue += *r.TotalValue
		}
		out[k] = b
	}
	return out
}

// SeriesPoint is one chart point of the cumulative trend line.
type SeriesPoint struct {
	Label           string  `json:"label"`
	CumulativeTons  float64 `json:"cumulativeTons"`
	CumulativeValue float64 `json:"cumulativeValue"`
}

// CumulativeSeries walks tickets in timestamp order, one point per worked
// day, carrying running totals. Weight never decreases since net weight is
// never negative.
func CumulativeSeries(records []models.CaneTicket) []SeriesPoint {
	sorted := make([]models.CaneTicket, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	type dayTotal struct {
		label string
		tons  float64
		value float64
	}

	var order []string
	totals := make(map[string]*dayTotal)

	for _, r := range sorted {
		label := dayLabel(r)
		t, ok := totals[label]
		if !ok {
			t = &dayTotal{label: label}
			totals[label] = t
			order = append(order, label)
		}
		t.tons += r.NetWeightKg / 1000
		if r.TotalValue != nil {
			t.value += *r.TotalValue
		}
	}

	points := make([]SeriesPoint, 0, len(order))
	var runTons, runValue float64
	for _, label := range order {
		runTons += totals[label].tons
		runValue += totals[label].value
		points = append(points, SeriesPoint{
			Label:           label,
			CumulativeTons:  runTons,
			CumulativeValue: runValue,
		})
	}
	return points
}

func dayLabel(r models.CaneTicket) string {
	if t, ok := thaidate.ParseDisplayDate(r.Date); ok {
		return fmt.Sprintf("%d %s", t.Day(), thaidate.MonthShort(t.Month()))
	}
	return UnspecifiedBucket
}
