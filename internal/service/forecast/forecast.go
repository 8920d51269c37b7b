// Package forecast projects season-end production from delivery history:
// a calendar walk over the remaining days that skips holidays and applies
// a per-day rate, optionally scaled by the lucky-day calendar.
package forecast

import (
	"time"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/thaidate"
)

// DefaultPricePerTon is assumed when no ticket carries a price yet.
const DefaultPricePerTon = 900

// Stats summarizes delivery history for rate estimation.
type Stats struct {
	TotalWeightTons float64 `json:"totalWeightTons"`
	TotalIncome     float64 `json:"totalIncome"`
	DaysWorked      int     `json:"daysWorked"`
	AvgWeightPerDay float64 `json:"avgWeightPerDay"`
	AvgPricePerTon  float64 `json:"avgPricePerTon"`
}

// HistoricalStats derives the average daily rate and price from tickets.
// Multiple deliveries on the same calendar date count as one worked day.
func HistoricalStats(records []models.CaneTicket) Stats {
	var s Stats

	days := make(map[string]struct{}, len(records))
	var priceSum float64
	var priced int

	for _, r := range records {
		s.TotalWeightTons += r.NetWeightKg / 1000
		if r.TotalValue != nil {
			s.TotalIncome += *r.TotalValue
		}
		days[r.Date] = struct{}{}
		if r.CanePrice != nil && *r.CanePrice > 0 {
			priceSum += *r.CanePrice
			priced++
		}
	}

	s.DaysWorked = len(days)
	if s.DaysWorked > 0 {
		s.AvgWeightPerDay = s.TotalWeightTons / float64(s.DaysWorked)
	}

	s.AvgPricePerTon = DefaultPricePerTon
	if priced > 0 {
		s.AvgPricePerTon = priceSum / float64(priced)
	}

	return s
}

// Multipliers scale the daily rate on lucky and unlucky days.
type Multipliers struct {
	Good float64
	Bad  float64
}

// DefaultMultipliers are applied when the caller supplies none.
func DefaultMultipliers() Multipliers {
	return Multipliers{Good: 1.2, Bad: 0.5}
}

// DayRates builds a "d/m"-keyed multiplier table from the lucky calendar.
func DayRates(events []models.LuckyEvent, m Multipliers) map[string]float64 {
	rates := make(map[string]float64, len(events))
	for _, e := range events {
		switch e.Type {
		case models.LuckyGood:
			rates[e.DateStr] = m.Good
		case models.LuckyBad:
			rates[e.DateStr] = m.Bad
		}
	}
	return rates
}

// Input is a complete snapshot of everything the projection depends on.
// With identical inputs the projection is bit-identical; nothing here
// reads the clock or any other ambient state.
type Input struct {
	Stats    Stats
	Today    time.Time
	EndDate  time.Time
	Holidays map[string]struct{} // "d/m" keys
	DayRates map[string]float64  // optional "d/m" → multiplier
	BaseRate *float64            // overrides Stats.AvgWeightPerDay when set
}

// Projection is the forecast over the remaining season days.
type Projection struct {
	WorkingDays          int     `json:"workingDays"`
	HolidayCount         int     `json:"holidayCount"`
	ProjectedExtraWeight float64 `json:"projectedExtraWeight"`
	ProjectedExtraIncome float64 `json:"projectedExtraIncome"`
	FinalWeight          float64 `json:"finalWeight"`
	FinalIncome          float64 `json:"finalIncome"`
}

// Project walks every calendar day from the day after Today through
// EndDate inclusive. Holidays contribute nothing even when a day-rate
// entry matches the same day; every other day contributes the base rate
// scaled by its multiplier, if any.
//
// Callers must not invoke Project with an empty history (zero-record
// state is short-circuited at the boundary).
func Project(in Input) Projection {
	base := in.Stats.AvgWeightPerDay
	if in.BaseRate != nil {
		base = *in.BaseRate
	}

	var p Projection
	day := dateOnly(in.Today).AddDate(0, 0, 1)
	end := dateOnly(in.EndDate)

	for !day.After(end) {
		key := thaidate.DayMonthKey(day)
		if _, holiday := in.Holidays[key]; holiday {
			p.HolidayCount++
		} else {
			p.WorkingDays++
			rate := base
			if m, ok := in.DayRates[key]; ok {
				rate *= m
			}
			p.ProjectedExtraWeight += rate
		}
		day = day.AddDate(0, 0, 1)
	}

	p.ProjectedExtraIncome = p.ProjectedExtraWeight * in.Stats.AvgPricePerTon
	p.FinalWeight = in.Stats.TotalWeightTons + p.ProjectedExtraWeight
	p.FinalIncome = in.Stats.TotalIncome + p.ProjectedExtraIncome
	return p
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
