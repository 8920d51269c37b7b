package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/refdata"
)

func fptr(v float64) *float64 { return &v }

func TestHistoricalStats(t *testing.T) {
	records := []models.CaneTicket{
		{Date: "1/2/2568", NetWeightKg: 10000, CanePrice: fptr(900), TotalValue: fptr(9000)},
		{Date: "1/2/2568", NetWeightKg: 5000},
		{Date: "2/2/2568", NetWeightKg: 15000, CanePrice: fptr(840), TotalValue: fptr(12600)},
	}

	s := HistoricalStats(records)
	assert.Equal(t, 30.0, s.TotalWeightTons)
	assert.Equal(t, 21600.0, s.TotalIncome)
	// Two deliveries on 1/2 collapse into one worked day.
	assert.Equal(t, 2, s.DaysWorked)
	assert.Equal(t, 15.0, s.AvgWeightPerDay)
	assert.Equal(t, 870.0, s.AvgPricePerTon)
}

func TestHistoricalStatsDefaultPrice(t *testing.T) {
	records := []models.CaneTicket{{Date: "1/2/2568", NetWeightKg: 8000}}

	s := HistoricalStats(records)
	assert.Equal(t, float64(DefaultPricePerTon), s.AvgPricePerTon)
}

func TestHistoricalStatsEmpty(t *testing.T) {
	s := HistoricalStats(nil)
	assert.Equal(t, 0, s.DaysWorked)
	assert.Equal(t, 0.0, s.AvgWeightPerDay)
	assert.Equal(t, float64(DefaultPricePerTon), s.AvgPricePerTon)
}

func TestProjectCountsWorkingAndHolidayDays(t *testing.T) {
	// Walks 11/4 through 16/4: two working days, then the 13-16/4 break.
	in := Input{
		Stats:    Stats{TotalWeightTons: 100, TotalIncome: 90000, AvgWeightPerDay: 10, AvgPricePerTon: 900},
		Today:    time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC),
		EndDate:  time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC),
		Holidays: refdata.HolidaySet(),
	}

	p := Project(in)
	assert.Equal(t, 2, p.WorkingDays)
	assert.Equal(t, 4, p.HolidayCount)
	assert.Equal(t, 20.0, p.ProjectedExtraWeight)
	assert.Equal(t, 18000.0, p.ProjectedExtraIncome)
	assert.Equal(t, 120.0, p.FinalWeight)
	assert.Equal(t, 108000.0, p.FinalIncome)
}

func TestProjectAllHolidayWindow(t *testing.T) {
	in := Input{
		Stats:    Stats{TotalWeightTons: 50, TotalIncome: 45000, AvgWeightPerDay: 12, AvgPricePerTon: 900},
		Today:    time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		EndDate:  time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC),
		Holidays: refdata.HolidaySet(),
	}

	p := Project(in)
	assert.Equal(t, 0, p.WorkingDays)
	assert.Equal(t, 4, p.HolidayCount)
	assert.Equal(t, 0.0, p.ProjectedExtraWeight)
	assert.Equal(t, in.Stats.TotalWeightTons, p.FinalWeight)
	assert.Equal(t, in.Stats.TotalIncome, p.FinalIncome)
}

func TestProjectHolidayWinsOverDayRate(t *testing.T) {
	// A lucky multiplier on a holiday must not resurrect the day.
	in := Input{
		Stats:    Stats{AvgWeightPerDay: 10, AvgPricePerTon: 900},
		Today:    time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		EndDate:  time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC),
		Holidays: map[string]struct{}{"13/4": {}},
		DayRates: map[string]float64{"13/4": 1.2},
	}

	p := Project(in)
	assert.Equal(t, 0, p.WorkingDays)
	assert.Equal(t, 1, p.HolidayCount)
	assert.Equal(t, 0.0, p.ProjectedExtraWeight)
}

func TestProjectAppliesDayRates(t *testing.T) {
	in := Input{
		Stats:   Stats{AvgWeightPerDay: 10, AvgPricePerTon: 900},
		Today:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		DayRates: map[string]float64{
			"2/3": 1.2,
			"3/3": 0.5,
		},
	}

	p := Project(in)
	assert.Equal(t, 3, p.WorkingDays)
	// 10*1.2 + 10*0.5 + 10
	assert.InDelta(t, 27.0, p.ProjectedExtraWeight, 1e-9)
}

func TestProjectBaseRateOverride(t *testing.T) {
	in := Input{
		Stats:    Stats{AvgWeightPerDay: 10, AvgPricePerTon: 900},
		Today:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		BaseRate: fptr(25),
	}

	p := Project(in)
	assert.Equal(t, 50.0, p.ProjectedExtraWeight)
}

func TestProjectPastEndDate(t *testing.T) {
	in := Input{
		Stats:   Stats{TotalWeightTons: 40, AvgWeightPerDay: 10},
		Today:   time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		EndDate: time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	}

	p := Project(in)
	assert.Equal(t, 0, p.WorkingDays)
	assert.Equal(t, 40.0, p.FinalWeight)
}

func TestProjectDeterministic(t *testing.T) {
	in := Input{
		Stats:    Stats{TotalWeightTons: 123.456, TotalIncome: 111111.11, AvgWeightPerDay: 7.89, AvgPricePerTon: 877},
		Today:    time.Date(2025, 1, 15, 9, 41, 0, 0, time.UTC),
		EndDate:  time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		Holidays: refdata.HolidaySet(),
		DayRates: DayRates(refdata.LuckyEvents(), DefaultMultipliers()),
	}

	first := Project(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Project(in))
	}
}

func TestDayRates(t *testing.T) {
	events := []models.LuckyEvent{
		{DateStr: "9/1", Type: models.LuckyGood},
		{DateStr: "10/1", Type: models.LuckyBad},
	}

	rates := DayRates(events, DefaultMultipliers())
	require.Len(t, rates, 2)
	assert.Equal(t, 1.2, rates["9/1"])
	assert.Equal(t, 0.5, rates["10/1"])
}
