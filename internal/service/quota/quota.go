// Package quota tracks the active delivery goal: which tickets belong to
// the current round, how far along it is, and the handover to the next
// round once the target is met.
package quota

import (
	"errors"
	"math"
	"time"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/thaidate"
)

// ErrInvalidTarget rejects non-positive target tonnage.
var ErrInvalidTarget = errors.New("target tonnage must be greater than zero")

// ErrGoalNotReached guards round closing before the target is met.
var ErrGoalNotReached = errors.New("current goal has not been reached yet")

// Progress describes how the active round stands against its target.
type Progress struct {
	AchievedTons  float64 `json:"achievedTons"`
	Percentage    float64 `json:"percentage"`
	RemainingTons float64 `json:"remainingTons"`
	Achieved      bool    `json:"achieved"`
}

// ActiveRoundRecords filters tickets belonging to the round that started at
// startDate (epoch ms). Ordering is preserved; the input is not modified.
func ActiveRoundRecords(records []models.CaneTicket, startDate int64) []models.CaneTicket {
	out := make([]models.CaneTicket, 0, len(records))
	for _, r := range records {
		if r.Timestamp >= startDate {
			out = append(out, r)
		}
	}
	return out
}

// AchievedTons sums net weight over records and converts to tons.
func AchievedTons(records []models.CaneTicket) float64 {
	var kg float64
	for _, r := range records {
		kg += r.NetWeightKg
	}
	return kg / 1000
}

// Summarize computes round progress against targetTons. Percentage is
// clamped to [0,100] no matter how far the round overshoots.
func Summarize(records []models.CaneTicket, targetTons float64) Progress {
	achieved := AchievedTons(records)
	p := Progress{AchievedTons: achieved}
	if targetTons <= 0 {
		return p
	}

	p.Percentage = math.Min(100, math.Max(0, achieved/targetTons*100))
	p.RemainingTons = math.Max(0, targetTons-achieved)
	p.Achieved = achieved >= targetTons
	return p
}

// CurrentRound numbers the active round. Rounds are monotonic and never
// reused.
func CurrentRound(s models.QuotaSettings) int {
	return len(s.History) + 1
}

// StartNextRound closes the active round and returns new settings with a
// GoalHistory snapshot prepended (history is newest first), the target
// replaced, and the round start moved to now. The input value is never
// mutated, and the operation is irreversible: the caller is expected to
// confirm with the user first.
func StartNextRound(s models.QuotaSettings, records []models.CaneTicket, newTarget float64, now time.Time) (models.QuotaSettings, error) {
	if newTarget <= 0 {
		return models.QuotaSettings{}, ErrInvalidTarget
	}

	achieved := AchievedTons(ActiveRoundRecords(records, s.CurrentGoalStartDate))

	completed := models.GoalHistory{
		Round:         CurrentRound(s),
		TargetTons:    s.TargetTons,
		AchievedTons:  achieved,
		CompletedDate: thaidate.FormatDisplayDate(now),
		Timestamp:     now.UnixMilli(),
	}

	history := make([]models.GoalHistory, 0, len(s.History)+1)
	history = append(history, completed)
	history = append(history, s.History...)

	return models.QuotaSettings{
		TargetTons:           newTarget,
		CurrentGoalStartDate: now.UnixMilli(),
		History:              history,
	}, nil
}
