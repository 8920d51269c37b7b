package models

// DefaultTargetTons seeds the first goal round for a new user.
const DefaultTargetTons = 1000

// QuotaSettings is the single per-user goal-tracking document. History is
// append-only and ordered newest first; CurrentGoalStartDate only moves
// forward (tickets with Timestamp < CurrentGoalStartDate belong to an
// earlier round).
type QuotaSettings struct {
	TargetTons           float64       `bson:"target_tons" json:"targetTons"`
	CurrentGoalStartDate int64         `bson:"current_goal_start_date" json:"currentGoalStartDate"`
	History              []GoalHistory `bson:"history" json:"history"`
}

// GoalHistory is an immutable snapshot of one completed round, written
// exactly once when the round is closed.
type GoalHistory struct {
	Round         int     `bson:"round" json:"round"`
	TargetTons    float64 `bson:"target_tons" json:"targetTons"`
	AchievedTons  float64 `bson:"achieved_tons" json:"achievedTons"`
	CompletedDate string  `bson:"completed_date" json:"completedDate"`
	Timestamp     int64   `bson:"timestamp" json:"timestamp"`
}

// DefaultQuotaSettings is the first-run value.
func DefaultQuotaSettings() QuotaSettings {
	return QuotaSettings{
		TargetTons:           DefaultTargetTons,
		CurrentGoalStartDate: 0,
		History:              []GoalHistory{},
	}
}

// Normalize produces a complete, defaulted QuotaSettings from a partial or
// old-shape value loaded from storage. The receiver is not modified.
func (q QuotaSettings) Normalize() QuotaSettings {
	out := q
	if out.TargetTons <= 0 {
		out.TargetTons = DefaultTargetTons
	}
	if out.CurrentGoalStartDate < 0 {
		out.CurrentGoalStartDate = 0
	}
	if out.History == nil {
		out.History = []GoalHistory{}
	}
	return out
}
