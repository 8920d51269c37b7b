package models

// LuckyEventType tags a calendar day as auspicious or not.
type LuckyEventType string

const (
	LuckyGood LuckyEventType = "good"
	LuckyBad  LuckyEventType = "bad"
)

// LuckyEvent is one entry of the seasonal good/bad day calendar. DateStr is
// a year-less "d/m" key, so the table is only meaningful for the season it
// was issued for. Reference data, never persisted per user.
type LuckyEvent struct {
	DateStr     string         `json:"dateStr"`
	Day         int            `json:"day"`
	Month       int            `json:"month"`
	DayLabel    string         `json:"dayLabel"`
	Type        LuckyEventType `json:"type"`
	Action      string         `json:"action"`
	Description string         `json:"description,omitempty"`
	SpecialTag  string         `json:"specialTag,omitempty"`
}
