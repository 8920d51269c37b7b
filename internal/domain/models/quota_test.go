package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaSettingsJSONRoundTrip(t *testing.T) {
	in := QuotaSettings{
		TargetTons:           1200,
		CurrentGoalStartDate: 1738713600000,
		History: []GoalHistory{
			{Round: 2, TargetTons: 1000, AchievedTons: 1050, CompletedDate: "5/2/2568", Timestamp: 1738713600000},
			{Round: 1, TargetTons: 800, AchievedTons: 812.5, CompletedDate: "10/1/2568", Timestamp: 1736467200000},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out QuotaSettings
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	// Newest-first history ordering survives the round trip.
	require.Len(t, out.History, 2)
	assert.Greater(t, out.History[0].Round, out.History[1].Round)
}

func TestNormalizeDefaults(t *testing.T) {
	out := QuotaSettings{}.Normalize()
	assert.Equal(t, float64(DefaultTargetTons), out.TargetTons)
	assert.Equal(t, int64(0), out.CurrentGoalStartDate)
	assert.NotNil(t, out.History)
	assert.Empty(t, out.History)
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	in := QuotaSettings{
		TargetTons:           500,
		CurrentGoalStartDate: 42,
		History:              []GoalHistory{{Round: 1}},
	}
	assert.Equal(t, in, in.Normalize())
}
