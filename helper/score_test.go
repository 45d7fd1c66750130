package helper

import (
	"testing"

	"festival_portal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPersistedScoreRenamesOverall(t *testing.T) {
	app := model.ScoreRecord{
		Technical: 8, Story: 7, Creativity: 9, Chiangmai: 6, Overall: 5,
		TotalScore: 35, Comments: "solid", AdminID: "42", AdminName: "Judge Mali",
	}
	persisted := ToPersistedScore(app)

	assert.Equal(t, 5.0, persisted.HumanEffort)
	assert.Equal(t, 35.0, persisted.TotalScore)
	assert.Equal(t, app.Technical, persisted.Technical)
	assert.Equal(t, app.Comments, persisted.Comments)
	assert.Equal(t, app.AdminID, persisted.AdminID)
}

func TestScoreMappingRoundTrips(t *testing.T) {
	app := model.ScoreRecord{
		Technical: 8.5, Story: 7, Creativity: 9, Chiangmai: 6.5, Overall: 5,
		TotalScore: 36, Comments: "solid", AdminID: "42", AdminName: "Judge Mali",
		ScoredAt: "2026-08-01T10:00:00.000000000Z",
	}
	persisted := ToPersistedScore(app)
	back := ToApplicationScore(&persisted)

	require.NotNil(t, back)
	assert.Equal(t, app, *back)
}

func TestToApplicationScoreNilMeansUnscored(t *testing.T) {
	assert.Nil(t, ToApplicationScore(nil))

	// an all-zero score is a real score, not "no score"
	zero := model.PersistedScoreRecord{}
	back := ToApplicationScore(&zero)
	require.NotNil(t, back)
	assert.Equal(t, 0.0, back.Overall)
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 35.0, ComputeTotal(8, 7, 9, 6, 5))
	assert.Equal(t, 0.0, ComputeTotal(0, 0, 0, 0, 0))
	assert.Equal(t, 36.5, ComputeTotal(8.5, 7, 9, 6.5, 5.5))
}

func TestFormatScoreBreakdown(t *testing.T) {
	got := FormatScoreBreakdown(model.ScoreRecord{
		Technical: 8, Story: 7, Creativity: 9, Chiangmai: 6, Overall: 5, TotalScore: 35,
	})
	assert.Equal(t, "Score updated - Technical: 8/10, Story: 7/10, Creativity: 9/10, Chiangmai: 6/10, Overall: 5/10 (Total: 35/50)", got)
}
