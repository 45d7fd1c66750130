package helper

import (
	"fmt"

	"festival_portal/model"
)

// ComputeTotal recomputes the 0-50 total from the five 0-10 criteria. Writers
// always call this before persisting; totalScore is never trusted from input.
func ComputeTotal(technical, story, creativity, chiangmai, overall float64) float64 {
	return technical + story + creativity + chiangmai + overall
}

// ToPersistedScore maps the application scoring shape onto the stored one,
// renaming overall to humanEffort. The caller is responsible for having
// recomputed TotalScore first.
func ToPersistedScore(app model.ScoreRecord) model.PersistedScoreRecord {
	return model.PersistedScoreRecord{
		Technical:   app.Technical,
		Story:       app.Story,
		Creativity:  app.Creativity,
		Chiangmai:   app.Chiangmai,
		HumanEffort: app.Overall,
		TotalScore:  app.TotalScore,
		Comments:    app.Comments,
		AdminID:     app.AdminID,
		AdminName:   app.AdminName,
		ScoredAt:    app.ScoredAt,
	}
}

// ToApplicationScore maps the stored shape back. A nil persisted record means
// "no score yet" and maps to nil, distinct from an all-zero score.
func ToApplicationScore(p *model.PersistedScoreRecord) *model.ScoreRecord {
	if p == nil {
		return nil
	}
	return &model.ScoreRecord{
		Technical:  p.Technical,
		Story:      p.Story,
		Creativity: p.Creativity,
		Chiangmai:  p.Chiangmai,
		Overall:    p.HumanEffort,
		TotalScore: p.TotalScore,
		Comments:   p.Comments,
		AdminID:    p.AdminID,
		AdminName:  p.AdminName,
		ScoredAt:   p.ScoredAt,
	}
}

// FormatScoreBreakdown renders the textual breakdown used when a judge edits
// a score without supplying comment text.
func FormatScoreBreakdown(s model.ScoreRecord) string {
	return fmt.Sprintf(
		"Score updated - Technical: %g/10, Story: %g/10, Creativity: %g/10, Chiangmai: %g/10, Overall: %g/10 (Total: %g/50)",
		s.Technical, s.Story, s.Creativity, s.Chiangmai, s.Overall, s.TotalScore,
	)
}
