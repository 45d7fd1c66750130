package service

import (
	"context"
	"errors"
	"testing"

	"festival_portal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var judge = AdminRef{ID: "42", Name: "Judge Mali", Email: "mali@example.com"}

type recordingNotifier struct {
	flagged []model.Comment
	err     error
}

func (n *recordingNotifier) NotifyFlagged(comment model.Comment) error {
	n.flagged = append(n.flagged, comment)
	return n.err
}

func seedComments(t *testing.T, svc *CommentService) (general, scoring, deleted string) {
	t.Helper()
	ctx := context.Background()

	general, err := svc.AddGeneralComment(ctx, "sub-1", judge, "looks promising", model.CommentMetadata{})
	require.NoError(t, err)

	scoring, err = svc.AddScoringComment(ctx, "sub-1", judge, model.ScoreRecord{
		Technical: 8, Story: 7, Creativity: 9, Chiangmai: 6, Overall: 5,
	}, "strong craft", model.CommentMetadata{})
	require.NoError(t, err)

	deleted, err = svc.AddGeneralComment(ctx, "sub-1", judge, "obsolete note", model.CommentMetadata{})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteComment(ctx, deleted))
	return general, scoring, deleted
}

func TestScoringCommentPersistsHumanEffort(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)

	id, err := svc.AddScoringComment(context.Background(), "sub-1", judge, model.ScoreRecord{
		Technical: 8, Story: 7, Creativity: 9, Chiangmai: 6, Overall: 5,
		TotalScore: 999, // stale client total, must be recomputed
	}, "", model.CommentMetadata{})
	require.NoError(t, err)

	raw := coll.docs[id]["scores"].(map[string]any)
	assert.Equal(t, 5.0, raw["humanEffort"])
	assert.NotContains(t, raw, "overall")
	assert.Equal(t, 35.0, raw["totalScore"])

	// blank content falls back to the rendered breakdown
	content := coll.docs[id]["content"].(string)
	assert.Contains(t, content, "Overall: 5/10")
	assert.Contains(t, content, "Total: 35/50")
}

func TestGetCommentsMapsScoresBack(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)
	seedComments(t, svc)

	comments := svc.GetComments(context.Background(), "sub-1")
	require.Len(t, comments, 2)

	var scored *model.Comment
	for i := range comments {
		if comments[i].Type == model.CommentScoring {
			scored = &comments[i]
		}
	}
	require.NotNil(t, scored)
	require.NotNil(t, scored.Scores)
	assert.Equal(t, 5.0, scored.Scores.Overall)
	assert.Equal(t, 35.0, scored.Scores.TotalScore)
}

func TestGetCommentsFallbackEquivalence(t *testing.T) {
	for name, level := range map[string]capability{
		"full capability": capFull,
		"no composite":    capNoComposite,
		"full scan only":  capNoFilters,
	} {
		t.Run(name, func(t *testing.T) {
			coll := newFakeCollection(capFull)
			svc := newCommentServiceWith(coll, nil)
			seedComments(t, svc)
			coll.degrade(level)

			comments := svc.GetComments(context.Background(), "sub-1")
			require.Len(t, comments, 2)
			for _, c := range comments {
				assert.False(t, c.IsDeleted)
				assert.Equal(t, "sub-1", c.SubmissionID)
			}
			// newest first regardless of which tier answered
			assert.True(t, comments[0].CreatedAt > comments[1].CreatedAt)
		})
	}
}

func TestGetCommentsTotalFailureReturnsEmpty(t *testing.T) {
	coll := newFakeCollection(capNone)
	svc := newCommentServiceWith(coll, nil)

	comments := svc.GetComments(context.Background(), "sub-1")
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestGetCommentsSkipsMalformedRecords(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)
	seedComments(t, svc)

	// record with no adminId/adminName/type, as older clients wrote them
	require.NoError(t, coll.Set(context.Background(), "legacy-1", map[string]any{
		"submissionId": "sub-1",
		"content":      "who wrote this",
		"createdAt":    "2026-02-01T00:00:00.000000000Z",
	}))

	comments := svc.GetComments(context.Background(), "sub-1")
	assert.Len(t, comments, 2)
}

func TestUpdateScoringCommentAppendsHistory(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)
	_, scoring, _ := seedComments(t, svc)
	ctx := context.Background()

	err := svc.UpdateScoringComment(ctx, "sub-1", scoring, model.ScoreRecord{
		Technical: 9, Story: 8, Creativity: 9, Chiangmai: 7, Overall: 6,
	}, "even better on rewatch", judge.Name)
	require.NoError(t, err)

	updated, err := svc.GetCommentByID(ctx, scoring)
	require.NoError(t, err)
	assert.True(t, updated.IsEdited)
	assert.Equal(t, "even better on rewatch", updated.Content)
	assert.Equal(t, 39.0, updated.Scores.TotalScore)
	require.Len(t, updated.EditHistory, 1)
	assert.Equal(t, "strong craft", updated.EditHistory[0].PreviousContent)
	require.NotNil(t, updated.EditHistory[0].PreviousScores)
	assert.Equal(t, 5.0, updated.EditHistory[0].PreviousScores.HumanEffort)
	assert.Equal(t, judge.Name, updated.EditHistory[0].EditedBy)

	err = svc.UpdateScoringComment(ctx, "sub-1", scoring, model.ScoreRecord{
		Technical: 9, Story: 9, Creativity: 9, Chiangmai: 9, Overall: 9,
	}, "", judge.Name)
	require.NoError(t, err)

	updated, err = svc.GetCommentByID(ctx, scoring)
	require.NoError(t, err)
	require.Len(t, updated.EditHistory, 2)
	assert.Equal(t, "even better on rewatch", updated.EditHistory[1].PreviousContent)
	assert.Equal(t, 6.0, updated.EditHistory[1].PreviousScores.HumanEffort)
}

func TestUpdateScoringCommentWrongSubmission(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)
	_, scoring, _ := seedComments(t, svc)

	err := svc.UpdateScoringComment(context.Background(), "sub-2", scoring, model.ScoreRecord{}, "", judge.Name)
	assert.Error(t, err)
}

func TestDeleteCommentIsSoftAndIdempotent(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)
	general, _, _ := seedComments(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.DeleteComment(ctx, general))
	require.NoError(t, svc.DeleteComment(ctx, general))

	byID, err := svc.GetCommentByID(ctx, general)
	require.NoError(t, err)
	assert.True(t, byID.IsDeleted)
	assert.Equal(t, "looks promising", byID.Content)

	comments := svc.GetComments(ctx, "sub-1")
	assert.Len(t, comments, 1)
}

func TestGetLatestScoreByAdmin(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)
	ctx := context.Background()

	assert.Nil(t, svc.GetLatestScoreByAdmin(ctx, "sub-1", judge.ID))

	_, err := svc.AddScoringComment(ctx, "sub-1", judge, model.ScoreRecord{Overall: 3}, "first pass", model.CommentMetadata{})
	require.NoError(t, err)
	_, err = svc.AddScoringComment(ctx, "sub-1", judge, model.ScoreRecord{Overall: 7}, "second pass", model.CommentMetadata{})
	require.NoError(t, err)
	other := AdminRef{ID: "99", Name: "Judge Anan"}
	_, err = svc.AddScoringComment(ctx, "sub-1", other, model.ScoreRecord{Overall: 9}, "outlier", model.CommentMetadata{})
	require.NoError(t, err)

	latest := svc.GetLatestScoreByAdmin(ctx, "sub-1", judge.ID)
	require.NotNil(t, latest)
	assert.Equal(t, "second pass", latest.Content)
	assert.Equal(t, 7.0, latest.Scores.Overall)

	assert.Nil(t, svc.GetLatestScoreByAdmin(ctx, "sub-1", "missing"))
}

func TestFlagCommentNotifiesModeration(t *testing.T) {
	coll := newFakeCollection(capFull)
	notifier := &recordingNotifier{}
	svc := newCommentServiceWith(coll, notifier)

	id, err := svc.AddFlagComment(context.Background(), "sub-1", judge, "possible duplicate entry", "duplicate", "high")
	require.NoError(t, err)
	require.Len(t, notifier.flagged, 1)
	assert.Equal(t, id, notifier.flagged[0].ID)
	require.NotNil(t, notifier.flagged[0].Metadata.Flag)
	assert.Equal(t, "duplicate", notifier.flagged[0].Metadata.Flag.Reason)
}

func TestFlagCommentSurvivesNotifierFailure(t *testing.T) {
	coll := newFakeCollection(capFull)
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := newCommentServiceWith(coll, notifier)

	_, err := svc.AddFlagComment(context.Background(), "sub-1", judge, "spam", "spam", "low")
	assert.NoError(t, err)
}

func TestSubscriptionDeliversAndDegrades(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newCommentServiceWith(coll, nil)
	seedComments(t, svc)

	var deliveries [][]model.Comment
	sub := svc.SubscribeToComments("sub-1", func(comments []model.Comment) {
		deliveries = append(deliveries, comments)
	})
	defer sub.Unsubscribe()

	require.Len(t, deliveries, 1)
	assert.Len(t, deliveries[0], 2)
	assert.False(t, sub.Terminal())

	// the store loses composite support; the next change errors the tier-0
	// subscription and the replacement tier takes over
	coll.degrade(capNoComposite)
	_, err := svc.AddGeneralComment(context.Background(), "sub-1", judge, "late addition", model.CommentMetadata{})
	require.NoError(t, err)

	coll.fire()
	require.NotEmpty(t, deliveries)
	last := deliveries[len(deliveries)-1]
	assert.Len(t, last, 3)
	assert.False(t, sub.Terminal())
}

func TestSubscriptionTerminalAfterExhaustion(t *testing.T) {
	coll := newFakeCollection(capNone)
	svc := newCommentServiceWith(coll, nil)

	var deliveries [][]model.Comment
	sub := svc.SubscribeToComments("sub-1", func(comments []model.Comment) {
		deliveries = append(deliveries, comments)
	})

	assert.True(t, sub.Terminal())
	require.Len(t, deliveries, 1)
	assert.Empty(t, deliveries[0])
}
