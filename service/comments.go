package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"festival_portal/constants"
	"festival_portal/docstore"
	"festival_portal/helper"
	"festival_portal/model"
)

// FlagNotifier is told about new flag comments. Delivery failure never fails
// the write.
type FlagNotifier interface {
	NotifyFlagged(comment model.Comment) error
}

type CommentService struct {
	comments DocCollection
	notifier FlagNotifier
}

func NewCommentService(store *docstore.Store, notifier FlagNotifier) *CommentService {
	return &CommentService{
		comments: WrapStore(store).Collection(constants.COLLECTION_COMMENTS),
		notifier: notifier,
	}
}

// newCommentServiceWith wires an arbitrary collection, used by tests.
func newCommentServiceWith(comments DocCollection, notifier FlagNotifier) *CommentService {
	return &CommentService{comments: comments, notifier: notifier}
}

// storedComment is the persisted comment layout: scores carry humanEffort
// instead of overall.
type storedComment struct {
	SubmissionID string                      `json:"submissionId"`
	AdminID      string                      `json:"adminId"`
	AdminName    string                      `json:"adminName"`
	AdminEmail   string                      `json:"adminEmail,omitempty"`
	Content      string                      `json:"content"`
	Type         string                      `json:"type"`
	Scores       *model.PersistedScoreRecord `json:"scores,omitempty"`
	Metadata     model.CommentMetadata       `json:"metadata,omitempty"`
	CreatedAt    string                      `json:"createdAt,omitempty"`
	UpdatedAt    string                      `json:"updatedAt,omitempty"`
	IsEdited     bool                        `json:"isEdited"`
	IsDeleted    bool                        `json:"isDeleted"`
	EditHistory  []model.EditHistoryEntry    `json:"editHistory,omitempty"`
}

func (s *CommentService) AddGeneralComment(ctx context.Context, submissionID string, admin AdminRef, content string, metadata model.CommentMetadata) (string, error) {
	return s.addComment(ctx, submissionID, admin, model.CommentGeneral, content, nil, metadata)
}

func (s *CommentService) AddScoringComment(ctx context.Context, submissionID string, admin AdminRef, scores model.ScoreRecord, content string, metadata model.CommentMetadata) (string, error) {
	scores.TotalScore = helper.ComputeTotal(scores.Technical, scores.Story, scores.Creativity, scores.Chiangmai, scores.Overall)
	scores.AdminID = admin.ID
	scores.AdminName = admin.Name
	persisted := helper.ToPersistedScore(scores)
	if strings.TrimSpace(content) == "" {
		content = helper.FormatScoreBreakdown(scores)
	}
	return s.addComment(ctx, submissionID, admin, model.CommentScoring, content, &persisted, metadata)
}

func (s *CommentService) AddStatusChangeComment(ctx context.Context, submissionID string, admin AdminRef, content, fromStatus, toStatus string) (string, error) {
	if strings.TrimSpace(content) == "" {
		content = fmt.Sprintf("Status changed from %s to %s", fromStatus, toStatus)
	}
	metadata := model.CommentMetadata{
		StatusChange: &model.StatusChangeMetadata{FromStatus: fromStatus, ToStatus: toStatus},
	}
	return s.addComment(ctx, submissionID, admin, model.CommentStatusChange, content, nil, metadata)
}

func (s *CommentService) AddFlagComment(ctx context.Context, submissionID string, admin AdminRef, content, reason, severity string) (string, error) {
	metadata := model.CommentMetadata{
		Flag: &model.FlagMetadata{Reason: reason, Severity: severity},
	}
	id, err := s.addComment(ctx, submissionID, admin, model.CommentFlag, content, nil, metadata)
	if err != nil {
		return "", err
	}
	if s.notifier != nil {
		flagged := model.Comment{
			ID:           id,
			SubmissionID: submissionID,
			AdminID:      admin.ID,
			AdminName:    admin.Name,
			AdminEmail:   admin.Email,
			Content:      content,
			Type:         model.CommentFlag,
			Metadata:     metadata,
		}
		if err := s.notifier.NotifyFlagged(flagged); err != nil {
			log.Printf("comments: flag notification for %s failed: %v", submissionID, err)
		}
	}
	return id, nil
}

func (s *CommentService) addComment(ctx context.Context, submissionID string, admin AdminRef, commentType model.CommentType, content string, scores *model.PersistedScoreRecord, metadata model.CommentMetadata) (string, error) {
	if submissionID == "" {
		return "", fmt.Errorf("comments: submission id is required")
	}
	data := map[string]any{
		"submissionId": submissionID,
		"adminId":      admin.ID,
		"adminName":    admin.Name,
		"adminEmail":   admin.Email,
		"content":      content,
		"type":         string(commentType),
		"isEdited":     false,
		"isDeleted":    false,
	}
	if scores != nil {
		data["scores"] = encodeValue(scores)
	}
	if !metadata.IsZero() {
		data["metadata"] = encodeValue(metadata)
	}
	id, err := s.comments.Create(ctx, data)
	if err != nil {
		return "", fmt.Errorf("comments: add %s comment: %w", commentType, err)
	}
	return id, nil
}

// GetComments returns every non-deleted comment of a submission, newest
// first. Query capability failures degrade through three tiers; if all tiers
// fail the result is empty, never an error.
func (s *CommentService) GetComments(ctx context.Context, submissionID string) []model.Comment {
	docs, tier, err := runWithFallback(ctx, constants.COLLECTION_COMMENTS, s.queryTiers(submissionID))
	if err != nil {
		log.Printf("comments: all query tiers failed for %s: %v", submissionID, err)
		return []model.Comment{}
	}
	return s.compensate(docs, tier, submissionID)
}

func (s *CommentService) queryTiers(submissionID string) []queryTier {
	return []queryTier{
		{
			name: "filtered+ordered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.comments.Query(ctx, docstore.NewQuery().
					Where("submissionId", docstore.OpEqual, submissionID).
					Where("isDeleted", docstore.OpEqual, false).
					OrderBy("createdAt", true))
			},
		},
		{
			name: "filtered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.comments.Query(ctx, docstore.NewQuery().
					Where("submissionId", docstore.OpEqual, submissionID).
					Where("isDeleted", docstore.OpEqual, false))
			},
		},
		{
			name: "full-scan",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.comments.Query(ctx, docstore.NewQuery())
			},
		},
	}
}

// compensate applies whatever the winning tier could not do server-side, so
// the degradation stays invisible to the caller.
func (s *CommentService) compensate(docs []docstore.Document, tier int, submissionID string) []model.Comment {
	if tier >= 1 {
		docstore.SortByFieldDesc(docs, "createdAt")
	}
	result := make([]model.Comment, 0, len(docs))
	for _, doc := range docs {
		comment, err := commentFromDoc(doc)
		if err != nil {
			log.Printf("comments: skipping malformed record %s: %v", doc.ID, err)
			continue
		}
		if comment.IsDeleted || comment.SubmissionID != submissionID {
			continue
		}
		result = append(result, *comment)
	}
	return result
}

func commentFromDoc(doc docstore.Document) (*model.Comment, error) {
	var stored storedComment
	if err := decodeDoc(doc.Data, &stored); err != nil {
		return nil, err
	}
	if stored.AdminID == "" || stored.AdminName == "" || stored.Type == "" {
		return nil, fmt.Errorf("missing adminId, adminName or type")
	}
	return &model.Comment{
		ID:           doc.ID,
		SubmissionID: stored.SubmissionID,
		AdminID:      stored.AdminID,
		AdminName:    stored.AdminName,
		AdminEmail:   stored.AdminEmail,
		Content:      stored.Content,
		Type:         model.CommentType(stored.Type),
		Scores:       helper.ToApplicationScore(stored.Scores),
		Metadata:     stored.Metadata,
		CreatedAt:    stored.CreatedAt,
		UpdatedAt:    stored.UpdatedAt,
		IsEdited:     stored.IsEdited,
		IsDeleted:    stored.IsDeleted,
		EditHistory:  stored.EditHistory,
	}, nil
}

// UpdateScoringComment rewrites a scoring comment and appends the pre-update
// content and scores to its edit history. The history is append-only: the
// full audit trail is reconstructable by replaying it in order.
func (s *CommentService) UpdateScoringComment(ctx context.Context, submissionID, commentID string, scores model.ScoreRecord, comments, editedBy string) error {
	doc, err := s.comments.Get(ctx, commentID)
	if err != nil {
		return fmt.Errorf("comments: update scoring comment %s: %w", commentID, err)
	}
	var stored storedComment
	if err := decodeDoc(doc.Data, &stored); err != nil {
		return fmt.Errorf("comments: update scoring comment %s: %w", commentID, err)
	}
	if stored.SubmissionID != submissionID {
		return fmt.Errorf("comments: comment %s does not belong to submission %s: %w", commentID, submissionID, docstore.ErrNotFound)
	}

	entry := model.EditHistoryEntry{
		EditedAt:        time.Now().UTC().Format(docstore.TimeLayout),
		PreviousContent: stored.Content,
		PreviousScores:  stored.Scores,
		EditedBy:        editedBy,
	}
	history := append(stored.EditHistory, entry)

	scores.TotalScore = helper.ComputeTotal(scores.Technical, scores.Story, scores.Creativity, scores.Chiangmai, scores.Overall)
	newContent := comments
	if strings.TrimSpace(newContent) == "" {
		newContent = helper.FormatScoreBreakdown(scores)
	}
	persisted := helper.ToPersistedScore(scores)

	patch := map[string]any{
		"content":     newContent,
		"scores":      encodeValue(persisted),
		"isEdited":    true,
		"updatedAt":   entry.EditedAt,
		"editHistory": encodeValue(history),
	}
	if err := s.comments.Update(ctx, commentID, patch); err != nil {
		return fmt.Errorf("comments: update scoring comment %s: %w", commentID, err)
	}
	return nil
}

// DeleteComment soft-deletes: the record stays readable by ID and in
// unfiltered fallback reads but disappears from normal reads. Idempotent.
func (s *CommentService) DeleteComment(ctx context.Context, commentID string) error {
	if err := s.comments.Update(ctx, commentID, map[string]any{"isDeleted": true}); err != nil {
		return fmt.Errorf("comments: delete comment %s: %w", commentID, err)
	}
	return nil
}

// GetCommentByID looks a comment up directly, soft-deleted ones included.
func (s *CommentService) GetCommentByID(ctx context.Context, commentID string) (*model.Comment, error) {
	doc, err := s.comments.Get(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("comments: get comment %s: %w", commentID, err)
	}
	comment, err := commentFromDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("comments: get comment %s: %w", commentID, err)
	}
	return comment, nil
}

// GetLatestScoreByAdmin finds the most recent non-deleted scoring comment a
// judge left on a submission, or nil when the judge has not scored yet.
// Judges use it to pre-populate their scoring panel.
func (s *CommentService) GetLatestScoreByAdmin(ctx context.Context, submissionID, adminID string) *model.Comment {
	for _, comment := range s.GetComments(ctx, submissionID) {
		if comment.Type == model.CommentScoring && comment.AdminID == adminID {
			c := comment
			return &c
		}
	}
	return nil
}

// CommentSubscription is the live-read handle. Once every fallback tier is
// exhausted it turns terminal and stays silent until the caller tears it down
// and subscribes again.
type CommentSubscription struct {
	mu       sync.Mutex
	unsub    func()
	terminal bool
	closed   bool
}

func (s *CommentSubscription) Terminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal
}

func (s *CommentSubscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

// SubscribeToComments delivers the filtered, sorted comment list on every
// change. Subscription setup walks the same three tiers as GetComments; a
// push error re-subscribes one tier weaker, and after the last tier fails the
// callback receives one final empty list.
func (s *CommentService) SubscribeToComments(submissionID string, callback func([]model.Comment)) *CommentSubscription {
	sub := &CommentSubscription{}
	tiers := s.queryTiers(submissionID)
	s.attachTier(sub, tiers, 0, submissionID, callback)
	return sub
}

func (s *CommentService) attachTier(sub *CommentSubscription, tiers []queryTier, tier int, submissionID string, callback func([]model.Comment)) {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.mu.Unlock()

	if tier >= len(tiers) {
		sub.mu.Lock()
		sub.terminal = true
		sub.mu.Unlock()
		log.Printf("comments: subscription for %s exhausted all tiers", submissionID)
		callback([]model.Comment{})
		return
	}

	query := s.subscriptionQuery(submissionID, tier)
	unsub, err := s.comments.Subscribe(query,
		func(docs []docstore.Document) {
			callback(s.compensate(docs, tier, submissionID))
		},
		func(err error) {
			log.Printf("comments: subscription tier %d for %s failed, degrading: %v", tier, submissionID, err)
			s.attachTier(sub, tiers, tier+1, submissionID, callback)
		},
	)
	if err != nil {
		log.Printf("comments: subscription tier %d setup for %s failed, degrading: %v", tier, submissionID, err)
		s.attachTier(sub, tiers, tier+1, submissionID, callback)
		return
	}

	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		unsub()
		return
	}
	sub.unsub = unsub
	sub.mu.Unlock()
}

func (s *CommentService) subscriptionQuery(submissionID string, tier int) docstore.Query {
	switch tier {
	case 0:
		return docstore.NewQuery().
			Where("submissionId", docstore.OpEqual, submissionID).
			Where("isDeleted", docstore.OpEqual, false).
			OrderBy("createdAt", true)
	case 1:
		return docstore.NewQuery().
			Where("submissionId", docstore.OpEqual, submissionID).
			Where("isDeleted", docstore.OpEqual, false)
	default:
		return docstore.NewQuery()
	}
}
