package model

import "gorm.io/datatypes"

type CommentType string

const (
	CommentGeneral      CommentType = "general"
	CommentScoring      CommentType = "scoring"
	CommentStatusChange CommentType = "status_change"
	CommentFlag         CommentType = "flag"
)

// ScoreRecord is the application-side scoring shape. The persisted shape is
// identical except the Overall criterion is stored as humanEffort.
type ScoreRecord struct {
	Technical  float64 `json:"technical" validate:"min=0,max=10"`
	Story      float64 `json:"story" validate:"min=0,max=10"`
	Creativity float64 `json:"creativity" validate:"min=0,max=10"`
	Chiangmai  float64 `json:"chiangmai" validate:"min=0,max=10"`
	Overall    float64 `json:"overall" validate:"min=0,max=10"`
	TotalScore float64 `json:"totalScore" validate:"min=0,max=50"`
	Comments   string  `json:"comments,omitempty"`
	AdminID    string  `json:"adminId,omitempty"`
	AdminName  string  `json:"adminName,omitempty"`
	ScoredAt   string  `json:"scoredAt,omitempty"`
}

// PersistedScoreRecord is the on-disk layout of a judge's scores.
type PersistedScoreRecord struct {
	Technical   float64 `json:"technical"`
	Story       float64 `json:"story"`
	Creativity  float64 `json:"creativity"`
	Chiangmai   float64 `json:"chiangmai"`
	HumanEffort float64 `json:"humanEffort"`
	TotalScore  float64 `json:"totalScore"`
	Comments    string  `json:"comments,omitempty"`
	AdminID     string  `json:"adminId,omitempty"`
	AdminName   string  `json:"adminName,omitempty"`
	ScoredAt    string  `json:"scoredAt,omitempty"`
}

type StatusChangeMetadata struct {
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
}

type FlagMetadata struct {
	Reason   string `json:"reason"`
	Severity string `json:"severity,omitempty"`
}

// CommentMetadata carries the per-type payloads plus an opaque extension bag
// for shapes this version does not know about.
type CommentMetadata struct {
	StatusChange *StatusChangeMetadata `json:"statusChange,omitempty"`
	Flag         *FlagMetadata         `json:"flag,omitempty"`
	Extra        datatypes.JSONMap     `json:"extra,omitempty"`
}

func (m CommentMetadata) IsZero() bool {
	return m.StatusChange == nil && m.Flag == nil && len(m.Extra) == 0
}

type EditHistoryEntry struct {
	EditedAt        string                `json:"editedAt"`
	PreviousContent string                `json:"previousContent"`
	PreviousScores  *PersistedScoreRecord `json:"previousScores,omitempty"`
	EditedBy        string                `json:"editedBy"`
}

type Comment struct {
	ID           string             `json:"id"`
	SubmissionID string             `json:"submissionId"`
	AdminID      string             `json:"adminId"`
	AdminName    string             `json:"adminName"`
	AdminEmail   string             `json:"adminEmail,omitempty"`
	Content      string             `json:"content"`
	Type         CommentType        `json:"type"`
	Scores       *ScoreRecord       `json:"scores,omitempty"`
	Metadata     CommentMetadata    `json:"metadata,omitempty"`
	CreatedAt    string             `json:"createdAt"`
	UpdatedAt    string             `json:"updatedAt,omitempty"`
	IsEdited     bool               `json:"isEdited"`
	IsDeleted    bool               `json:"isDeleted"`
	EditHistory  []EditHistoryEntry `json:"editHistory,omitempty"`
}

type CreateCommentInput struct {
	Content  string          `json:"content" validate:"required"`
	Metadata CommentMetadata `json:"metadata"`
}

type CreateScoringCommentInput struct {
	Scores   ScoreRecord     `json:"scores" validate:"required"`
	Content  string          `json:"content"`
	Metadata CommentMetadata `json:"metadata"`
}

type UpdateScoringCommentInput struct {
	Scores   ScoreRecord `json:"scores" validate:"required"`
	Comments string      `json:"comments"`
}

type CreateStatusChangeInput struct {
	Content    string `json:"content"`
	FromStatus string `json:"fromStatus" validate:"required"`
	ToStatus   string `json:"toStatus" validate:"required"`
}

type CreateFlagInput struct {
	Content  string `json:"content" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
	Severity string `json:"severity" validate:"omitempty,oneof=low medium high"`
}
