package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"festival_portal/constants"
	"festival_portal/docstore"
	"festival_portal/model"
	"festival_portal/utils"
)

type ActivityService struct {
	activities DocCollection
}

func NewActivityService(store *docstore.Store) *ActivityService {
	return &ActivityService{activities: WrapStore(store).Collection(constants.COLLECTION_ACTIVITIES)}
}

func newActivityServiceWith(activities DocCollection) *ActivityService {
	return &ActivityService{activities: activities}
}

func (s *ActivityService) CreateActivity(ctx context.Context, input model.CreateActivityInput) (string, error) {
	data := map[string]any{
		"title":       input.Title,
		"description": input.Description,
		"category":    input.Category,
		"venue":       input.Venue,
		"startsAt":    input.StartsAt,
		"endsAt":      input.EndsAt,
		"imageUrl":    input.ImageURL,
		"isDeleted":   false,
	}
	id, err := s.activities.Create(ctx, data)
	if err != nil {
		return "", fmt.Errorf("activities: create: %w", err)
	}
	checkin := fmt.Sprintf("%s/activity/%s/checkin", os.Getenv("PORTAL_BASE_URL"), id)
	if err := s.activities.Update(ctx, id, map[string]any{"checkinUrl": checkin}); err != nil {
		log.Printf("activities: set checkin url for %s: %v", id, err)
	}
	return id, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, activityID string, input model.UpdateActivityInput) error {
	patch := map[string]any{}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Category != nil {
		patch["category"] = *input.Category
	}
	if input.Venue != nil {
		patch["venue"] = *input.Venue
	}
	if input.StartsAt != nil {
		patch["startsAt"] = *input.StartsAt
	}
	if input.EndsAt != nil {
		patch["endsAt"] = *input.EndsAt
	}
	if input.ImageURL != nil {
		patch["imageUrl"] = *input.ImageURL
	}
	if len(patch) == 0 {
		return nil
	}
	if err := s.activities.Update(ctx, activityID, patch); err != nil {
		return fmt.Errorf("activities: update %s: %w", activityID, err)
	}
	return nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, activityID string) error {
	if err := s.activities.Update(ctx, activityID, map[string]any{"isDeleted": true}); err != nil {
		return fmt.Errorf("activities: delete %s: %w", activityID, err)
	}
	return nil
}

func (s *ActivityService) GetActivity(ctx context.Context, activityID string) (*model.Activity, error) {
	doc, err := s.activities.Get(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("activities: get %s: %w", activityID, err)
	}
	var activity model.Activity
	if err := decodeDoc(doc.Data, &activity); err != nil {
		return nil, fmt.Errorf("activities: get %s: %w", activityID, err)
	}
	activity.ID = doc.ID
	return &activity, nil
}

// GetActivities lists non-deleted activities by start time, earliest first.
func (s *ActivityService) GetActivities(ctx context.Context) []model.Activity {
	base := docstore.NewQuery().Where("isDeleted", docstore.OpEqual, false)
	tiers := []queryTier{
		{
			name: "filtered+ordered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.activities.Query(ctx, base.OrderBy("startsAt", false))
			},
		},
		{
			name: "filtered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.activities.Query(ctx, base)
			},
		},
		{
			name: "full-scan",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.activities.Query(ctx, docstore.NewQuery())
			},
		},
	}
	docs, tier, err := runWithFallback(ctx, constants.COLLECTION_ACTIVITIES, tiers)
	if err != nil {
		log.Printf("activities: all query tiers failed: %v", err)
		return []model.Activity{}
	}

	activities := make([]model.Activity, 0, len(docs))
	for _, doc := range docs {
		var activity model.Activity
		if err := decodeDoc(doc.Data, &activity); err != nil {
			log.Printf("activities: skipping malformed record %s: %v", doc.ID, err)
			continue
		}
		if activity.IsDeleted {
			continue
		}
		activity.ID = doc.ID
		activities = append(activities, activity)
	}
	if tier >= 1 {
		sortActivitiesByStart(activities)
	}
	return activities
}

func sortActivitiesByStart(activities []model.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].StartsAt < activities[j].StartsAt
	})
}

// ActivityCheckinQR renders the activity's check-in URL as a PNG QR code for
// printing at the venue.
func (s *ActivityService) ActivityCheckinQR(ctx context.Context, activityID string) ([]byte, error) {
	activity, err := s.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	content := activity.CheckinURL
	if content == "" {
		content = fmt.Sprintf("%s/activity/%s/checkin", os.Getenv("PORTAL_BASE_URL"), activityID)
	}
	return utils.CheckinQR(content)
}
