package service

import (
	"bytes"
	"context"
	"testing"

	"festival_portal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateActivitySetsCheckinURL(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "https://portal.example.com")
	coll := newFakeCollection(capFull)
	svc := newActivityServiceWith(coll)
	ctx := context.Background()

	id, err := svc.CreateActivity(ctx, model.CreateActivityInput{
		Title:    "Opening Night Panel",
		Category: "panel",
		StartsAt: "2026-11-01T19:00:00Z",
	})
	require.NoError(t, err)

	activity, err := svc.GetActivity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com/activity/"+id+"/checkin", activity.CheckinURL)
}

func TestGetActivitiesSortedByStart(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newActivityServiceWith(coll)
	ctx := context.Background()

	_, err := svc.CreateActivity(ctx, model.CreateActivityInput{Title: "Closing Ceremony", StartsAt: "2026-11-08T20:00:00Z"})
	require.NoError(t, err)
	_, err = svc.CreateActivity(ctx, model.CreateActivityInput{Title: "Workshop", StartsAt: "2026-11-02T10:00:00Z"})
	require.NoError(t, err)
	gone, err := svc.CreateActivity(ctx, model.CreateActivityInput{Title: "Cancelled Screening", StartsAt: "2026-11-03T18:00:00Z"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteActivity(ctx, gone))

	coll.degrade(capNoFilters)
	activities := svc.GetActivities(ctx)
	require.Len(t, activities, 2)
	assert.Equal(t, "Workshop", activities[0].Title)
	assert.Equal(t, "Closing Ceremony", activities[1].Title)
}

func TestActivityCheckinQR(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "https://portal.example.com")
	coll := newFakeCollection(capFull)
	svc := newActivityServiceWith(coll)
	ctx := context.Background()

	id, err := svc.CreateActivity(ctx, model.CreateActivityInput{Title: "Networking Mixer", StartsAt: "2026-11-04T17:00:00Z"})
	require.NoError(t, err)

	png, err := svc.ActivityCheckinQR(ctx, id)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.ActivityCheckinQR(ctx, "missing")
	assert.Error(t, err)
}
