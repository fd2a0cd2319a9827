package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"mealplanner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	key         string
	contentType string
	data        []byte
	err         error
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.key, u.contentType, u.data = key, contentType, data
	return "https://cdn.example.com/" + key, nil
}

func TestExportWritesSnapshot(t *testing.T) {
	plans, _, _ := newPlanService(t)
	ctx := context.Background()

	_, err := plans.Save(ctx, alice, PlanInput{
		Date:     "2024-06-01",
		MealName: "Pancakes",
		TimeInfo: &models.MealTimeInfo{Time: "8:00 AM", MealType: models.Breakfast},
	})
	require.NoError(t, err)
	_, err = plans.Save(ctx, alice, PlanInput{Date: "2024-06-03", MealName: "Soup"})
	require.NoError(t, err)
	_, err = plans.Save(ctx, bob, PlanInput{Date: "2024-06-02", MealName: "Not mine"})
	require.NoError(t, err)

	up := &fakeUploader{}
	svc := NewExportService(plans, up)
	svc.now = func() time.Time { return time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC) }

	res, err := svc.Export(ctx, alice, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Entries)
	assert.True(t, strings.HasPrefix(res.Key, "plan-exports/uid-alice/2024-06-01_2024-06-03-"))
	assert.Equal(t, "https://cdn.example.com/"+res.Key, res.URL)
	assert.Equal(t, "application/json", up.contentType)

	var snap PlanSnapshot
	require.NoError(t, json.Unmarshal(up.data, &snap))
	assert.Equal(t, "uid-alice", snap.UserID)
	assert.Equal(t, []string{"🍳 [breakfast] Pancakes (8:00 AM)"}, descriptions(snap.Plans["2024-06-01"]))
	assert.Equal(t, []string{"Soup"}, descriptions(snap.Plans["2024-06-03"]))
	assert.Len(t, snap.Records, 2)
}

func TestExportPropagatesErrors(t *testing.T) {
	plans, _, _ := newPlanService(t)
	ctx := context.Background()

	svc := NewExportService(plans, &fakeUploader{err: errors.New("bucket gone")})
	_, err := svc.Export(ctx, alice, "2024-06-01", "2024-06-02")
	assert.EqualError(t, err, "bucket gone")

	_, err = svc.Export(ctx, models.Session{}, "2024-06-01", "2024-06-02")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func descriptions(entries []models.PlanEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Description)
	}
	return out
}
