package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mealplanner/models"
	"mealplanner/utils"
)

// Uploader stores a blob and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// PlanSnapshot is the exported document.
type PlanSnapshot struct {
	UserID     string             `json:"userId"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	ExportedAt time.Time          `json:"exportedAt"`
	Plans      utils.PlanMirror   `json:"plans"`
	Records    []models.SavedMeal `json:"records"`
}

type ExportResult struct {
	URL     string `json:"url"`
	Key     string `json:"key"`
	Entries int    `json:"entries"`
}

type ExportService struct {
	plans    *MealPlanService
	uploader Uploader
	now      func() time.Time
}

var _ Uploader = (*utils.S3Uploader)(nil)

func NewExportService(plans *MealPlanService, uploader Uploader) *ExportService {
	return &ExportService{plans: plans, uploader: uploader, now: time.Now}
}

// Export writes the user's plans for [from, to] as one JSON object.
func (s *ExportService) Export(ctx context.Context, sess models.Session, from, to string) (*ExportResult, error) {
	mirror, err := s.plans.PlanForRange(ctx, sess, from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.plans.QueryByUserAndRange(ctx, sess.UserID, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	snap := PlanSnapshot{
		UserID:     sess.UserID,
		From:       from,
		To:         to,
		ExportedAt: now,
		Plans:      mirror,
		Records:    records,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("plan-exports/%s/%s_%s-%d.json", sess.UserID, from, to, now.UnixNano())
	url, err := s.uploader.Upload(ctx, key, "application/json", data)
	if err != nil {
		return nil, err
	}
	return &ExportResult{URL: url, Key: key, Entries: len(records)}, nil
}
