package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mealplanner/models"
	"mealplanner/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DateLayout is the ISO calendar date every plan is keyed by.
const DateLayout = "2006-01-02"

// MealPlanStore is the persistence boundary for planned meals.
type MealPlanStore interface {
	Save(ctx context.Context, sess models.Session, in PlanInput) (string, error)
	QueryByUserAndDate(ctx context.Context, userID, date string) ([]models.SavedMeal, error)
}

// Notifier pushes a short message to a user's devices.
type Notifier interface {
	PushToUser(ctx context.Context, userID, title, body string, data map[string]string)
}

// PlanInput is one meal the user confirmed for a date.
type PlanInput struct {
	Date     string               `json:"date" binding:"required"`
	MealName string               `json:"mealName" binding:"required"`
	TimeInfo *models.MealTimeInfo `json:"timeInfo"`
	MealData *models.MealData     `json:"mealData"`
}

type MealPlanService struct {
	db     *gorm.DB
	log    *zap.Logger
	events Publisher
	push   Notifier
	now    func() time.Time
}

var _ MealPlanStore = (*MealPlanService)(nil)

func NewMealPlanService(db *gorm.DB, log *zap.Logger, events Publisher, push Notifier) *MealPlanService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MealPlanService{db: db, log: log, events: events, push: push, now: time.Now}
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Save appends one record for the session's user and returns its id.
// Without an authenticated session nothing is written.
func (s *MealPlanService) Save(ctx context.Context, sess models.Session, in PlanInput) (string, error) {
	if !sess.Authenticated() {
		s.log.Warn("no authenticated user found, meal not saved", zap.String("date", in.Date))
		return "", ErrNotAuthenticated
	}

	// the name is stored as given, matching utils.AddMealPlan
	if strings.TrimSpace(in.MealName) == "" || !ValidDate(in.Date) {
		return "", fmt.Errorf("%w: meal name and a YYYY-MM-DD date are required", ErrInvalidInput)
	}

	rec := models.SavedMeal{
		ID:          uuid.NewString(),
		UserID:      sess.UserID,
		Date:        in.Date,
		MealName:    in.MealName,
		MealDetails: in.MealData,
		Timestamp:   s.now().UnixMilli(),
	}
	if !in.TimeInfo.Empty() {
		if !utils.IsTimeSlot(in.TimeInfo.Time) {
			return "", fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, in.TimeInfo.Time)
		}
		if in.TimeInfo.MealType != models.MealTypeNone && !in.TimeInfo.MealType.Valid() {
			return "", fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, in.TimeInfo.MealType)
		}
		rec.MealTime = in.TimeInfo.Time
		rec.MealType = in.TimeInfo.MealType
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		s.log.Error("error saving meal", zap.String("uid", sess.UserID), zap.Error(err))
		return "", fmt.Errorf("save meal: %w", err)
	}

	entry := utils.FormatSavedMealEntries([]models.SavedMeal{rec})[0]
	if s.events != nil {
		s.events.Publish(sess.UserID, Event{
			Kind:    EventMealSaved,
			Payload: map[string]any{"date": rec.Date, "entry": entry},
		})
	}
	if s.push != nil {
		s.push.PushToUser(ctx, sess.UserID, "Meal planned", entry.Description, map[string]string{
			"date": rec.Date, "mealId": rec.ID,
		})
	}
	return rec.ID, nil
}

// QueryByUserAndDate returns the user's records for one date, oldest first.
func (s *MealPlanService) QueryByUserAndDate(ctx context.Context, userID, date string) ([]models.SavedMeal, error) {
	var meals []models.SavedMeal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("timestamp ASC, id ASC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	return meals, nil
}

// QueryByUserAndRange returns records with from <= date <= to, ordered by
// date then creation time.
func (s *MealPlanService) QueryByUserAndRange(ctx context.Context, userID, from, to string) ([]models.SavedMeal, error) {
	var meals []models.SavedMeal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, timestamp ASC, id ASC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	return meals, nil
}

// PlanForDate rebuilds the mirror entries for one date from storage.
func (s *MealPlanService) PlanForDate(ctx context.Context, sess models.Session, date string) ([]models.PlanEntry, error) {
	if !sess.Authenticated() {
		s.log.Warn("no authenticated user found, returning empty plan", zap.String("date", date))
		return []models.PlanEntry{}, ErrNotAuthenticated
	}
	if !ValidDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	meals, err := s.QueryByUserAndDate(ctx, sess.UserID, date)
	if err != nil {
		return nil, err
	}
	return utils.FormatSavedMealEntries(meals), nil
}

// maxRangeDays bounds PlanForRange.
const maxRangeDays = 93

// PlanForRange rebuilds the mirror for every date in [from, to].
func (s *MealPlanService) PlanForRange(ctx context.Context, sess models.Session, from, to string) (utils.PlanMirror, error) {
	if !sess.Authenticated() {
		return utils.PlanMirror{}, ErrNotAuthenticated
	}
	start, err1 := time.Parse(DateLayout, from)
	end, err2 := time.Parse(DateLayout, to)
	if err1 != nil || err2 != nil || end.Before(start) {
		return nil, fmt.Errorf("%w: from/to must be YYYY-MM-DD with from <= to", ErrInvalidInput)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, maxRangeDays)
	}

	meals, err := s.QueryByUserAndRange(ctx, sess.UserID, from, to)
	if err != nil {
		return nil, err
	}
	return utils.BuildPlanMirror(meals), nil
}
