package services

import (
	"context"
	"fmt"

	"mealplanner/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add stores meal as a favourite. Adding the same meal twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, sess models.Session, meal models.MealData) (*models.FavoriteMeal, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if meal.IDMeal == "" {
		return nil, fmt.Errorf("%w: idMeal required", ErrInvalidInput)
	}
	fav := &models.FavoriteMeal{
		UserID:       sess.UserID,
		IDMeal:       meal.IDMeal,
		StrMeal:      meal.StrMeal,
		StrMealThumb: meal.StrMealThumb,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fav).Error
	if err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) Remove(ctx context.Context, sess models.Session, idMeal string) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND id_meal = ?", sess.UserID, idMeal).
		Delete(&models.FavoriteMeal{}).Error
}

func (s *FavoriteService) List(ctx context.Context, sess models.Session) ([]models.FavoriteMeal, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	favs := []models.FavoriteMeal{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", sess.UserID).
		Order("created_at ASC, id ASC").
		Find(&favs).Error
	return favs, err
}

func (s *FavoriteService) IsFavorite(ctx context.Context, sess models.Session, idMeal string) (bool, error) {
	if !sess.Authenticated() {
		return false, ErrNotAuthenticated
	}
	var n int64
	err := s.db.WithContext(ctx).Model(&models.FavoriteMeal{}).
		Where("user_id = ? AND id_meal = ?", sess.UserID, idMeal).
		Count(&n).Error
	return n > 0, err
}
