package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mealplanner/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

func (s *TodoService) List(ctx context.Context, sess models.Session) ([]models.Todo, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	todos := []models.Todo{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", sess.UserID).
		Order("created_at ASC").
		Find(&todos).Error
	return todos, err
}

func (s *TodoService) Add(ctx context.Context, sess models.Session, task string) (*models.Todo, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, fmt.Errorf("%w: task required", ErrInvalidInput)
	}
	todo := &models.Todo{
		ID:        uuid.NewString(),
		UserID:    sess.UserID,
		Task:      task,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) get(ctx context.Context, sess models.Session, id string) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, sess.UserID).
		First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &todo, err
}

// Toggle flips the completed flag.
func (s *TodoService) Toggle(ctx context.Context, sess models.Session, id string) (*models.Todo, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	todo, err := s.get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	todo.Completed = !todo.Completed
	if err := s.db.WithContext(ctx).Model(todo).Update("completed", todo.Completed).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, sess models.Session, id string) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, sess.UserID).
		Delete(&models.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
