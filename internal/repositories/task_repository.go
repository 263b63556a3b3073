package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	model "plan-tracker.com/plan-tracker/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, userID, title, description string) (*model.Task, error) {
	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// FindByID loads a task with its milestone rows attached flat; callers
// rebuild the nested view through the hierarchy package.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Preload("Milestones").First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Milestones").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	task.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":          task.Title,
			"description":    task.Description,
			"is_public":      task.IsPublic,
			"shareable_link": task.ShareableLink,
			"updated_at":     task.UpdatedAt,
		})

	if res.Error != nil {
		return fmt.Errorf("error updating task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task and every milestone belonging to it.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Milestone{}).Error; err != nil {
			return fmt.Errorf("error deleting milestones: %w", err)
		}

		res := tx.Delete(&model.Task{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("error deleting task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTaskNotFound
		}
		return nil
	})
}

// FindByShareableLink resolves a public share link. A revoked or unknown link
// is indistinguishable from one that never existed.
func (r *TaskRepository) FindByShareableLink(ctx context.Context, link string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Milestones").
		First(&task, "shareable_link = ? AND is_public = ?", link, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// CreateWithMilestones persists a new task together with its milestone rows in
// one transaction, so readers never observe a half-cloned plan.
func (r *TaskRepository) CreateWithMilestones(ctx context.Context, task *model.Task, milestones []model.Milestone) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}
		for i := range milestones {
			if err := tx.Create(&milestones[i]).Error; err != nil {
				return fmt.Errorf("error creating milestone: %w", err)
			}
		}
		return nil
	})
}

// Touch bumps a task's updated_at, used when a milestone write should surface
// the task at the top of the recency-ordered list.
func (r *TaskRepository) Touch(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}
