package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plan-tracker.com/plan-tracker/internal/constants"
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	model "plan-tracker.com/plan-tracker/internal/models"
)

type MilestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

type CreateMilestoneParams struct {
	TaskID      string
	ParentID    *string
	Title       string
	Description string
	Deadline    *time.Time
	Status      constants.MilestoneStatus
}

func (r *MilestoneRepository) Create(ctx context.Context, params CreateMilestoneParams) (*model.Milestone, error) {
	status := params.Status
	if status == "" {
		status = constants.StatusNotStarted
	}

	now := time.Now().UTC()
	milestone := &model.Milestone{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		Deadline:    params.Deadline,
		TaskID:      params.TaskID,
		ParentID:    params.ParentID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(milestone).Error; err != nil {
		return nil, fmt.Errorf("error creating milestone: %w", err)
	}

	return milestone, nil
}

func (r *MilestoneRepository) FindByID(ctx context.Context, id string) (*model.Milestone, error) {
	var milestone model.Milestone
	err := r.db.WithContext(ctx).First(&milestone, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMilestoneNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *MilestoneRepository) ListByTask(ctx context.Context, taskID string) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepository) Update(ctx context.Context, milestone *model.Milestone) error {
	milestone.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Milestone{}).
		Where("id = ?", milestone.ID).
		Updates(map[string]interface{}{
			"title":       milestone.Title,
			"description": milestone.Description,
			"deadline":    milestone.Deadline,
			"parent_id":   milestone.ParentID,
			"status":      milestone.Status,
			"updated_at":  milestone.UpdatedAt,
		})

	if res.Error != nil {
		return fmt.Errorf("error updating milestone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMilestoneNotFound
	}
	return nil
}

// DeleteSubtree removes a milestone and every descendant under it, walking
// parent ids breadth-first so arbitrary depth is covered. A child id that
// reappears means the stored rows form a parent cycle; the walk fails with
// ErrCyclicHierarchy instead of spinning inside the transaction.
func (r *MilestoneRepository) DeleteSubtree(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		frontier := []string{id}
		doomed := []string{id}
		visited := map[string]bool{id: true}

		for len(frontier) > 0 {
			var childIDs []string
			if err := tx.Model(&model.Milestone{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &childIDs).Error; err != nil {
				return fmt.Errorf("error collecting milestone subtree: %w", err)
			}

			for _, childID := range childIDs {
				if visited[childID] {
					return apperrors.ErrCyclicHierarchy
				}
				visited[childID] = true
			}

			doomed = append(doomed, childIDs...)
			frontier = childIDs
		}

		res := tx.Delete(&model.Milestone{}, "id IN ?", doomed)
		if res.Error != nil {
			return fmt.Errorf("error deleting milestones: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrMilestoneNotFound
		}
		return nil
	})
}
