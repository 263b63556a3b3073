package services

import (
	"context"
	"log"
	"time"

	"plan-tracker.com/plan-tracker/internal/constants"
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	model "plan-tracker.com/plan-tracker/internal/models"
	repository "plan-tracker.com/plan-tracker/internal/repositories"
)

type MilestoneService struct {
	taskRepo      *repository.TaskRepository
	milestoneRepo *repository.MilestoneRepository
}

func NewMilestoneService(taskRepo *repository.TaskRepository, milestoneRepo *repository.MilestoneRepository) *MilestoneService {
	return &MilestoneService{
		taskRepo:      taskRepo,
		milestoneRepo: milestoneRepo,
	}
}

type CreateMilestoneParams struct {
	Title       string
	Description string
	Deadline    *time.Time
	ParentID    *string
	Status      constants.MilestoneStatus
}

type UpdateMilestoneParams struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	ParentID    *string
	Status      *constants.MilestoneStatus
}

func (s *MilestoneService) CreateMilestone(ctx context.Context, userID, taskID string, params CreateMilestoneParams) (*model.Milestone, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperrors.ErrTaskNotFound
	}

	if params.ParentID != nil {
		if err := s.checkParent(ctx, *params.ParentID, taskID); err != nil {
			return nil, err
		}
	}

	milestone, err := s.milestoneRepo.Create(ctx, repository.CreateMilestoneParams{
		TaskID:      taskID,
		ParentID:    params.ParentID,
		Title:       params.Title,
		Description: params.Description,
		Deadline:    params.Deadline,
		Status:      params.Status,
	})
	if err != nil {
		return nil, err
	}

	s.touchTask(ctx, taskID)
	return milestone, nil
}

func (s *MilestoneService) UpdateMilestone(ctx context.Context, userID, id string, params UpdateMilestoneParams) (*model.Milestone, error) {
	milestone, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		milestone.Title = *params.Title
	}
	if params.Description != nil {
		milestone.Description = *params.Description
	}
	if params.Deadline != nil {
		milestone.Deadline = params.Deadline
	}
	if params.Status != nil {
		milestone.Status = *params.Status
	}
	if params.ParentID != nil {
		if err := s.checkParent(ctx, *params.ParentID, milestone.TaskID); err != nil {
			return nil, err
		}
		if err := s.ensureNoCycle(ctx, milestone.ID, *params.ParentID); err != nil {
			return nil, err
		}
		milestone.ParentID = params.ParentID
	}

	if err := s.milestoneRepo.Update(ctx, milestone); err != nil {
		return nil, err
	}

	s.touchTask(ctx, milestone.TaskID)
	return milestone, nil
}

// DeleteMilestone removes a milestone together with its whole subtree.
func (s *MilestoneService) DeleteMilestone(ctx context.Context, userID, id string) error {
	milestone, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.milestoneRepo.DeleteSubtree(ctx, id); err != nil {
		return err
	}

	s.touchTask(ctx, milestone.TaskID)
	return nil
}

// touchTask bumps the parent task's updated_at; the milestone write itself
// already succeeded, so a failed bump is logged rather than surfaced.
func (s *MilestoneService) touchTask(ctx context.Context, taskID string) {
	if err := s.taskRepo.Touch(ctx, taskID); err != nil {
		log.Printf("failed to touch task %s: %v", taskID, err)
	}
}

func (s *MilestoneService) findOwned(ctx context.Context, userID, id string) (*model.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, milestone.TaskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperrors.ErrMilestoneNotFound
	}

	return milestone, nil
}

func (s *MilestoneService) checkParent(ctx context.Context, parentID, taskID string) error {
	parent, err := s.milestoneRepo.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent.TaskID != taskID {
		return apperrors.ErrMilestoneNotFound
	}
	return nil
}

// ensureNoCycle walks the parent chain upward from the proposed parent.
// Reaching the milestone being re-parented would close a cycle, as would a
// repeated ancestor in already malformed rows.
func (s *MilestoneService) ensureNoCycle(ctx context.Context, milestoneID, parentID string) error {
	seen := make(map[string]bool)
	currentID := parentID

	for {
		if currentID == milestoneID || seen[currentID] {
			return apperrors.ErrCyclicHierarchy
		}
		seen[currentID] = true

		ancestor, err := s.milestoneRepo.FindByID(ctx, currentID)
		if err != nil {
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		currentID = *ancestor.ParentID
	}
}
