package services

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"plan-tracker.com/plan-tracker/internal/constants"
	dto "plan-tracker.com/plan-tracker/internal/data_models"
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	"plan-tracker.com/plan-tracker/internal/hierarchy"
	model "plan-tracker.com/plan-tracker/internal/models"
	repository "plan-tracker.com/plan-tracker/internal/repositories"
)

type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, userID, title, description string) (*model.Task, error) {
	return s.taskRepo.Create(ctx, userID, title, description)
}

// GetTask returns an owned task with its milestones nested into the
// parent/child view.
func (s *TaskService) GetTask(ctx context.Context, userID, id string) (*model.Task, error) {
	task, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if task.Milestones, err = hierarchy.BuildForest(task.Milestones); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].Milestones, err = hierarchy.BuildForest(tasks[i].Milestones); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, id string, req dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if task.Milestones, err = hierarchy.BuildForest(task.Milestones); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

// findOwned resolves a task and hides other users' tasks behind not-found.
func (s *TaskService) findOwned(ctx context.Context, userID, id string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

// newShareToken builds a share link token: a base-36 millisecond timestamp
// and a 6-character base-36 random suffix. Brief and roughly sortable, not
// cryptographically unguessable; the link grants read access to one plan only.
func newShareToken() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	var suffix strings.Builder
	for i := 0; i < 6; i++ {
		suffix.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}

	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + suffix.String()
}

func (s *TaskService) GenerateShareLink(ctx context.Context, taskID, ownerID string) (*dto.ShareLinkResponse, error) {
	task, err := s.findOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	link := newShareToken()
	task.ShareableLink = &link
	task.IsPublic = true

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return &dto.ShareLinkResponse{ShareableLink: link, IsPublic: true}, nil
}

// UpdateShareLink optionally rotates the token of an already shared plan.
// The previous link stops resolving the moment the new one is stored.
func (s *TaskService) UpdateShareLink(ctx context.Context, taskID, ownerID string, regenerate bool) (*dto.ShareLinkResponse, error) {
	task, err := s.findOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsPublic || task.ShareableLink == nil {
		return nil, apperrors.ErrTaskNotShared
	}

	if regenerate {
		link := newShareToken()
		task.ShareableLink = &link
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return nil, err
		}
	}

	return &dto.ShareLinkResponse{ShareableLink: *task.ShareableLink, IsPublic: task.IsPublic}, nil
}

func (s *TaskService) DeleteShareLink(ctx context.Context, taskID, ownerID string) (*dto.MessageResponse, error) {
	task, err := s.findOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsPublic && task.ShareableLink == nil {
		return &dto.MessageResponse{Message: "task is already private"}, nil
	}

	task.ShareableLink = nil
	task.IsPublic = false
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return &dto.MessageResponse{Message: "share link removed"}, nil
}

func (s *TaskService) GetByShareableLink(ctx context.Context, link string) (*model.Task, error) {
	task, err := s.taskRepo.FindByShareableLink(ctx, link)
	if err != nil {
		return nil, err
	}

	if task.Milestones, err = hierarchy.BuildForest(task.Milestones); err != nil {
		return nil, err
	}
	return task, nil
}

// CloneTask copies a plan to a new owner. The clone is always private, and
// the milestone copy is deliberately shallow: top-level milestones are copied
// with all tracking fields, their direct children keep title and description
// only, and deeper descendants are dropped entirely.
func (s *TaskService) CloneTask(ctx context.Context, sourceID, targetUserID string) (*model.Task, error) {
	source, err := s.taskRepo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clone := &model.Task{
		ID:          uuid.NewString(),
		Title:       source.Title,
		Description: source.Description,
		UserID:      targetUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	forest, err := hierarchy.BuildForest(source.Milestones)
	if err != nil {
		return nil, err
	}

	var milestones []model.Milestone
	for _, root := range forest {
		parent := model.Milestone{
			ID:          uuid.NewString(),
			Title:       root.Title,
			Description: root.Description,
			Deadline:    root.Deadline,
			TaskID:      clone.ID,
			Status:      root.Status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		milestones = append(milestones, parent)

		for _, child := range root.Children {
			parentID := parent.ID
			milestones = append(milestones, model.Milestone{
				ID:          uuid.NewString(),
				Title:       child.Title,
				Description: child.Description,
				TaskID:      clone.ID,
				ParentID:    &parentID,
				Status:      constants.StatusNotStarted,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
	}

	if err := s.taskRepo.CreateWithMilestones(ctx, clone, milestones); err != nil {
		return nil, err
	}

	if clone.Milestones, err = hierarchy.BuildForest(milestones); err != nil {
		return nil, err
	}
	return clone, nil
}
