package services

import (
	"context"
	"math"
	"sort"
	"time"

	"plan-tracker.com/plan-tracker/internal/constants"
	dto "plan-tracker.com/plan-tracker/internal/data_models"
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	"plan-tracker.com/plan-tracker/internal/hierarchy"
	model "plan-tracker.com/plan-tracker/internal/models"
	repository "plan-tracker.com/plan-tracker/internal/repositories"
)

const (
	minTrendDays = 1
	maxTrendDays = 365
	minFeedLimit = 1
	maxFeedLimit = 50

	upcomingLimit = 10
)

// AnalyticsService derives dashboard numbers from a user's plans. Everything
// here is request-scoped computation over freshly fetched rows; reads are not
// snapshotted against concurrent writes, which is fine for a dashboard.
type AnalyticsService struct {
	taskRepo *repository.TaskRepository
	now      func() time.Time
}

func NewAnalyticsService(taskRepo *repository.TaskRepository) *AnalyticsService {
	return &AnalyticsService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// userPlans fetches every plan of a user with its milestones flattened to one
// linear collection per plan, all hierarchy levels merged.
func (s *AnalyticsService) userPlans(ctx context.Context, userID string) ([]model.Task, error) {
	if userID == "" {
		return nil, apperrors.ErrUserIDRequired
	}

	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		forest, err := hierarchy.BuildForest(tasks[i].Milestones)
		if err != nil {
			return nil, err
		}
		flat, err := hierarchy.Flatten(forest)
		if err != nil {
			return nil, err
		}
		tasks[i].Milestones = flat
	}

	return tasks, nil
}

// today returns the current date truncated to midnight, server-local time.
func (s *AnalyticsService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *AnalyticsService) DashboardStats(ctx context.Context, userID string) (*dto.DashboardStats, error) {
	tasks, err := s.userPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		TotalPlans:         len(tasks),
		UpcomingMilestones: []dto.UpcomingMilestone{},
	}

	today := s.today()
	tomorrow := today.AddDate(0, 0, 1)
	weekEnd := today.AddDate(0, 0, 7)

	var upcoming []model.Milestone

	for _, task := range tasks {
		allCompleted := len(task.Milestones) > 0
		anyOpen := false

		for _, m := range task.Milestones {
			stats.TotalMilestones++

			switch m.Status {
			case constants.StatusCompleted:
				stats.CompletedMilestones++
			case constants.StatusInProgress:
				stats.InProgressMilestones++
			case constants.StatusNotStarted:
				stats.NotStartedMilestones++
			case constants.StatusAtRisk:
				stats.AtRiskMilestones++
			case constants.StatusDelayed:
				stats.DelayedMilestones++
			}

			if m.Status == constants.StatusCompleted {
				continue
			}
			anyOpen = true
			allCompleted = false

			if m.Deadline == nil {
				continue
			}
			upcoming = append(upcoming, m)

			deadlineDay := truncateToDay(*m.Deadline)
			if !deadlineDay.Before(today) && deadlineDay.Before(tomorrow) {
				stats.DueToday++
			}
			// The week window compares the raw deadline with an inclusive
			// upper bound, unlike the day window above.
			if !m.Deadline.Before(today) && !m.Deadline.After(weekEnd) {
				stats.DueThisWeek++
			}
			if m.Deadline.Before(today) {
				stats.OverdueMilestones++
			}
		}

		if anyOpen {
			stats.ActivePlans++
		}
		// Plans without milestones count as neither active nor completed.
		if allCompleted {
			stats.CompletedPlans++
		}
	}

	if stats.TotalMilestones > 0 {
		rate := float64(stats.CompletedMilestones) / float64(stats.TotalMilestones) * 100
		stats.CompletionRate = int(math.Round(rate))
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Deadline.Before(*upcoming[j].Deadline)
	})
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	for _, m := range upcoming {
		stats.UpcomingMilestones = append(stats.UpcomingMilestones, dto.UpcomingMilestone{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Status:      m.Status,
			Deadline:    m.Deadline,
			TaskID:      m.TaskID,
		})
	}

	return stats, nil
}

// CompletionTrends buckets milestones by the calendar day of their last
// update. A milestone edited several times lands only on its most recent
// update day, and any edit bumps the day's total, not just status changes.
func (s *AnalyticsService) CompletionTrends(ctx context.Context, userID string, days int) ([]dto.TrendPoint, error) {
	if days < minTrendDays || days > maxTrendDays {
		return nil, apperrors.ErrInvalidDays
	}

	tasks, err := s.userPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	start := today.AddDate(0, 0, -days)

	points := make([]dto.TrendPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		points[i] = dto.TrendPoint{Date: key}
		index[key] = i
	}

	for _, task := range tasks {
		for _, m := range task.Milestones {
			updatedDay := truncateToDay(m.UpdatedAt)
			if updatedDay.Before(start) || updatedDay.After(today) {
				continue
			}

			i, ok := index[updatedDay.Format("2006-01-02")]
			if !ok {
				continue
			}

			points[i].Total++
			if m.Status == constants.StatusCompleted {
				points[i].Completed++
			}
		}
	}

	return points, nil
}

// StatusDistribution counts milestones per status; every status is present in
// the result even when its count is zero.
func (s *AnalyticsService) StatusDistribution(ctx context.Context, userID string) (map[constants.MilestoneStatus]int, error) {
	tasks, err := s.userPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	distribution := make(map[constants.MilestoneStatus]int, len(constants.AllStatuses))
	for _, status := range constants.AllStatuses {
		distribution[status] = 0
	}

	for _, task := range tasks {
		for _, m := range task.Milestones {
			if _, ok := distribution[m.Status]; ok {
				distribution[m.Status]++
			}
		}
	}

	return distribution, nil
}

// ActivityFeed synthesizes recent events from plan and milestone timestamps.
// The limit is enforced per append while walking plans in recency order, so
// the result is "first limit encountered, then sorted" rather than a global
// top-limit by time.
func (s *AnalyticsService) ActivityFeed(ctx context.Context, userID string, limit int) ([]dto.Activity, error) {
	if limit < minFeedLimit || limit > maxFeedLimit {
		return nil, apperrors.ErrInvalidLimit
	}

	tasks, err := s.userPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}

	activities := make([]dto.Activity, 0, limit)

	for _, task := range tasks {
		if len(activities) >= limit {
			break
		}
		activities = append(activities, dto.Activity{
			Type:      constants.ActivityTaskCreated,
			Title:     task.Title,
			TaskID:    task.ID,
			Timestamp: task.CreatedAt,
		})

		for _, m := range task.Milestones {
			if len(activities) >= limit {
				break
			}
			activities = append(activities, dto.Activity{
				Type:      milestoneActivityType(m.Status),
				Title:     m.Title,
				TaskID:    m.TaskID,
				Timestamp: m.UpdatedAt,
			})
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})

	return activities, nil
}

func milestoneActivityType(status constants.MilestoneStatus) constants.ActivityType {
	switch status {
	case constants.StatusCompleted:
		return constants.ActivityMilestoneCompleted
	case constants.StatusInProgress:
		return constants.ActivityMilestoneStarted
	default:
		return constants.ActivityMilestoneUpdated
	}
}
