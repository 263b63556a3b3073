package dto

import (
	"time"

	"plan-tracker.com/plan-tracker/internal/constants"
)

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ShareLinkResponse struct {
	ShareableLink string `json:"shareableLink"`
	IsPublic      bool   `json:"isPublic"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UpcomingMilestone is the trimmed milestone view on the dashboard.
type UpcomingMilestone struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Status      constants.MilestoneStatus `json:"status"`
	Deadline    *time.Time                `json:"deadline"`
	TaskID      string                    `json:"taskId"`
}

type DashboardStats struct {
	TotalPlans           int                 `json:"totalPlans"`
	ActivePlans          int                 `json:"activePlans"`
	CompletedPlans       int                 `json:"completedPlans"`
	TotalMilestones      int                 `json:"totalMilestones"`
	CompletedMilestones  int                 `json:"completedMilestones"`
	InProgressMilestones int                 `json:"inProgressMilestones"`
	NotStartedMilestones int                 `json:"notStartedMilestones"`
	AtRiskMilestones     int                 `json:"atRiskMilestones"`
	DelayedMilestones    int                 `json:"delayedMilestones"`
	CompletionRate       int                 `json:"completionRate"`
	UpcomingMilestones   []UpcomingMilestone `json:"upcomingMilestones"`
	DueToday             int                 `json:"dueToday"`
	DueThisWeek          int                 `json:"dueThisWeek"`
	OverdueMilestones    int                 `json:"overdueMilestones"`
}

type TrendPoint struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type Activity struct {
	Type      constants.ActivityType `json:"type"`
	Title     string                 `json:"title"`
	TaskID    string                 `json:"taskId"`
	Timestamp time.Time              `json:"timestamp"`
}
