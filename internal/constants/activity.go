package constants

type ActivityType string

const (
	ActivityTaskCreated        ActivityType = "task_created"
	ActivityMilestoneCompleted ActivityType = "milestone_completed"
	ActivityMilestoneStarted   ActivityType = "milestone_started"
	ActivityMilestoneUpdated   ActivityType = "milestone_updated"
)
