package constants

import "fmt"

type MilestoneStatus string

const (
	StatusNotStarted MilestoneStatus = "NOT_STARTED"
	StatusInProgress MilestoneStatus = "IN_PROGRESS"
	StatusCompleted  MilestoneStatus = "COMPLETED"
	StatusAtRisk     MilestoneStatus = "AT_RISK"
	StatusDelayed    MilestoneStatus = "DELAYED"
)

// AllStatuses lists every valid milestone status. Aggregations iterate this
// slice so that every status appears in their output even with a zero count.
var AllStatuses = []MilestoneStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusCompleted,
	StatusAtRisk,
	StatusDelayed,
}

// ParseMilestoneStatus validates a raw status string at the request boundary.
func ParseMilestoneStatus(s string) (MilestoneStatus, error) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown milestone status %q", s)
}
