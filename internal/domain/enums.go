package domain

// Enum values are persisted verbatim, so they double as display strings.

const (
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
	StatusCancelled  = "Cancelled"
)

const (
	PhasePreparation    = "Preparation"
	PhaseAnalysis       = "Analysis"
	PhaseImprovement    = "Improvement"
	PhaseImplementation = "Implementation"
	PhaseReview         = "Review"
)

const (
	TaskNotStarted = "Not Started"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
	TaskBlocked    = "Blocked"
)

const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// ProjectStatuses lists the valid project statuses.
func ProjectStatuses() []string {
	return []string{StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled}
}

// Phases lists the Kaizen phases in methodology order.
func Phases() []string {
	return []string{PhasePreparation, PhaseAnalysis, PhaseImprovement, PhaseImplementation, PhaseReview}
}

// TaskStatuses lists the valid action plan task statuses.
func TaskStatuses() []string {
	return []string{TaskNotStarted, TaskInProgress, TaskCompleted, TaskBlocked}
}

// Priorities lists the valid task priorities.
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// DefaultCategories are the six standard fishbone headings. The category name
// column is free text; these are the conventional values offered to users.
func DefaultCategories() []string {
	return []string{"People", "Process", "Materials", "Equipment", "Environment", "Management"}
}

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	return contains(ProjectStatuses(), s)
}

// ValidPhase reports whether s is a known Kaizen phase.
func ValidPhase(s string) bool {
	return contains(Phases(), s)
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	return contains(TaskStatuses(), s)
}

// ValidPriority reports whether s is a known priority.
func ValidPriority(s string) bool {
	return contains(Priorities(), s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
