package domain

import "time"

// TodoPriority enumerates urgency levels for a todo.
type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

// TodoStatus enumerates board columns for a todo.
type TodoStatus string

const (
	TodoStatusTodo       TodoStatus = "todo"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusDone       TodoStatus = "done"
)

// TicketType categorizes the kind of work a todo tracks.
type TicketType string

const (
	TicketTypeBug         TicketType = "bug"
	TicketTypeFeature     TicketType = "feature"
	TicketTypeTask        TicketType = "task"
	TicketTypeImprovement TicketType = "improvement"
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p TodoPriority) bool {
	switch p {
	case TodoPriorityLow, TodoPriorityMedium, TodoPriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s TodoStatus) bool {
	switch s {
	case TodoStatusTodo, TodoStatusInProgress, TodoStatusDone:
		return true
	}
	return false
}

// ValidTicketType reports whether t is a known ticket type.
func ValidTicketType(t TicketType) bool {
	switch t {
	case TicketTypeBug, TicketTypeFeature, TicketTypeTask, TicketTypeImprovement:
		return true
	}
	return false
}

// Todo is the aggregate for tracked work items. Every todo belongs to the
// user who created it; the assignee is informational and grants no access.
type Todo struct {
	ID               string
	OwnerID          string
	AssigneeID       *string
	Title            string
	Description      *string
	Completed        bool
	Priority         TodoPriority
	DueDate          *string
	DurationMinutes  *int
	EstimatedMinutes int
	TimeSpentMinutes int
	Status           TodoStatus
	TicketType       TicketType
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
