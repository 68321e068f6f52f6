package events

import (
	"time"

	"github.com/spec-kit/todo-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventTodoCreated    EventType = "todo_created"
	EventTodoCompleted  EventType = "todo_completed"
	EventTodoAssigned   EventType = "todo_assigned"
	EventTodoDeleted    EventType = "todo_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TodoCreatedPayload payload.
type TodoCreatedPayload struct {
	TodoID   string              `json:"todo_id"`
	Title    string              `json:"title"`
	Priority domain.TodoPriority `json:"priority"`
}

// TodoCompletedPayload payload.
type TodoCompletedPayload struct {
	TodoID string `json:"todo_id"`
	Title  string `json:"title"`
}

// TodoAssignedPayload payload.
type TodoAssignedPayload struct {
	TodoID     string  `json:"todo_id"`
	AssigneeID *string `json:"assignee_id"`
}

// TodoDeletedPayload payload.
type TodoDeletedPayload struct {
	TodoID string `json:"todo_id"`
	Title  string `json:"title"`
}
