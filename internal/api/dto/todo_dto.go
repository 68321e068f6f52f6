package dto

import (
	"time"

	"github.com/spec-kit/todo-service/internal/domain"
)

// CreateTodoRequest payload. Identifier and timestamps are server-managed.
type CreateTodoRequest struct {
	Title            string               `json:"title"`
	Description      *string              `json:"description"`
	Completed        *bool                `json:"completed"`
	Priority         *domain.TodoPriority `json:"priority"`
	DueDate          *string              `json:"due_date"`
	DurationMinutes  *int                 `json:"duration_minutes"`
	EstimatedMinutes *int                 `json:"estimated_minutes"`
	TimeSpentMinutes *int                 `json:"time_spent_minutes"`
	Status           *domain.TodoStatus   `json:"status"`
	TicketType       *domain.TicketType   `json:"ticket_type"`
	AssigneeID       *string              `json:"assignee_id"`
}

// UpdateTodoRequest payload. Absent fields leave the stored value untouched.
type UpdateTodoRequest struct {
	Title            *string              `json:"title"`
	Description      *string              `json:"description"`
	Completed        *bool                `json:"completed"`
	Priority         *domain.TodoPriority `json:"priority"`
	DueDate          *string              `json:"due_date"`
	DurationMinutes  *int                 `json:"duration_minutes"`
	EstimatedMinutes *int                 `json:"estimated_minutes"`
	TimeSpentMinutes *int                 `json:"time_spent_minutes"`
	Status           *domain.TodoStatus   `json:"status"`
	TicketType       *domain.TicketType   `json:"ticket_type"`
	AssigneeID       *string              `json:"assignee_id"`
}

// TodoResponse shapes an outgoing todo record.
type TodoResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      *string             `json:"description"`
	Completed        bool                `json:"completed"`
	Priority         domain.TodoPriority `json:"priority"`
	DueDate          *string             `json:"due_date"`
	DurationMinutes  *int                `json:"duration_minutes"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	TimeSpentMinutes int                 `json:"time_spent_minutes"`
	Status           domain.TodoStatus   `json:"status"`
	TicketType       domain.TicketType   `json:"ticket_type"`
	OwnerID          string              `json:"owner_id"`
	AssigneeID       *string             `json:"assignee_id"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// NewTodoResponse maps a domain todo onto its response shape.
func NewTodoResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:               todo.ID,
		Title:            todo.Title,
		Description:      todo.Description,
		Completed:        todo.Completed,
		Priority:         todo.Priority,
		DueDate:          todo.DueDate,
		DurationMinutes:  todo.DurationMinutes,
		EstimatedMinutes: todo.EstimatedMinutes,
		TimeSpentMinutes: todo.TimeSpentMinutes,
		Status:           todo.Status,
		TicketType:       todo.TicketType,
		OwnerID:          todo.OwnerID,
		AssigneeID:       todo.AssigneeID,
		CreatedAt:        todo.CreatedAt,
		UpdatedAt:        todo.UpdatedAt,
	}
}
