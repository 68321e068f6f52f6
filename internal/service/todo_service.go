package service

import (
	"context"
	"strings"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// TodoCreateInput carries client-supplied fields for a new todo. Identifier
// and timestamps are server-managed and never accepted from clients.
type TodoCreateInput struct {
	Title            string
	Description      *string
	Completed        *bool
	Priority         *domain.TodoPriority
	DueDate          *string
	DurationMinutes  *int
	EstimatedMinutes *int
	TimeSpentMinutes *int
	Status           *domain.TodoStatus
	TicketType       *domain.TicketType
	AssigneeID       *string
}

// TodoPatch holds an optional value per mutable field. A nil field leaves
// the stored value untouched; a present field wins.
type TodoPatch struct {
	Title            *string
	Description      *string
	Completed        *bool
	Priority         *domain.TodoPriority
	DueDate          *string
	DurationMinutes  *int
	EstimatedMinutes *int
	TimeSpentMinutes *int
	Status           *domain.TodoStatus
	TicketType       *domain.TicketType
	AssigneeID       *string
}

// TodoService owns the business rules around todos.
type TodoService struct {
	todos      repository.TodoRepository
	dispatcher events.Dispatcher
}

// NewTodoService builds the service.
func NewTodoService(todos repository.TodoRepository, dispatcher events.Dispatcher) *TodoService {
	return &TodoService{todos: todos, dispatcher: dispatcher}
}

// Create stores a new todo for the owner, applying defaults for absent
// fields: completed=false, priority=medium, status=todo, ticket_type=task,
// minute counters=0.
func (s *TodoService) Create(ctx context.Context, ownerID string, input TodoCreateInput) (*domain.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	todo := &domain.Todo{
		OwnerID:    ownerID,
		AssigneeID: input.AssigneeID,
		Title:      title,
		Priority:   domain.TodoPriorityMedium,
		Status:     domain.TodoStatusTodo,
		TicketType: domain.TicketTypeTask,
	}
	if input.Description != nil {
		todo.Description = input.Description
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		todo.Priority = *input.Priority
	}
	if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}
	if input.DurationMinutes != nil {
		todo.DurationMinutes = input.DurationMinutes
	}
	if input.EstimatedMinutes != nil {
		todo.EstimatedMinutes = *input.EstimatedMinutes
	}
	if input.TimeSpentMinutes != nil {
		todo.TimeSpentMinutes = *input.TimeSpentMinutes
	}
	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		todo.Status = *input.Status
	}
	if input.TicketType != nil {
		if !domain.ValidTicketType(*input.TicketType) {
			return nil, apperrors.NewValidationError("invalid ticket_type", map[string]any{"ticket_type": *input.TicketType})
		}
		todo.TicketType = *input.TicketType
	}

	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventTodoCreated,
		ActorID: ownerID,
		Payload: events.TodoCreatedPayload{TodoID: todo.ID, Title: todo.Title, Priority: todo.Priority},
	})
	return todo, nil
}

// List returns the owner's todos in insertion order, paginated by offset
// and limit.
func (s *TodoService) List(ctx context.Context, ownerID string, offset, limit int) ([]domain.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID, offset, limit)
}

// Get loads one todo in the owner's scope.
func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return todo, nil
}

// Update applies a partial patch to one todo. Only present patch fields
// change; applying the same patch twice yields the same final state.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, patch TodoPatch) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapTodoErr(err)
	}

	wasCompleted := todo.Completed
	prevAssignee := todo.AssigneeID

	if err := applyTodoPatch(todo, patch); err != nil {
		return nil, err
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, mapTodoErr(err)
	}

	if !wasCompleted && todo.Completed {
		s.publish(ctx, events.Event{
			Type:    events.EventTodoCompleted,
			ActorID: ownerID,
			Payload: events.TodoCompletedPayload{TodoID: todo.ID, Title: todo.Title},
		})
	}
	if patch.AssigneeID != nil && !sameAssignee(prevAssignee, todo.AssigneeID) {
		s.publish(ctx, events.Event{
			Type:    events.EventTodoAssigned,
			ActorID: ownerID,
			Payload: events.TodoAssignedPayload{TodoID: todo.ID, AssigneeID: todo.AssigneeID},
		})
	}
	return todo, nil
}

// Delete removes one todo and returns its last state.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	if err := s.todos.Delete(ctx, ownerID, id); err != nil {
		return nil, mapTodoErr(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventTodoDeleted,
		ActorID: ownerID,
		Payload: events.TodoDeletedPayload{TodoID: todo.ID, Title: todo.Title},
	})
	return todo, nil
}

func (s *TodoService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}

func applyTodoPatch(todo *domain.Todo, patch TodoPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return apperrors.NewValidationError("title cannot be empty", nil)
		}
		todo.Title = title
	}
	if patch.Description != nil {
		todo.Description = patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		if !domain.ValidPriority(*patch.Priority) {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": *patch.Priority})
		}
		todo.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		todo.DueDate = patch.DueDate
	}
	if patch.DurationMinutes != nil {
		todo.DurationMinutes = patch.DurationMinutes
	}
	if patch.EstimatedMinutes != nil {
		todo.EstimatedMinutes = *patch.EstimatedMinutes
	}
	if patch.TimeSpentMinutes != nil {
		todo.TimeSpentMinutes = *patch.TimeSpentMinutes
	}
	if patch.Status != nil {
		if !domain.ValidStatus(*patch.Status) {
			return apperrors.NewValidationError("invalid status", map[string]any{"status": *patch.Status})
		}
		todo.Status = *patch.Status
	}
	if patch.TicketType != nil {
		if !domain.ValidTicketType(*patch.TicketType) {
			return apperrors.NewValidationError("invalid ticket_type", map[string]any{"ticket_type": *patch.TicketType})
		}
		todo.TicketType = *patch.TicketType
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == "" {
			todo.AssigneeID = nil
		} else {
			todo.AssigneeID = patch.AssigneeID
		}
	}
	return nil
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func mapTodoErr(err error) error {
	if err == repository.ErrNotFound {
		return apperrors.NewNotFound("todo", nil)
	}
	return err
}
