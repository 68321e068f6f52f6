package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/service"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// TodosHandler manages the owner-scoped todo endpoints.
type TodosHandler struct {
	service *service.TodoService
}

// NewTodosHandler constructs handler.
func NewTodosHandler(todoService *service.TodoService) *TodosHandler {
	return &TodosHandler{service: todoService}
}

// Create POST /todos.
func (h *TodosHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TodoCreateInput{
		Title:            req.Title,
		Description:      req.Description,
		Completed:        req.Completed,
		Priority:         req.Priority,
		DueDate:          req.DueDate,
		DurationMinutes:  req.DurationMinutes,
		EstimatedMinutes: req.EstimatedMinutes,
		TimeSpentMinutes: req.TimeSpentMinutes,
		Status:           req.Status,
		TicketType:       req.TicketType,
		AssigneeID:       req.AssigneeID,
	}
	todo, err := h.service.Create(c.Context(), user.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTodoResponse(todo))
}

// List GET /todos.
func (h *TodosHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	skip := parseQueryInt(c.Query("skip"), 0)
	limit := parseQueryInt(c.Query("limit"), 100)

	todos, err := h.service.List(c.Context(), user.ID, skip, limit)
	if err != nil {
		return err
	}
	items := make([]dto.TodoResponse, 0, len(todos))
	for i := range todos {
		items = append(items, dto.NewTodoResponse(&todos[i]))
	}
	return c.JSON(items)
}

// Get GET /todos/:id.
func (h *TodosHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	todo, err := h.service.Get(c.Context(), user.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTodoResponse(todo))
}

// Update PUT /todos/:id.
func (h *TodosHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.TodoPatch{
		Title:            req.Title,
		Description:      req.Description,
		Completed:        req.Completed,
		Priority:         req.Priority,
		DueDate:          req.DueDate,
		DurationMinutes:  req.DurationMinutes,
		EstimatedMinutes: req.EstimatedMinutes,
		TimeSpentMinutes: req.TimeSpentMinutes,
		Status:           req.Status,
		TicketType:       req.TicketType,
		AssigneeID:       req.AssigneeID,
	}
	todo, err := h.service.Update(c.Context(), user.ID, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTodoResponse(todo))
}

// Delete DELETE /todos/:id. Responds with the record's last state.
func (h *TodosHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	todo, err := h.service.Delete(c.Context(), user.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTodoResponse(todo))
}

func parseQueryInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
