package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/service"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// UsersHandler exposes profile and user listing endpoints.
type UsersHandler struct {
	users    *service.UserService
	activity *service.ActivityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, activityService *service.ActivityService) *UsersHandler {
	return &UsersHandler{users: userService, activity: activityService}
}

// Me GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateMe PATCH /users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.users.UpdateProfile(c.Context(), user.ID, service.ProfilePatch{
		Name:   req.Name,
		Email:  req.Email,
		Color:  req.Color,
		Active: req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(updated))
}

// UploadImage POST /users/me/image. Expects a multipart "file" part.
func (h *UsersHandler) UploadImage(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file required", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable file", nil)
	}
	defer src.Close()

	updated, err := h.users.UploadAvatar(c.Context(), user.ID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(updated))
}

// List GET /users. Public listing of active accounts.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListActive(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(items)
}

// Activity GET /activity. Recent domain events for the dashboard feed.
func (h *UsersHandler) Activity(c *fiber.Ctx) error {
	if _, ok := auth.UserFromContext(c); !ok {
		return apperrors.NewUnauthorized("user required")
	}
	n := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			n = parsed
		}
	}
	feed, err := h.activity.Recent(c.Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feed})
}
