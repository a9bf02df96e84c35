package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/response"
	"github.com/rohitmodi970/casual-quizing/internal/service"
	"github.com/rohitmodi970/casual-quizing/internal/validator"
)

// UserHandler handles the pre-quiz email registration flow.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterEmail godoc
// POST /api/v1/register-email
// Registers an email (201) or welcomes a returning user back (200).
func (h *UserHandler) RegisterEmail(c *gin.Context) {
	var req model.RegisterEmailRequest
	if details := validator.Bind(c, &req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrInvalidEmail, details)
		return
	}

	user, created, err := h.userService.RegisterEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	status := http.StatusOK
	message := "Welcome back! You can continue to the quiz."
	switch {
	case created:
		status = http.StatusCreated
		message = "Registration successful! Get ready for the quiz."
	case user.Status == model.UserStatusCompleted:
		message = "Ready for another challenge? Let's go!"
	}

	response.Success(c, status, model.RegisterEmailResponse{
		Message: message,
		UserID:  user.ID,
	})
}

// queryInt parses an integer query parameter with a fallback default.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
