package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
	"github.com/oksasatya/go-hexagonal-users/pkg/response"
	"github.com/oksasatya/go-hexagonal-users/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changeEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", "invalid_payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), application.CreateUserInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", "/api/users/"+u.ID)
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := h.Svc.ListUsers(c.Request.Context(), application.ListUsersInput{Limit: limit, Offset: offset})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "users", nil)
}

func (h *UserHandler) ChangeEmail(c *gin.Context) {
	var req changeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", "invalid_payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.ChangeEmail(c.Request.Context(), c.Param("id"), req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "email updated", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", "invalid_payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.ChangePassword(c.Request.Context(), c.Param("id"), application.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "password updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", "invalid_payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		h.fail(c, err)
		return
	}
	msg := "user deactivated"
	if u.IsActive {
		msg = "user activated"
	}
	response.Success(c, http.StatusOK, u, msg, nil)
}

// statusClientClosedRequest is nginx's non-standard code for a request the client abandoned.
const statusClientClosedRequest = 499

// fail maps use case errors onto HTTP. Unclassified errors are logged and
// answered with a generic 500.
func (h *UserHandler) fail(c *gin.Context, err error) {
	var ve *valueobject.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(c, http.StatusUnprocessableEntity, ve.Error(), "validation_failed", validation.RuleDetails(ve))
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "user not found", "not_found", nil)
	case errors.Is(err, application.ErrConflict):
		response.Error(c, http.StatusConflict, "email already registered", "conflict", nil)
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the body
		c.AbortWithStatus(statusClientClosedRequest)
	default:
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString(response.RequestIDKey),
			"path":       c.FullPath(),
		}).Error("request failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", "internal", nil)
	}
}

// queryInt reads an optional integer query parameter; missing means zero.
func queryInt(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, valueobject.NewValidationError(name, valueobject.RuleFormat)
	}
	return n, nil
}
