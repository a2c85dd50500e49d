package users

import (
	"errors"
	"net/http"

	"benchlab/internal/shared/middleware"
	"benchlab/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) GetProfile(ctx *gin.Context) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	user, err := c.service.GetProfile(ctx.Request.Context(), session.UserID)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile retrieved successfully", user, nil)
}

func (c *Controller) UpdateProfile(ctx *gin.Context) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}
	if req.FirstName == "" && req.LastName == "" && req.Email == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "At least one field must be updated", nil, nil)
		return
	}

	user, err := c.service.UpdateProfile(ctx.Request.Context(), session.UserID, req)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile updated successfully", user, nil)
}

func (c *Controller) ListUsers(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, total, err := c.service.ListUsers(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list users", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Users retrieved successfully", gin.H{
		"users": list,
		"total": total,
	}, nil)
}

func (c *Controller) ApproveUser(ctx *gin.Context) {
	c.decision(ctx, func(userID, adminID uuid.UUID, _ string) (*User, error) {
		return c.service.ApproveUser(ctx.Request.Context(), userID, adminID)
	}, "User approved successfully")
}

func (c *Controller) RejectUser(ctx *gin.Context) {
	c.decision(ctx, func(userID, adminID uuid.UUID, reason string) (*User, error) {
		return c.service.RejectUser(ctx.Request.Context(), userID, adminID, reason)
	}, "User rejected")
}

func (c *Controller) EnableUser(ctx *gin.Context) {
	c.decision(ctx, func(userID, adminID uuid.UUID, _ string) (*User, error) {
		return c.service.EnableUser(ctx.Request.Context(), userID, adminID)
	}, "User enabled successfully")
}

func (c *Controller) DisableUser(ctx *gin.Context) {
	c.decision(ctx, func(userID, adminID uuid.UUID, reason string) (*User, error) {
		return c.service.DisableUser(ctx.Request.Context(), userID, adminID, reason)
	}, "User disabled")
}

func (c *Controller) SetRole(ctx *gin.Context) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	var req SetRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	user, err := c.service.SetRole(ctx.Request.Context(), userID, session.UserID, Role(req.Role))
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Role updated successfully", user, nil)
}

func (c *Controller) decision(ctx *gin.Context, action func(userID, adminID uuid.UUID, reason string) (*User, error), successMsg string) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	var req DecisionRequest
	ctx.ShouldBindJSON(&req) // Optional body

	user, err := action(userID, session.UserID, req.Reason)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, successMsg, user, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
	case errors.Is(err, ErrInvalidStatusChange):
		response.RespondJSON(ctx, "error", http.StatusConflict, "User is not in a state that allows this action", nil, nil)
	case errors.Is(err, ErrSelfDemotion):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Administrators cannot modify their own account", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Operation failed", nil, nil)
	}
}
