package requests

import (
	"errors"
	"net/http"

	"benchlab/internal/benches"
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

// GetBenchCalendar returns the month grid for one bench.
// GET /benches/:benchId/calendar?month=2025-01
func (c *Controller) GetBenchCalendar(ctx *gin.Context) {
	benchID, err := uuid.Parse(ctx.Param("benchId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bench ID", nil, nil)
		return
	}

	month := ctx.Query("month")
	if month == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "month query parameter is required (YYYY-MM)", nil, nil)
		return
	}

	calendar, err := c.service.GetBenchCalendar(ctx.Request.Context(), benchID, month)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMonth):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "month must be in YYYY-MM format", nil, nil)
		case errors.Is(err, benches.ErrBenchNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Bench not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to build calendar", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Calendar fetched successfully", calendar, nil)
}

// ValidateRange performs an advisory check of a proposed range.
// POST /benches/:benchId/validate
func (c *Controller) ValidateRange(ctx *gin.Context) {
	benchID, err := uuid.Parse(ctx.Param("benchId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bench ID", nil, nil)
		return
	}

	var dto ValidateRangeDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&dto); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	result, err := c.service.ValidateRange(ctx.Request.Context(), benchID, dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTimestamp):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Timestamps must be RFC 3339", nil, nil)
		case errors.Is(err, benches.ErrBenchNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Bench not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to validate range", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Range validated", result, nil)
}

// SubmitScheduleRequest creates a pending reservation request.
// POST /benches/:benchId/requests
func (c *Controller) SubmitScheduleRequest(ctx *gin.Context) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	benchID, err := uuid.Parse(ctx.Param("benchId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bench ID", nil, nil)
		return
	}

	var dto SubmitScheduleDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&dto); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	result, err := c.service.SubmitScheduleRequest(ctx.Request.Context(), session.UserID, benchID, dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTimestamp):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Timestamps must be RFC 3339", nil, nil)
		case errors.Is(err, benches.ErrBenchNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Bench not found", nil, nil)
		case errors.Is(err, ErrBenchUnavailable):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Bench is not accepting reservations", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to submit request", nil, nil)
		}
		return
	}

	if !result.Validation.Accepted {
		// The range failed validation; hand the reason back as a normal
		// response so the UI can show the corrective message.
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Proposed range was not accepted", result, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation request submitted", result, nil)
}

// ListMyRequests returns the caller's own requests.
// GET /requests
func (c *Controller) ListMyRequests(ctx *gin.Context) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListMyRequests(ctx.Request.Context(), session.UserID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list requests", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Requests fetched successfully", result, nil)
}

// ListRequests returns the admin review queue.
// GET /admin/requests
func (c *Controller) ListRequests(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListRequests(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list requests", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Requests fetched successfully", result, nil)
}

// ApproveRequest approves a pending schedule request.
// POST /admin/requests/:requestId/approve
func (c *Controller) ApproveRequest(ctx *gin.Context) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	requestID, err := uuid.Parse(ctx.Param("requestId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request ID", nil, nil)
		return
	}

	approved, err := c.service.ApproveRequest(ctx.Request.Context(), requestID, session.UserID)
	if err != nil {
		c.respondDecisionError(ctx, err, "approve")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Request approved", approved, nil)
}

// RejectRequest rejects a pending schedule request.
// POST /admin/requests/:requestId/reject
func (c *Controller) RejectRequest(ctx *gin.Context) {
	session, err := middleware.SessionFromContext(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	requestID, err := uuid.Parse(ctx.Param("requestId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request ID", nil, nil)
		return
	}

	var dto DecisionDTO
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&dto); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
	}

	rejected, err := c.service.RejectRequest(ctx.Request.Context(), requestID, session.UserID, dto.Comment)
	if err != nil {
		c.respondDecisionError(ctx, err, "reject")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Request rejected", rejected, nil)
}

// GetDashboardStats summarizes the review queue.
// GET /admin/dashboard
func (c *Controller) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.service.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch dashboard stats", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Dashboard stats fetched successfully", stats, nil)
}

func (c *Controller) respondDecisionError(ctx *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Request not found", nil, nil)
	case errors.Is(err, ErrAlreadyDecided):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Request has already been decided", nil, nil)
	case errors.Is(err, ErrScheduleConflict):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Range now conflicts with an approved reservation", nil, nil)
	case errors.Is(err, ErrNotScheduleRequest):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Registration requests are decided through user approval endpoints", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to "+action+" request", nil, nil)
	}
}
