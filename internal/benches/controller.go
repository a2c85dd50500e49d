package benches

import (
	"errors"
	"net/http"

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

func (c *Controller) CreateBench(ctx *gin.Context) {
	var req CreateBenchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	bench, err := c.service.CreateBench(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "A bench with this name already exists", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create bench", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Bench created successfully", bench, nil)
}

func (c *Controller) GetBench(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("benchId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bench ID", nil, nil)
		return
	}

	bench, err := c.service.GetBench(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBenchNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Bench not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch bench", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bench fetched successfully", bench, nil)
}

func (c *Controller) ListBenches(ctx *gin.Context) {
	var filters ListFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListBenches(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list benches", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Benches fetched successfully", result, nil)
}

func (c *Controller) UpdateBench(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("benchId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bench ID", nil, nil)
		return
	}

	var req UpdateBenchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	bench, err := c.service.UpdateBench(ctx.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrBenchNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Bench not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update bench", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bench updated successfully", bench, nil)
}

func (c *Controller) DeleteBench(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("benchId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bench ID", nil, nil)
		return
	}

	if err := c.service.DeleteBench(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrBenchNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Bench not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete bench", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bench deleted successfully", nil, nil)
}
