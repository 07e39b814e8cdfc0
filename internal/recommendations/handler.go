package recommendations

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/scoring"
	"feedback-backend/internal/shared/metrics"
	"feedback-backend/internal/shared/server/respond"
)

// WeightSource supplies the currently configured weight vector.
type WeightSource interface {
	Current(ctx context.Context) (scoring.WeightVector, error)
}

// Handler wires HTTP handlers to the recommendations service.
type Handler struct {
	Svc     *Service
	Weights WeightSource
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, weights WeightSource) *Handler {
	return &Handler{Svc: svc, Weights: weights}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.createRecommendation)
	rg.GET("/recommendations/:id", h.getRecommendation)
	rg.POST("/recommendations/:id/validate", h.validateRecommendation)
	rg.POST("/recommendations/:id/status", h.transitionRecommendation)
	rg.GET("/courses/:id/recommendations", h.listRecommendations)
	rg.POST("/courses/:id/recompute", h.recomputeCourse)
}

type createRequest struct {
	CourseID      string               `json:"courseId" binding:"required"`
	Title         string               `json:"title" binding:"required"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Factors       scoring.FactorScores `json:"factors"`
	IsShowStopper bool                 `json:"isShowStopper"`
}

func (h *Handler) createRecommendation(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "courseId and title are required", nil)
		return
	}

	weights, err := h.Weights.Current(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load weight configuration", nil)
		return
	}

	rec, err := h.Svc.Create(c.Request.Context(), CreateInput{
		CourseID:      req.CourseID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Factors:       req.Factors,
		IsShowStopper: req.IsShowStopper,
	}, weights)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrInvalidWeights):
			respond.Error(c, http.StatusConflict, "invalid_weights", "stored weight configuration is invalid", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) getRecommendation(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendation", nil)
		}
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) listRecommendations(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list recommendations", nil)
		return
	}
	respond.OK(c, gin.H{"recommendations": recs})
}

type validateRequest struct {
	Notes       string `json:"notes"`
	ValidatorID string `json:"validatorId" binding:"required"`
}

func (h *Handler) validateRecommendation(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "validatorId is required", nil)
		return
	}

	rec, err := h.Svc.Validate(c.Request.Context(), c.Param("id"), req.Notes, req.ValidatorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
		case errors.Is(err, ErrEmptyNotes):
			respond.Error(c, http.StatusBadRequest, "validation_error", "notes must not be empty", nil)
		case errors.Is(err, ErrInvalidTransition):
			respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to validate recommendation", nil)
		}
		return
	}
	respond.OK(c, rec)
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) transitionRecommendation(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}

	rec, err := h.Svc.Transition(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
		case errors.Is(err, ErrInvalidTransition):
			respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update status", nil)
		}
		return
	}
	c.Set("statusTransition", rec.Status)
	respond.OK(c, rec)
}

type recomputeRequest struct {
	Weights *scoring.WeightVector `json:"weights"`
}

func (h *Handler) recomputeCourse(c *gin.Context) {
	var req recomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid recompute request", nil)
		return
	}

	weights := scoring.WeightVector{}
	if req.Weights != nil {
		weights = *req.Weights
	} else {
		stored, err := h.Weights.Current(c.Request.Context())
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load weight configuration", nil)
			return
		}
		weights = stored
	}

	recs, err := h.Svc.Recompute(c.Request.Context(), c.Param("id"), weights)
	if err != nil {
		metrics.IncRecomputeFailed()
		switch {
		case errors.Is(err, scoring.ErrInvalidWeights):
			respond.Error(c, http.StatusBadRequest, "invalid_weights", err.Error(), nil)
		case errors.Is(err, ErrRecomputeInProgress):
			respond.Error(c, http.StatusConflict, "recompute_in_progress", "a recompute for this course is already running", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to recompute scores", nil)
		}
		return
	}

	metrics.IncRecomputeCompleted()
	respond.OK(c, gin.H{"recommendations": recs})
}
