package feedback

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/shared/metrics"
	"feedback-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/courses/:id/feedback", h.ingestFeedback)
	rg.GET("/courses/:id/feedback", h.listFeedback)
	rg.GET("/courses/:id/actions", h.listActions)
}

type ingestRequest struct {
	PositiveText    string `json:"positiveText"`
	ImprovementText string `json:"improvementText"`
	ShowStopperText string `json:"showStopperText"`
	IsShowStopper   bool   `json:"isShowStopper"`
	Rating          int    `json:"rating" binding:"required"`
}

func (h *Handler) ingestFeedback(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "rating is required", nil)
		return
	}

	fb, err := h.Svc.Ingest(c.Request.Context(), c.Param("id"), IngestInput{
		PositiveText:    req.PositiveText,
		ImprovementText: req.ImprovementText,
		ShowStopperText: req.ShowStopperText,
		IsShowStopper:   req.IsShowStopper,
		Rating:          req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store feedback", nil)
		}
		return
	}

	metrics.IncFeedbackIngested()
	respond.JSON(c, http.StatusCreated, fb)
}

func (h *Handler) listFeedback(c *gin.Context) {
	stored, err := h.Svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list feedback", nil)
		return
	}
	respond.OK(c, gin.H{"feedback": stored})
}

func (h *Handler) listActions(c *gin.Context) {
	start := time.Now()
	items, err := h.Svc.Actions(c.Request.Context(), c.Param("id"))
	metrics.ObserveAggregationDurationMs(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to aggregate actions", nil)
		return
	}
	respond.OK(c, gin.H{"actions": items})
}
