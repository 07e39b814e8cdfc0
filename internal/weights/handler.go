package weights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/scoring"
	"feedback-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the weights service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches weight configuration routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/weights", h.getWeights)
	rg.PUT("/weights", h.putWeights)
}

func (h *Handler) getWeights(c *gin.Context) {
	current, err := h.Svc.Current(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load weight configuration", nil)
		return
	}
	respond.OK(c, gin.H{"weights": current})
}

type putWeightsRequest struct {
	Weights   scoring.WeightVector `json:"weights"`
	UpdatedBy string               `json:"updatedBy"`
}

func (h *Handler) putWeights(c *gin.Context) {
	var req putWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "weights payload is required", nil)
		return
	}

	cfg, err := h.Svc.Replace(c.Request.Context(), req.Weights, req.UpdatedBy)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrInvalidWeights):
			respond.Error(c, http.StatusBadRequest, "invalid_weights", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store weight configuration", nil)
		}
		return
	}
	respond.OK(c, cfg)
}
