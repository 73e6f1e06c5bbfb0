package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"oncodx/internal/service"
)

// DiagnosisHandler expone el historial de diagnósticos del doctor.
type DiagnosisHandler struct {
	logger   *zap.Logger
	diagServ *service.DiagnosisService
}

func NewDiagnosisHandler(logger *zap.Logger, diagServ *service.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{
		logger:   logger,
		diagServ: diagServ,
	}
}

// List maneja GET /diagnoses.
func (h *DiagnosisHandler) List(c *gin.Context) {
	doctor, ok := GetAuthDoctor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is missing"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	diagnoses, err := h.diagServ.History(c.Request.Context(), doctor.ID, limit)
	if err != nil {
		h.logger.Error("list diagnoses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list diagnoses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"diagnoses": diagnoses})
}

// Similar maneja POST /diagnoses/similar: casos del historial más
// cercanos al vector recibido.
func (h *DiagnosisHandler) Similar(c *gin.Context) {
	if _, ok := GetAuthDoctor(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is missing"})
		return
	}

	var req struct {
		Features []any `json:"features"`
		K        int   `json:"k"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Exactly 30 features required"})
		return
	}

	diagnoses, err := h.diagServ.SimilarCases(c.Request.Context(), req.Features, req.K)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongFeatureCount):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Exactly 30 features required"})
		case errors.Is(err, service.ErrFeatureNotNumeric):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All features must be numeric"})
		default:
			h.logger.Error("similar cases failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not search similar cases"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"diagnoses": diagnoses})
}
