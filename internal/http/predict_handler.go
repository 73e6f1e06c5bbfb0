package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"oncodx/internal/service"
)

// PredictHandler expone el pipeline de diagnóstico.
type PredictHandler struct {
	logger   *zap.Logger
	diagServ *service.DiagnosisService
}

func NewPredictHandler(logger *zap.Logger, diagServ *service.DiagnosisService) *PredictHandler {
	return &PredictHandler{
		logger:   logger,
		diagServ: diagServ,
	}
}

// Predict maneja POST /predict. El request ya pasó por el middleware de
// autenticación; acá solo quedan validación, inferencia y explicación.
func (h *PredictHandler) Predict(c *gin.Context) {
	doctor, ok := GetAuthDoctor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is missing"})
		return
	}

	var req struct {
		Features []any `json:"features"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid predict request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Exactly 30 features required"})
		return
	}

	out, err := h.diagServ.Diagnose(c.Request.Context(), doctor.ID, req.Features)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongFeatureCount):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Exactly 30 features required"})
		case errors.Is(err, service.ErrFeatureNotNumeric):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All features must be numeric"})
		case errors.Is(err, service.ErrModelUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{
				"prediction": "Error",
				"confidence": 0.0,
				"message":    "Model not loaded",
			})
		default:
			h.logger.Error("prediction failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"prediction": "Error",
				"confidence": 0.0,
				"message":    "Prediction failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction":           out.Result.Label,
		"confidence":           out.Result.Confidence,
		"risk_level":           out.Assessment.RiskLevel,
		"clinical_explanation": out.Assessment.Explanation,
		"message":              out.Assessment.Recommendation,
	})
}
