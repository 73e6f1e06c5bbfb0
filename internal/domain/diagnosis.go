package domain

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// Las etiquetas siguen la convención de entrenamiento del artefacto:
// índice de clase 0 = Malignant, 1 = Benign.
const (
	LabelMalignant = "Malignant"
	LabelBenign    = "Benign"
)

const (
	RiskHigh         = "High risk"
	RiskIntermediate = "Intermediate risk"
	RiskLow          = "Low risk"
)

// PredictionResult es la salida directa del clasificador para una muestra.
type PredictionResult struct {
	Label      string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// RiskAssessment es la lectura clínica derivada de un PredictionResult.
type RiskAssessment struct {
	RiskLevel      string `json:"risk_level"`
	Explanation    string `json:"clinical_explanation"`
	Recommendation string `json:"message"`
}

type Diagnosis struct {
	ID         string          `json:"id"`
	DoctorID   string          `json:"doctor_id"`
	Prediction string          `json:"prediction"`
	Confidence float64         `json:"confidence"`
	RiskLevel  string          `json:"risk_level"`
	Features   pgvector.Vector `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}
