package service

import "oncodx/internal/domain"

// DefaultBenignConfidenceThreshold es el umbral clínico de seguridad:
// un resultado benigno por debajo de esta confianza no se descarta.
const DefaultBenignConfidenceThreshold = 0.70

const (
	malignantExplanation = "The model detected feature patterns commonly associated with malignant tumors, " +
		"including irregular cell structure and abnormal texture measurements."
	lowConfidenceBenignExplanation = "The model predicts a benign outcome, but confidence is below the clinical safety threshold. " +
		"Some feature values overlap with malignant patterns."
	benignExplanation = "The input features closely match patterns seen in benign breast tissue, " +
		"with smooth cell boundaries and consistent texture measurements."

	malignantRecommendation    = "Immediate oncologist consultation advised."
	intermediateRecommendation = "Low confidence benign result. Follow-up imaging or clinical review recommended."
	benignRecommendation       = "Low risk detected. Routine monitoring recommended."
)

// RiskPolicy estratifica un PredictionResult en un nivel de riesgo con
// narrativa clínica fija. El umbral es política clínica, independiente
// del modelo cargado.
type RiskPolicy struct {
	benignConfidenceThreshold float64
}

func NewRiskPolicy(benignConfidenceThreshold float64) RiskPolicy {
	if benignConfidenceThreshold <= 0 || benignConfidenceThreshold > 1 {
		benignConfidenceThreshold = DefaultBenignConfidenceThreshold
	}
	return RiskPolicy{benignConfidenceThreshold: benignConfidenceThreshold}
}

// Explain es determinista y total: aplica la primera regla que coincide.
func (p RiskPolicy) Explain(result domain.PredictionResult) domain.RiskAssessment {
	switch {
	case result.Label == domain.LabelMalignant:
		return domain.RiskAssessment{
			RiskLevel:      domain.RiskHigh,
			Explanation:    malignantExplanation,
			Recommendation: malignantRecommendation,
		}
	case result.Confidence < p.benignConfidenceThreshold:
		return domain.RiskAssessment{
			RiskLevel:      domain.RiskIntermediate,
			Explanation:    lowConfidenceBenignExplanation,
			Recommendation: intermediateRecommendation,
		}
	default:
		return domain.RiskAssessment{
			RiskLevel:      domain.RiskLow,
			Explanation:    benignExplanation,
			Recommendation: benignRecommendation,
		}
	}
}
