package service

import (
	"errors"
	"fmt"
	"math"

	"oncodx/internal/domain"
	"oncodx/internal/model"
)

var ErrModelUnavailable = errors.New("model not loaded")

// DefaultFallbackConfidence se reporta cuando el backend no expone
// probabilidades por clase.
const DefaultFallbackConfidence = 0.9

// InferenceEngine invoca el clasificador cargado sobre un vector ya
// validado. Un engine sin clasificador responde ErrModelUnavailable en
// cada inferencia; el resto del servicio sigue operativo.
type InferenceEngine struct {
	classifier         model.Classifier
	fallbackConfidence float64
}

func NewInferenceEngine(classifier model.Classifier, fallbackConfidence float64) *InferenceEngine {
	if fallbackConfidence <= 0 || fallbackConfidence > 1 {
		fallbackConfidence = DefaultFallbackConfidence
	}
	return &InferenceEngine{
		classifier:         classifier,
		fallbackConfidence: fallbackConfidence,
	}
}

func (e *InferenceEngine) Infer(features []float64) (domain.PredictionResult, error) {
	if e.classifier == nil {
		return domain.PredictionResult{}, ErrModelUnavailable
	}

	classIdx, err := e.classifier.Predict(features)
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("prediction failed: %w", err)
	}
	label, err := labelForClass(classIdx)
	if err != nil {
		return domain.PredictionResult{}, err
	}

	confidence := e.fallbackConfidence
	if predictor, ok := e.classifier.(model.ProbabilityPredictor); ok {
		probs, err := predictor.PredictProbabilities(features)
		if err != nil {
			return domain.PredictionResult{}, fmt.Errorf("prediction failed: %w", err)
		}
		confidence = maxProbability(probs)
	}

	return domain.PredictionResult{
		Label:      label,
		Confidence: roundConfidence(confidence),
	}, nil
}

func labelForClass(classIdx int) (string, error) {
	switch classIdx {
	case 0:
		return domain.LabelMalignant, nil
	case 1:
		return domain.LabelBenign, nil
	default:
		return "", fmt.Errorf("prediction failed: unknown class index %d", classIdx)
	}
}

func maxProbability(probs []float64) float64 {
	max := 0.0
	for _, p := range probs {
		if p > max {
			max = p
		}
	}
	return max
}

// roundConfidence acota a [0, 1] y redondea a dos decimales; el valor
// sin redondear nunca se expone.
func roundConfidence(confidence float64) float64 {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return math.Round(confidence*100) / 100
}
