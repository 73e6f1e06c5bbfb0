package service

import (
	"errors"
	"testing"

	"oncodx/internal/domain"
	"oncodx/internal/model"
)

func validFeatures() []float64 {
	features := make([]float64, model.NumFeatures)
	for i := range features {
		features[i] = float64(i)
	}
	return features
}

func TestInferenceEngine_LabelMapping(t *testing.T) {
	cases := []struct {
		class int
		want  string
	}{
		{0, domain.LabelMalignant},
		{1, domain.LabelBenign},
	}
	for _, tc := range cases {
		engine := NewInferenceEngine(&model.MockClassifier{Class: tc.class}, DefaultFallbackConfidence)
		result, err := engine.Infer(validFeatures())
		if err != nil {
			t.Fatalf("class %d: %v", tc.class, err)
		}
		if result.Label != tc.want {
			t.Fatalf("class %d: expected %q, got %q", tc.class, tc.want, result.Label)
		}
	}
}

func TestInferenceEngine_UnknownClassIndex(t *testing.T) {
	engine := NewInferenceEngine(&model.MockClassifier{Class: 5}, DefaultFallbackConfidence)
	if _, err := engine.Infer(validFeatures()); err == nil {
		t.Fatal("expected error for unknown class index")
	}
}

func TestInferenceEngine_FallbackConfidence(t *testing.T) {
	// MockClassifier no implementa ProbabilityPredictor.
	engine := NewInferenceEngine(&model.MockClassifier{Class: 1}, DefaultFallbackConfidence)
	result, err := engine.Infer(validFeatures())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if result.Confidence != DefaultFallbackConfidence {
		t.Fatalf("expected fallback confidence %v, got %v", DefaultFallbackConfidence, result.Confidence)
	}
}

func TestInferenceEngine_ConfidenceFromProbabilities(t *testing.T) {
	classifier := &model.MockProbabilityClassifier{
		MockClassifier: model.MockClassifier{Class: 1},
		Probs:          []float64{0.0467, 0.9533},
	}
	engine := NewInferenceEngine(classifier, DefaultFallbackConfidence)
	result, err := engine.Infer(validFeatures())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if result.Confidence != 0.95 {
		t.Fatalf("expected rounded confidence 0.95, got %v", result.Confidence)
	}
}

func TestInferenceEngine_ConfidenceClamped(t *testing.T) {
	classifier := &model.MockProbabilityClassifier{
		MockClassifier: model.MockClassifier{Class: 0},
		Probs:          []float64{1.3, -0.3},
	}
	engine := NewInferenceEngine(classifier, DefaultFallbackConfidence)
	result, err := engine.Infer(validFeatures())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", result.Confidence)
	}
	if result.Confidence != 1 {
		t.Fatalf("expected clamp to 1, got %v", result.Confidence)
	}
}

func TestInferenceEngine_Idempotent(t *testing.T) {
	classifier := &model.MockProbabilityClassifier{
		MockClassifier: model.MockClassifier{Class: 1},
		Probs:          []float64{0.2, 0.8},
	}
	engine := NewInferenceEngine(classifier, DefaultFallbackConfidence)
	features := validFeatures()

	first, err := engine.Infer(features)
	if err != nil {
		t.Fatalf("first infer: %v", err)
	}
	second, err := engine.Infer(features)
	if err != nil {
		t.Fatalf("second infer: %v", err)
	}
	if first != second {
		t.Fatalf("inference not idempotent: %+v vs %+v", first, second)
	}
}

func TestInferenceEngine_NoModel(t *testing.T) {
	engine := NewInferenceEngine(nil, DefaultFallbackConfidence)
	if _, err := engine.Infer(validFeatures()); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestInferenceEngine_WrapsPredictError(t *testing.T) {
	engine := NewInferenceEngine(&model.MockClassifier{Err: errors.New("shape mismatch")}, DefaultFallbackConfidence)
	_, err := engine.Infer(validFeatures())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("predict failure must not read as model unavailable: %v", err)
	}
}
