package service

import (
	"testing"

	"oncodx/internal/domain"
)

func TestRiskPolicy_DecisionTable(t *testing.T) {
	policy := NewRiskPolicy(DefaultBenignConfidenceThreshold)

	cases := []struct {
		name       string
		label      string
		confidence float64
		wantRisk   string
	}{
		{"malignant high confidence", domain.LabelMalignant, 0.99, domain.RiskHigh},
		{"malignant low confidence", domain.LabelMalignant, 0.51, domain.RiskHigh},
		{"benign below threshold", domain.LabelBenign, 0.55, domain.RiskIntermediate},
		{"benign just below threshold", domain.LabelBenign, 0.69, domain.RiskIntermediate},
		{"benign at threshold", domain.LabelBenign, 0.70, domain.RiskLow},
		{"benign high confidence", domain.LabelBenign, 0.95, domain.RiskLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Explain(domain.PredictionResult{Label: tc.label, Confidence: tc.confidence})
			if got.RiskLevel != tc.wantRisk {
				t.Fatalf("expected %q, got %q", tc.wantRisk, got.RiskLevel)
			}
			if got.Explanation == "" || got.Recommendation == "" {
				t.Fatalf("expected narrative and recommendation for %q", got.RiskLevel)
			}
		})
	}
}

func TestRiskPolicy_Deterministic(t *testing.T) {
	policy := NewRiskPolicy(DefaultBenignConfidenceThreshold)
	result := domain.PredictionResult{Label: domain.LabelBenign, Confidence: 0.62}

	first := policy.Explain(result)
	for i := 0; i < 10; i++ {
		if got := policy.Explain(result); got != first {
			t.Fatalf("explain not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestRiskPolicy_ConfigurableThreshold(t *testing.T) {
	policy := NewRiskPolicy(0.90)
	got := policy.Explain(domain.PredictionResult{Label: domain.LabelBenign, Confidence: 0.85})
	if got.RiskLevel != domain.RiskIntermediate {
		t.Fatalf("expected intermediate under raised threshold, got %q", got.RiskLevel)
	}
}

func TestRiskPolicy_InvalidThresholdFallsBack(t *testing.T) {
	policy := NewRiskPolicy(-1)
	got := policy.Explain(domain.PredictionResult{Label: domain.LabelBenign, Confidence: 0.75})
	if got.RiskLevel != domain.RiskLow {
		t.Fatalf("expected default threshold behavior, got %q", got.RiskLevel)
	}
}
