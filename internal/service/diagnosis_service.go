package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"oncodx/internal/domain"
	"oncodx/internal/repository"
)

// DiagnosisService orquesta el pipeline de diagnóstico: validación,
// inferencia y estratificación de riesgo. Cada etapa corta el flujo en
// el primer error; no hay reintentos ni resultados parciales.
type DiagnosisService struct {
	logger    *zap.Logger
	engine    *InferenceEngine
	policy    RiskPolicy
	diagnoses repository.DiagnosisRepository
}

// DiagnosisOutput es la respuesta completa de un diagnóstico exitoso.
type DiagnosisOutput struct {
	Result     domain.PredictionResult
	Assessment domain.RiskAssessment
}

func NewDiagnosisService(
	logger *zap.Logger,
	engine *InferenceEngine,
	policy RiskPolicy,
	diagnoses repository.DiagnosisRepository,
) *DiagnosisService {
	return &DiagnosisService{
		logger:    logger,
		engine:    engine,
		policy:    policy,
		diagnoses: diagnoses,
	}
}

func (s *DiagnosisService) Diagnose(ctx context.Context, doctorID string, rawFeatures []any) (DiagnosisOutput, error) {
	features, err := ParseFeatures(rawFeatures)
	if err != nil {
		return DiagnosisOutput{}, err
	}

	result, err := s.engine.Infer(features)
	if err != nil {
		return DiagnosisOutput{}, err
	}

	assessment := s.policy.Explain(result)
	s.record(ctx, doctorID, features, result, assessment)

	return DiagnosisOutput{Result: result, Assessment: assessment}, nil
}

// record persiste el diagnóstico como historial. Un fallo de persistencia
// no invalida la respuesta ya calculada.
func (s *DiagnosisService) record(
	ctx context.Context,
	doctorID string,
	features []float64,
	result domain.PredictionResult,
	assessment domain.RiskAssessment,
) {
	if s.diagnoses == nil {
		return
	}
	diagnosis := domain.Diagnosis{
		ID:         uuid.NewString(),
		DoctorID:   doctorID,
		Prediction: result.Label,
		Confidence: result.Confidence,
		RiskLevel:  assessment.RiskLevel,
		Features:   featureVector(features),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.diagnoses.Create(ctx, diagnosis); err != nil {
		s.logger.Warn("diagnosis record failed", zap.Error(err))
	}
}

func (s *DiagnosisService) History(ctx context.Context, doctorID string, limit int) ([]domain.Diagnosis, error) {
	if s.diagnoses == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.diagnoses.ListByDoctor(ctx, doctorID, limit)
}

// SimilarCases busca en el historial los casos más cercanos al vector
// recibido, usando distancia L2 sobre la columna pgvector.
func (s *DiagnosisService) SimilarCases(ctx context.Context, rawFeatures []any, k int) ([]domain.Diagnosis, error) {
	if s.diagnoses == nil {
		return nil, nil
	}
	features, err := ParseFeatures(rawFeatures)
	if err != nil {
		return nil, err
	}
	if k <= 0 || k > 20 {
		k = 5
	}
	return s.diagnoses.FindSimilar(ctx, featureVector(features), k)
}

func featureVector(features []float64) pgvector.Vector {
	values := make([]float32, len(features))
	for i, v := range features {
		values[i] = float32(v)
	}
	return pgvector.NewVector(values)
}
