package model

// MockClassifier permite tests sin un artefacto real. No implementa
// ProbabilityPredictor; ver MockProbabilityClassifier.
type MockClassifier struct {
	Class    int
	Err      error
	Predicts int
}

func (m *MockClassifier) Predict(features []float64) (int, error) {
	m.Predicts++
	return m.Class, m.Err
}

func (m *MockClassifier) Release() {}

// MockProbabilityClassifier agrega probabilidades por clase al mock.
type MockProbabilityClassifier struct {
	MockClassifier
	Probs   []float64
	ProbErr error
}

func (m *MockProbabilityClassifier) PredictProbabilities(features []float64) ([]float64, error) {
	return m.Probs, m.ProbErr
}
