package model

import "fmt"

// NumFeatures es la cantidad de mediciones morfométricas por muestra.
// El orden de las posiciones es el mismo usado durante el entrenamiento.
const NumFeatures = 30

// Type identifica el formato del artefacto serializado.
type Type string

const (
	Onnx   Type = "onnx"
	Forest Type = "forest"
)

// Classifier es el contrato mínimo del artefacto entrenado.
type Classifier interface {
	// Predict devuelve el índice de clase para un vector de NumFeatures valores.
	Predict(features []float64) (int, error)

	Release()
}

// ProbabilityPredictor lo implementan los backends que exponen
// probabilidades por clase además de la clase ganadora.
type ProbabilityPredictor interface {
	PredictProbabilities(features []float64) ([]float64, error)
}

// Loader carga un artefacto desde disco.
type Loader func(path string) (Classifier, error)

func Loaders() map[Type]Loader {
	return map[Type]Loader{
		Onnx:   LoadOnnxClassifier,
		Forest: LoadForestClassifier,
	}
}

// Load deserializa el artefacto indicado. Se ejecuta una sola vez al
// arrancar el proceso; el Classifier resultante es de solo lectura y
// seguro para uso concurrente.
func Load(modelType Type, path string) (Classifier, error) {
	loader, ok := Loaders()[modelType]
	if !ok {
		return nil, fmt.Errorf("unknown model type %q", modelType)
	}
	return loader(path)
}

func checkFeatureCount(features []float64) error {
	if len(features) != NumFeatures {
		return fmt.Errorf("expected %d features, got %d", NumFeatures, len(features))
	}
	return nil
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
