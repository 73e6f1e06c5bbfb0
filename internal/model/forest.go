package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// forestNode es un nodo de árbol en el artefacto JSON exportado por el
// entrenamiento offline. Feature < 0 marca una hoja.
type forestNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
}

type forestArtifact struct {
	Classes int            `json:"classes"`
	Trees   [][]forestNode `json:"trees"`
}

// ForestClassifier evalúa un bosque de decisión serializado en JSON.
// El voto mayoritario decide la clase; la fracción de votos por clase
// se expone como probabilidad.
type ForestClassifier struct {
	classes int
	trees   [][]forestNode
}

func LoadForestClassifier(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forest artifact: %w", err)
	}
	var artifact forestArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode forest artifact: %w", err)
	}
	if artifact.Classes < 2 {
		return nil, fmt.Errorf("forest artifact declares %d classes", artifact.Classes)
	}
	if len(artifact.Trees) == 0 {
		return nil, fmt.Errorf("forest artifact has no trees")
	}
	for ti, tree := range artifact.Trees {
		if err := validateTree(tree, artifact.Classes); err != nil {
			return nil, fmt.Errorf("forest tree %d: %w", ti, err)
		}
	}
	return &ForestClassifier{classes: artifact.Classes, trees: artifact.Trees}, nil
}

// validateTree garantiza que el recorrido de un árbol siempre termina:
// los hijos apuntan hacia adelante dentro del arreglo de nodos.
func validateTree(tree []forestNode, classes int) error {
	if len(tree) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, node := range tree {
		if node.Feature < 0 {
			if node.Class < 0 || node.Class >= classes {
				return fmt.Errorf("leaf %d votes for unknown class %d", i, node.Class)
			}
			continue
		}
		if node.Feature >= NumFeatures {
			return fmt.Errorf("node %d splits on feature %d", i, node.Feature)
		}
		if node.Left <= i || node.Left >= len(tree) || node.Right <= i || node.Right >= len(tree) {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
	}
	return nil
}

func (m *ForestClassifier) votes(features []float64) ([]float64, error) {
	if err := checkFeatureCount(features); err != nil {
		return nil, err
	}
	counts := make([]float64, m.classes)
	for _, tree := range m.trees {
		idx := 0
		for tree[idx].Feature >= 0 {
			if features[tree[idx].Feature] <= tree[idx].Threshold {
				idx = tree[idx].Left
			} else {
				idx = tree[idx].Right
			}
		}
		counts[tree[idx].Class]++
	}
	total := float64(len(m.trees))
	for i := range counts {
		counts[i] /= total
	}
	return counts, nil
}

func (m *ForestClassifier) Predict(features []float64) (int, error) {
	probs, err := m.votes(features)
	if err != nil {
		return 0, err
	}
	return argmax(probs), nil
}

func (m *ForestClassifier) PredictProbabilities(features []float64) ([]float64, error) {
	return m.votes(features)
}

func (m *ForestClassifier) Release() {}
