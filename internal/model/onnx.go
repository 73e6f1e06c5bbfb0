package model

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	initOnce sync.Once
	initErr  error
)

func initRuntime() error {
	initOnce.Do(func() {
		if ort.IsInitialized() {
			return
		}
		initErr = ort.InitializeEnvironment()
	})
	return initErr
}

// OnnxClassifier ejecuta el artefacto exportado a ONNX. La red recibe un
// tensor [1, NumFeatures] y devuelve probabilidades por clase.
type OnnxClassifier struct {
	session *ort.DynamicAdvancedSession
	classes int
}

func LoadOnnxClassifier(path string) (Classifier, error) {
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("onnx runtime init: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(
		path,
		[]string{"input"},
		[]string{"probabilities"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &OnnxClassifier{session: session, classes: 2}, nil
}

func (m *OnnxClassifier) run(features []float64) ([]float64, error) {
	if err := checkFeatureCount(features); err != nil {
		return nil, err
	}
	input := make([]float32, len(features))
	for i, v := range features {
		input[i] = float32(v)
	}
	inT, err := ort.NewTensor(ort.NewShape(1, NumFeatures), input)
	if err != nil {
		return nil, err
	}
	defer inT.Destroy()
	outT, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(m.classes)))
	if err != nil {
		return nil, err
	}
	defer outT.Destroy()
	if err := m.session.Run([]ort.Value{inT}, []ort.Value{outT}); err != nil {
		return nil, fmt.Errorf("session run error: %w", err)
	}
	out := outT.GetData()
	probs := make([]float64, m.classes)
	for i := range probs {
		probs[i] = float64(out[i])
	}
	return probs, nil
}

func (m *OnnxClassifier) Predict(features []float64) (int, error) {
	probs, err := m.run(features)
	if err != nil {
		return 0, err
	}
	return argmax(probs), nil
}

func (m *OnnxClassifier) PredictProbabilities(features []float64) ([]float64, error) {
	return m.run(features)
}

func (m *OnnxClassifier) Release() {
	if m.session != nil {
		m.session.Destroy()
	}
}
