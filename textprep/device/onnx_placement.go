//go:build onnx
// +build onnx

package device

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
	"gonum.org/v1/gonum/mat"
)

// onnxPlacement uploads batches into onnxruntime tensors under the onnx
// build tag.
type onnxPlacement struct{}

func newONNXPlacement() Placement { return onnxPlacement{} }

func (onnxPlacement) Name() string { return "onnx" }

func (onnxPlacement) Place(features []float32, rows, cols int, labels []int64) (Tensors, error) {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnx runtime: %w", err)
		}
	}

	buf := make([]float32, len(features))
	copy(buf, features)
	featTensor, err := ort.NewTensor(ort.NewShape(int64(rows), int64(cols)), buf)
	if err != nil {
		return nil, fmt.Errorf("create feature tensor: %w", err)
	}

	labelBuf := make([]int64, len(labels))
	copy(labelBuf, labels)
	labelTensor, err := ort.NewTensor(ort.NewShape(int64(rows)), labelBuf)
	if err != nil {
		featTensor.Destroy()
		return nil, fmt.Errorf("create label tensor: %w", err)
	}

	return &onnxTensors{
		features: featTensor,
		labels:   labelTensor,
		rows:     rows,
		cols:     cols,
	}, nil
}

type onnxTensors struct {
	features *ort.Tensor[float32]
	labels   *ort.Tensor[int64]
	rows     int
	cols     int
}

func (t *onnxTensors) Device() string { return "onnx" }
func (t *onnxTensors) Rows() int      { return t.rows }
func (t *onnxTensors) Cols() int      { return t.cols }

func (t *onnxTensors) Features() *mat.Dense {
	src := t.features.GetData()
	data := make([]float64, len(src))
	for i, f := range src {
		data[i] = float64(f)
	}
	return mat.NewDense(t.rows, t.cols, data)
}

func (t *onnxTensors) Labels() []int64 {
	src := t.labels.GetData()
	out := make([]int64, len(src))
	copy(out, src)
	return out
}

func (t *onnxTensors) Close() error {
	t.features.Destroy()
	t.labels.Destroy()
	return nil
}
