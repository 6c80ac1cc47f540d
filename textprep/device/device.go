// Package device places collated batches onto a compute target. The cpu
// placement materializes gonum matrices; the onnx placement (behind the
// "onnx" build tag) uploads buffers into onnxruntime tensors.
package device

import (
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Tensors is a device-resident batch of features and labels.
type Tensors interface {
	Device() string
	Rows() int
	Cols() int
	// Features returns a CPU view of the feature matrix.
	Features() *mat.Dense
	Labels() []int64
	// Close releases device resources. A no-op on cpu.
	Close() error
}

// Placement converts collated row-major buffers into the target's tensor
// representation.
type Placement interface {
	Name() string
	Place(features []float32, rows, cols int, labels []int64) (Tensors, error)
}

// Select returns a placement by name (e.g., "cpu", "onnx").
// Unknown names fall back to the cpu placement.
func Select(name string) Placement {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "onnx":
		return newONNXPlacement()
	case "cpu", "":
		return CPU{}
	default:
		return CPU{}
	}
}

// CPU is the default placement: features become a *mat.Dense, labels stay as
// an int64 slice.
type CPU struct{}

// Name implements Placement.
func (CPU) Name() string { return "cpu" }

// Place implements Placement.
func (CPU) Place(features []float32, rows, cols int, labels []int64) (Tensors, error) {
	data := make([]float64, len(features))
	for i, f := range features {
		data[i] = float64(f)
	}
	out := make([]int64, len(labels))
	copy(out, labels)
	return &cpuTensors{
		features: mat.NewDense(rows, cols, data),
		labels:   out,
		rows:     rows,
		cols:     cols,
	}, nil
}

type cpuTensors struct {
	features *mat.Dense
	labels   []int64
	rows     int
	cols     int
}

func (t *cpuTensors) Device() string       { return "cpu" }
func (t *cpuTensors) Rows() int            { return t.rows }
func (t *cpuTensors) Cols() int            { return t.cols }
func (t *cpuTensors) Features() *mat.Dense { return t.features }
func (t *cpuTensors) Labels() []int64      { return t.labels }
func (t *cpuTensors) Close() error         { return nil }
