//go:build !onnx
// +build !onnx

package device

import "fmt"

// onnxPlacement is a stub used when built without the "onnx" build tag.
type onnxPlacement struct{}

func newONNXPlacement() Placement { return onnxPlacement{} }

func (onnxPlacement) Name() string { return "onnx" }

func (onnxPlacement) Place(features []float32, rows, cols int, labels []int64) (Tensors, error) {
	return nil, fmt.Errorf("onnx placement not available: build with -tags onnx")
}
