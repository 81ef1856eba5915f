package onnx

import (
	"context"
	"errors"
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"cropd/internal/classifier"
	"cropd/internal/imageproc"
)

// Session wraps a DynamicAdvancedSession. Tensors are created per call, so
// concurrent Predict calls share the session safely.
type Session struct {
	session     *ort.DynamicAdvancedSession
	inputName   string
	outputName  string
	outputShape ort.Shape
	outputSize  int
}

var _ classifier.Model = (*Session)(nil)

// Open loads the artifact at path. It satisfies classifier.OpenFunc; a nil
// opts uses runtime default session options.
func Open(path string, opts *classifier.OpenOptions) (classifier.Model, error) {
	if !ort.IsInitialized() {
		return nil, errors.New("onnx: runtime environment not initialized")
	}
	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("onnx: model has %d inputs and %d outputs", len(inputs), len(outputs))
	}
	if err := checkInputDims(inputs[0].Dimensions); err != nil {
		return nil, err
	}
	outShape, outSize, err := batchOneShape(outputs[0].Dimensions)
	if err != nil {
		return nil, err
	}

	var so *ort.SessionOptions
	if opts != nil {
		so, err = ort.NewSessionOptions()
		if err != nil {
			return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
		}
		defer so.Destroy()
		if opts.IntraOpThreads > 0 {
			if err := so.SetIntraOpNumThreads(opts.IntraOpThreads); err != nil {
				return nil, fmt.Errorf("onnx: intra-op threads: %w", err)
			}
		}
		if opts.InterOpThreads > 0 {
			if err := so.SetInterOpNumThreads(opts.InterOpThreads); err != nil {
				return nil, fmt.Errorf("onnx: inter-op threads: %w", err)
			}
		}
	}

	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, so)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}
	return &Session{
		session:     session,
		inputName:   inputs[0].Name,
		outputName:  outputs[0].Name,
		outputShape: outShape,
		outputSize:  outSize,
	}, nil
}

// Predict runs one forward pass and returns a copy of the output data.
func (s *Session) Predict(ctx context.Context, in imageproc.Tensor) ([]float32, error) {
	input, err := ort.NewTensor(ort.NewShape(in.Shape...), in.Data)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](s.outputShape)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer output.Destroy()

	if err := s.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	// Copy data out before the tensor is destroyed.
	src := output.GetData()
	result := make([]float32, len(src))
	copy(result, src)
	return result, nil
}

// OutputSize is the number of scores per image.
func (s *Session) OutputSize() int { return s.outputSize }

// Close releases the ONNX session resources.
func (s *Session) Close() error {
	return s.session.Destroy()
}

// checkInputDims accepts NHWC inputs of (N,224,224,3); non-positive
// dimensions are dynamic and accepted.
func checkInputDims(dims ort.Shape) error {
	want := imageproc.InputShape()
	if len(dims) != len(want) {
		return fmt.Errorf("onnx: expected 4D NHWC input, got %v", dims)
	}
	for i := 1; i < len(want); i++ {
		if dims[i] > 0 && dims[i] != want[i] {
			return fmt.Errorf("onnx: input shape %v is not compatible with %v (NHWC)", dims, want)
		}
	}
	return nil
}

// batchOneShape fixes the batch dimension of an output shape to 1 and returns
// the number of elements per batch entry. Other dimensions must be static.
func batchOneShape(dims ort.Shape) (ort.Shape, int, error) {
	if len(dims) < 2 {
		return nil, 0, fmt.Errorf("onnx: expected batched output, got %v", dims)
	}
	shape := make(ort.Shape, len(dims))
	shape[0] = 1
	size := int64(1)
	for i := 1; i < len(dims); i++ {
		if dims[i] <= 0 {
			return nil, 0, fmt.Errorf("onnx: dynamic output dimension in %v is not supported", dims)
		}
		shape[i] = dims[i]
		size *= dims[i]
	}
	return shape, int(size), nil
}
