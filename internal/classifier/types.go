package classifier

import (
	"context"

	"cropd/internal/imageproc"
)

// Model is an opened classifier artifact.
type Model interface {
	// Predict runs one forward pass on a (1,224,224,3) tensor and returns the
	// output vector for the single batch entry.
	Predict(ctx context.Context, in imageproc.Tensor) ([]float32, error)
	// OutputSize is the width of the output vector, or 0 when the artifact
	// does not declare it.
	OutputSize() int
	// Close releases resources associated with the model.
	Close() error
}

// OpenOptions tune how an artifact is opened. A nil *OpenOptions means
// runtime defaults.
type OpenOptions struct {
	IntraOpThreads int
	InterOpThreads int
}

// OpenFunc opens the model artifact at path.
type OpenFunc func(path string, opts *OpenOptions) (Model, error)
