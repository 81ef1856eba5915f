package types

// ModelStatus is a read-only view of what the loader produced at startup.
type ModelStatus struct {
	// Whether a model is available for prediction.
	Loaded bool `json:"loaded"`
	// Artifact path that was opened (or attempted last).
	// example: ml/export/model.onnx
	Path string `json:"path,omitempty" example:"ml/export/model.onnx"`
	// Width of the model output vector; 0 when unknown.
	// example: 16
	OutputSize int `json:"output_size" example:"16"`
	// Number of labels in use.
	// example: 16
	LabelsCount int `json:"labels_count" example:"16"`
	// True when the built-in default label list is in use.
	DefaultLabels bool `json:"default_labels"`
	// Load failure, if any.
	Error string `json:"error,omitempty"`
}
