package types

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	// Base64 image payload, either raw or as a data-URL. Everything up to the
	// first comma is discarded.
	// example: data:image/jpeg;base64,/9j/4AAQSkZJRg...
	Image *string `json:"image" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg..."`
}

// Prediction is the top class for a single image.
type Prediction struct {
	// Class name, or class_<index> when the label list is shorter than the model output.
	// example: Tomato_Late_blight
	Label string `json:"label" example:"Tomato_Late_blight"`
	// Floor of the top probability times 100, in [0,100].
	// example: 95
	Confidence int `json:"confidence" example:"95"`
}

// PredictResponse wraps a successful prediction.
type PredictResponse struct {
	Prediction Prediction `json:"prediction"`
}

// ErrorResponse is the JSON error payload returned by every route.
type ErrorResponse struct {
	// Error message.
	// example: Model not loaded
	Error string `json:"error" example:"Model not loaded"`
}

// InfoResponse is returned by GET /.
type InfoResponse struct {
	// example: Crop Disease Detector API
	Service string `json:"service" example:"Crop Disease Detector API"`
	// example: 1.0.0
	Version string `json:"version" example:"1.0.0"`
	// Route to description map.
	Endpoints map[string]string `json:"endpoints"`
	// example: running
	Status string `json:"status" example:"running"`
	// Whether the model artifact was loaded at startup.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Number of class labels in use.
	// example: 16
	LabelsCount int `json:"labels_count" example:"16"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// example: 16
	LabelsCount int `json:"labels_count" example:"16"`
}
