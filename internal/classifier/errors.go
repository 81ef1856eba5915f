package classifier

import (
	"errors"
	"fmt"
	"net/http"
)

// modelNotLoadedError is returned for every prediction when startup loading failed.
type modelNotLoadedError struct{}

func (modelNotLoadedError) Error() string   { return "Model not loaded" }
func (modelNotLoadedError) StatusCode() int { return http.StatusInternalServerError }

// ErrModelNotLoaded constructs a modelNotLoadedError.
func ErrModelNotLoaded() error { return modelNotLoadedError{} }

// IsModelNotLoaded reports whether err indicates the model is unavailable.
func IsModelNotLoaded(err error) bool {
	var e modelNotLoadedError
	return errors.As(err, &e)
}

// invalidImageError wraps base64, image decode and preprocessing failures.
// These map to 500, not 400.
type invalidImageError struct{ err error }

func (e invalidImageError) Error() string   { return e.err.Error() }
func (e invalidImageError) Unwrap() error   { return e.err }
func (e invalidImageError) StatusCode() int { return http.StatusInternalServerError }

// ErrInvalidImage wraps err as an image decoding failure.
func ErrInvalidImage(err error) error { return invalidImageError{err: err} }

// IsInvalidImage reports whether err is an image decoding failure.
func IsInvalidImage(err error) bool {
	var e invalidImageError
	return errors.As(err, &e)
}

// inferenceError wraps a failure of the model runtime.
type inferenceError struct{ err error }

func (e inferenceError) Error() string   { return e.err.Error() }
func (e inferenceError) Unwrap() error   { return e.err }
func (e inferenceError) StatusCode() int { return http.StatusInternalServerError }

// ErrInference wraps err as a runtime failure.
func ErrInference(err error) error { return inferenceError{err: err} }

// IsInference reports whether err is a runtime failure.
func IsInference(err error) bool {
	var e inferenceError
	return errors.As(err, &e)
}

// labelMismatchError signals that the label list does not line up with the
// model output vector.
type labelMismatchError struct{ outputs, labels int }

func (e labelMismatchError) Error() string {
	return fmt.Sprintf("label count %d does not match model output width %d", e.labels, e.outputs)
}

// IsLabelMismatch reports whether err is a label/output width mismatch.
func IsLabelMismatch(err error) bool {
	var e labelMismatchError
	return errors.As(err, &e)
}
