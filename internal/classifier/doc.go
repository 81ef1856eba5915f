// Package classifier owns the loaded model and label list and turns an
// encoded image into a single top-class prediction. It is structured into
// small files by concern:
//
//   - classifier.go: the immutable Classifier type, FromModel, simple getters.
//   - config.go: Config and package defaults; withDefaults applies them.
//   - types.go: the Model interface and the OpenFunc used to open artifacts.
//   - load.go: startup loading (artifact resolution, open with one retry,
//     labels, label/output validation).
//   - predict.go: Predict / PredictImage entry points.
//   - topclass.go: argmax, confidence and label lookup helpers.
//   - errors.go: error types and helpers (IsModelNotLoaded, IsInvalidImage, ...).
//   - events.go: load lifecycle events and publishers.
//
// A Classifier never changes after Load returns, so handlers may share one
// value across goroutines without locking. A failed load still yields a
// Classifier; it reports Ready() == false and rejects every prediction.
package classifier
