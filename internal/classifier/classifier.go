package classifier

import (
	"errors"

	"github.com/rs/zerolog"

	"cropd/pkg/types"
)

// Classifier is the service context shared by request handlers. All fields
// are set during construction and never mutated afterwards.
type Classifier struct {
	model         Model
	labels        []string
	defaultLabels bool
	path          string
	loadErr       error
	applySoftmax  bool
	log           zerolog.Logger
}

// FromModel wraps an opened model and its labels, applying the same label
// validation as Load.
func FromModel(m Model, labels []string, cfg Config) (*Classifier, error) {
	if m == nil {
		return nil, errors.New("nil model")
	}
	cfg = cfg.withDefaults()
	if n := m.OutputSize(); n > 0 && n != len(labels) && !cfg.AllowLabelMismatch {
		return nil, labelMismatchError{outputs: n, labels: len(labels)}
	}
	return &Classifier{
		model:        m,
		labels:       append([]string(nil), labels...),
		applySoftmax: cfg.ApplySoftmax,
		log:          *cfg.Logger,
	}, nil
}

// Ready reports whether a model is available for prediction.
func (c *Classifier) Ready() bool { return c.model != nil }

// LoadErr returns the startup failure, or nil when the model loaded.
func (c *Classifier) LoadErr() error { return c.loadErr }

// Labels returns a copy of the label list in use.
func (c *Classifier) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Status builds the read-only view used by the info and health routes.
func (c *Classifier) Status() types.ModelStatus {
	s := types.ModelStatus{
		Loaded:        c.Ready(),
		Path:          c.path,
		LabelsCount:   len(c.labels),
		DefaultLabels: c.defaultLabels,
	}
	if c.model != nil {
		s.OutputSize = c.model.OutputSize()
	}
	if c.loadErr != nil {
		s.Error = c.loadErr.Error()
	}
	return s
}

// Close releases the model, if any.
func (c *Classifier) Close() error {
	if c.model == nil {
		return nil
	}
	return c.model.Close()
}
