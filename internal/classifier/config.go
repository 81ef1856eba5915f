package classifier

import (
	"github.com/rs/zerolog"

	"cropd/internal/artifact"
)

// Config encapsulates all tunables for Load.
type Config struct {
	// Ordered candidate artifact paths; the first existing one is opened.
	ModelPaths []string
	// JSON label list. Missing file means the built-in labels.
	LabelsPath string
	// Open opens an artifact. Required for Load.
	Open OpenFunc
	// Options for the first open attempt. The single retry uses runtime defaults.
	Options OpenOptions
	// ApplySoftmax converts raw logits to probabilities before the argmax.
	ApplySoftmax bool
	// AllowLabelMismatch skips the label count / output width check.
	AllowLabelMismatch bool
	Logger             *zerolog.Logger
	Publisher          EventPublisher
}

func (cfg Config) withDefaults() Config {
	if len(cfg.ModelPaths) == 0 {
		cfg.ModelPaths = append([]string(nil), artifact.DefaultModelPaths...)
	}
	if cfg.LabelsPath == "" {
		cfg.LabelsPath = artifact.DefaultLabelsPath
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	if cfg.Publisher == nil {
		cfg.Publisher = noopPublisher{}
	}
	return cfg
}
