package classifier

import (
	"errors"
	"fmt"

	"cropd/internal/artifact"
)

// Load resolves, opens and validates the model artifact and label list.
// It never returns nil: on failure the Classifier reports Ready() == false
// and LoadErr() describes why. Nothing is retried beyond the single open
// retry with runtime defaults.
func Load(cfg Config) *Classifier {
	cfg = cfg.withDefaults()
	log := cfg.Logger

	fail := func(path string, err error) *Classifier {
		log.Error().Err(err).Str("path", path).Msg("model load failed")
		cfg.Publisher.Publish(Event{Name: EventLoadFailed, Path: path, Fields: map[string]any{"error": err.Error()}})
		return &Classifier{path: path, loadErr: err, applySoftmax: cfg.ApplySoftmax, log: *log}
	}

	if cfg.Open == nil {
		return fail("", errors.New("no model runtime configured"))
	}
	path, err := artifact.Resolve(cfg.ModelPaths)
	if err != nil {
		return fail("", err)
	}
	cfg.Publisher.Publish(Event{Name: EventArtifactResolved, Path: path, Fields: map[string]any{}})
	log.Info().Str("path", path).Msg("loading model")

	m, err := openWithRetry(cfg, path)
	if err != nil {
		return fail(path, err)
	}

	labels, fromDefault, err := artifact.LoadLabels(cfg.LabelsPath)
	if err != nil {
		_ = m.Close()
		return fail(path, err)
	}
	if fromDefault {
		log.Warn().Str("path", cfg.LabelsPath).Int("count", len(labels)).Msg("labels not found, using defaults")
		cfg.Publisher.Publish(Event{Name: EventLabelsDefault, Path: cfg.LabelsPath, Fields: map[string]any{"count": len(labels)}})
	} else {
		log.Info().Str("path", cfg.LabelsPath).Int("count", len(labels)).Msg("labels loaded")
		cfg.Publisher.Publish(Event{Name: EventLabelsLoaded, Path: cfg.LabelsPath, Fields: map[string]any{"count": len(labels)}})
	}

	c, err := FromModel(m, labels, cfg)
	if err != nil {
		_ = m.Close()
		return fail(path, err)
	}
	c.path = path
	c.defaultLabels = fromDefault
	log.Info().Str("path", path).Int("outputs", m.OutputSize()).Int("labels", len(labels)).Msg("model loaded")
	cfg.Publisher.Publish(Event{Name: EventModelLoaded, Path: path, Fields: map[string]any{"outputs": m.OutputSize(), "labels": len(labels)}})
	return c
}

// openWithRetry opens path with the tuned options and, if that fails, once
// more with runtime defaults.
func openWithRetry(cfg Config, path string) (Model, error) {
	opts := cfg.Options
	m, err := cfg.Open(path, &opts)
	if err == nil {
		return m, nil
	}
	cfg.Logger.Warn().Err(err).Str("path", path).Msg("open failed, retrying with runtime defaults")
	cfg.Publisher.Publish(Event{Name: EventLoadRetry, Path: path, Fields: map[string]any{"error": err.Error()}})
	m, retryErr := cfg.Open(path, nil)
	if retryErr != nil {
		return nil, fmt.Errorf("open %s: %w (first attempt: %v)", path, retryErr, err)
	}
	return m, nil
}
