package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cropd/internal/classifier"
	"cropd/internal/config"
	"cropd/internal/httpapi"
	"cropd/internal/onnx"
)

const shutdownTimeout = 5 * time.Second

// newLogger builds the process logger writing to w.
func newLogger(cfg config.Config, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (want json or console)", cfg.LogFormat)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "cropd").Logger(), nil
}

// loadClassifier initializes ONNX Runtime on first open and loads the model.
// A missing runtime library surfaces as a load failure, not a fatal error.
func loadClassifier(cfg config.Config, log zerolog.Logger) *classifier.Classifier {
	libPath := onnx.LibPath(cfg.OnnxLibrary)
	open := func(path string, opts *classifier.OpenOptions) (classifier.Model, error) {
		if err := onnx.Init(libPath); err != nil {
			return nil, err
		}
		return onnx.Open(path, opts)
	}
	return classifier.Load(classifier.Config{
		ModelPaths:         cfg.ModelPaths,
		LabelsPath:         cfg.LabelsPath,
		Open:               open,
		Options:            classifier.OpenOptions{IntraOpThreads: cfg.IntraOpThreads, InterOpThreads: cfg.InterOpThreads},
		ApplySoftmax:       cfg.ApplySoftmax,
		AllowLabelMismatch: cfg.AllowLabelMismatch,
		Logger:             &log,
	})
}

// configureHTTP pushes cfg into the httpapi package settings.
func configureHTTP(cfg config.Config, log zerolog.Logger) {
	httpapi.SetLogger(log)
	httpapi.SetRequestLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetInferTimeoutSeconds(cfg.InferTimeoutSeconds)
	httpapi.SetHideErrors(cfg.HideErrors)
	httpapi.SetCORSOptions(!cfg.CORSDisabled, cfg.CORSOrigins, nil, nil)
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts, osLookup)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	clf := loadClassifier(cfg, log)
	defer onnx.Destroy()
	defer clf.Close()
	if !clf.Ready() {
		if cfg.RequireModel {
			return fmt.Errorf("model not loaded: %w", clf.LoadErr())
		}
		log.Warn().Err(clf.LoadErr()).Msg("serving without a model; /predict will return 500")
	}

	configureHTTP(cfg, log)
	baseCtx, cancelBase := context.WithCancel(cmd.Context())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(clf),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		st := clf.Status()
		log.Info().Str("addr", cfg.Addr).Bool("model_loaded", st.Loaded).Str("model", st.Path).Int("labels", st.LabelsCount).Msg("cropd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
