package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cropd/internal/config"
)

const envPrefix = "CROPD_"

type lookupFunc func(key string) (string, bool)

// resolveConfig merges defaults < config file < CROPD_* environment < flags.
func resolveConfig(cmd *cobra.Command, opts *options, lookup lookupFunc) (config.Config, error) {
	var cfg config.Config
	path := opts.configPath
	if path == "" {
		path, _ = lookup(envPrefix + "CONFIG")
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	applyFlags(&cfg, cmd, opts)
	return cfg.WithDefaults(), nil
}

func applyEnv(cfg *config.Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = splitCSV(v)
		}
	}
	var firstErr error
	setErr := func(name string, err error) {
		if firstErr == nil {
			firstErr = fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				setErr(name, err)
				return
			}
			*dst = b
		}
	}
	integer := func(name string, dst *int64) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				setErr(name, err)
				return
			}
			*dst = n
		}
	}

	str("ADDR", &cfg.Addr)
	list("MODEL_PATHS", &cfg.ModelPaths)
	str("LABELS_PATH", &cfg.LabelsPath)
	str("ONNX_LIBRARY", &cfg.OnnxLibrary)
	intra, inter := int64(cfg.IntraOpThreads), int64(cfg.InterOpThreads)
	integer("INTRA_OP_THREADS", &intra)
	integer("INTER_OP_THREADS", &inter)
	cfg.IntraOpThreads, cfg.InterOpThreads = int(intra), int(inter)
	boolean("APPLY_SOFTMAX", &cfg.ApplySoftmax)
	boolean("ALLOW_LABEL_MISMATCH", &cfg.AllowLabelMismatch)
	boolean("HIDE_ERRORS", &cfg.HideErrors)
	boolean("REQUIRE_MODEL", &cfg.RequireModel)
	integer("MAX_BODY_BYTES", &cfg.MaxBodyBytes)
	integer("INFER_TIMEOUT_SECONDS", &cfg.InferTimeoutSeconds)
	boolean("CORS_DISABLED", &cfg.CORSDisabled)
	list("CORS_ORIGINS", &cfg.CORSOrigins)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	return firstErr
}

func applyFlags(cfg *config.Config, cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	changed := func(name string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed
	}
	fl := opts.cfg
	if changed("addr") {
		cfg.Addr = fl.Addr
	}
	if changed("model-paths") {
		cfg.ModelPaths = splitCSV(opts.modelPaths)
	}
	if changed("labels") {
		cfg.LabelsPath = fl.LabelsPath
	}
	if changed("onnx-lib") {
		cfg.OnnxLibrary = fl.OnnxLibrary
	}
	if changed("intra-op-threads") {
		cfg.IntraOpThreads = fl.IntraOpThreads
	}
	if changed("inter-op-threads") {
		cfg.InterOpThreads = fl.InterOpThreads
	}
	if changed("softmax") {
		cfg.ApplySoftmax = fl.ApplySoftmax
	}
	if changed("allow-label-mismatch") {
		cfg.AllowLabelMismatch = fl.AllowLabelMismatch
	}
	if changed("require-model") {
		cfg.RequireModel = fl.RequireModel
	}
	if changed("hide-errors") {
		cfg.HideErrors = fl.HideErrors
	}
	if changed("max-body-bytes") {
		cfg.MaxBodyBytes = fl.MaxBodyBytes
	}
	if changed("infer-timeout") {
		cfg.InferTimeoutSeconds = fl.InferTimeoutSeconds
	}
	if changed("cors-disabled") {
		cfg.CORSDisabled = fl.CORSDisabled
	}
	if changed("cors-origins") {
		cfg.CORSOrigins = splitCSV(opts.corsOrigins)
	}
	if changed("log-level") {
		cfg.LogLevel = fl.LogLevel
	}
	if changed("log-format") {
		cfg.LogFormat = fl.LogFormat
	}
}

// osLookup is the production lookupFunc.
var osLookup lookupFunc = os.LookupEnv
