package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr       string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelPaths []string `json:"model_paths" yaml:"model_paths" toml:"model_paths"`
	LabelsPath string   `json:"labels_path" yaml:"labels_path" toml:"labels_path"`
	// ONNX Runtime shared library; empty means $ONNXRUNTIME_LIB or the platform default.
	OnnxLibrary    string `json:"onnx_library" yaml:"onnx_library" toml:"onnx_library"`
	IntraOpThreads int    `json:"intra_op_threads" yaml:"intra_op_threads" toml:"intra_op_threads"`
	InterOpThreads int    `json:"inter_op_threads" yaml:"inter_op_threads" toml:"inter_op_threads"`

	ApplySoftmax       bool `json:"apply_softmax" yaml:"apply_softmax" toml:"apply_softmax"`
	AllowLabelMismatch bool `json:"allow_label_mismatch" yaml:"allow_label_mismatch" toml:"allow_label_mismatch"`
	HideErrors         bool `json:"hide_errors" yaml:"hide_errors" toml:"hide_errors"`
	// RequireModel makes a failed model load fatal instead of serving 500s.
	RequireModel bool `json:"require_model" yaml:"require_model" toml:"require_model"`

	MaxBodyBytes        int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	InferTimeoutSeconds int64 `json:"infer_timeout_seconds" yaml:"infer_timeout_seconds" toml:"infer_timeout_seconds"`

	CORSDisabled bool     `json:"cors_disabled" yaml:"cors_disabled" toml:"cors_disabled"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
