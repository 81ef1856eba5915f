package config

import "cropd/internal/artifact"

// Defaults applied when the corresponding Config fields are unset.
const (
	DefaultAddr         = ":5000"
	DefaultMaxBodyBytes = 10 << 20
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
)

// Defaults returns a Config with every field at its default.
func Defaults() Config {
	return Config{}.WithDefaults()
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if len(c.ModelPaths) == 0 {
		c.ModelPaths = append([]string(nil), artifact.DefaultModelPaths...)
	}
	if c.LabelsPath == "" {
		c.LabelsPath = artifact.DefaultLabelsPath
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.InferTimeoutSeconds < 0 {
		c.InferTimeoutSeconds = 0
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	return c
}
