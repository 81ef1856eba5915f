package artifact

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cropd/internal/common/fsutil"
)

// ErrNoArtifact is returned when none of the candidate model paths exists.
var ErrNoArtifact = errors.New("no model artifact found")

// DefaultModelPaths are tried in order when no model path is configured.
var DefaultModelPaths = []string{
	filepath.Join("ml", "export", "model.onnx"),
	filepath.Join("ml", "export", "model.ort"),
}

// Resolve returns the absolute path of the first candidate that exists as a
// regular file. Leading '~' is expanded. Blank candidates are skipped.
func Resolve(candidates []string) (string, error) {
	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		p, err := fsutil.ExpandHome(c)
		if err != nil {
			return "", err
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("abs path: %w", err)
		}
		tried = append(tried, abs)
		if fsutil.FileExists(abs) {
			return abs, nil
		}
	}
	if len(tried) == 0 {
		return "", fmt.Errorf("%w: no candidate paths configured", ErrNoArtifact)
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNoArtifact, strings.Join(tried, ", "))
}
