package onnx

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// LibEnv names the environment variable consulted when no library path is configured.
const LibEnv = "ONNXRUNTIME_LIB"

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// LibPath returns the ONNX Runtime shared library to load: the configured
// path, then $ONNXRUNTIME_LIB, then a platform default resolved by the
// dynamic loader.
func LibPath(configured string) string {
	if configured != "" {
		return configured
	}
	if v := os.Getenv(LibEnv); v != "" {
		return v
	}
	switch runtime.GOOS {
	case "linux":
		return "libonnxruntime.so"
	case "darwin":
		return "/usr/local/lib/libonnxruntime.dylib"
	case "windows":
		return "onnxruntime.dll"
	default:
		return ""
	}
}

// Init initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect.
func Init(libPath string) error {
	ortEnv.once.Do(func() {
		if libPath == "" {
			ortEnv.err = fmt.Errorf("onnx: no runtime library for %s", runtime.GOOS)
			return
		}
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			ortEnv.err = fmt.Errorf("onnx: failed to initialize runtime from %s: %w", libPath, err)
		}
	})
	return ortEnv.err
}

// Destroy tears the environment down if Init succeeded.
func Destroy() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
