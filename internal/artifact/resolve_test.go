package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, p string) {
	t.Helper()
	if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func TestResolve_FirstExistingWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "model.onnx")
	second := filepath.Join(dir, "model.ort")
	touch(t, first)
	touch(t, second)
	got, err := Resolve([]string{first, second})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != first {
		t.Fatalf("expected %s, got %s", first, got)
	}
}

func TestResolve_FallsBackToSecond(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "model.ort")
	touch(t, second)
	got, err := Resolve([]string{filepath.Join(dir, "model.onnx"), "  ", second})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != second {
		t.Fatalf("expected %s, got %s", second, got)
	}
}

func TestResolve_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "model.onnx")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Resolve([]string{sub}); !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact, got %v", err)
	}
}

func TestResolve_NoArtifact(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.onnx")
	b := filepath.Join(dir, "b.ort")
	_, err := Resolve([]string{a, b})
	if !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact, got %v", err)
	}
	if !strings.Contains(err.Error(), a) || !strings.Contains(err.Error(), b) {
		t.Fatalf("error should list tried paths: %v", err)
	}
	if _, err := Resolve(nil); !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact for empty list, got %v", err)
	}
}
