package e2e

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cropd/internal/classifier"
	"cropd/internal/httpapi"
	"cropd/internal/imageproc"
)

// colorModel scores an image by its mean red, green and blue channel values.
type colorModel struct{}

func (colorModel) Predict(ctx context.Context, in imageproc.Tensor) ([]float32, error) {
	var sum [3]float64
	for i, v := range in.Data {
		sum[i%3] += float64(v)
	}
	n := float64(len(in.Data) / 3)
	return []float32{float32(sum[0] / n), float32(sum[1] / n), float32(sum[2] / n)}, nil
}

func (colorModel) OutputSize() int { return 3 }
func (colorModel) Close() error    { return nil }

// openColorModel opens any existing path as a colorModel.
func openColorModel(path string, opts *classifier.OpenOptions) (classifier.Model, error) {
	return colorModel{}, nil
}

// writeArtifacts creates a model file and, if labels is non-empty, a labels file.
func writeArtifacts(t *testing.T, labels string) (modelPath, labelsPath string) {
	t.Helper()
	dir := t.TempDir()
	modelPath = filepath.Join(dir, "model.onnx")
	if err := os.WriteFile(modelPath, []byte("onnx"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	labelsPath = filepath.Join(dir, "labels.json")
	if labels != "" {
		if err := os.WriteFile(labelsPath, []byte(labels), 0o644); err != nil {
			t.Fatalf("write labels: %v", err)
		}
	}
	return modelPath, labelsPath
}

func newServer(t *testing.T, cfg classifier.Config) (*httptest.Server, *classifier.Classifier) {
	t.Helper()
	clf := classifier.Load(cfg)
	t.Cleanup(func() { _ = clf.Close() })
	srv := httptest.NewServer(httpapi.NewMux(clf))
	t.Cleanup(srv.Close)
	return srv, clf
}

func solidDataURL(t *testing.T, c color.Color, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
