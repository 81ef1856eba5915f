package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"cropd/internal/imageproc"
)

// fakeModel returns fixed scores and records the last input tensor.
type fakeModel struct {
	scores  []float32
	outputs int
	err     error
	closed  atomic.Bool
	calls   atomic.Int32

	mu     sync.Mutex
	lastIn imageproc.Tensor
}

func (m *fakeModel) Predict(ctx context.Context, in imageproc.Tensor) ([]float32, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastIn = in
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]float32(nil), m.scores...), nil
}

func (m *fakeModel) input() imageproc.Tensor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastIn
}

func (m *fakeModel) OutputSize() int { return m.outputs }
func (m *fakeModel) Close() error    { m.closed.Store(true); return nil }

// scriptedOpener fails the first failures calls, then returns model.
type scriptedOpener struct {
	model    Model
	failures int
	calls    []*OpenOptions
}

func (o *scriptedOpener) open(path string, opts *OpenOptions) (Model, error) {
	o.calls = append(o.calls, opts)
	if len(o.calls) <= o.failures {
		return nil, errors.New("open failed")
	}
	return o.model, nil
}

func writeModelFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("onnx"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return p
}

func writeLabels(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "labels.json")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write labels: %v", err)
	}
	return p
}

func redPixelDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// oversizedPNGDataURL is a data-URL carrying only the PNG signature and an
// IHDR chunk claiming w x h grayscale pixels.
func oversizedPNGDataURL(w, h uint32) string {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.WriteString("IHDR")
	buf.Write(ihdr)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(append([]byte("IHDR"), ihdr...)))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
