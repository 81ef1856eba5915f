package classifier

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"cropd/internal/imageproc"
)

func newTestClassifier(t *testing.T, m *fakeModel, labels []string, cfg Config) *Classifier {
	t.Helper()
	c, err := FromModel(m, labels, cfg)
	if err != nil {
		t.Fatalf("FromModel: %v", err)
	}
	return c
}

func TestPredict_DataURL(t *testing.T) {
	m := &fakeModel{scores: []float32{0.1, 0.857, 0.043}, outputs: 3}
	c := newTestClassifier(t, m, []string{"healthy", "early_blight", "late_blight"}, Config{})
	pred, err := c.Predict(context.Background(), redPixelDataURL(t))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Label != "early_blight" || pred.Confidence != 85 {
		t.Fatalf("unexpected prediction: %+v", pred)
	}
	in := m.input()
	if len(in.Data) != 224*224*3 {
		t.Fatalf("model received %d values", len(in.Data))
	}
	if in.Data[0] != 1 || in.Data[1] != 0 || in.Data[2] != 0 {
		t.Fatalf("expected red pixel input, got %v", in.Data[:3])
	}
}

func TestPredict_RawBase64(t *testing.T) {
	m := &fakeModel{scores: []float32{1}, outputs: 1}
	c := newTestClassifier(t, m, []string{"only"}, Config{})
	url := redPixelDataURL(t)
	raw := url[len("data:image/png;base64,"):]
	pred, err := c.Predict(context.Background(), raw)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Label != "only" || pred.Confidence != 100 {
		t.Fatalf("unexpected prediction: %+v", pred)
	}
}

func TestPredict_IndexBeyondLabels(t *testing.T) {
	m := &fakeModel{scores: []float32{0.1, 0.15, 0.75}}
	c := newTestClassifier(t, m, []string{"a", "b"}, Config{})
	pred, err := c.Predict(context.Background(), redPixelDataURL(t))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Label != "class_2" || pred.Confidence != 75 {
		t.Fatalf("unexpected prediction: %+v", pred)
	}
}

func TestPredict_ApplySoftmax(t *testing.T) {
	m := &fakeModel{scores: []float32{2, 0}}
	c := newTestClassifier(t, m, []string{"a", "b"}, Config{ApplySoftmax: true})
	pred, err := c.Predict(context.Background(), redPixelDataURL(t))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	// softmax([2,0])[0] = 0.8808
	if pred.Label != "a" || pred.Confidence != 88 {
		t.Fatalf("unexpected prediction: %+v", pred)
	}
}

func TestPredict_NotLoaded(t *testing.T) {
	c := Load(Config{})
	_, err := c.Predict(context.Background(), redPixelDataURL(t))
	if !IsModelNotLoaded(err) {
		t.Fatalf("expected model not loaded, got %v", err)
	}
	if err.Error() != "Model not loaded" {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestPredict_InvalidInputs(t *testing.T) {
	m := &fakeModel{scores: []float32{1}}
	c := newTestClassifier(t, m, []string{"a"}, Config{})
	for _, in := range []string{"data:image/png;base64,@@@@", "", "aGVsbG8gd29ybGQ="} {
		_, err := c.Predict(context.Background(), in)
		if !IsInvalidImage(err) {
			t.Fatalf("Predict(%q): expected invalid image, got %v", in, err)
		}
	}
	if m.calls.Load() != 0 {
		t.Fatalf("model must not run on invalid input")
	}
}

func TestPredict_InferenceError(t *testing.T) {
	boom := errors.New("runtime exploded")
	c := newTestClassifier(t, &fakeModel{err: boom}, nil, Config{})
	_, err := c.Predict(context.Background(), redPixelDataURL(t))
	if !IsInference(err) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped inference error, got %v", err)
	}
	c = newTestClassifier(t, &fakeModel{}, nil, Config{})
	if _, err := c.Predict(context.Background(), redPixelDataURL(t)); !IsInference(err) {
		t.Fatalf("expected inference error for empty output, got %v", err)
	}
}

func TestPredict_CanceledContext(t *testing.T) {
	m := &fakeModel{scores: []float32{1}}
	c := newTestClassifier(t, m, []string{"a"}, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Predict(ctx, redPixelDataURL(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.calls.Load() != 0 {
		t.Fatalf("model must not run with a canceled context")
	}
}

func TestPredict_Concurrent(t *testing.T) {
	m := &fakeModel{scores: []float32{0.2, 0.8}}
	c := newTestClassifier(t, m, []string{"a", "b"}, Config{})
	img := redPixelDataURL(t)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pred, err := c.Predict(context.Background(), img)
			if err == nil && pred.Label != "b" {
				err = errors.New("wrong label " + pred.Label)
			}
			if err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestPredict_AllNaNScoresIsInferenceError(t *testing.T) {
	nan := float32(math.NaN())
	m := &fakeModel{scores: []float32{nan, nan, nan}, outputs: 3}
	c := newTestClassifier(t, m, []string{"a", "b", "c"}, Config{})
	_, err := c.Predict(context.Background(), redPixelDataURL(t))
	if !IsInference(err) {
		t.Fatalf("expected inference error, got %v", err)
	}
}

func TestPredict_OversizedImageIsInvalid(t *testing.T) {
	m := &fakeModel{scores: []float32{1}, outputs: 1}
	c := newTestClassifier(t, m, []string{"only"}, Config{})
	_, err := c.Predict(context.Background(), oversizedPNGDataURL(20000, 20000))
	if !IsInvalidImage(err) || !errors.Is(err, imageproc.ErrTooManyPixels) {
		t.Fatalf("expected invalid image over the pixel limit, got %v", err)
	}
	if m.calls.Load() != 0 {
		t.Fatalf("model must not run for a rejected image")
	}
}
