package classifier

import (
	"errors"
	"math"
	"strconv"
)

var (
	errEmptyOutput    = errors.New("model returned an empty output vector")
	errNoFiniteScores = errors.New("model returned no finite scores")
)

// TopClass returns the index and value of the highest score. Ties go to the
// lowest index; NaN scores never win. A vector of only NaN is an error.
func TopClass(scores []float32) (int, float32, error) {
	if len(scores) == 0 {
		return 0, 0, errEmptyOutput
	}
	best := -1
	for i, v := range scores {
		if math.IsNaN(float64(v)) {
			continue
		}
		if best < 0 || v > scores[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, errNoFiniteScores
	}
	return best, scores[best], nil
}

// ConfidencePercent is floor(p*100) clamped to [0,100]. NaN maps to 0.
func ConfidencePercent(p float32) int {
	v := math.Floor(float64(p) * 100)
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}

// LabelFor returns labels[idx], or "class_<idx>" when idx is out of range.
func LabelFor(labels []string, idx int) string {
	if idx >= 0 && idx < len(labels) {
		return labels[idx]
	}
	return "class_" + strconv.Itoa(idx)
}

// Softmax returns exp(x_i - max) / sum, computed in float64. When the
// maximum is +Inf the +Inf entries share the mass equally; when every
// logit is -Inf the result is uniform.
func Softmax(logits []float32) []float32 {
	out := make([]float32, len(logits))
	if len(logits) == 0 {
		return out
	}
	maxV := math.Inf(-1)
	for _, v := range logits {
		if float64(v) > maxV {
			maxV = float64(v)
		}
	}
	if math.IsInf(maxV, 0) {
		var k int
		for _, v := range logits {
			if float64(v) == maxV {
				k++
			}
		}
		for i, v := range logits {
			if float64(v) == maxV {
				out[i] = float32(1 / float64(k))
			}
		}
		return out
	}
	var sum float64
	exps := make([]float64, len(logits))
	for i, v := range logits {
		exps[i] = math.Exp(float64(v) - maxV)
		sum += exps[i]
	}
	for i := range exps {
		out[i] = float32(exps[i] / sum)
	}
	return out
}
