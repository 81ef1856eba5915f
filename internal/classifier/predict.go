package classifier

import (
	"context"
	"image"

	"github.com/rs/zerolog"

	"cropd/internal/imageproc"
	"cropd/pkg/types"
)

// logger prefers a request logger attached to ctx with zerolog's WithContext.
func (c *Classifier) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.log
}

// Predict decodes a base64 string or data-URL and classifies the image.
func (c *Classifier) Predict(ctx context.Context, encoded string) (types.Prediction, error) {
	if !c.Ready() {
		return types.Prediction{}, ErrModelNotLoaded()
	}
	raw, err := imageproc.Payload(encoded)
	if err != nil {
		return types.Prediction{}, ErrInvalidImage(err)
	}
	img, format, err := imageproc.Decode(raw)
	if err != nil {
		return types.Prediction{}, ErrInvalidImage(err)
	}
	c.logger(ctx).Debug().Str("format", format).Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("image decoded")
	return c.PredictImage(ctx, img)
}

// PredictImage classifies an already decoded image.
func (c *Classifier) PredictImage(ctx context.Context, img image.Image) (types.Prediction, error) {
	if !c.Ready() {
		return types.Prediction{}, ErrModelNotLoaded()
	}
	in, err := imageproc.Preprocess(img)
	if err != nil {
		return types.Prediction{}, ErrInvalidImage(err)
	}
	if err := ctx.Err(); err != nil {
		return types.Prediction{}, err
	}
	scores, err := c.model.Predict(ctx, in)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.Prediction{}, ctxErr
		}
		return types.Prediction{}, ErrInference(err)
	}
	if c.applySoftmax {
		scores = Softmax(scores)
	}
	idx, p, err := TopClass(scores)
	if err != nil {
		return types.Prediction{}, ErrInference(err)
	}
	pred := types.Prediction{Label: LabelFor(c.labels, idx), Confidence: ConfidencePercent(p)}
	c.logger(ctx).Debug().Floats32("scores", scores).Int("index", idx).Str("label", pred.Label).Int("confidence", pred.Confidence).Msg("prediction")
	return pred, nil
}
