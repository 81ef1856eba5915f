package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"cropd/internal/classifier"
	"cropd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Ready() bool
	Status() types.ModelStatus
	Predict(ctx context.Context, encoded string) (types.Prediction, error)
}

// Service identity reported by GET /.
const (
	ServiceName    = "Crop Disease Detector API"
	ServiceVersion = "1.0.0"
)

var endpoints = map[string]string{
	"GET /":         "API information (this page)",
	"GET /health":   "Health check",
	"POST /predict": "Predict crop disease from image",
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins(),
			AllowedMethods: corsMethods(),
			AllowedHeaders: corsHeaders(),
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) { handleInfo(w, r, svc) })
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { handleHealth(w, r, svc) })
	r.Post("/predict", func(w http.ResponseWriter, r *http.Request) { handlePredict(w, r, svc) })

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleInfo godoc
// @Summary      API information
// @Description  Service identity, available endpoints and model status.
// @Tags         info
// @Produce      json
// @Success      200  {object}  types.InfoResponse
// @Router       / [get]
func handleInfo(w http.ResponseWriter, r *http.Request, svc Service) {
	st := svc.Status()
	writeJSON(w, http.StatusOK, types.InfoResponse{
		Service:     ServiceName,
		Version:     ServiceVersion,
		Endpoints:   endpoints,
		Status:      "running",
		ModelLoaded: st.Loaded,
		LabelsCount: st.LabelsCount,
	})
}

// handleHealth godoc
// @Summary      Health check
// @Description  Always 200 while the process is up; model_loaded tells whether predictions can succeed.
// @Tags         info
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request, svc Service) {
	st := svc.Status()
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:      "healthy",
		ModelLoaded: st.Loaded,
		LabelsCount: st.LabelsCount,
	})
}

// handlePredict godoc
// @Summary      Classify a leaf image
// @Description  Accepts a base64 image (raw or data-URL) and returns the top class with an integer confidence percentage.
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        request  body      types.PredictRequest  true  "Encoded image"
// @Success      200      {object}  types.PredictResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      413      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /predict [post]
func handlePredict(w http.ResponseWriter, r *http.Request, svc Service) {
	start := time.Now()
	lvl := requestLogLevel(r)
	log := requestLogger(r, lvl)

	end := func(status int, err error, pred *types.Prediction) {
		if lvl < LevelInfo && (lvl < LevelError || err == nil) {
			return
		}
		var ev *zerolog.Event
		if err != nil {
			ev = log.Error().Err(err)
		} else {
			ev = log.Info()
		}
		ev = ev.Int("status", status).Dur("dur", time.Since(start))
		if pred != nil {
			ev = ev.Str("label", pred.Label).Int("confidence", pred.Confidence)
		}
		ev.Msg("predict end")
	}
	fail := func(status int, reason, msg string, err error) {
		IncrementPredictionError(reason)
		writeJSONError(w, status, msg)
		end(status, err, nil)
	}

	// Checked before the body is read.
	if !svc.Ready() {
		err := classifier.ErrModelNotLoaded()
		fail(http.StatusInternalServerError, reasonNotLoaded, err.Error(), err)
		return
	}

	// Limit body size (configurable, default 10MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			fail(http.StatusRequestEntityTooLarge, reasonTooLarge, "request body too large", err)
			return
		}
		fail(http.StatusBadRequest, reasonBadRequest, "invalid JSON body", err)
		return
	}
	if req.Image == nil {
		fail(http.StatusBadRequest, reasonBadRequest, "No image provided", nil)
		return
	}
	if lvl >= LevelDebug {
		log.Debug().Int("image_len", len(*req.Image)).Msg("predict start")
	}

	ctx, cancel := predictContext(r)
	defer cancel()
	ctx = log.WithContext(ctx)

	pred, err := svc.Predict(ctx, *req.Image)
	if err != nil {
		if abandoned(r) {
			IncrementPredictionError(reasonCanceled)
			w.WriteHeader(statusClientClosed)
			end(statusClientClosed, err, nil)
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			fail(http.StatusInternalServerError, reasonTimeout, "prediction timed out", err)
			return
		}
		status, reason := http.StatusInternalServerError, reasonOther
		var he HTTPError
		if errors.As(err, &he) {
			status = he.StatusCode()
		}
		switch {
		case classifier.IsModelNotLoaded(err):
			reason = reasonNotLoaded
		case classifier.IsInvalidImage(err):
			reason = reasonInvalidImage
		case classifier.IsInference(err):
			reason = reasonInference
		}
		msg := err.Error()
		if hideErrors && status >= http.StatusInternalServerError && reason != reasonNotLoaded {
			msg = genericPredictError
		}
		fail(status, reason, msg, err)
		return
	}

	incrementPrediction(pred.Label)
	writeJSON(w, http.StatusOK, types.PredictResponse{Prediction: pred})
	end(http.StatusOK, nil, &pred)
}
