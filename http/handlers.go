package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"travelinsure/ml"
	"travelinsure/monitoring"
)

// Handler 持有启动时加载的预测器，只读共享
type Handler struct {
	predictor *ml.Predictor
	metrics   *monitoring.MetricsCollector
	logger    *zap.Logger
	decoder   *schema.Decoder
}

// NewHandler 创建处理器
func NewHandler(predictor *ml.Predictor, metrics *monitoring.MetricsCollector, logger *zap.Logger) *Handler {
	if metrics == nil {
		metrics = monitoring.NewMetricsCollector()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Handler{
		predictor: predictor,
		metrics:   metrics,
		logger:    logger,
		decoder:   decoder,
	}
}

// RegisterHandlers 注册所有处理器
func RegisterHandlers(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handleFormPredict)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("GET /api/model", h.handleModel)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
	mux.HandleFunc("GET /api/health", handleHealth)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRecord
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.metrics.ObserveRejection()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if problems := validationMessages(validate.Struct(req)); len(problems) > 0 {
		h.metrics.ObserveRejection()
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer record", Details: problems})
		return
	}

	prediction, err := h.score(r, req.record())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "prediction failed")
		return
	}
	respondJSON(w, http.StatusOK, prediction)
}

type modelResponse struct {
	ml.ArtifactInfo
	Status         string `json:"status"`
	RuntimeVersion string `json:"runtime_version"`
}

func (h *Handler) handleModel(w http.ResponseWriter, r *http.Request) {
	if h.predictor.Status() == ml.LoadNotLoaded {
		respondError(w, http.StatusServiceUnavailable, "model not loaded")
		return
	}
	respondJSON(w, http.StatusOK, modelResponse{
		ArtifactInfo:   h.predictor.Info(),
		Status:         h.predictor.Status().String(),
		RuntimeVersion: ml.LibraryVersion,
	})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "prometheus" {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_, _ = w.Write([]byte(h.metrics.ExportPrometheus()))
		return
	}
	respondJSON(w, http.StatusOK, h.metrics.Snapshot())
}

// score 编码并预测，记录指标
func (h *Handler) score(r *http.Request, record ml.CustomerRecord) (ml.Prediction, error) {
	start := time.Now()
	prediction, err := h.predictor.Predict(record)
	elapsed := time.Since(start)
	if err != nil {
		h.metrics.ObservePredictionError(elapsed)
		h.logger.Error("prediction failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		return ml.Prediction{}, err
	}
	h.metrics.ObservePrediction(prediction.Purchase, elapsed)
	h.logger.Debug("prediction",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("label", prediction.Label),
		zap.Float64("confidence", prediction.Confidence),
		zap.Duration("elapsed", elapsed),
	)
	return prediction, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
