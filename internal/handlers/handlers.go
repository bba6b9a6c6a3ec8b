package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caltrackai/caltrack-api/internal/feedback"
	"github.com/caltrackai/caltrack-api/internal/metrics"
	"github.com/caltrackai/caltrack-api/internal/pipeline"
)

// maxUploadBytes caps multipart parsing for /predict (10MB).
const maxUploadBytes = 10 << 20

// Predictor is the pipeline surface the handlers need; narrowed so tests can
// substitute a fake.
type Predictor interface {
	Predict(imageBytes []byte, filename string) (*pipeline.Result, error)
}

type Handler struct {
	predictor Predictor
	store     *feedback.Store
	recorder  *metrics.Recorder
	logger    *logrus.Logger
}

func NewHandler(predictor Predictor, store *feedback.Store, recorder *metrics.Recorder, logger *logrus.Logger) *Handler {
	return &Handler{
		predictor: predictor,
		store:     store,
		recorder:  recorder,
		logger:    logger,
	}
}

// Home is the liveness endpoint.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, "CalTrack API is running"); err != nil {
		h.logger.WithError(err).Debug("failed to write liveness response")
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Predict accepts a multipart upload with one "image" field and returns the
// ranked predictions plus the resolved nutrition record. Latency is observed
// exactly once per request, success or failure.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.recorder.Requests.Inc()
	start := time.Now()
	defer func() {
		h.recorder.Latency.Observe(time.Since(start).Seconds())
	}()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.recorder.Errors.Inc()
		writeError(w, http.StatusBadRequest, "No image uploaded")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.recorder.Errors.Inc()
		writeError(w, http.StatusBadRequest, "No image uploaded")
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		h.recorder.Errors.Inc()
		writeError(w, http.StatusBadRequest, "Failed to read image upload")
		return
	}

	result, err := h.predictor.Predict(imageBytes, header.Filename)
	if err != nil {
		h.recorder.Errors.Inc()
		status := http.StatusInternalServerError
		if pipeline.KindOf(err) == pipeline.KindInput {
			status = http.StatusBadRequest
		}
		h.logger.WithError(err).WithFields(logrus.Fields{
			"status":   status,
			"filename": header.Filename,
		}).Error("prediction failed")
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Feedback appends a user judgment to the feedback log and counts it. The
// matching counter moves only after the entry is durably written.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var entry feedback.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if entry.FeedbackType != "yes" && entry.FeedbackType != "no" {
		writeError(w, http.StatusBadRequest, `feedback_type must be "yes" or "no"`)
		return
	}

	if err := h.store.Append(entry); err != nil {
		h.logger.WithError(err).Error("failed to append feedback")
		writeError(w, http.StatusInternalServerError, "Failed to record feedback")
		return
	}

	if entry.FeedbackType == "yes" {
		h.recorder.FeedbackYes.Inc()
	} else {
		h.recorder.FeedbackNo.Inc()
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
