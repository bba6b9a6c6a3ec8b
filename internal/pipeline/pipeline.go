package pipeline

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/caltrackai/caltrack-api/internal/metrics"
	"github.com/caltrackai/caltrack-api/internal/model"
	"github.com/caltrackai/caltrack-api/internal/nutrition"
)

// ResultDepth is how many ranked predictions a response carries.
const ResultDepth = 5

// Classifier maps a decoded image to a probability vector over the label
// vocabulary. *model.Server is the production implementation; tests use
// fakes.
type Classifier interface {
	Predict(img image.Image) ([]float32, error)
}

type Result struct {
	Top1      model.PredictionItem   `json:"top1"`
	Top5      []model.PredictionItem `json:"top5"`
	Nutrition *nutrition.Record      `json:"nutrition"`
}

// Pipeline runs one prediction end to end: stage upload, decode, classify,
// rank, resolve nutrition, record confidence. The classifier, vocabulary and
// catalog are shared read-only state built at startup.
type Pipeline struct {
	classifier Classifier
	vocab      *model.Vocabulary
	catalog    *nutrition.Catalog
	recorder   *metrics.Recorder
	logger     *logrus.Logger
	uploadDir  string
}

func New(
	classifier Classifier,
	vocab *model.Vocabulary,
	catalog *nutrition.Catalog,
	recorder *metrics.Recorder,
	logger *logrus.Logger,
	uploadDir string,
) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		vocab:      vocab,
		catalog:    catalog,
		recorder:   recorder,
		logger:     logger,
		uploadDir:  uploadDir,
	}
}

// Predict classifies the uploaded image and resolves the top-1 label to a
// nutrition record. A fuzzy-match miss is not an error; it surfaces as a nil
// Nutrition. Exactly one confidence observation happens per successful call,
// none on failure.
func (p *Pipeline) Predict(imageBytes []byte, filename string) (*Result, error) {
	if len(imageBytes) == 0 {
		return nil, inputError("empty image upload", nil)
	}

	staged, err := p.stage(imageBytes, filename)
	if err != nil {
		return nil, internalError("failed to stage upload", err)
	}
	defer func() {
		if err := os.Remove(staged); err != nil {
			p.logger.WithError(err).WithField("path", staged).Warn("failed to remove staged upload")
		}
	}()

	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, inputError("unsupported or corrupt image", err)
	}

	probs, err := p.classifier.Predict(img)
	if err != nil {
		return nil, inferenceError("model invocation failed", err)
	}

	ranked, err := model.TopK(probs, p.vocab, ResultDepth)
	if err != nil {
		return nil, inferenceError("model output has unexpected shape", err)
	}

	top1 := ranked[0]
	record := p.catalog.Match(top1.Label)

	p.recorder.Confidence.Observe(float64(top1.Confidence))

	return &Result{
		Top1:      top1,
		Top5:      ranked,
		Nutrition: record,
	}, nil
}

// stage writes the upload to disk under a unique name. The file lives only
// for the duration of the request; Predict removes it on every exit path.
func (p *Pipeline) stage(imageBytes []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".img"
	}
	path := filepath.Join(p.uploadDir, uuid.NewString()+ext)
	if err := os.WriteFile(path, imageBytes, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
