package sentiment

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const defaultModelRepo = "neuralmind/bert-base-portuguese-cased"

var (
	hugotInstance *HugotClassifier
	hugotOnce     sync.Once
	hugotErr      error
)

// HugotClassifier runs a local ONNX text-classification pipeline. The
// session is the single expensive process-wide resource: constructed once,
// read-only afterwards, reused for every sequential call.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// GetHugotClassifier lazily initializes the shared classifier. The model is
// downloaded into modelDir on first use when no local copy exists.
func GetHugotClassifier(modelDir string) (*HugotClassifier, error) {
	hugotOnce.Do(func() {
		hugotInstance, hugotErr = newHugotClassifier(modelDir)
	})
	return hugotInstance, hugotErr
}

func newHugotClassifier(modelDir string) (*HugotClassifier, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, filepath.Base(defaultModelRepo))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[HugotClassifier] Model not found, downloading...",
			slog.String("repo", defaultModelRepo))
		downloaded, err := hugot.DownloadModel(defaultModelRepo, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("download model: %w", err)
		}
		modelPath = downloaded
		slog.Info("[HugotClassifier] Model downloaded successfully",
			slog.String("path", modelPath))
	} else {
		slog.Info("[HugotClassifier] Using existing model",
			slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("initialize classification pipeline: %w", err)
	}

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

// ClassifyRaw runs one inference and returns the best-scoring raw label
// (LABEL_0/LABEL_1/LABEL_2 for BERTimbau-style checkpoints).
func (h *HugotClassifier) ClassifyRaw(text string) (string, float64, error) {
	output, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", 0, fmt.Errorf("run classification pipeline: %w", err)
	}

	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return "", 0, fmt.Errorf("classification pipeline returned no output")
	}

	best := output.ClassificationOutputs[0][0]
	for _, candidate := range output.ClassificationOutputs[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	return best.Label, float64(best.Score), nil
}

// Close releases the ONNX session. Only needed at process shutdown.
func (h *HugotClassifier) Close() error {
	return h.session.Destroy()
}
