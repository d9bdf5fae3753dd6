package ingest

import (
	"context"
	"fmt"
	"time"

	"notegraph/internal/contextutil"
)

const (
	opVision = "vision"
	opText   = "text"
	opEmbed  = "embed"
)

// Orchestrator obtains an Analysis for either scenario.
type Orchestrator struct {
	vision     VisionModel
	text       TextModel
	retryDelay time.Duration
}

// NewOrchestrator creates an orchestrator over the given model capabilities.
func NewOrchestrator(vision VisionModel, text TextModel, retryDelay time.Duration) *Orchestrator {
	return &Orchestrator{vision: vision, text: text, retryDelay: retryDelay}
}

// Analyze runs the model call shape for the scenario and returns a validated
// Analysis. For images the transcription comes from the model; for text it is
// the original input, whatever the model returned.
func (o *Orchestrator) Analyze(ctx context.Context, s Scenario) (Analysis, error) {
	logger := contextutil.LoggerFromContext(ctx)

	switch sc := s.(type) {
	case ImageScenario:
		logger.DebugContext(ctx, "analyzing image", "mime_type", sc.MimeType, "bytes", len(sc.Image))
		return withRetry(ctx, o.retryDelay, opVision, func(ctx context.Context) (Analysis, error) {
			raw, err := o.vision.AnalyzeImage(ctx, ImagePrompt(), sc.Image, sc.MimeType)
			if err != nil {
				return Analysis{}, modelServiceError(opVision, err)
			}
			return ParseAnalysis(opVision, raw, true)
		})

	case TextScenario:
		logger.DebugContext(ctx, "analyzing text", "chars", len(sc.Text))
		a, err := withRetry(ctx, o.retryDelay, opText, func(ctx context.Context) (Analysis, error) {
			raw, err := o.text.Complete(ctx, TextPrompt(sc.Text))
			if err != nil {
				return Analysis{}, modelServiceError(opText, err)
			}
			return ParseAnalysis(opText, raw, false)
		})
		if err != nil {
			return Analysis{}, err
		}
		a.Transcription = sc.Text
		return a, nil

	default:
		return Analysis{}, invalidInput(fmt.Sprintf("unsupported scenario %T", s))
	}
}
