package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autou/mailtriage/classifier"
	"github.com/autou/mailtriage/metrics"
)

type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

type Normalizer interface {
	Normalize(text string) string
}

type Classifier interface {
	Classify(ctx context.Context, normalizedText string) (classifier.Category, error)
}

type Composer interface {
	Compose(ctx context.Context, category classifier.Category, originalText string) (string, error)
}

// Coordinator sequences one triage run: extract, validate, normalize,
// classify, compose. It holds no per-run state; concurrent runs share
// only the injected read-only collaborators.
type Coordinator struct {
	extractor  Extractor
	normalizer Normalizer
	classifier Classifier
	composer   Composer
	metrics    *metrics.TriageMetrics
	logger     *slog.Logger
}

func NewCoordinator(ex Extractor, n Normalizer, cl Classifier, co Composer, m *metrics.TriageMetrics, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		extractor:  ex,
		normalizer: n,
		classifier: cl,
		composer:   co,
		metrics:    m,
		logger:     logger,
	}
}

// Run executes the pipeline for a single submission. The first failing
// stage aborts the run; no partial result is ever returned. The empty
// input gate runs before any inference call is made.
func (c *Coordinator) Run(ctx context.Context, sub Submission) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := c.logger.With(slog.String("run_id", runID))

	result, err := c.run(ctx, logger, runID, sub)

	if c.metrics != nil {
		outcome := "completed"
		if err != nil {
			outcome = string(KindOf(err))
		}
		c.metrics.RunsTotal.WithLabelValues(outcome).Inc()
		c.metrics.RunSeconds.Observe(time.Since(start).Seconds())
		if result != nil {
			c.metrics.ClassificationsTotal.WithLabelValues(string(result.Category)).Inc()
		}
	}

	return result, err
}

func (c *Coordinator) run(ctx context.Context, logger *slog.Logger, runID string, sub Submission) (*Result, error) {
	originalText := sub.InlineText
	if sub.HasFile() {
		extracted, err := c.extractor.Extract(sub.Filename, sub.FileData)
		if err != nil {
			if c.metrics != nil {
				c.metrics.ExtractionFailuresTotal.Inc()
			}
			logger.Error("Text extraction failed",
				slog.String("filename", sub.Filename),
				slog.String("error", err.Error()))
			return nil, &Error{Kind: KindExtraction, Message: "failed to extract text from uploaded document", Err: err}
		}
		originalText = extracted
	}

	if strings.TrimSpace(originalText) == "" {
		logger.Info("Rejected submission with no usable text")
		return nil, &Error{Kind: KindEmptyInput, Message: "no usable text in submission"}
	}

	normalizedText := c.normalizer.Normalize(originalText)
	logger.Debug("Normalized submission text",
		slog.Int("original_length", len(originalText)),
		slog.Int("normalized_length", len(normalizedText)))

	category, err := c.classifier.Classify(ctx, normalizedText)
	if err != nil {
		if errors.Is(err, classifier.ErrUnrecognizedCategory) {
			return nil, &Error{Kind: KindClassification, Message: "inference returned an out-of-domain category", Err: err}
		}
		return nil, &Error{Kind: KindService, Message: "classification call failed", Err: err}
	}

	// Composition deliberately sees the original text, not the
	// normalized form.
	reply, err := c.composer.Compose(ctx, category, originalText)
	if err != nil {
		return nil, &Error{Kind: KindGeneration, Message: "reply generation failed", Err: err}
	}

	logger.Info("Pipeline run completed",
		slog.String("category", string(category)),
		slog.Int("reply_length", len(reply)))

	return &Result{
		RunID:        runID,
		OriginalText: originalText,
		Category:     category,
		Reply:        reply,
	}, nil
}
