package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shekokarmahesh/contract-intel/analysis"
	"github.com/shekokarmahesh/contract-intel/extract"
	"github.com/shekokarmahesh/contract-intel/model"
	"github.com/shekokarmahesh/contract-intel/pkg/logger"
	"github.com/shekokarmahesh/contract-intel/service"
)

// Progress checkpoints written to the store as a contract moves through
// the pipeline. Clients poll these through the status endpoint.
const (
	progressStarted   = 10
	progressFetched   = 30
	progressExtracted = 60
	progressScored    = 80
	progressDone      = 100
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 60 * time.Second
)

// TextProvider turns raw document bytes into plain text.
type TextProvider interface {
	ExtractText(data []byte) (string, error)
	CountPages(data []byte) int
}

// FileFetcher retrieves stored document bytes by object key.
type FileFetcher interface {
	Fetch(ctx context.Context, objectKey string) ([]byte, error)
}

// Processor runs the extraction pipeline for one contract at a time:
// fetch bytes, extract text, run the rule engine, score, persist.
type Processor struct {
	store      service.ContractStore
	files      FileFetcher
	provider   TextProvider
	extractor  *extract.Extractor
	maxRetries int
	retryDelay time.Duration

	scoreFn func(*model.ExtractedData) int
	gapsFn  func(*model.ExtractedData) []model.Gap
}

func NewProcessor(store service.ContractStore, files FileFetcher, provider TextProvider, extractor *extract.Extractor, maxRetries int, retryDelay time.Duration) *Processor {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Processor{
		store:      store,
		files:      files,
		provider:   provider,
		extractor:  extractor,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		scoreFn:    analysis.CalculateScore,
		gapsFn:     analysis.IdentifyGaps,
	}
}

// Process runs the pipeline for a contract, retrying transient failures up
// to maxRetries total attempts. Between attempts the contract is marked
// failed so its status stays truthful while waiting.
func (p *Processor) Process(ctx context.Context, id string) error {
	for attempt := 1; ; attempt++ {
		err := p.runOnce(ctx, id)
		if err == nil {
			return nil
		}

		if !retryable(err) {
			logger.Error(ctx, "contract processing failed permanently",
				"contract_id", id, "error", err)
			p.markFailed(ctx, id, err.Error())
			return err
		}

		if attempt >= p.maxRetries {
			msg := "Max retries exceeded: " + err.Error()
			logger.Error(ctx, "contract processing exhausted retries",
				"contract_id", id, "attempts", attempt, "error", err)
			p.markFailed(ctx, id, msg)
			return fmt.Errorf("%s", msg)
		}

		logger.Warn(ctx, "contract processing failed, will retry",
			"contract_id", id, "attempt", attempt, "error", err)
		p.markFailed(ctx, id, err.Error())
		time.Sleep(p.retryDelay)
	}
}

func (p *Processor) runOnce(ctx context.Context, id string) error {
	contract, err := p.store.Get(ctx, id)
	if err != nil {
		return &ExtractionError{Err: err}
	}
	if contract == nil {
		return &ProcessingError{Msg: fmt.Sprintf("contract %s not found", id)}
	}

	if err := p.store.MarkProcessing(ctx, id, progressStarted); err != nil {
		return &ExtractionError{Err: err}
	}

	data, err := p.files.Fetch(ctx, contract.ObjectKey)
	if err != nil {
		return &ExtractionError{Err: err}
	}
	if err := p.store.SetProgress(ctx, id, progressFetched); err != nil {
		return &ExtractionError{Err: err}
	}

	text, err := p.provider.ExtractText(data)
	if err != nil {
		return &ExtractionError{Err: err}
	}

	extracted, err := p.extractor.Extract(text)
	if err != nil {
		return &ExtractionError{Err: err}
	}
	extracted.ExtractionMetadata.TotalPages = p.provider.CountPages(data)

	if err := p.store.SetProgress(ctx, id, progressExtracted); err != nil {
		return &ExtractionError{Err: err}
	}

	score, gaps := p.scoreAndGaps(ctx, id, extracted)

	if err := p.store.SetProgress(ctx, id, progressScored); err != nil {
		return &ExtractionError{Err: err}
	}

	confidence := analysis.SectionConfidence(extracted)

	if err := p.store.MarkCompleted(ctx, id, extracted, score, gaps, confidence); err != nil {
		return &ExtractionError{Err: err}
	}

	logger.Info(ctx, "contract processing completed",
		"contract_id", id, "score", score, "gaps", len(gaps))
	return nil
}

// scoreAndGaps runs scoring and gap analysis, recovering from panics so a
// scoring bug degrades the result instead of failing the whole pipeline.
func (p *Processor) scoreAndGaps(ctx context.Context, id string, data *model.ExtractedData) (score int, gaps []model.Gap) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "scoring failed, recording zero score",
				"contract_id", id, "panic", r)
			score = 0
			gaps = []model.Gap{}
		}
	}()

	score = p.scoreFn(data)
	gaps = p.gapsFn(data)
	return score, gaps
}

func (p *Processor) markFailed(ctx context.Context, id string, msg string) {
	if err := p.store.MarkFailed(ctx, id, msg); err != nil {
		logger.Error(ctx, "failed to record contract failure",
			"contract_id", id, "error", err)
	}
}
