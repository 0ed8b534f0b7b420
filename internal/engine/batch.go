// internal/engine/batch.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/snapshot"
)

// ErrAuditTimeout is returned for an input whose analysis exceeded the per-input timeout.
var ErrAuditTimeout = errors.New("audit timed out")

// Auditor is the single-page analysis contract the batch runner drives.
type Auditor interface {
	Analyze(markup string, snapshot schemas.StyleSnapshot, viewport schemas.Viewport) *schemas.VisualReport
}

// BatchOptions tunes a BatchAuditor.
type BatchOptions struct {
	// Concurrency bounds the number of inputs analyzed at once. Values below 1 mean 1.
	Concurrency int
	// Timeout bounds each input. Zero disables the limit.
	Timeout time.Duration
	// MaxElements caps the elements handed to the engine per input. Zero disables the cap.
	MaxElements int
}

// AuditResult is the outcome for one input. Exactly one of Report and Err is set.
type AuditResult struct {
	Source    string
	Report    *schemas.VisualReport
	Err       error
	Truncated bool
	Duration  time.Duration
}

// BatchAuditor runs independent audits concurrently.
type BatchAuditor struct {
	auditor Auditor
	opts    BatchOptions
	logger  *zap.Logger
}

// NewBatchAuditor wraps an Auditor (usually an *Engine).
func NewBatchAuditor(auditor Auditor, opts BatchOptions, logger *zap.Logger) *BatchAuditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &BatchAuditor{
		auditor: auditor,
		opts:    opts,
		logger:  logger.Named("batch"),
	}
}

// Run audits every input and returns results in input order. Inputs not yet
// started when ctx is cancelled get ctx's error. The returned error is ctx.Err().
func (b *BatchAuditor) Run(ctx context.Context, inputs []schemas.AuditInput) ([]AuditResult, error) {
	results := make([]AuditResult, len(inputs))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	b.logger.Info("Starting batch audit",
		zap.Int("inputs", len(inputs)),
		zap.Int("concurrency", b.opts.Concurrency),
		zap.Duration("timeout", b.opts.Timeout),
	)

	for i := range inputs {
		if groupCtx.Err() != nil {
			results[i] = AuditResult{Source: inputs[i].Source, Err: groupCtx.Err()}
			continue
		}
		idx := i
		g.Go(func() error {
			results[idx] = b.auditOne(groupCtx, inputs[idx])
			return nil
		})
	}

	// Workers never return errors; per-input failures live in the results.
	_ = g.Wait()
	return results, ctx.Err()
}

func (b *BatchAuditor) auditOne(ctx context.Context, input schemas.AuditInput) AuditResult {
	start := time.Now()
	result := AuditResult{Source: input.Source}
	logger := b.logger.With(zap.String("source", input.Source))

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	styles, truncated := snapshot.Cap(input.StyleSnapshot, b.opts.MaxElements)
	if truncated {
		logger.Warn("Capping element list before analysis",
			zap.Int("elements", len(input.StyleSnapshot.Elements)),
			zap.Int("max_elements", b.opts.MaxElements),
		)
		result.Truncated = true
	}

	runCtx := ctx
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}

	// The engine call is synchronous and cannot be interrupted; on timeout the
	// goroutine finishes in the background and its result is dropped.
	done := make(chan *schemas.VisualReport, 1)
	go func() {
		done <- b.auditor.Analyze(input.DOM, styles, input.Viewport)
	}()

	select {
	case report := <-done:
		result.Report = report
	case <-runCtx.Done():
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			result.Err = fmt.Errorf("%w after %s", ErrAuditTimeout, b.opts.Timeout)
		} else {
			result.Err = runCtx.Err()
		}
		logger.Warn("Audit did not complete", zap.Error(result.Err))
	}

	result.Duration = time.Since(start)
	return result
}
