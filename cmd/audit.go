// File: cmd/audit.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/config"
	"github.com/xkilldash9x/clarity-cli/internal/engine"
	"github.com/xkilldash9x/clarity-cli/internal/observability"
	"github.com/xkilldash9x/clarity-cli/internal/reporting"
	"github.com/xkilldash9x/clarity-cli/internal/results"
	"github.com/xkilldash9x/clarity-cli/internal/snapshot"
)

// ErrAuditFailures is returned when at least one input could not be audited.
var ErrAuditFailures = errors.New("some inputs could not be audited")

// flagBindings maps audit flags to their configuration keys.
var flagBindings = map[string]string{
	"format":       "report.format",
	"output":       "report.output",
	"min-severity": "report.min_severity",
	"overlay-dir":  "report.overlay_dir",
	"concurrency":  "audit.concurrency",
	"max-elements": "audit.max_elements",
	"timeout":      "audit.timeout",
}

// newAuditCmd creates and configures the `audit` command.
func newAuditCmd(opts *rootOptions) *cobra.Command {
	var viewportFlag string

	auditCmd := &cobra.Command{
		Use:   "audit [snapshot files...]",
		Short: "Audit page snapshots and report visual clarity issues",
		Long: `Audit reads one or more page snapshots (JSON or YAML documents with "dom",
"style_snapshot" and "viewport") and writes a clarity report. Use "-" or no
arguments to read a single snapshot from stdin.`,
		Example: `  clarity audit page.json
  clarity audit --format sarif --output clarity.sarif pages/*.json
  capture-page https://example.com | clarity audit --viewport 375x667 -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var override *schemas.Viewport
			if viewportFlag != "" {
				vp, err := schemas.ParseViewport(viewportFlag)
				if err != nil {
					return err
				}
				override = &vp
			}
			if len(args) == 0 {
				args = []string{snapshot.StdinPath}
			}
			return runAudit(cmd.Context(), opts.cfg, args, override, cmd.InOrStdin(), observability.GetLogger())
		},
	}

	flags := auditCmd.Flags()
	flags.StringP("format", "f", "text", "report format (text, json, yaml, sarif)")
	flags.StringP("output", "o", "stdout", "report destination file, or stdout")
	flags.String("min-severity", "low", "hide issues below this severity (low, medium, high)")
	flags.String("overlay-dir", "", "write one PNG issue overlay per input into this directory")
	flags.Int("concurrency", 4, "number of inputs audited in parallel")
	flags.Int("max-elements", 500, "maximum elements analyzed per input (0 = unlimited)")
	flags.Duration("timeout", 0, "per-input analysis timeout (default from config, 30s)")
	flags.StringVar(&viewportFlag, "viewport", "", "override the snapshot viewport, e.g. 375x667")

	// Flags override config file and environment values when set.
	for flag, key := range flagBindings {
		_ = opts.v.BindPFlag(key, flags.Lookup(flag))
	}
	return auditCmd
}

// auditEntry tracks one argument through loading and analysis.
type auditEntry struct {
	source  string
	loadErr error
	input   int // index into the batch inputs when loadErr is nil
}

// runAudit loads every snapshot, analyzes them concurrently and writes the report.
func runAudit(ctx context.Context, cfg config.Interface, paths []string, viewport *schemas.Viewport, stdin io.Reader, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logger.Named("audit")
	auditCfg, reportCfg := cfg.Audit(), cfg.Report()

	var minSeverity schemas.Severity
	if reportCfg.MinSeverity != "" {
		s, err := schemas.ParseSeverity(reportCfg.MinSeverity)
		if err != nil {
			return err
		}
		minSeverity = s
	}

	runID := uuid.New().String()
	reporter, err := reporting.New(reportCfg.Format, reportCfg.Output, reporting.RunInfo{ID: runID, ToolVersion: Version}, logger)
	if err != nil {
		return err
	}

	var overlays *reporting.OverlayWriter
	if reportCfg.OverlayDir != "" {
		if overlays, err = reporting.NewOverlayWriter(reportCfg.OverlayDir, logger); err != nil {
			_ = reporter.Close()
			return err
		}
	}

	// 1. Load
	loader := snapshot.NewLoader(stdin, logger)
	entries := make([]auditEntry, 0, len(paths))
	inputs := make([]schemas.AuditInput, 0, len(paths))
	for _, path := range paths {
		input, err := loader.Load(path)
		if err != nil {
			logger.Error("Failed to load snapshot", zap.String("path", path), zap.Error(err))
			entries = append(entries, auditEntry{source: path, loadErr: err})
			continue
		}
		if viewport != nil {
			input.Viewport = *viewport
		}
		entries = append(entries, auditEntry{source: input.Source, input: len(inputs)})
		inputs = append(inputs, input)
	}

	logger.Info("Starting audit",
		zap.String("run_id", runID),
		zap.Int("inputs", len(inputs)),
		zap.Int("load_failures", len(entries)-len(inputs)),
	)

	// 2. Analyze
	batch := engine.NewBatchAuditor(engine.New(logger), engine.BatchOptions{
		Concurrency: auditCfg.Concurrency,
		Timeout:     auditCfg.Timeout,
		MaxElements: auditCfg.MaxElements,
	}, logger)
	outcomes, runErr := batch.Run(ctx, inputs)

	// 3. Report, in argument order
	pipeline := results.NewPipeline(results.PipelineConfig{MinSeverity: minSeverity}, logger)
	failures := 0
	for _, entry := range entries {
		var audit results.Audit
		switch {
		case entry.loadErr != nil:
			audit = pipeline.Failed(entry.source, entry.loadErr)
		case outcomes[entry.input].Err != nil:
			audit = pipeline.Failed(entry.source, outcomes[entry.input].Err)
		default:
			audit = pipeline.Process(entry.source, outcomes[entry.input].Report)
		}
		if audit.Error != "" {
			failures++
		}

		if err := reporter.Write(&audit); err != nil {
			_ = reporter.Close()
			return fmt.Errorf("failed to write report: %w", err)
		}
		if overlays != nil {
			if _, err := overlays.Write(&audit); err != nil {
				logger.Warn("Failed to write overlay", zap.String("source", audit.Source), zap.Error(err))
			}
		}
	}

	if err := reporter.Close(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if failures > 0 {
		return fmt.Errorf("%w: %d of %d", ErrAuditFailures, failures, len(entries))
	}
	logger.Info("Audit complete", zap.String("run_id", runID), zap.Int("inputs", len(entries)))
	return nil
}
