package partnermap

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/logging"
	"github.com/agentstation/partnermap/pkg/reconcile"
)

// Compile-time interface check to ensure proper implementation.
var _ Runner = (*client)(nil)

// Runner performs a complete reconciliation.
type Runner interface {
	Run(ctx context.Context) (*Report, error)
}

// Report is the outcome of a run.
type Report struct {
	RunID     string              `json:"runId" yaml:"runId"`
	Mode      reconcile.KeyMode   `json:"mode" yaml:"mode"`
	Partners  collector.Stats     `json:"partners" yaml:"partners"`
	Solutions collector.Stats     `json:"solutions" yaml:"solutions"`
	Stats     reconcile.Stats     `json:"stats" yaml:"stats"`
	Duration  time.Duration       `json:"duration" yaml:"duration"`
	Document  *reconcile.Document `json:"-" yaml:"-"`
}

// Complete reports whether both listings were walked to the end.
func (r *Report) Complete() bool {
	return r.Partners.Stopped == "" && r.Solutions.Stopped == ""
}

// Run collects partners, then solutions, and joins them. Listing failures
// do not fail the run; they shorten the affected dataset and show up in
// the report's Stopped fields.
func (c *client) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithMode(ctx, c.options.mode.String())
	logger := logging.FromContext(ctx)

	logger.Info().Msg("Starting reconciliation")

	partners, err := c.Partners(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("count", len(partners.Items)).
		Int("pages", partners.Pages).
		Msg("Total partners fetched")

	solutions, err := c.Solutions(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("count", len(solutions.Items)).
		Int("pages", solutions.Pages).
		Msg("Total solutions fetched")

	result := reconcile.Reconcile(partners.Items, solutions.Items, c.options.mode)
	doc := reconcile.Assemble(result)

	report := &Report{
		RunID:     runID,
		Mode:      c.options.mode,
		Partners:  partners.Stats(c.options.partners.Name),
		Solutions: solutions.Stats(c.options.solutions.Name),
		Stats:     result.Stats(),
		Duration:  time.Since(start),
		Document:  doc,
	}

	logger.Info().
		Int("partners", report.Stats.Partners).
		Int("matched", report.Stats.Matched).
		Int("unmatched", report.Stats.Unmatched).
		Int("groups", report.Stats.Groups).
		Bool("complete", report.Complete()).
		Dur("duration", report.Duration).
		Msg("Reconciliation finished")

	c.hooks.triggerReconciled(report)
	return report, nil
}
