package run

import (
	"context"
	"fmt"
	"io"

	"github.com/agentstation/partnermap"
	"github.com/agentstation/partnermap/internal/cmd/alerts"
	"github.com/agentstation/partnermap/internal/cmd/application"
	"github.com/agentstation/partnermap/internal/cmd/output"
	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/reconcile"
	"github.com/agentstation/partnermap/pkg/save"
)

// Execute performs a run and writes the document where flags and
// configuration say. The summary goes to stderr unless the app is quiet.
func Execute(ctx context.Context, app application.Application, flags *Flags, stdout, stderr io.Writer) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	clientOpts, err := buildClientOptions(flags)
	if err != nil {
		return err
	}

	pm, err := app.Client(clientOpts...)
	if err != nil {
		return err
	}

	saveOpts, err := buildSaveOptions(app.Destination(), flags, pm.Mode(), stdout)
	if err != nil {
		return err
	}

	runCtx := ctx
	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}

	report, err := pm.Run(runCtx)
	if err != nil {
		return err
	}

	// An interrupted run still saves what it reconciled.
	location, err := pm.Save(context.WithoutCancel(ctx), report.Document, saveOpts...)
	if err != nil {
		return err
	}

	if flags.Partner != "" {
		partner, err := report.Document.FindPartner(flags.Partner)
		if err != nil {
			return err
		}
		if !flags.Stdout {
			view := &reconcile.Document{Partners: []reconcile.PartnerEntry{*partner}, Unmatched: []reconcile.UnmatchedEntry{}}
			if err := output.NewFormatter(format).Format(stdout, output.DocumentView{Document: view}); err != nil {
				return err
			}
		}
	} else if flags.Show && !flags.Stdout {
		if err := output.NewFormatter(format).Format(stdout, output.DocumentView{Document: report.Document}); err != nil {
			return err
		}
	}

	if app.Quiet() {
		return nil
	}

	summary := output.Summary{
		Location:  location,
		Datasets:  []collector.Stats{report.Partners, report.Solutions},
		Reconcile: report.Stats,
	}
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(stderr, report)
	}

	if err := output.NewFormatter(format).Format(stderr, summary); err != nil {
		return err
	}

	aw := alerts.NewWriter(stderr, app.NoColor())
	for _, stats := range summary.Datasets {
		if stats.Stopped == "" {
			continue
		}
		alert := alerts.NewWarning(stats.Dataset + " stopped early").
			WithDetails(stats.Stopped, fmt.Sprintf("kept %d of %d advertised after %d pages", stats.Items, stats.Total, stats.Pages))
		if err := aw.Write(alert); err != nil {
			return err
		}
	}
	if report.Complete() {
		return aw.Write(alerts.NewSuccess(fmt.Sprintf("Run %s complete", report.RunID)))
	}
	return nil
}

func buildClientOptions(flags *Flags) ([]partnermap.Option, error) {
	var opts []partnermap.Option
	if flags.Mode != "" {
		mode, err := reconcile.ParseKeyMode(flags.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, partnermap.WithKeyMode(mode))
	}
	if flags.PageSize > 0 {
		opts = append(opts, partnermap.WithPageSize(flags.PageSize))
	}
	return opts, nil
}

// buildSaveOptions resolves the destination. Flags win over configuration;
// stdout wins over a bucket, which wins over a file.
func buildSaveOptions(dest application.Destination, flags *Flags, mode reconcile.KeyMode, stdout io.Writer) ([]save.Option, error) {
	path := dest.Path
	if flags.File != "" {
		path = flags.File
	}
	bucket := dest.Bucket
	if flags.Bucket != "" {
		bucket = flags.Bucket
	}
	formatName := dest.Format
	if flags.FileFormat != "" {
		formatName = flags.FileFormat
	}

	var opts []save.Option
	if formatName != "" {
		format, err := save.ParseFormat(formatName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, save.WithFormat(format))
	}

	switch {
	case flags.Stdout:
		opts = append(opts, save.WithWriter(stdout))
	case bucket != "":
		key := path
		if key == "" {
			key = partnermap.DefaultOutput(mode)
		}
		opts = append(opts, save.WithObject(bucket, key))
	case path != "":
		opts = append(opts, save.WithPath(path))
	}

	return opts, nil
}
