// Package run provides the run command, which produces the reconciled document.
package run

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/partnermap/internal/cmd/application"
	"github.com/agentstation/partnermap/pkg/constants"
)

// Flags holds the run command flags.
type Flags struct {
	Mode       string
	File       string
	FileFormat string
	Stdout     bool
	Show       bool
	Partner    string
	Bucket     string
	PageSize   int
	Timeout    time.Duration
}

// NewCommand creates the run command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Fetch partners and solutions and write the joined document",
		Args:    cobra.NoArgs,
		Long: `Run walks the partner directory, then the solution catalog, attaches every
solution to the partner that owns it and writes one document listing all
partners with their solutions plus the solutions whose owner is unknown.

Partners and solutions are joined by partner id (--mode id, the default) or
by case-insensitive display name (--mode name).

A listing that fails part way does not fail the run: what was fetched is
still reconciled and written, and the summary says where collection stopped.`,
		Example: `  partnermap run                            # id mode, partners_solutions_withId.json
  partnermap run --mode name                # partners_solutions.json
  partnermap run --file out.yaml            # YAML inferred from extension
  partnermap run --stdout | jq .            # document on stdout
  partnermap run --bucket catalogs          # upload to S3-compatible storage
  partnermap run --partner Acme             # also print one partner`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&flags.Mode, "mode", "", "join key: id or name (default from config, id)")
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "output file (default depends on mode)")
	cmd.Flags().StringVar(&flags.FileFormat, "file-format", "", "document format: json or yaml (default from file extension)")
	cmd.Flags().BoolVar(&flags.Stdout, "stdout", false, "write the document to stdout instead of a file")
	cmd.Flags().BoolVar(&flags.Show, "show", false, "print the document as a table after saving")
	cmd.Flags().StringVar(&flags.Partner, "partner", "", "print one partner, by id or name, after saving")
	cmd.Flags().StringVar(&flags.Bucket, "bucket", "", "upload the document to this bucket (requires s3 settings)")
	cmd.Flags().IntVar(&flags.PageSize, "page-size", 0, "assets requested per page")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", constants.DefaultRunTimeout, "upper bound for the whole run")

	return cmd
}
