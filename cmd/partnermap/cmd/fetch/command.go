// Package fetch provides the fetch command, which walks a single listing.
package fetch

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/partnermap"
	"github.com/agentstation/partnermap/internal/cmd/application"
	"github.com/agentstation/partnermap/internal/cmd/output"
	"github.com/agentstation/partnermap/pkg/reconcile"
)

// Flags holds the fetch command flags.
type Flags struct {
	Mode     string
	PageSize int
}

// NewCommand creates the fetch command and its dataset subcommands.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "fetch [dataset]",
		GroupID: "core",
		Short:   "Walk one listing and print what it holds",
		Long: `Fetch collects a single dataset without reconciling it. The key mode
decides which fields are extracted, exactly as a run would extract them.`,
		Example: `  partnermap fetch partners
  partnermap fetch solutions --mode name -o wide
  partnermap fetch partners -o json > partners.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.Mode, "mode", "", "key mode: id or name (default from config, id)")
	cmd.PersistentFlags().IntVar(&flags.PageSize, "page-size", 0, "assets requested per page")

	cmd.AddCommand(&cobra.Command{
		Use:     "partners",
		Aliases: []string{"partner"},
		Short:   "Fetch the partner directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Partners(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "solutions",
		Aliases: []string{"solution"},
		Short:   "Fetch the solution catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Solutions(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	})

	return cmd
}

// Partners collects the partner directory and prints it.
func Partners(ctx context.Context, app application.Application, flags *Flags, w io.Writer) error {
	pm, err := client(app, flags)
	if err != nil {
		return err
	}
	result, err := pm.Partners(ctx)
	if err != nil {
		return err
	}
	return render(app, w, output.PartnerList(result.Items))
}

// Solutions collects the solution catalog and prints it.
func Solutions(ctx context.Context, app application.Application, flags *Flags, w io.Writer) error {
	pm, err := client(app, flags)
	if err != nil {
		return err
	}
	result, err := pm.Solutions(ctx)
	if err != nil {
		return err
	}
	return render(app, w, output.SolutionList(result.Items))
}

func client(app application.Application, flags *Flags) (partnermap.Client, error) {
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
	return app.Client(opts...)
}

func render(app application.Application, w io.Writer, data any) error {
	if _, err := output.ParseFormat(app.OutputFormat()); err != nil {
		return err
	}
	return output.NewFormatter(output.DetectFormat(app.OutputFormat())).Format(w, data)
}
