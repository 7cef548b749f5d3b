// Package application provides the application interface for partnermap commands.
//
// Commands accept an Application rather than the concrete app type so they
// can be tested with Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            pm, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            report, err := pm.Run(cmd.Context())
//	            // ...
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/partnermap"
)

// Application is what commands need from the running CLI.
type Application interface {
	// Client builds a partnermap client from the loaded configuration.
	// opts are applied after the configured ones.
	Client(opts ...partnermap.Option) (partnermap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format value (table, json, yaml, wide or empty).
	OutputFormat() string

	// Quiet reports whether informational output should be suppressed.
	Quiet() bool

	// NoColor reports whether terminal colors are disabled.
	NoColor() bool

	// Destination returns where documents go unless a command overrides it.
	Destination() Destination

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}

// Destination is the configured output location of a run.
type Destination struct {
	// Path is the output file. Empty means the mode's default file.
	Path string
	// Format is the document format (json, yaml). Empty infers from Path.
	Format string
	// Bucket enables object storage; the object key is Path or the default file.
	Bucket string
}
