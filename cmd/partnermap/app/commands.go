package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/partnermap/cmd/partnermap/cmd/completion"
	"github.com/agentstation/partnermap/cmd/partnermap/cmd/fetch"
	"github.com/agentstation/partnermap/cmd/partnermap/cmd/run"
)

// NewRunCommand creates the run command with app dependencies.
func (a *App) NewRunCommand() *cobra.Command {
	return run.NewCommand(a)
}

// NewFetchCommand creates the fetch command with app dependencies.
func (a *App) NewFetchCommand() *cobra.Command {
	return fetch.NewCommand(a)
}

// NewCompletionCommand creates the shell completion command.
func (a *App) NewCompletionCommand() *cobra.Command {
	return completion.NewCommand()
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("partnermap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:     %s\n", a.commit)
				cmd.Printf("  built:      %s\n", a.date)
				cmd.Printf("  built by:   %s\n", a.builtBy)
				cmd.Printf("  go version: %s\n", runtime.Version())
				cmd.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
