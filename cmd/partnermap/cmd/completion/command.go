// Package completion provides the completion command.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Supported shells.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// NewCommand creates the completion command. It writes the script for the
// requested shell to stdout.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for partnermap.

  bash:        source <(partnermap completion bash)
  zsh:         partnermap completion zsh > "${fpath[1]}/_partnermap"
  fish:        partnermap completion fish > ~/.config/fish/completions/partnermap.fish
  powershell:  partnermap completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			w := cmd.OutOrStdout()
			switch args[0] {
			case ShellBash:
				return root.GenBashCompletionV2(w, true)
			case ShellZsh:
				return root.GenZshCompletion(w)
			case ShellFish:
				return root.GenFishCompletion(w, true)
			case ShellPowerShell:
				return root.GenPowerShellCompletionWithDesc(w)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
