package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/search"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Completion prints a completion script for the given shell. Task files
complete to *.toml and --mode to the search symmetry modes.`,
		Example: `  source <(orbit completion bash)
  orbit completion zsh > "${fpath[1]}/_orbit"
  orbit completion fish > ~/.config/fish/completions/orbit.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			default:
				return root.GenBashCompletionV2(w, true)
			}
		},
	}
}

// completeTaskFile offers generator files for the first argument only.
func completeTaskFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func completeMode(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		search.ModeNone.String() + "\tno symmetry pruning",
		search.ModeOSS.String() + "\tstore canonical successors",
		search.ModeDKS.String() + "\tdetect duplicates by canonical key",
	}, cobra.ShellCompDirectiveNoFileComp
}
