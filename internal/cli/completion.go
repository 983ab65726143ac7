package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for stylebox.

To load completions:

Bash:
  $ source <(stylebox completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ stylebox completion bash > /etc/bash_completion.d/stylebox
  # macOS:
  $ stylebox completion bash > $(brew --prefix)/etc/bash_completion.d/stylebox

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ stylebox completion zsh > "${fpath[1]}/_stylebox"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ stylebox completion fish | source

  # To load completions for each session, execute once:
  $ stylebox completion fish > ~/.config/fish/completions/stylebox.fish

PowerShell:
  PS> stylebox completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> stylebox completion powershell > stylebox.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
