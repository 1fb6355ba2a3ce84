package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for spacelayout.

Besides command and flag names the scripts complete:
  layout, render, analyze, view   request files (*.toml, *.json)
  render --format                 svg, png, pdf, json
  catalog                         space types (classroom, parking, ...)

Bash:
  $ source <(spacelayout completion bash)
  $ spacelayout completion bash > /etc/bash_completion.d/spacelayout

Zsh:
  $ spacelayout completion zsh > "${fpath[1]}/_spacelayout"

Fish:
  $ spacelayout completion fish > ~/.config/fish/completions/spacelayout.fish

PowerShell:
  PS> spacelayout completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions attaches argument and flag completions to the
// subcommands of root.
func registerCompletions(root *cobra.Command) {
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "layout", "render", "analyze", "view":
			sub.ValidArgsFunction = completeRequestFile
		case "catalog":
			sub.ValidArgsFunction = completeSpaceType
		}
		if sub.Name() == "render" {
			_ = sub.RegisterFlagCompletionFunc("format", completeFormat)
		}
	}
}

func completeRequestFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeSpaceType(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, st := range catalog.AllSpaceTypes() {
		names = append(names, st.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	formats := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats, cobra.ShellCompDirectiveNoFileComp
}
