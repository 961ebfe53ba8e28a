package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"spk/pipeline-cli/pkg/model"
	"spk/pipeline-cli/pkg/options"
)

// NewRootCommand returns the spk command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "spk",
		Short:         "The missing Bedrock CLI",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(NewHldCommand(deps), NewProjectCommand(deps))

	return cmd
}

// newGroupCommand returns a command that only dispatches to its subcommands.
// Running it alone prints the help; any argument that is not a subcommand is
// rejected.
func newGroupCommand(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(subcommands...)
	return cmd
}

// newDescriptorCommand returns a leaf command whose flags are bound from
// descriptor.
func newDescriptorCommand(descriptor model.CommandDescriptor, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   descriptor.Command,
		Short: short,
		Long:  descriptor.Description,
		Args:  cobra.NoArgs,
	}
	if descriptor.Alias != "" {
		cmd.Aliases = []string{descriptor.Alias}
	}
	if err := options.BindFlags(descriptor, cmd.Flags()); err != nil {
		panic(fmt.Sprintf("binding flags of %s: %v", descriptor.Command, err))
	}
	return cmd
}
