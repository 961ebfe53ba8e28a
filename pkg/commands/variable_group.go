package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"spk/pipeline-cli/pkg/model"
	"spk/pipeline-cli/pkg/pipelines"
)

var variableGroupDescriptor = model.CommandDescriptor{
	Command:     "create-variable-group",
	Alias:       "cvg",
	Description: "Create a new variable group in Azure DevOps project with specific variables (ACR name, HLD Repo name, Personal Access Token, Service Principal id, Service Principal password, and Azure AD tenant id).",
	Options: []model.OptionDescriptor{
		{Name: "registryName", Flag: "--registry-name", Shorthand: "r", Required: true, Description: "The name of the existing Azure Container Registry."},
		{Name: "hldRepoUrl", Flag: "--hld-repo-url", Shorthand: "d", Required: true, Description: "The high level definition (HLD) git repo url; falls back to azure_devops.hld_repository in spk config."},
		{Name: "servicePrincipalId", Flag: "--service-principal-id", Shorthand: "u", Required: true, Description: "Azure service principal id with contributor role in Azure Container Registry."},
		{Name: "servicePrincipalPassword", Flag: "--service-principal-password", Shorthand: "p", Required: true, Description: "The Azure service principal password."},
		{Name: "tenant", Flag: "--tenant", Shorthand: "t", Required: true, Description: "The Azure AD tenant id of service principal."},
		{Name: "orgName", Flag: "--org-name", Required: true, Description: "Organization name for Azure DevOps; falls back to azure_devops.org in spk config."},
		{Name: "project", Flag: "--project", Required: true, Description: "Azure DevOps project name; falls back to azure_devops.project in spk config."},
		{Name: "personalAccessToken", Flag: "--personal-access-token", Required: true, Description: "Personal access token associated with the Azure DevOps org; falls back to azure_devops.access_token in spk config."},
		verboseOption,
	},
}

var errVariableGroupName = errors.New("variable group name is required")

type variableGroupCommand struct {
	descriptor model.CommandDescriptor
	summary    string
	configKeys map[string]string
}

var variableGroup = variableGroupCommand{
	descriptor: variableGroupDescriptor,
	summary:    "Create a variable group in an Azure DevOps project",
	configKeys: map[string]string{
		"hldRepoUrl":          "hld_repository",
		"orgName":             "org",
		"project":             "project",
		"personalAccessToken": "access_token",
	},
}

func (v variableGroupCommand) command(deps Dependencies) *cobra.Command {
	cmd := newDescriptorCommand(v.descriptor, v.summary)
	cmd.Use = v.descriptor.Command + " <variable-group-name>"
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		_, err := v.execute(cmd.Context(), deps, cmd.Flags(), args[0])
		return err
	}
	return cmd
}

// execute creates the variable group name once every required value is
// resolved. Failures of the remote calls end in deps.Exit.
func (v variableGroupCommand) execute(ctx context.Context, deps Dependencies, flagSet *pflag.FlagSet, name string) (model.ValidationResult, error) {
	if name == "" {
		return nil, errVariableGroupName
	}
	log := invocationLogger(flagSet, v.descriptor)
	values, validationErrors, err := resolveAndValidate(ctx, deps, v.descriptor, v.configKeys, nil, flagSet)
	if err != nil || !validationErrors.Valid() {
		return validationErrors, err
	}
	request := pipelines.VariableGroupRequest{
		OrgName:                  values.Value("orgName"),
		PersonalAccessToken:      values.Value("personalAccessToken"),
		DevopsProject:            values.Value("project"),
		Name:                     name,
		RegistryName:             values.Value("registryName"),
		HldRepoURL:               values.Value("hldRepoUrl"),
		ServicePrincipalID:       values.Value("servicePrincipalId"),
		ServicePrincipalPassword: values.Value("servicePrincipalPassword"),
		TenantID:                 values.Value("tenant"),
	}
	log.Debugf("access options: org %s, project %s", request.OrgName, request.DevopsProject)
	// The creator has already reported a failure through deps.Exit.
	_, _ = pipelines.NewVariableGroupCreator(deps.VariableGroups, deps.Exit).WithLogger(log).Create(ctx, request)
	return nil, nil
}
