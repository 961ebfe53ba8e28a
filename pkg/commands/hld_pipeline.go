package commands

import (
	"context"

	"github.com/spf13/cobra"
	"spk/pipeline-cli/pkg/gitutils"
	"spk/pipeline-cli/pkg/model"
	"spk/pipeline-cli/pkg/options"
	"spk/pipeline-cli/pkg/pipelines"
)

var hldPipelineDescriptor = model.CommandDescriptor{
	Command:     "install-manifest-pipeline",
	Alias:       "p",
	Description: "Install the manifest generation pipeline to your Azure DevOps instance. Default values are set in spk config.yaml and can be overridden with option flags.",
	// Options deriving a default from another option are declared after it.
	Options: []model.OptionDescriptor{
		{Name: "orgName", Flag: "--org-name", Shorthand: "o", Required: true, Description: "Organization Name for Azure DevOps"},
		{Name: "personalAccessToken", Flag: "--personal-access-token", Shorthand: "p", Required: true, Description: "Personal Access Token"},
		{Name: "devopsProject", Flag: "--devops-project", Shorthand: "d", Required: true, Description: "Azure DevOps Project"},
		{Name: "hldUrl", Flag: "--hld-url", Shorthand: "u", Required: true, Description: "HLD Repository URL"},
		{Name: "hldName", Flag: "--hld-name", Shorthand: "e", Required: true, Description: "Name of the HLD repository"},
		{Name: "manifestUrl", Flag: "--manifest-url", Shorthand: "m", Required: true, Description: "Manifest Repository URL"},
		{Name: "pipelineName", Flag: "--pipeline-name", Shorthand: "n", Required: true, Description: "Name of the pipeline to be created"},
		{Name: "buildScriptUrl", Flag: "--build-script-url", Shorthand: "b", Required: true, Description: "Build Script URL. By default it is '" + pipelines.BuildScriptURL + "'."},
		verboseOption,
	},
}

var hldPipeline = pipelineCommand{
	descriptor: hldPipelineDescriptor,
	summary:    "Install the HLD to manifest pipeline",
	configKeys: map[string]string{
		"orgName":             "org",
		"personalAccessToken": "access_token",
		"devopsProject":       "project",
		"hldUrl":              "hld_repository",
		"manifestUrl":         "manifest_repository",
	},
	workflow: pipelines.HldToManifest,
	computed: func(_ context.Context, deps Dependencies) map[string]options.ComputedDefault {
		return map[string]options.ComputedDefault{
			"hldName":        options.Derived("hldUrl", gitutils.GetRepositoryName),
			"pipelineName":   hldToManifestPipelineName,
			"buildScriptUrl": options.Constant(deps.buildScriptURL()),
		}
	},
	request: func(values model.ResolvedConfig) pipelines.Request {
		return pipelines.Request{
			OrgName:             values.Value("orgName"),
			PersonalAccessToken: values.Value("personalAccessToken"),
			DevopsProject:       values.Value("devopsProject"),
			PipelineName:        values.Value("pipelineName"),
			RepositoryName:      values.Value("hldName"),
			RepositoryURL:       values.Value("hldUrl"),
			BuildScriptURL:      values.Value("buildScriptUrl"),
			TargetRepoURL:       values.Value("manifestUrl"),
		}
	},
}

// hldToManifestPipelineName is <hld name>-to-<manifest repository name>.
func hldToManifestPipelineName(resolved model.ResolvedConfig) (string, bool) {
	hldName, ok := resolved.Get("hldName")
	if !ok || hldName == "" {
		return "", false
	}
	manifestName, ok := options.Derived("manifestUrl", gitutils.GetRepositoryName)(resolved)
	if !ok {
		return "", false
	}
	return hldName + "-to-" + manifestName, true
}

// NewHldCommand returns the "hld" command group.
func NewHldCommand(deps Dependencies) *cobra.Command {
	return newGroupCommand("hld", "Commands for initializing and managing a bedrock HLD repository.",
		hldPipeline.command(deps))
}
