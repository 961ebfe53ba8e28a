package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"spk/pipeline-cli/pkg/gitutils"
	"spk/pipeline-cli/pkg/model"
	"spk/pipeline-cli/pkg/options"
	"spk/pipeline-cli/pkg/pipelines"
)

var projectPipelineDescriptor = model.CommandDescriptor{
	Command:     "install-lifecycle-pipeline",
	Alias:       "p",
	Description: "Install the hld lifecycle pipeline to your Azure DevOps instance. Default values are set in spk config.yaml and the git origin of the working directory, and can be overridden with option flags.",
	Options: []model.OptionDescriptor{
		{Name: "orgName", Flag: "--org-name", Shorthand: "o", Required: true, Description: "Organization Name for Azure DevOps"},
		{Name: "personalAccessToken", Flag: "--personal-access-token", Shorthand: "a", Required: true, Description: "Personal Access Token"},
		{Name: "devopsProject", Flag: "--devops-project", Shorthand: "d", Required: true, Description: "Azure DevOps Project"},
		{Name: "repoName", Flag: "--repo-name", Shorthand: "r", Required: true, Description: "Repository Name in Azure DevOps"},
		{Name: "repoUrl", Flag: "--repo-url", Shorthand: "u", Required: true, Description: "Repository URL"},
		{Name: "pipelineName", Flag: "--pipeline-name", Shorthand: "n", Required: true, Description: "Name of the pipeline to be created"},
		{Name: "hldUrl", Flag: "--hld-url", Shorthand: "l", Required: true, Description: "HLD Repository URL"},
		{Name: "buildScriptUrl", Flag: "--build-script-url", Shorthand: "b", Required: true, Description: "Build Script URL. By default it is '" + pipelines.BuildScriptURL + "'."},
		verboseOption,
	},
}

var projectPipeline = pipelineCommand{
	descriptor: projectPipelineDescriptor,
	summary:    "Install the hld lifecycle pipeline",
	configKeys: map[string]string{
		"orgName":             "org",
		"personalAccessToken": "access_token",
		"devopsProject":       "project",
		"hldUrl":              "hld_repository",
	},
	workflow: pipelines.Lifecycle,
	computed: func(ctx context.Context, deps Dependencies) map[string]options.ComputedDefault {
		var origin string
		if deps.OriginURL != nil {
			var err error
			if origin, err = deps.OriginURL(ctx); err != nil {
				logger.WithField("func", "computed").WithError(err).Debug("no git origin, repository defaults unavailable")
			}
		}
		return map[string]options.ComputedDefault{
			"repoName":       fromOrigin(origin, gitutils.GetRepositoryName),
			"repoUrl":        fromOrigin(origin, gitutils.GetRepositoryURL),
			"pipelineName":   lifecyclePipelineName,
			"buildScriptUrl": options.Constant(deps.buildScriptURL()),
		}
	},
	request: func(values model.ResolvedConfig) pipelines.Request {
		return pipelines.Request{
			OrgName:             values.Value("orgName"),
			PersonalAccessToken: values.Value("personalAccessToken"),
			DevopsProject:       values.Value("devopsProject"),
			PipelineName:        values.Value("pipelineName"),
			RepositoryName:      values.Value("repoName"),
			RepositoryURL:       values.Value("repoUrl"),
			BuildScriptURL:      values.Value("buildScriptUrl"),
			TargetRepoURL:       values.Value("hldUrl"),
		}
	},
}

func fromOrigin(origin string, derive func(string) (string, error)) options.ComputedDefault {
	return func(model.ResolvedConfig) (string, bool) {
		if origin == "" {
			return "", false
		}
		v, err := derive(origin)
		if err != nil {
			logger.WithField("func", "fromOrigin").WithError(err).Debug("no default derived from git origin")
			return "", false
		}
		return v, true
	}
}

// lifecyclePipelineName is <repository name>-lifecycle.
func lifecyclePipelineName(resolved model.ResolvedConfig) (string, bool) {
	repoName, ok := resolved.Get("repoName")
	if !ok || repoName == "" {
		return "", false
	}
	return repoName + "-lifecycle", true
}

// NewProjectCommand returns the "project" command group.
func NewProjectCommand(deps Dependencies) *cobra.Command {
	return newGroupCommand("project", "Initialize and manage your Bedrock project.",
		variableGroup.command(deps),
		projectPipeline.command(deps))
}
