package pipelines

import (
	"context"

	"spk/pipeline-cli/pkg/model"
)

const (
	// BuildScriptURL is the default build script pipelines download at run time.
	BuildScriptURL = "https://raw.githubusercontent.com/Microsoft/bedrock/master/gitops/azure-devops/build.sh"

	defaultBranch           = "master"
	maximumConcurrentBuilds = 1
	hldToManifestYamlFile   = "manifest-generation.yaml"
	lifecycleYamlFile       = "hld-lifecycle.yaml"
)

// BuildService hands out authenticated clients of the remote build service.
type BuildService interface {
	Connect(ctx context.Context, orgName, personalAccessToken string) (BuildClient, error)
}

type BuildClient interface {
	CreateDefinition(ctx context.Context, project string, spec model.PipelineDefinitionSpec) (*model.DefinitionReference, error)
	QueueBuild(ctx context.Context, project string, definitionID int) (*model.QueuedBuild, error)
}

// Workflow describes one kind of pipeline spk installs.
type Workflow struct {
	Name         string
	YamlFilePath string
	variables    func(accessToken, buildScriptURL, repoURL string) map[string]model.PipelineVariable
}

var (
	// HldToManifest renders manifests from an HLD repository.
	HldToManifest = Workflow{Name: "hld-to-manifest", YamlFilePath: hldToManifestYamlFile, variables: HldToManifestVariables}
	// Lifecycle keeps the HLD repository in sync with a project repository.
	Lifecycle = Workflow{Name: "hld-lifecycle", YamlFilePath: lifecycleYamlFile, variables: LifecycleVariables}
)

// Request carries the validated values a workflow needs.
type Request struct {
	OrgName             string
	PersonalAccessToken string
	DevopsProject       string
	PipelineName        string
	RepositoryName      string
	RepositoryURL       string
	BuildScriptURL      string
	// TargetRepoURL is the repository the pipeline writes to: the manifest
	// repository for HldToManifest, the HLD repository for Lifecycle.
	TargetRepoURL string
}

// Definition returns the pipeline definition submitted for request.
func (w Workflow) Definition(request Request) model.PipelineDefinitionSpec {
	return model.PipelineDefinitionSpec{
		Name:                    request.PipelineName,
		RepositoryName:          request.RepositoryName,
		RepositoryURL:           request.RepositoryURL,
		BranchFilters:           []string{defaultBranch},
		YamlFilePath:            w.YamlFilePath,
		YamlFileBranch:          defaultBranch,
		MaximumConcurrentBuilds: maximumConcurrentBuilds,
		Variables:               w.variables(request.PersonalAccessToken, request.BuildScriptURL, request.TargetRepoURL),
	}
}
