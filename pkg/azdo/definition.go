package azdo

import (
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/build"
	"spk/pipeline-cli/pkg/model"
)

const (
	hostedAgentQueue   = "Hosted Ubuntu 1604"
	azureRepoType      = "TfsGit"
	yamlProcessType    = 2
	yamlSettingsSource = 2
)

// DefinitionForAzureRepoPipeline converts spec into a YAML build definition
// on an Azure Repos repository, triggered by commits to the branch filters.
func DefinitionForAzureRepoPipeline(spec model.PipelineDefinitionSpec) *build.BuildDefinition {
	definitionType := build.DefinitionTypeValues.Build
	processType := yamlProcessType
	settingsSource := yamlSettingsSource
	triggerType := build.DefinitionTriggerTypeValues.ContinuousIntegration
	repositoryType := azureRepoType
	queueName := hostedAgentQueue
	branch := "refs/heads/" + spec.YamlFileBranch
	branchFilters := append([]string(nil), spec.BranchFilters...)
	maxConcurrent := spec.MaximumConcurrentBuilds
	name := spec.Name
	repositoryName := spec.RepositoryName
	repositoryURL := spec.RepositoryURL
	yamlFile := spec.YamlFilePath

	variables := make(map[string]build.BuildDefinitionVariable, len(spec.Variables))
	for k, v := range spec.Variables {
		value, isSecret, allowOverride := v.Value, v.IsSecret, v.AllowOverride
		variables[k] = build.BuildDefinitionVariable{
			AllowOverride: &allowOverride,
			IsSecret:      &isSecret,
			Value:         &value,
		}
	}

	triggers := []interface{}{
		build.ContinuousIntegrationTrigger{
			TriggerType:                  &triggerType,
			BranchFilters:                &branchFilters,
			MaxConcurrentBuildsPerBranch: &maxConcurrent,
			SettingsSourceType:           &settingsSource,
		},
	}

	return &build.BuildDefinition{
		Name: &name,
		Type: &definitionType,
		Repository: &build.BuildRepository{
			Name:          &repositoryName,
			Url:           &repositoryURL,
			Type:          &repositoryType,
			DefaultBranch: &branch,
		},
		Process: build.YamlProcess{
			Type:         &processType,
			YamlFilename: &yamlFile,
		},
		Queue:     &build.AgentPoolQueue{Name: &queueName},
		Triggers:  &triggers,
		Variables: &variables,
	}
}
