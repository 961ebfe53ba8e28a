package pipelines

import "spk/pipeline-cli/pkg/model"

const (
	PATVariable            = "PAT"
	BuildScriptURLVariable = "BUILD_SCRIPT_URL"
	HldRepoVariable        = "HLD_REPO"
	ManifestRepoVariable   = "MANIFEST_REPO"
)

// requiredPipelineVariables returns the run-time variables every pipeline
// gets: the access token (secret), the build script url and the url of the
// repository the pipeline writes to, stored under repoVariable.
func requiredPipelineVariables(accessToken, buildScriptURL, repoVariable, repoURL string) map[string]model.PipelineVariable {
	return map[string]model.PipelineVariable{
		BuildScriptURLVariable: {
			AllowOverride: true,
			IsSecret:      false,
			Value:         buildScriptURL,
		},
		repoVariable: {
			AllowOverride: true,
			IsSecret:      false,
			Value:         repoURL,
		},
		PATVariable: {
			AllowOverride: true,
			IsSecret:      true,
			Value:         accessToken,
		},
	}
}

// HldToManifestVariables builds the variables of the HLD to manifest pipeline.
func HldToManifestVariables(accessToken, buildScriptURL, manifestRepoURL string) map[string]model.PipelineVariable {
	return requiredPipelineVariables(accessToken, buildScriptURL, ManifestRepoVariable, manifestRepoURL)
}

// LifecycleVariables builds the variables of the project lifecycle pipeline.
func LifecycleVariables(accessToken, buildScriptURL, hldRepoURL string) map[string]model.PipelineVariable {
	return requiredPipelineVariables(accessToken, buildScriptURL, HldRepoVariable, hldRepoURL)
}
