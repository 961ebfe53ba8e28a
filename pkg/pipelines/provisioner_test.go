package pipelines

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"spk/pipeline-cli/pkg/model"
)

type fakeBuildService struct {
	connectErr  error
	definition  *model.DefinitionReference
	createErr   error
	build       *model.QueuedBuild
	queueErr    error
	calls       []string
	definitions []model.PipelineDefinitionSpec
	queued      []int
}

func (f *fakeBuildService) Connect(_ context.Context, orgName, personalAccessToken string) (BuildClient, error) {
	f.calls = append(f.calls, "connect")
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f, nil
}

func (f *fakeBuildService) CreateDefinition(_ context.Context, project string, spec model.PipelineDefinitionSpec) (*model.DefinitionReference, error) {
	f.calls = append(f.calls, "create")
	f.definitions = append(f.definitions, spec)
	return f.definition, f.createErr
}

func (f *fakeBuildService) QueueBuild(_ context.Context, project string, definitionID int) (*model.QueuedBuild, error) {
	f.calls = append(f.calls, "queue")
	f.queued = append(f.queued, definitionID)
	return f.build, f.queueErr
}

type exitRecorder struct {
	statuses []int
}

func (e *exitRecorder) exit(status int) {
	e.statuses = append(e.statuses, status)
}

func intPtr(i int) *int {
	return &i
}

func lifecycleRequest() Request {
	return Request{
		OrgName:             "o",
		PersonalAccessToken: "p",
		DevopsProject:       "proj",
		PipelineName:        "r-lifecycle",
		RepositoryName:      "r",
		RepositoryURL:       "https://r",
		BuildScriptURL:      "https://b",
		TargetRepoURL:       "https://h",
	}
}

func TestProvisioner_Install(t *testing.T) {
	remoteErr := errors.New("remote failure")
	tests := []struct {
		name        string
		service     *fakeBuildService
		wantState   model.State
		wantStage   model.Stage
		wantCalls   []string
		wantExits   []int
		wantErr     error
		wantDefID   int
		wantBuildID int
	}{
		{
			name:        "all stages succeed",
			service:     &fakeBuildService{definition: &model.DefinitionReference{ID: intPtr(10)}, build: &model.QueuedBuild{ID: 77}},
			wantState:   model.StateDone,
			wantCalls:   []string{"connect", "create", "queue"},
			wantDefID:   10,
			wantBuildID: 77,
		},
		{
			name:      "client cannot be acquired",
			service:   &fakeBuildService{connectErr: remoteErr},
			wantState: model.StateFailed,
			wantStage: model.StageClientAcquisition,
			wantCalls: []string{"connect"},
			wantExits: []int{1},
			wantErr:   remoteErr,
		},
		{
			name:      "definition cannot be created",
			service:   &fakeBuildService{createErr: remoteErr},
			wantState: model.StateFailed,
			wantStage: model.StageDefinitionCreation,
			wantCalls: []string{"connect", "create"},
			wantExits: []int{1},
			wantErr:   remoteErr,
		},
		{
			name:      "definition created without id",
			service:   &fakeBuildService{definition: &model.DefinitionReference{Name: "r-lifecycle"}, queueErr: remoteErr},
			wantState: model.StateFailed,
			wantStage: model.StageDefinitionCreation,
			wantCalls: []string{"connect", "create"},
			wantExits: []int{1},
			wantErr:   ErrMissingDefinitionID,
		},
		{
			name:      "definition response missing",
			service:   &fakeBuildService{},
			wantState: model.StateFailed,
			wantStage: model.StageDefinitionCreation,
			wantCalls: []string{"connect", "create"},
			wantExits: []int{1},
			wantErr:   ErrMissingDefinitionID,
		},
		{
			name:      "build cannot be queued",
			service:   &fakeBuildService{definition: &model.DefinitionReference{ID: intPtr(10)}, queueErr: remoteErr},
			wantState: model.StateFailed,
			wantStage: model.StageBuildQueue,
			wantCalls: []string{"connect", "create", "queue"},
			wantExits: []int{1},
			wantErr:   remoteErr,
			wantDefID: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exits := &exitRecorder{}
			outcome := NewProvisioner(tt.service, exits.exit).Install(context.Background(), Lifecycle, lifecycleRequest())

			assert.Equal(t, tt.wantState, outcome.State)
			assert.Equal(t, tt.wantCalls, tt.service.calls)
			assert.Equal(t, tt.wantExits, exits.statuses)
			assert.Equal(t, tt.wantDefID, outcome.DefinitionID)
			assert.Equal(t, tt.wantBuildID, outcome.BuildID)
			if tt.wantErr == nil {
				assert.NoError(t, outcome.Cause)
				assert.True(t, outcome.Succeeded())
				return
			}
			assert.Equal(t, tt.wantStage, outcome.FailedStage)
			assert.ErrorIs(t, outcome.Cause, tt.wantErr)
			var stageErr *StageError
			require.ErrorAs(t, outcome.Cause, &stageErr)
			assert.Equal(t, tt.wantStage, stageErr.Stage)
			assert.Equal(t, "r-lifecycle", stageErr.Resource)
		})
	}
}

func TestProvisioner_InstallSubmitsWorkflowDefinition(t *testing.T) {
	service := &fakeBuildService{definition: &model.DefinitionReference{ID: intPtr(3)}, build: &model.QueuedBuild{ID: 4}}
	exits := &exitRecorder{}
	NewProvisioner(service, exits.exit).Install(context.Background(), Lifecycle, lifecycleRequest())

	require.Len(t, service.definitions, 1)
	definition := service.definitions[0]
	assert.Equal(t, "r-lifecycle", definition.Name)
	assert.Equal(t, "r", definition.RepositoryName)
	assert.Equal(t, "https://r", definition.RepositoryURL)
	assert.Equal(t, []string{"master"}, definition.BranchFilters)
	assert.Equal(t, "master", definition.YamlFileBranch)
	assert.Equal(t, "hld-lifecycle.yaml", definition.YamlFilePath)
	assert.Equal(t, 1, definition.MaximumConcurrentBuilds)
	assert.Equal(t, "https://h", definition.Variables[HldRepoVariable].Value)
	assert.Equal(t, []int{3}, service.queued)
	assert.Empty(t, exits.statuses)
}
