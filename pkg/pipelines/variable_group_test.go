package pipelines

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"spk/pipeline-cli/pkg/model"
)

type fakeVariableGroupService struct {
	connectErr error
	group      *model.VariableGroupReference
	addErr     error
	calls      []string
	groups     []model.VariableGroupSpec
}

func (f *fakeVariableGroupService) ConnectVariableGroups(_ context.Context, orgName, personalAccessToken string) (VariableGroupClient, error) {
	f.calls = append(f.calls, "connect")
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f, nil
}

func (f *fakeVariableGroupService) AddVariableGroup(_ context.Context, group model.VariableGroupSpec) (*model.VariableGroupReference, error) {
	f.calls = append(f.calls, "add")
	f.groups = append(f.groups, group)
	return f.group, f.addErr
}

func variableGroupRequest() VariableGroupRequest {
	return VariableGroupRequest{
		OrgName:                  "o",
		PersonalAccessToken:      "pat",
		DevopsProject:            "proj",
		Name:                     "fabrikam-vg",
		RegistryName:             "fabrikamacr",
		HldRepoURL:               "https://h",
		ServicePrincipalID:       "sp-id",
		ServicePrincipalPassword: "sp-pass",
		TenantID:                 "tenant",
	}
}

func TestVariableGroupRequest_Spec(t *testing.T) {
	spec := variableGroupRequest().Spec()

	assert.Equal(t, "fabrikam-vg", spec.Name)
	assert.Equal(t, "proj", spec.Project)
	assert.Equal(t, "Vsts", spec.Type)
	assert.Equal(t, "Created from spk CLI", spec.Description)
	assert.Equal(t, map[string]model.PipelineVariable{
		"ACR_NAME":  {Value: "fabrikamacr"},
		"HLD_REPO":  {Value: "https://h"},
		"PAT":       {Value: "pat", IsSecret: true},
		"SP_APP_ID": {Value: "sp-id", IsSecret: true},
		"SP_PASS":   {Value: "sp-pass", IsSecret: true},
		"SP_TENANT": {Value: "tenant", IsSecret: true},
	}, spec.Variables)
}

func TestVariableGroupCreator_Create(t *testing.T) {
	remoteErr := errors.New("remote failure")
	tests := []struct {
		name      string
		service   *fakeVariableGroupService
		wantCalls []string
		wantExits []int
		wantStage model.Stage
		wantErr   error
	}{
		{
			name:      "created",
			service:   &fakeVariableGroupService{group: &model.VariableGroupReference{ID: intPtr(5), Name: "fabrikam-vg"}},
			wantCalls: []string{"connect", "add"},
		},
		{
			name:      "client cannot be acquired",
			service:   &fakeVariableGroupService{connectErr: remoteErr},
			wantCalls: []string{"connect"},
			wantExits: []int{1},
			wantStage: model.StageClientAcquisition,
			wantErr:   remoteErr,
		},
		{
			name:      "group cannot be added",
			service:   &fakeVariableGroupService{addErr: remoteErr},
			wantCalls: []string{"connect", "add"},
			wantExits: []int{1},
			wantStage: model.StageVariableGroupCreation,
			wantErr:   remoteErr,
		},
		{
			name:      "empty response",
			service:   &fakeVariableGroupService{},
			wantCalls: []string{"connect", "add"},
			wantExits: []int{1},
			wantStage: model.StageVariableGroupCreation,
			wantErr:   ErrMissingVariableGroup,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exits := &exitRecorder{}
			group, err := NewVariableGroupCreator(tt.service, exits.exit).Create(context.Background(), variableGroupRequest())

			assert.Equal(t, tt.wantCalls, tt.service.calls)
			assert.Equal(t, tt.wantExits, exits.statuses)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, 5, *group.ID)
				return
			}
			assert.Nil(t, group)
			assert.ErrorIs(t, err, tt.wantErr)
			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, tt.wantStage, stageErr.Stage)
			assert.Equal(t, "fabrikam-vg", stageErr.Resource)
		})
	}
}
