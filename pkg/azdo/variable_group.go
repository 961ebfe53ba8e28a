package azdo

import (
	"context"
	"fmt"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/taskagent"
	logger "github.com/sirupsen/logrus"
	"spk/pipeline-cli/pkg/model"
	"spk/pipeline-cli/pkg/pipelines"
)

// VariableGroupClient wraps the task agent client of one organization.
type VariableGroupClient struct {
	taskAgentInstance taskAgentInstance
}

type taskAgentInstance struct {
	organization string
	client       taskagent.Client
}

func (s Service) ConnectVariableGroups(ctx context.Context, orgName, personalAccessToken string) (pipelines.VariableGroupClient, error) {
	connection := azuredevops.NewPatConnection(s.OrganizationURL(orgName), personalAccessToken)
	taskAgentClient, err := taskagent.NewClient(ctx, connection)
	if err != nil {
		return nil, fmt.Errorf("connecting to organization %s: %w", orgName, err)
	}
	logger.WithField("func", "ConnectVariableGroups").Debugf("connected to %s", s.OrganizationURL(orgName))
	return &VariableGroupClient{taskAgentInstance: taskAgentInstance{organization: orgName, client: taskAgentClient}}, nil
}

func (c *VariableGroupClient) AddVariableGroup(ctx context.Context, group model.VariableGroupSpec) (*model.VariableGroupReference, error) {
	created, err := c.taskAgentInstance.client.AddVariableGroup(ctx, taskagent.AddVariableGroupArgs{
		VariableGroupParameters: VariableGroupParameters(group),
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, nil
	}
	ref := &model.VariableGroupReference{ID: created.Id}
	if created.Name != nil {
		ref.Name = *created.Name
	}
	logger.WithField("func", "AddVariableGroup").Debugf("added variable group %s in organization %s", ref.Name, c.taskAgentInstance.organization)
	return ref, nil
}

// VariableGroupParameters converts group into the request body of a new
// variable group shared with group.Project.
func VariableGroupParameters(group model.VariableGroupSpec) *taskagent.VariableGroupParameters {
	name := group.Name
	description := group.Description
	groupType := group.Type
	project := group.Project

	variables := make(map[string]interface{}, len(group.Variables))
	for k, v := range group.Variables {
		value, isSecret := v.Value, v.IsSecret
		variables[k] = taskagent.VariableValue{
			IsSecret: &isSecret,
			Value:    &value,
		}
	}
	references := []taskagent.VariableGroupProjectReference{
		{
			Name:             &name,
			Description:      &description,
			ProjectReference: &taskagent.ProjectReference{Name: &project},
		},
	}

	return &taskagent.VariableGroupParameters{
		Name:                           &name,
		Description:                    &description,
		Type:                           &groupType,
		Variables:                      &variables,
		VariableGroupProjectReferences: &references,
	}
}
