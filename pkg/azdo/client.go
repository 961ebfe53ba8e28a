package azdo

import (
	"context"
	"fmt"
	"strings"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/build"
	logger "github.com/sirupsen/logrus"
	"spk/pipeline-cli/pkg/model"
	"spk/pipeline-cli/pkg/pipelines"
)

const organizationBaseURL = "https://dev.azure.com/"

// Service connects to Azure DevOps organizations.
type Service struct {
	baseURL string
}

func NewService() Service {
	return Service{baseURL: organizationBaseURL}
}

// Client wraps the build client of one organization.
type Client struct {
	buildInstance buildInstance
}

type buildInstance struct {
	organization string
	client       build.Client
}

// OrganizationURL returns the url of an organization, e.g.
// https://dev.azure.com/myorg.
func (s Service) OrganizationURL(orgName string) string {
	return strings.TrimSuffix(s.baseURL, "/") + "/" + orgName
}

// Connect authenticates with a personal access token. build.NewClient
// resolves the build resource area of the organization, so a bad
// organization or token fails here.
func (s Service) Connect(ctx context.Context, orgName, personalAccessToken string) (pipelines.BuildClient, error) {
	connection := azuredevops.NewPatConnection(s.OrganizationURL(orgName), personalAccessToken)
	buildClient, err := build.NewClient(ctx, connection)
	if err != nil {
		return nil, fmt.Errorf("connecting to organization %s: %w", orgName, err)
	}
	logger.WithField("func", "Connect").Debugf("connected to %s", s.OrganizationURL(orgName))
	return &Client{buildInstance: buildInstance{organization: orgName, client: buildClient}}, nil
}

func (c *Client) CreateDefinition(ctx context.Context, project string, spec model.PipelineDefinitionSpec) (*model.DefinitionReference, error) {
	definition := DefinitionForAzureRepoPipeline(spec)
	created, err := c.buildInstance.client.CreateDefinition(ctx, build.CreateDefinitionArgs{
		Definition: definition,
		Project:    &project,
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, nil
	}
	ref := &model.DefinitionReference{ID: created.Id}
	if created.Name != nil {
		ref.Name = *created.Name
	}
	return ref, nil
}

func (c *Client) QueueBuild(ctx context.Context, project string, definitionID int) (*model.QueuedBuild, error) {
	queued, err := c.buildInstance.client.QueueBuild(ctx, build.QueueBuildArgs{
		Build: &build.Build{
			Definition: &build.DefinitionReference{Id: &definitionID},
		},
		Project: &project,
	})
	if err != nil {
		return nil, err
	}
	ret := &model.QueuedBuild{}
	if queued != nil {
		if queued.Id != nil {
			ret.ID = *queued.Id
		}
		if queued.BuildNumber != nil {
			ret.BuildNumber = *queued.BuildNumber
		}
	}
	logger.WithField("func", "QueueBuild").Infof("queued build %d in organization %s for definition %d", ret.ID, c.buildInstance.organization, definitionID)
	return ret, nil
}
