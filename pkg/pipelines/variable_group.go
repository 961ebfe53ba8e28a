package pipelines

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"spk/pipeline-cli/pkg/model"
)

const (
	ACRNameVariable  = "ACR_NAME"
	SPAppIDVariable  = "SP_APP_ID"
	SPPassVariable   = "SP_PASS"
	SPTenantVariable = "SP_TENANT"

	variableGroupDescription = "Created from spk CLI"
	variableGroupType        = "Vsts"
)

// VariableGroupService hands out authenticated clients for variable groups.
type VariableGroupService interface {
	ConnectVariableGroups(ctx context.Context, orgName, personalAccessToken string) (VariableGroupClient, error)
}

type VariableGroupClient interface {
	AddVariableGroup(ctx context.Context, group model.VariableGroupSpec) (*model.VariableGroupReference, error)
}

// VariableGroupRequest carries the validated values of a new variable group.
type VariableGroupRequest struct {
	OrgName                  string
	PersonalAccessToken      string
	DevopsProject            string
	Name                     string
	RegistryName             string
	HldRepoURL               string
	ServicePrincipalID       string
	ServicePrincipalPassword string
	TenantID                 string
}

// Spec returns the variable group submitted for request. The access token
// and the service principal credentials are stored as secrets.
func (r VariableGroupRequest) Spec() model.VariableGroupSpec {
	return model.VariableGroupSpec{
		Name:        r.Name,
		Description: variableGroupDescription,
		Type:        variableGroupType,
		Project:     r.DevopsProject,
		Variables: map[string]model.PipelineVariable{
			ACRNameVariable:  {Value: r.RegistryName},
			HldRepoVariable:  {Value: r.HldRepoURL},
			PATVariable:      {Value: r.PersonalAccessToken, IsSecret: true},
			SPAppIDVariable:  {Value: r.ServicePrincipalID, IsSecret: true},
			SPPassVariable:   {Value: r.ServicePrincipalPassword, IsSecret: true},
			SPTenantVariable: {Value: r.TenantID, IsSecret: true},
		},
	}
}

type VariableGroupCreator struct {
	service VariableGroupService
	exitFn  func(status int)
	log     *logger.Entry
}

// NewVariableGroupCreator returns a VariableGroupCreator that calls exitFn
// with ExitFailure once whenever a creation fails.
func NewVariableGroupCreator(service VariableGroupService, exitFn func(status int)) VariableGroupCreator {
	return VariableGroupCreator{service: service, exitFn: exitFn, log: logger.NewEntry(logger.StandardLogger())}
}

func (c VariableGroupCreator) WithLogger(log *logger.Entry) VariableGroupCreator {
	c.log = log
	return c
}

// Create connects to the organization and adds the variable group.
func (c VariableGroupCreator) Create(ctx context.Context, request VariableGroupRequest) (*model.VariableGroupReference, error) {
	log := c.log.WithFields(logger.Fields{"func": "Create", "variableGroup": request.Name})
	log.Infof("creating variable group from group definition '%s'", request.Name)

	client, err := c.service.ConnectVariableGroups(ctx, request.OrgName, request.PersonalAccessToken)
	if err != nil {
		return nil, c.fail(log, model.StageClientAcquisition, request.Name, err)
	}
	group, err := client.AddVariableGroup(ctx, request.Spec())
	if err == nil && group == nil {
		err = ErrMissingVariableGroup
	}
	if err != nil {
		return nil, c.fail(log, model.StageVariableGroupCreation, request.Name, err)
	}
	id := 0
	if group.ID != nil {
		id = *group.ID
	}
	log.Infof("successfully created variable group %s (id %d) in project %s", group.Name, id, request.DevopsProject)
	return group, nil
}

func (c VariableGroupCreator) fail(log *logger.Entry, stage model.Stage, name string, cause error) error {
	err := &StageError{Stage: stage, Resource: name, Cause: cause}
	log.WithField("stage", stage).WithError(cause).Error("error occurred while creating variable group")
	c.exitFn(ExitFailure)
	return err
}
