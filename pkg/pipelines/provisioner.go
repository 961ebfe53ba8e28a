package pipelines

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"spk/pipeline-cli/pkg/model"
)

type Provisioner struct {
	service BuildService
	exitFn  func(status int)
	log     *logger.Entry
}

// NewProvisioner returns a Provisioner that calls exitFn with ExitFailure
// once whenever an installation fails.
func NewProvisioner(service BuildService, exitFn func(status int)) Provisioner {
	return Provisioner{service: service, exitFn: exitFn, log: logger.NewEntry(logger.StandardLogger())}
}

// WithLogger returns a copy of p logging through log.
func (p Provisioner) WithLogger(log *logger.Entry) Provisioner {
	p.log = log
	return p
}

// Install creates the pipeline definition described by workflow and request
// and queues its first build. The three remote calls run strictly in order
// and the first failure ends the run. Nothing created remotely is removed
// on failure: a definition whose build could not be queued stays in place.
func (p Provisioner) Install(ctx context.Context, workflow Workflow, request Request) model.ProvisioningOutcome {
	log := p.log.WithFields(logger.Fields{"func": "Install", "workflow": workflow.Name, "pipeline": request.PipelineName})
	outcome := p.run(ctx, workflow, request, log)
	if !outcome.Succeeded() {
		log.WithField("stage", outcome.FailedStage).WithError(outcome.Cause).Errorf("error occurred installing pipeline %s", request.PipelineName)
		p.exitFn(ExitFailure)
		return outcome
	}
	log.Infof("queued build %d for pipeline %s (definition %d)", outcome.BuildID, request.PipelineName, outcome.DefinitionID)
	return outcome
}

func (p Provisioner) run(ctx context.Context, workflow Workflow, request Request, log *logger.Entry) model.ProvisioningOutcome {
	var client BuildClient
	var definitionID int
	var build *model.QueuedBuild
	state := model.StateInit
	for {
		log.WithField("state", state).Debug("provisioning")
		switch state {
		case model.StateInit:
			c, err := p.service.Connect(ctx, request.OrgName, request.PersonalAccessToken)
			if err != nil {
				return failed(model.StageClientAcquisition, request, err, log)
			}
			log.Info("fetched DevOps client")
			client = c
			state = model.StateClientAcquired
		case model.StateClientAcquired:
			definition := workflow.Definition(request)
			log.Debugf("creating pipeline for project '%s' with definition '%s' from '%s'", request.DevopsProject, definition.Name, definition.RepositoryURL)
			ref, err := client.CreateDefinition(ctx, request.DevopsProject, definition)
			if err == nil && (ref == nil || ref.ID == nil) {
				err = ErrMissingDefinitionID
			}
			if err != nil {
				return failed(model.StageDefinitionCreation, request, err, log)
			}
			definitionID = *ref.ID
			log.Infof("created pipeline for %s", request.PipelineName)
			log.Infof("pipeline ID: %d", definitionID)
			state = model.StateDefinitionCreated
		case model.StateDefinitionCreated:
			b, err := client.QueueBuild(ctx, request.DevopsProject, definitionID)
			if err != nil {
				outcome := failed(model.StageBuildQueue, request, err, log)
				outcome.DefinitionID = definitionID
				log.Warnf("pipeline definition %d stays in project %s without a queued build", definitionID, request.DevopsProject)
				return outcome
			}
			build = b
			state = model.StateBuildQueued
		case model.StateBuildQueued:
			var buildID int
			if build != nil {
				buildID = build.ID
			}
			return model.Succeeded(definitionID, buildID)
		default:
			panic(fmt.Sprintf("unexpected provisioning state %s", state))
		}
	}
}

func failed(stage model.Stage, request Request, cause error, log *logger.Entry) model.ProvisioningOutcome {
	switch stage {
	case model.StageClientAcquisition:
		log.WithError(cause).Error("error occurred while fetching DevOps client")
	case model.StageDefinitionCreation:
		log.WithError(cause).Errorf("error occurred during pipeline creation for %s", request.PipelineName)
	case model.StageBuildQueue:
		log.WithError(cause).Errorf("error occurred when queueing build for %s", request.PipelineName)
	}
	return model.FailedAt(stage, &StageError{Stage: stage, Resource: request.PipelineName, Cause: cause})
}
