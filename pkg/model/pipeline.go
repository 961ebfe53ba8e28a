package model

import "fmt"

type PipelineVariable struct {
	Value         string
	IsSecret      bool
	AllowOverride bool
}

type PipelineDefinitionSpec struct {
	Name                    string
	RepositoryName          string
	RepositoryURL           string
	BranchFilters           []string
	YamlFilePath            string
	YamlFileBranch          string
	MaximumConcurrentBuilds int
	Variables               map[string]PipelineVariable
}

// DefinitionReference is what the build service returns for a created
// definition. ID is nil when the response carried no identifier.
type DefinitionReference struct {
	ID   *int
	Name string
}

// VariableGroupSpec is a variable group created in a project.
type VariableGroupSpec struct {
	Name        string
	Description string
	Type        string
	Project     string
	Variables   map[string]PipelineVariable
}

type VariableGroupReference struct {
	ID   *int
	Name string
}

type QueuedBuild struct {
	ID          int
	BuildNumber string
}

type State int

const (
	StateInit State = iota
	StateClientAcquired
	StateDefinitionCreated
	StateBuildQueued
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateClientAcquired:
		return "ClientAcquired"
	case StateDefinitionCreated:
		return "DefinitionCreated"
	case StateBuildQueued:
		return "BuildQueued"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Stage names the remote call a failed provisioning run stopped at.
type Stage string

const (
	StageClientAcquisition     Stage = "ClientAcquisition"
	StageDefinitionCreation    Stage = "DefinitionCreation"
	StageBuildQueue            Stage = "BuildQueue"
	StageVariableGroupCreation Stage = "VariableGroupCreation"
)

type ProvisioningOutcome struct {
	State        State
	DefinitionID int
	BuildID      int
	FailedStage  Stage
	Cause        error
}

func Succeeded(definitionID, buildID int) ProvisioningOutcome {
	return ProvisioningOutcome{State: StateDone, DefinitionID: definitionID, BuildID: buildID}
}

func FailedAt(stage Stage, cause error) ProvisioningOutcome {
	return ProvisioningOutcome{State: StateFailed, FailedStage: stage, Cause: cause}
}

func (o ProvisioningOutcome) Succeeded() bool {
	return o.State == StateDone
}
