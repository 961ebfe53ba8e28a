package pipelines

import (
	"errors"
	"fmt"

	"spk/pipeline-cli/pkg/model"
)

// ExitFailure is the status handed to the exit function when provisioning fails.
const ExitFailure = 1

// ErrMissingDefinitionID is reported when the build service accepted a
// definition but returned no id for it.
var ErrMissingDefinitionID = errors.New("invalid build definition created, parameter 'id' is missing")

// ErrMissingVariableGroup is reported when the service answered a variable
// group creation without describing the created group.
var ErrMissingVariableGroup = errors.New("invalid variable group created, response is empty")

// StageError is the failure of one provisioning stage. Resource names the
// pipeline or variable group being provisioned.
type StageError struct {
	Stage    model.Stage
	Resource string
	Cause    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.Resource, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
