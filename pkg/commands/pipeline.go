package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"spk/pipeline-cli/pkg/config"
	"spk/pipeline-cli/pkg/model"
	"spk/pipeline-cli/pkg/options"
	"spk/pipeline-cli/pkg/pipelines"
	"spk/pipeline-cli/pkg/secrets"
)

const (
	optionPersonalAccessToken = "personalAccessToken"
	optionVerbose             = "verbose"
)

// Dependencies are the collaborators of the spk commands.
type Dependencies struct {
	Environment    config.Environment
	Service        pipelines.BuildService
	VariableGroups pipelines.VariableGroupService
	// Exit terminates the invocation with a status; it must not return
	// control to the command in production.
	Exit       func(status int)
	LoadConfig func() (config.Config, error)
	OriginURL  func(ctx context.Context) (string, error)
	// TokenSource is created on demand, only when the configuration points
	// at an access token secret.
	TokenSource func() (secrets.TokenSource, error)
}

func (d Dependencies) buildScriptURL() string {
	if d.Environment.BuildScriptURL != "" {
		return d.Environment.BuildScriptURL
	}
	return pipelines.BuildScriptURL
}

// pipelineCommand installs one pipeline workflow.
type pipelineCommand struct {
	descriptor model.CommandDescriptor
	summary    string
	// configKeys maps option names to keys of the azure_devops config section.
	configKeys map[string]string
	workflow   pipelines.Workflow
	computed   func(ctx context.Context, deps Dependencies) map[string]options.ComputedDefault
	request    func(values model.ResolvedConfig) pipelines.Request
}

func (p pipelineCommand) command(deps Dependencies) *cobra.Command {
	cmd := newDescriptorCommand(p.descriptor, p.summary)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		_, err := p.execute(cmd.Context(), deps, cmd.Flags())
		return err
	}
	return cmd
}

// execute resolves and validates the options and, when nothing is
// missing, installs the pipeline. The validation result is returned so
// callers can see what was reported.
func (p pipelineCommand) execute(ctx context.Context, deps Dependencies, flagSet *pflag.FlagSet) (model.ValidationResult, error) {
	log := invocationLogger(flagSet, p.descriptor)
	values, validationErrors, err := resolveAndValidate(ctx, deps, p.descriptor, p.configKeys, p.computed(ctx, deps), flagSet)
	if err != nil || !validationErrors.Valid() {
		return validationErrors, err
	}
	pipelines.NewProvisioner(deps.Service, deps.Exit).WithLogger(log).Install(ctx, p.workflow, p.request(values))
	return nil, nil
}

// invocationLogger applies --verbose and returns a logger tagged with a
// fresh invocation id.
func invocationLogger(flagSet *pflag.FlagSet, descriptor model.CommandDescriptor) *logger.Entry {
	if verbose, err := flagSet.GetBool(optionVerbose); err == nil && verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	return logger.WithFields(logger.Fields{"func": "execute", "command": descriptor.Command, "invocation": uuid.NewString()})
}

// resolveAndValidate runs the shared front half of every provisioning
// command: explicit flags, then the config file, then computed defaults,
// then the required-value check. A non-empty validation result has already
// been handed to deps.Exit.
func resolveAndValidate(ctx context.Context, deps Dependencies, descriptor model.CommandDescriptor, configKeys map[string]string, computed map[string]options.ComputedDefault, flagSet *pflag.FlagSet) (model.ResolvedConfig, model.ValidationResult, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		logger.WithField("func", "resolveAndValidate").WithError(err).Error("could not load spk configuration")
		return model.ResolvedConfig{}, nil, fmt.Errorf("loading configuration: %w", err)
	}
	explicit := options.FlagSource(flagSet, descriptor.Options)
	persisted := persistedSource(ctx, deps, cfg, configKeys, explicit)
	values := options.Resolve(descriptor.Options, explicit, persisted, computed)

	validationErrors := config.NewValidator().Validate(descriptor.Options, values)
	if !validationErrors.Valid() {
		deps.Exit(pipelines.ExitFailure)
	}
	return values, validationErrors, nil
}

// persistedSource returns the configuration tier. An access token kept in
// a Kubernetes secret is only fetched when neither the command line nor the
// config file supply one.
func persistedSource(ctx context.Context, deps Dependencies, cfg config.Config, configKeys map[string]string, explicit options.Source) options.MapSource {
	persisted := cfg.Source(configKeys)
	if _, ok := configKeys[optionPersonalAccessToken]; !ok {
		return persisted
	}
	if _, given := explicit.Lookup(optionPersonalAccessToken); given {
		return persisted
	}
	secretName := cfg.AzureDevOps.AccessTokenSecret
	if cfg.AzureDevOps.AccessToken != nil || secretName == nil || *secretName == "" || deps.TokenSource == nil {
		return persisted
	}
	log := logger.WithField("func", "persistedSource")
	tokens, err := deps.TokenSource()
	if err != nil {
		log.WithError(err).Errorf("cannot read access token secret %s", *secretName)
		return persisted
	}
	token, err := tokens.AccessToken(ctx, *secretName)
	if err != nil {
		log.WithError(err).Errorf("error while reading secret with name %s", *secretName)
		return persisted
	}
	persisted[optionPersonalAccessToken] = &token
	return persisted
}

// verboseOption is accepted by every pipeline command.
var verboseOption = model.OptionDescriptor{
	Name:         optionVerbose,
	Flag:         "--verbose",
	Shorthand:    "v",
	DefaultValue: false,
	Description:  "Enable verbose logging",
}
