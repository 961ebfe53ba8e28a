package main

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"spk/pipeline-cli/pkg/azdo"
	"spk/pipeline-cli/pkg/commands"
	"spk/pipeline-cli/pkg/config"
	"spk/pipeline-cli/pkg/gitutils"
	"spk/pipeline-cli/pkg/secrets"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})

	env, err := config.ReadEnvironment()
	if err != nil {
		logger.WithError(err).Error("failed to process env var")
		return 1
	}
	if level, err := logger.ParseLevel(env.LogLevel); err != nil {
		logger.WithError(err).Warnf("unknown log level %s, using info", env.LogLevel)
	} else {
		logger.SetLevel(level)
	}

	service := azdo.NewService()
	deps := commands.Dependencies{
		Environment:    env,
		Service:        service,
		VariableGroups: service,
		Exit:           os.Exit,
		LoadConfig: func() (config.Config, error) {
			return config.Load(env.ConfigPath)
		},
		OriginURL: gitutils.GetOriginURL,
		TokenSource: func() (secrets.TokenSource, error) {
			return secrets.NewKubernetesTokenSourceFromEnvironment(env.K8SNamespace)
		},
	}

	root := commands.NewRootCommand(deps)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
