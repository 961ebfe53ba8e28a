package gitutils

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"
)

const azureHost = "dev.azure.com"
const azureSSHHost = "ssh.dev.azure.com"
const githubHost = "github.com"

// GetOriginURL returns the url of the origin remote of the repository in
// the working directory.
func GetOriginURL(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "git", "config", "--get", "remote.origin.url").Output()
	if err != nil {
		return "", fmt.Errorf("reading origin url: %w", err)
	}
	origin := strings.TrimSpace(string(out))
	logger.WithField("func", "GetOriginURL").Debugf("found origin url %s", origin)
	return origin, nil
}

type repository struct {
	host  string
	parts []string
}

// parse splits https and scp-like ssh urls into host and path segments.
func parse(raw string) (repo repository, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return repo, fmt.Errorf("empty repository url")
	}
	var path string
	if !strings.Contains(raw, "://") {
		hostPart, pathPart, ok := strings.Cut(raw, ":")
		if !ok {
			return repo, fmt.Errorf("invalid repository url %s", raw)
		}
		if _, h, found := strings.Cut(hostPart, "@"); found {
			hostPart = h
		}
		repo.host = hostPart
		path = pathPart
	} else {
		u, err := url.Parse(raw)
		if err != nil {
			return repo, err
		}
		repo.host = u.Hostname()
		path = u.Path
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			repo.parts = append(repo.parts, p)
		}
	}
	if len(repo.parts) == 0 {
		return repo, fmt.Errorf("no repository path in %s", raw)
	}
	return repo, nil
}

// GetRepositoryName returns the repository name of an Azure Repos or GitHub url.
func GetRepositoryName(raw string) (string, error) {
	repo, err := parse(raw)
	if err != nil {
		return "", err
	}
	if !isAzure(repo.host) && repo.host != githubHost {
		return "", fmt.Errorf("could not determine repository name of %s: unsupported host %s", raw, repo.host)
	}
	return repo.parts[len(repo.parts)-1], nil
}

// GetRepositoryURL returns the https url of a repository given its origin
// url, which may be an ssh url.
func GetRepositoryURL(raw string) (string, error) {
	repo, err := parse(raw)
	if err != nil {
		return "", err
	}
	switch {
	case repo.host == azureSSHHost:
		// v3/<org>/<project>/<repo>
		if len(repo.parts) != 4 || repo.parts[0] != "v3" {
			return "", fmt.Errorf("unexpected azure ssh url %s", raw)
		}
		return fmt.Sprintf("https://%s/%s/%s/_git/%s", azureHost, repo.parts[1], repo.parts[2], repo.parts[3]), nil
	case isAzure(repo.host):
		// <org>/<project>/_git/<repo>
		if len(repo.parts) != 4 || repo.parts[2] != "_git" {
			return "", fmt.Errorf("unexpected azure url %s", raw)
		}
		return fmt.Sprintf("https://%s/%s", azureHost, strings.Join(repo.parts, "/")), nil
	case repo.host == githubHost:
		if len(repo.parts) != 2 {
			return "", fmt.Errorf("unexpected github url %s", raw)
		}
		return fmt.Sprintf("https://%s/%s/%s", githubHost, repo.parts[0], repo.parts[1]), nil
	}
	return "", fmt.Errorf("could not determine repository url of %s: unsupported host %s", raw, repo.host)
}

func isAzure(host string) bool {
	return host == azureHost || host == azureSSHHost
}
