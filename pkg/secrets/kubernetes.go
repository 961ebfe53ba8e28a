package secrets

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

const accessTokenKey = "access-token"

// TokenSource looks up a personal access token by secret name.
type TokenSource interface {
	AccessToken(ctx context.Context, secretName string) (string, error)
}

type KubernetesTokenSource struct {
	kubeClient kubernetes.Interface
	namespace  string
}

func NewKubernetesTokenSource(kubeClient kubernetes.Interface, namespace string) KubernetesTokenSource {
	return KubernetesTokenSource{kubeClient: kubeClient, namespace: namespace}
}

// NewKubernetesTokenSourceFromEnvironment builds the client from the usual
// kubeconfig loading rules, falling back to the in-cluster configuration.
func NewKubernetesTokenSourceFromEnvironment(namespace string) (source KubernetesTokenSource, err error) {
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(), &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return source, fmt.Errorf("loading kubernetes configuration: %w", err)
	}
	kubeClient, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return source, err
	}
	return NewKubernetesTokenSource(kubeClient, namespace), nil
}

func (s KubernetesTokenSource) AccessToken(ctx context.Context, secretName string) (accessToken string, err error) {
	secret, err := s.kubeClient.CoreV1().Secrets(s.namespace).Get(ctx, secretName, v1.GetOptions{})
	if err != nil {
		return accessToken, err
	}
	token, ok := secret.Data[accessTokenKey]
	if !ok || len(token) == 0 {
		return accessToken, fmt.Errorf("secret %s/%s has no %s entry", s.namespace, secretName, accessTokenKey)
	}
	logger.WithField("func", "AccessToken").Infof("found access-token with length %d in secret %s", len(token), secret.Name)
	return string(token), nil
}
