// internal/infra/secret/provider.go
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotConfigured = errors.New("secret: provider not configured")
	ErrNotFound      = errors.New("secret: not found")
)

// Provider reads the latest version of Secret Manager secrets.
type Provider struct {
	Client    *secretmanager.Client
	ProjectID string
}

func NewProvider(ctx context.Context, projectID string) (*Provider, error) {
	pid := strings.TrimSpace(projectID)
	if pid == "" {
		return nil, fmt.Errorf("%w: projectID is empty", ErrNotConfigured)
	}
	c, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	return &Provider{Client: c, ProjectID: pid}, nil
}

// Name builds the resource name of the latest version of secretID.
func Name(projectID, secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretID)
}

// Get returns the payload of secretID as trimmed text.
func (p *Provider) Get(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.Client == nil {
		return "", ErrNotConfigured
	}
	id := strings.TrimSpace(secretID)
	if id == "" {
		return "", fmt.Errorf("%w: empty secret id", ErrNotConfigured)
	}

	res, err := p.Client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: Name(p.ProjectID, id),
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("access secret %s: %w", id, err)
	}
	if res == nil || res.Payload == nil || len(res.Payload.Data) == 0 {
		return "", fmt.Errorf("%w: %s has no payload", ErrNotFound, id)
	}
	return strings.TrimSpace(string(res.Payload.Data)), nil
}

func (p *Provider) Close() error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Close()
}
