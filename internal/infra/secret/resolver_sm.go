// backend/internal/infra/secret/resolver_sm.go
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

var (
	ErrSecretNotConfigured = errors.New("secret_resolver: not configured")
	ErrSecretEmpty         = errors.New("secret_resolver: secret payload is empty")
)

// versionAccessor is the part of *secretmanager.Client the resolver uses.
type versionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// ResolverSM reads secrets (e.g. the SendGrid API key) from Secret Manager.
type ResolverSM struct {
	client    versionAccessor
	ProjectID string
}

func NewResolverSM(client *secretmanager.Client, projectID string) *ResolverSM {
	r := &ResolverSM{ProjectID: strings.TrimSpace(projectID)}
	if client != nil {
		r.client = client
	}
	return r
}

// ResourceName expands a short secret id to
// projects/<project>/secrets/<id>/versions/latest. Full names pass through.
func (r *ResolverSM) ResourceName(secret string) (string, error) {
	s := strings.TrimSpace(secret)
	if s == "" {
		return "", fmt.Errorf("%w: secret name is empty", ErrSecretNotConfigured)
	}
	if strings.HasPrefix(s, "projects/") {
		if !strings.Contains(s, "/versions/") {
			s += "/versions/latest"
		}
		return s, nil
	}
	if r.ProjectID == "" {
		return "", fmt.Errorf("%w: projectID is empty", ErrSecretNotConfigured)
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", r.ProjectID, s), nil
}

// Resolve returns the trimmed payload of the secret.
func (r *ResolverSM) Resolve(ctx context.Context, secret string) (string, error) {
	if r == nil || r.client == nil {
		return "", ErrSecretNotConfigured
	}
	name, err := r.ResourceName(secret)
	if err != nil {
		return "", err
	}

	res, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secret_resolver: access %s: %w", name, err)
	}
	if res == nil || res.Payload == nil {
		return "", ErrSecretEmpty
	}
	v := strings.TrimSpace(string(res.Payload.Data))
	if v == "" {
		return "", ErrSecretEmpty
	}
	return v, nil
}
