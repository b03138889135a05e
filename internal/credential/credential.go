// Package credential resolves Google Cloud identity for the relay:
// Application Default Credentials, bearer tokens, and the project id
// fallback chain.
package credential

import (
	"context"
	"time"

	"cloud.google.com/go/compute/metadata"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"geminirelay/internal/core"
	"geminirelay/internal/util"
)

// Credential wraps Application Default Credentials with a
// refresh-in-place contract. The token fields carry no lock: the token
// source below is safe for concurrent use, and concurrent refreshes
// overwrite each other last-writer-wins without breaking any reader.
type Credential struct {
	tokenSource    oauth2.TokenSource
	token          string
	expiry         time.Time
	serviceAccount string
}

var _ core.CredentialSource = (*Credential)(nil)

// ObtainDefault resolves Application Default Credentials with the
// Vertex AI scope. The returned project id is the one reported by the
// ambient identity and may be empty.
func ObtainDefault(ctx context.Context) (*Credential, string, error) {
	creds, err := google.FindDefaultCredentials(ctx, core.CloudPlatformScope)
	if err != nil {
		return nil, "", core.NewCredentialError("failed to obtain default credentials", err)
	}

	cred := &Credential{
		tokenSource:    creds.TokenSource,
		serviceAccount: serviceAccountFromJSON(creds.JSON),
	}
	return cred, creds.ProjectID, nil
}

// serviceAccountFromJSON extracts the identity label from service
// account key JSON, best effort. Workload identities carry no JSON.
func serviceAccountFromJSON(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var key struct {
		ClientEmail string `json:"client_email"`
	}
	if err := util.UnmarshalJSON(data, &key); err != nil {
		return ""
	}
	return key.ClientEmail
}

// Refresh obtains a valid token from the underlying source and stores
// it on the handle in place.
func (c *Credential) Refresh(ctx context.Context) error {
	tok, err := c.tokenSource.Token()
	if err != nil {
		return core.NewCredentialError("failed to refresh credentials", err)
	}
	c.token = tok.AccessToken
	c.expiry = tok.Expiry
	return nil
}

// Token returns the current bearer token value.
func (c *Credential) Token() string {
	return c.token
}

// Expiry returns the current token's expiry time.
func (c *Credential) Expiry() time.Time {
	return c.expiry
}

// ServiceAccount returns the identity label for diagnostics,
// defaulting to "default" when unknown.
func (c *Credential) ServiceAccount() string {
	if c == nil || c.serviceAccount == "" {
		return core.DefaultServiceAccountLabel
	}
	return c.serviceAccount
}

// ResolveProjectID applies the project id fallback chain: the value
// reported alongside the credentials, then GCP_PROJECT and
// GOOGLE_CLOUD_PROJECT, then the GCE metadata service. Metadata
// lookup failure is ignored, not propagated.
func ResolveProjectID(fromCreds string) string {
	if fromCreds != "" {
		return fromCreds
	}
	if v := util.FirstEnv(core.ProjectIDEnvVars...); v != "" {
		return v
	}
	if id, err := metadata.ProjectID(); err == nil {
		return id
	}
	return ""
}
