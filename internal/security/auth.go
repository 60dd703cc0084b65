package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Identity is a verified user. The user id doubles as the session
// identifier for conversation memory.
type Identity struct {
	UserID string `json:"user_id"`
}

// ErrUnauthorized is returned for missing, invalid or expired credentials.
var ErrUnauthorized = errors.New("invalid or expired credential")

// Verifier checks a bearer credential against an authentication authority.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// StaticVerifier resolves credentials against a fixed token -> user id map.
// Used for single-tenant deployments and tests.
type StaticVerifier struct {
	tokens map[string]string
}

// NewStaticVerifier creates a verifier over the given token map.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	m := make(map[string]string, len(tokens))
	for token, userID := range tokens {
		m[token] = userID
	}
	return &StaticVerifier{tokens: m}
}

func (v *StaticVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	userID, ok := v.tokens[credential]
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	return Identity{UserID: userID}, nil
}

// RemoteVerifier delegates credential checks to an external auth service.
// The service receives the credential as a bearer header and answers 200
// with {"user_id": ...} for a valid session.
type RemoteVerifier struct {
	url    string
	client *http.Client
}

// NewRemoteVerifier creates a verifier against the given endpoint.
func NewRemoteVerifier(url string) *RemoteVerifier {
	return &RemoteVerifier{
		url:    url,
		client: http.DefaultClient,
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := v.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, ErrUnauthorized
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return Identity{}, fmt.Errorf("auth service: decode response: %w", err)
	}
	if identity.UserID == "" {
		return Identity{}, ErrUnauthorized
	}
	return identity, nil
}
