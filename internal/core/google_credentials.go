package core

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// googleCredentialValidator checks that a Google ID token was issued for our client id.
type googleCredentialValidator struct {
	clientID string
}

// NewGoogleCredentialValidator returns nil when clientID is empty; the
// credential is then forwarded to the backend unchecked.
func NewGoogleCredentialValidator(clientID string) CredentialValidator {
	if clientID == "" {
		return nil
	}
	return &googleCredentialValidator{clientID: clientID}
}

func (g *googleCredentialValidator) Validate(ctx context.Context, credential string) error {
	if _, err := idtoken.Validate(ctx, credential, g.clientID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	return nil
}
