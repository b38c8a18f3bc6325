package authfront

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialInfo is the decoded, UNVERIFIED content of the bearer token.
// It exists for display and diagnostics only: the client never gates
// anything on these claims, a 401 from the backend is the sole authority on
// credential validity.
type CredentialInfo struct {
	Subject   string
	Issuer    string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// InspectCredential decodes the token payload without verifying the
// signature. Tokens that are not structurally JWTs yield an error; callers
// should treat that as "nothing to show", not as an invalid session.
func InspectCredential(token string) (*CredentialInfo, error) {
	if token == "" {
		return nil, ErrUnableToDecodeSession
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	info := &CredentialInfo{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		t := claims.IssuedAt.Time
		info.IssuedAt = &t
	}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		info.ExpiresAt = &t
	}

	return info, nil
}
