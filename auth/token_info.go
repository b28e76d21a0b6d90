package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenInfo is a best-effort decode of the platform's bearer token for
// display purposes. The client never validates the signature, the token
// stays an opaque credential everywhere else.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// InspectToken decodes the claims of a JWT-shaped bearer token without
// verifying it. Expiry shown here is informational only: the session finds
// out about a dead credential when the backend rejects a request.
func InspectToken(rawToken string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return nil, errors.Wrap(err, "[InspectToken] parsing token")
	}

	info := &TokenInfo{}
	if subject, err := claims.GetSubject(); err == nil {
		info.Subject = subject
	}
	if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
		info.ExpiresAt = expiry.Time
	}
	if issued, err := claims.GetIssuedAt(); err == nil && issued != nil {
		info.IssuedAt = issued.Time
	}
	return info, nil
}
