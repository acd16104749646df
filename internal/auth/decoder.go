package auth

import (
	"fmt"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/message-admin/internal/domain"
)

// Claims describes the JWT payload issued by the backend.
type Claims struct {
	UserID domain.ID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// DecodeError reports a token that cannot be turned into an identity.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode token: %s: %v", e.Reason, e.Err)
	}
	return "decode token: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var parser = jwt.NewParser()

// Decode reads the identity embedded in a token. The signature and expiry are
// not checked here; the backend re-validates the token on every API call.
func Decode(token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, &DecodeError{Reason: "empty token"}
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return domain.Identity{}, &DecodeError{Reason: "malformed token", Err: err}
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, &DecodeError{Reason: "unsupported role", Err: err}
	}

	return domain.Identity{
		ID:          string(claims.UserID),
		Email:       claims.Email,
		DisplayName: claims.Name,
		Role:        role,
	}, nil
}
