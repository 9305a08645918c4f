package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSubject parses a bearer token as a JWT and extracts the 'sub' claim,
// which identifies the API user the token was issued to.
func TokenSubject(tokenString string) (string, error) {
	// Parse without validating the signature (the remote API verifies it).
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("failed to parse JWT: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid JWT claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("JWT missing 'sub' claim")
	}
	return sub, nil
}
