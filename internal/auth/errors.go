package auth

import (
	"errors"

	"github.com/lmsforge/lms-backend/internal/apperr"
)

var (
	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrOIDCDisabled is returned when OIDC is disabled via configuration.
	ErrOIDCDisabled = errors.New("oidc authentication is disabled")

	// ErrNoEmailClaim is returned when the ID token carries no email to link the account by.
	ErrNoEmailClaim = apperr.Validation("identity provider did not return an email address")

	// ErrUserNameOrEmailExists is returned when attempting to create a user with a username or email that already exists.
	ErrUserNameOrEmailExists = apperr.Conflict("User with this username or email already exists")

	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = apperr.Validation("Invalid username or password")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = apperr.Validation("User account is disabled")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = apperr.NotFound("User not found")

	// ErrInvalidToken is returned for a malformed, badly signed or expired access token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrTokenRevoked is returned for an access token that was logged out.
	ErrTokenRevoked = errors.New("token has been revoked")
)
