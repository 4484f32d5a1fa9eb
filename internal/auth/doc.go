// Package auth authenticates users and issues their bearer tokens.
//
// Two providers resolve a user:
//   - LocalProvider checks a username and password against the Argon2id hash stored on the user.
//   - OIDCProvider runs the authorization code flow against an external identity provider and
//     provisions or links the matching local account by email.
//
// Service ties a provider result to an HS256 access token (see Tokens) and validates
// presented tokens, consulting a Revocations store so logged out tokens stop working
// before they expire.
//
// Example usage:
//
//	authService := auth.NewService(db, tokens, revocations)
//
//	res, err := authService.Login(ctx, "alice", "secret")
//
//	user, claims, err := authService.Authenticate(ctx, res.AccessToken)
package auth
