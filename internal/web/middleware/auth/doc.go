// Package auth provides the bearer token middleware of the http api.
//
// The middleware reads the "Authorization: Bearer <token>" header, validates the token
// through auth.Service and stores the caller id in fiber.Locals under "userId".
// Requests without a valid token are answered with 401 and a {"message": ...} body.
//
// Usage:
//
//	app.Get("/auth/me", authmiddleware.New(authService), handler)
package auth
