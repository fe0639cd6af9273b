// Package auth issues and verifies the signed tokens that carry a caller's
// identity between requests.
//
// Tokens are HS256 JWTs signed with a process-wide secret that is injected
// once at startup. The payload carries exactly three claims: username,
// isAdmin and iat (plus exp when a TTL is configured).
//
// Every verification failure is reported as services.ErrInvalidToken so
// callers cannot tell a forged token from a malformed one.
package auth
