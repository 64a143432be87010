// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies bearer credentials issued by the external auth service.

# Token Verification

Tokens are HS256 JWTs whose subject is the account ID. The server shares an
HMAC secret with the issuer:

	accountID, err := auth.ParseAccountToken(tokenString, cfg.JWTSecret)

# Bearer Extraction

	token, err := auth.BearerToken(r)

Distinguishes an absent credential (ErrNoCredential - the caller may still
proceed as a guest) from a malformed one (ErrInvalidToken - the request is
rejected).

# Token Signing

SignAccountToken exists for tests and local development; production tokens
come from the auth service, which signs with the same secret.
*/
package auth
