// Package session implements tally's session credential.
//
// A session is a signed, self-contained, expiring token carrying a principal
// id. Nothing is persisted server-side: a new signin mints a new token, and a
// token dies only by expiry or client discard.
//
// Tokens are HS256 JWTs signed with a server-held secret. Verification pins
// the configured algorithm; a token claiming any other algorithm is rejected
// outright.
package session
