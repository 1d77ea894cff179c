// Package identity implements tally's principal model and credential handling.
//
// It contains the user record, email/text normalization, bcrypt password
// hashing, and the principal store interfaces used by the account and HTTP
// layers.
//
// This package is intentionally dependency-light and security-first.
package identity
