// Package cache implements a content-addressed artifact store with TTL
// expiry. Entries are keyed by a canonical SHA-256 digest of the request
// fields that affect the generated artifact, so identical work is only
// ever paid for once while the entry is live.
package cache
