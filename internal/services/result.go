package services

// Origin says where a provider result came from. The wire contract is the
// same either way; callers and tests use it to tell degraded-mode data from
// genuine upstream data.
type Origin string

const (
	// OriginUpstream marks data fetched from the external source (or, for
	// the roster, loaded from the configured file).
	OriginUpstream Origin = "upstream"
	// OriginStale marks a last-known-good cache value served because the
	// upstream failed.
	OriginStale Origin = "stale"
	// OriginSynthetic marks generated fallback data.
	OriginSynthetic Origin = "synthetic"
)
