// Package storage implements the tiered configuration store: a
// primary relational tier, a secondary on-disk JSON file tier and a
// tertiary in-process memory tier, composed by Layered with
// merge-on-read and cascade-on-write semantics.
package storage

// Tier is a key/value store of scalar settings with explicit
// try-semantics: the boolean result reports whether the tier could
// serve the request at all. An unreachable tier never returns an
// error, callers fall through to the next tier.
type Tier interface {
	Name() string
	TryRead(key string) (string, bool)
	TryReadAll() (map[string]string, bool)
	TryWrite(key string, value string) bool
}

// DocTier stores whole serialized documents under reserved names.
// Only the primary and file tiers carry documents; the memory tier is
// scoped to scalars.
type DocTier interface {
	TryReadDoc(name string) ([]byte, bool)
	TryWriteDoc(name string, data []byte) bool
}
