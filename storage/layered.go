package storage

import (
	"cms-ui/config"
	"cms-ui/logger"
)

// Layered composes the three tiers. Reads merge with later tiers
// overriding earlier ones (defaults, then file, then memory, then
// primary); writes cascade through every tier so a read immediately
// after a write observes the value even if the primary just went away.
type Layered struct {
	primary   *DBTier
	secondary *FileTier
	tertiary  *MemoryTier
}

func NewLayered(primary *DBTier, secondary *FileTier, tertiary *MemoryTier) *Layered {
	return &Layered{
		primary:   primary,
		secondary: secondary,
		tertiary:  tertiary,
	}
}

// Read resolves one key with tier precedence primary, memory, file,
// then the supplied default.
func (l *Layered) Read(key string, defaultValue string) string {
	if value, ok := l.primary.TryRead(key); ok {
		return value
	}
	if value, ok := l.tertiary.TryRead(key); ok {
		return value
	}
	if value, ok := l.secondary.TryRead(key); ok {
		return value
	}
	return defaultValue
}

// ReadAll returns defaults overlaid by the file tier, the memory tier
// and finally the primary store. When the primary is unreachable the
// remaining tiers still produce a usable map.
func (l *Layered) ReadAll(defaults map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults))
	for key, value := range defaults {
		merged[key] = value
	}
	for _, tier := range []Tier{l.secondary, l.tertiary, l.primary} {
		values, ok := tier.TryReadAll()
		if !ok {
			logger.Debugf("settings tier %s unreachable, skipped in merge", tier.Name())
			continue
		}
		for key, value := range values {
			merged[key] = value
		}
	}
	return merged
}

// Write commits the value to the primary store when reachable and
// writes through to the memory and file tiers regardless, so
// read-your-write holds locally even under primary failure. The memory
// tier cannot refuse a write, so a Write never fails.
func (l *Layered) Write(key string, value string) {
	if !l.primary.TryWrite(key, value) {
		logger.Warningf("primary store rejected write of %q, value held by fallback tiers", key)
	}
	l.tertiary.TryWrite(key, value)
	l.secondary.TryWrite(key, value)
}

// ReadDoc resolves a serialized document: the primary's copy when
// reachable and present, else the file tier's. The memory tier does
// not carry documents.
func (l *Layered) ReadDoc(name string) ([]byte, bool) {
	if data, ok := l.primary.TryReadDoc(name); ok {
		return data, true
	}
	if data, ok := l.secondary.TryReadDoc(name); ok {
		return data, true
	}
	return nil, false
}

// WriteDoc writes a serialized document through the primary and file
// tiers.
func (l *Layered) WriteDoc(name string, data []byte) {
	if !l.primary.TryWriteDoc(name, data) {
		logger.Warningf("primary store rejected document %q, held by file tier", name)
	}
	l.secondary.TryWriteDoc(name, data)
}

var (
	sharedLayered *Layered
	sharedFile    *FileTier
)

// Init wires the shared tier instances against the given fallback file
// path. Called once at process start (and per-test for isolation).
func Init(filePath string) {
	sharedFile = NewFileTier(filePath)
	sharedLayered = NewLayered(NewDBTier(), sharedFile, NewMemoryTier())
}

// Settings returns the shared layered store, initializing it from the
// configured fallback path on first use.
func Settings() *Layered {
	if sharedLayered == nil {
		Init(config.GetFileStorePath())
	}
	return sharedLayered
}

// File returns the shared file tier used for settings write-through
// and degraded-mode credential bootstrap.
func File() *FileTier {
	if sharedFile == nil {
		Init(config.GetFileStorePath())
	}
	return sharedFile
}
