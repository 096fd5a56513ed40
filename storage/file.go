package storage

import (
	"os"
	"path/filepath"
	"sync"

	"cms-ui/logger"

	"github.com/goccy/go-json"
)

// AdminCredentials is the degraded-mode copy of the administrator
// account kept in the file tier so login keeps working while the
// primary store is down.
type AdminCredentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	PasswordSalt string `json:"passwordSalt"`
}

// fileDocument is the on-disk layout of the fallback file: scalar
// settings, serialized documents and the bootstrap credentials, all in
// one JSON document.
type fileDocument struct {
	Settings    map[string]string          `json:"settings,omitempty"`
	Documents   map[string]json.RawMessage `json:"documents,omitempty"`
	Credentials *AdminCredentials          `json:"credentials,omitempty"`
}

// FileTier is the secondary tier: a single JSON file on disk, durable
// across restarts, best-effort only. The read/modify/write sequence is
// serialized with a mutex within the process; concurrent writers from
// other processes may still lose updates, which its fallback role
// tolerates.
type FileTier struct {
	mu   sync.Mutex
	path string
}

func NewFileTier(path string) *FileTier {
	return &FileTier{path: path}
}

func (t *FileTier) Name() string {
	return "file"
}

func (t *FileTier) load() (*fileDocument, bool) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("file tier read failed:", err)
		}
		return &fileDocument{}, os.IsNotExist(err)
	}
	doc := &fileDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		logger.Warning("file tier is corrupt, starting over:", err)
		return &fileDocument{}, true
	}
	return doc, true
}

func (t *FileTier) store(doc *fileDocument) bool {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Debug("file tier encode failed:", err)
		return false
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o750); err != nil {
		logger.Debug("file tier mkdir failed:", err)
		return false
	}
	if err := os.WriteFile(t.path, data, 0o600); err != nil {
		logger.Debug("file tier write failed:", err)
		return false
	}
	return true
}

func (t *FileTier) TryRead(key string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.load()
	if !ok {
		return "", false
	}
	value, ok := doc.Settings[key]
	return value, ok
}

func (t *FileTier) TryReadAll() (map[string]string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.load()
	if !ok {
		return nil, false
	}
	all := make(map[string]string, len(doc.Settings))
	for key, value := range doc.Settings {
		all[key] = value
	}
	return all, true
}

func (t *FileTier) TryWrite(key string, value string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A file that exists but cannot be read must not be replaced by a
	// document holding only the new key.
	doc, ok := t.load()
	if !ok {
		return false
	}
	if doc.Settings == nil {
		doc.Settings = map[string]string{}
	}
	doc.Settings[key] = value
	return t.store(doc)
}

func (t *FileTier) TryReadDoc(name string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.load()
	if !ok {
		return nil, false
	}
	raw, ok := doc.Documents[name]
	if !ok || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

func (t *FileTier) TryWriteDoc(name string, data []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.load()
	if !ok {
		return false
	}
	if doc.Documents == nil {
		doc.Documents = map[string]json.RawMessage{}
	}
	doc.Documents[name] = json.RawMessage(data)
	return t.store(doc)
}

// ReadCredentials returns the degraded-mode administrator credentials,
// or nil if none were ever written.
func (t *FileTier) ReadCredentials() *AdminCredentials {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.load()
	if !ok {
		return nil
	}
	return doc.Credentials
}

// WriteCredentials stores the administrator credentials in the file
// tier. Best-effort, like every other file tier write.
func (t *FileTier) WriteCredentials(creds *AdminCredentials) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.load()
	if !ok {
		return false
	}
	doc.Credentials = creds
	return t.store(doc)
}
