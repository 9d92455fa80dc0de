package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"qasm/internal/diag"
	"qasm/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest keys cache entries by the sha256 of normalized file content.
type Digest [32]byte

// HashContent computes the cache key for a file's normalized bytes.
func HashContent(content []byte) Digest {
	return sha256.Sum256(content)
}

// DiskCache хранит результаты проверки по хешу содержимого на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is the serializable form of one diagnostic.
type CachedDiagnostic struct {
	File        string
	FirstLine   uint32
	FirstColumn uint32
	LastLine    uint32
	LastColumn  uint32
	Message     string
}

// DiskPayload stores a check outcome for fast re-checking of unchanged files.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	HasRoot     bool
	Diagnostics []CachedDiagnostic
}

// NewDiskPayload converts a parse outcome into its cacheable form.
func NewDiskPayload(path string, res parseOutcome) *DiskPayload {
	p := &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Path:    path,
		HasRoot: res.hasRoot,
	}
	for _, d := range res.diags {
		p.Diagnostics = append(p.Diagnostics, CachedDiagnostic{
			File:        d.Loc.Filename,
			FirstLine:   d.Loc.FirstLine,
			FirstColumn: d.Loc.FirstColumn,
			LastLine:    d.Loc.LastLine,
			LastColumn:  d.Loc.LastColumn,
			Message:     d.Message,
		})
	}
	return p
}

// Restore rebuilds the diagnostics recorded in the payload.
func (p *DiskPayload) Restore() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.Diagnostics))
	for _, c := range p.Diagnostics {
		out = append(out, diag.Diagnostic{
			Loc:     source.NewLocation(c.File, c.FirstLine, c.FirstColumn, c.LastLine, c.LastColumn),
			Message: c.Message,
		})
	}
	return out
}

// parseOutcome is the slice of a FileResult the cache cares about.
type parseOutcome struct {
	hasRoot bool
	diags   []diag.Diagnostic
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location (XDG_CACHE_HOME or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "checks" для удобства очистки.
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	removed := false
	defer func() {
		if !removed {
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	removed = true
	return nil
}

// Get reads a payload from the cache. Returns false on a miss or when the
// schema version no longer matches.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", p, err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}
