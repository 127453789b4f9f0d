package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"layoutlex/internal/diag"
	"layoutlex/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит сводки по файлам на диске по ключу CacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached summary of one lexed file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path     string
	Tokens   int
	Lines    int
	Anchors  int
	Comments int
	Kinds    map[string]int

	// Distinct symbol texts, in first-seen order
	Symbols []string

	// Diagnostics without notes
	Diagnostics []CachedDiagnostic
	// Dropped counts diagnostics the limit rejected
	Dropped int
}

// CachedDiagnostic is a diagnostic reduced to its primary byte range.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Off      uint32
	Len      uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
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

// OpenDiskCacheAt opens a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "lex", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
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
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload with a
// different schema is reported as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// summaryToDiskPayload converts a FileSummary for caching.
func summaryToDiskPayload(s *FileSummary) *DiskPayload {
	payload := &DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Path:     s.Path,
		Tokens:   s.Tokens,
		Lines:    s.Lines,
		Anchors:  s.Anchors,
		Comments: s.Comments,
		Kinds:    s.Kinds,
		Symbols:  s.Symbols,
	}
	if s.Bag != nil {
		payload.Dropped = s.Bag.Dropped()
		for _, d := range s.Bag.Items() {
			payload.Diagnostics = append(payload.Diagnostics, CachedDiagnostic{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
				Off:      d.Primary.Off,
				Len:      d.Primary.End() - d.Primary.Off,
			})
		}
	}
	return payload
}

// diskPayloadToSummary restores a FileSummary; diagnostic spans are cut back
// out of file, which must hold the content the payload was computed from.
func diskPayloadToSummary(payload *DiskPayload, file *source.File, maxDiagnostics int) FileSummary {
	bag := diag.NewBag(maxDiagnostics)
	whole := file.Span()
	for _, cd := range payload.Diagnostics {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			File:     file.ID,
			Primary:  subSpan(whole, cd.Off, cd.Len),
		})
	}
	bag.AddDropped(payload.Dropped)
	return FileSummary{
		Path:     file.Path,
		FileID:   file.ID,
		Hash:     Digest(file.Hash),
		Tokens:   payload.Tokens,
		Lines:    payload.Lines,
		Anchors:  payload.Anchors,
		Comments: payload.Comments,
		Kinds:    payload.Kinds,
		Symbols:  payload.Symbols,
		Bag:      bag,
		Cached:   true,
	}
}

// subSpan returns the span [off, off+n) of whole, or an empty span when the
// range does not fit.
func subSpan(whole source.Span, off, n uint32) source.Span {
	_, right, err := whole.SplitChecked(int(off))
	if err != nil {
		return source.Span{}
	}
	left, _, err := right.SplitChecked(int(n))
	if err != nil {
		return source.Span{}
	}
	return left
}
