package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"pyplus/internal/diag"
	"pyplus/internal/project"
	"pyplus/internal/source"
)

// diskCacheSchemaVersion входит и в ключ, и в запись: меняйте при любом изменении DiskPayload.
const diskCacheSchemaVersion uint16 = 1

// entriesDir — подкаталог с записями; DropAll удаляет только его.
const entriesDir = "files"

// DiskCache keeps per-file translation results under dir, keyed by a
// digest of content, options and tool version. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached translation. Spans are stored without a FileID
// and rebound to the file's ID in the current FileSet on restore.
type DiskPayload struct {
	Schema       uint16         `msgpack:"v"`
	Name         string         `msgpack:"name"`
	Path         string         `msgpack:"path"`
	ContentHash  project.Digest `msgpack:"hash"`
	Output       string         `msgpack:"out"`
	Fallbacks    int            `msgpack:"fb"`
	SyntaxErrors uint           `msgpack:"syn"`
	Diagnostics  []cachedDiag   `msgpack:"diags"`
}

type cachedSpan struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
}

func (s cachedSpan) bind(id source.FileID) source.Span {
	return source.Span{File: id, Start: s.Start, End: s.End}
}

func spanOf(sp source.Span) cachedSpan { return cachedSpan{Start: sp.Start, End: sp.End} }

type cachedNote struct {
	At  cachedSpan `msgpack:"at"`
	Msg string     `msgpack:"msg"`
}

type cachedDiag struct {
	Severity diag.Severity `msgpack:"sev"`
	Code     diag.Code     `msgpack:"code"`
	At       cachedSpan    `msgpack:"at"`
	Msg      string        `msgpack:"msg"`
	Notes    []cachedNote  `msgpack:"notes,omitempty"`
}

// OpenDiskCache opens <user cache dir>/<app>: $XDG_CACHE_HOME or ~/.cache on Linux.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, errors.Join(err, herr)
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// entryPath раскладывает записи по подкаталогам из первых двух hex-символов ключа.
func (c *DiskCache) entryPath(key project.Digest) string {
	hex := key.String()
	return filepath.Join(c.dir, entriesDir, hex[:2], hex+".mp")
}

// Put writes the payload through a temp file and rename, so readers never
// see a partial entry.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dst := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return err
	}
	encErr := msgpack.NewEncoder(tmp).Encode(payload)
	if err := errors.Join(encErr, tmp.Close()); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// Get decodes the entry for key into out. A missing entry is (false, nil);
// an undecodable one is an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.entryPath(key))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return true, nil
}

// DropAll removes every entry; the cache directory itself stays.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, entriesDir))
}

func newDiskPayload(res *ConvertResult, file *source.File) *DiskPayload {
	p := &DiskPayload{
		Schema:       diskCacheSchemaVersion,
		Name:         res.Name,
		Path:         res.Path,
		ContentHash:  project.Digest(file.Hash),
		Output:       res.Output,
		Fallbacks:    res.Fallbacks,
		SyntaxErrors: res.SyntaxErrors,
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.IOCacheError {
			continue
		}
		cd := cachedDiag{Severity: d.Severity, Code: d.Code, At: spanOf(d.Primary), Msg: d.Message}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{At: spanOf(n.Span), Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// restore fills res from the payload; false when the schema is stale.
func (p *DiskPayload) restore(res *ConvertResult, fileID source.FileID) bool {
	if p.Schema != diskCacheSchemaVersion {
		return false
	}
	res.Output, res.Fallbacks, res.SyntaxErrors = p.Output, p.Fallbacks, p.SyntaxErrors
	for _, cd := range p.Diagnostics {
		d := diag.New(cd.Severity, cd.Code, cd.At.bind(fileID), cd.Msg)
		for _, n := range cd.Notes {
			d = d.WithNote(n.At.bind(fileID), n.Msg)
		}
		res.Bag.Add(d)
	}
	return true
}
