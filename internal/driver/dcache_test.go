package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/diag"
	"pyplus/internal/project"
	"pyplus/internal/source"
)

func TestDiskCacheRoundTripRebindsSpans(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	be.Err(t, err, nil)

	fs := source.NewFileSet()
	first := fs.AddVirtual("a.py", []byte("x = 1\n"))
	res := &ConvertResult{Name: "a", Output: "int x = 1;", Fallbacks: 1, Bag: diag.NewBag(10)}
	res.Bag.Add(diag.New(diag.SevWarning, diag.TrnUnsupported, source.Span{File: first, Start: 0, End: 5}, "fallback").
		WithNote(source.Span{File: first, Start: 4, End: 5}, "here"))
	res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: first}, "read failed"))

	key := project.Sum([]byte("key"))
	be.Err(t, cache.Put(key, newDiskPayload(res, fs.Get(first))), nil)

	second := fs.AddVirtual("a.py", []byte("x = 1\n"))
	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	be.Err(t, err, nil)
	be.True(t, hit)

	restored := &ConvertResult{Bag: diag.NewBag(10)}
	be.True(t, payload.restore(restored, second))
	be.Equal(t, restored.Output, "int x = 1;")
	be.Equal(t, restored.Fallbacks, 1)
	// ошибка кэша не сохраняется
	be.Equal(t, restored.Bag.Len(), 1)
	d := restored.Bag.Items()[0]
	be.Equal(t, d.Primary, source.Span{File: second, Start: 0, End: 5})
	be.Equal(t, d.Notes[0].Span.File, second)
}

func TestDiskCacheMissAndCorruptEntry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	be.Err(t, err, nil)
	key := project.Sum([]byte("missing"))

	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	be.Err(t, err, nil)
	be.True(t, !hit)

	path := cache.entryPath(key)
	be.Err(t, os.MkdirAll(filepath.Dir(path), 0o755), nil)
	be.Err(t, os.WriteFile(path, []byte{0xc1}, 0o600), nil)
	_, err = cache.Get(key, &payload)
	be.Err(t, err)

	be.Err(t, cache.DropAll(), nil)
	hit, err = cache.Get(key, &payload)
	be.Err(t, err, nil)
	be.True(t, !hit)
}

func TestStaleSchemaIsIgnored(t *testing.T) {
	p := &DiskPayload{Schema: diskCacheSchemaVersion + 1, Output: "old"}
	res := &ConvertResult{Bag: diag.NewBag(1)}
	be.True(t, !p.restore(res, 0))
	be.Equal(t, res.Output, "")
}
