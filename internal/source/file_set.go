package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet хранит все загруженные исходники. Повторное добавление того же
// пути создаёт новую версию с новым FileID; старые версии остаются доступны,
// чтобы спаны в уже собранных диагностиках не протухали.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: map[string]FileID{}}
}

// NewFileSetWithBase — FileSet, печатающий относительные пути от baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the directory relative paths are printed against;
// the working directory when none was set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers content as-is under path and returns the new version's ID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	next, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	id := FileID(next)
	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.latest[path] = id
	return id
}

// AddNormalized strips a UTF-8 BOM and rewrites CRLF to LF before Add,
// recording both in the file's flags.
func (fs *FileSet) AddNormalized(path string, content []byte, flags FileFlags) FileID {
	var bom, crlf bool
	content, bom = removeBOM(content)
	content, crlf = normalizeCRLF(content)
	if bom {
		flags |= FileHadBOM
	}
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags)
}

// Load reads path from disk and adds it normalized.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- пути приходят из CLI или манифеста
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.AddNormalized(path, content, 0), nil
}

// AddVirtual adds an in-memory file (tests, fuzzing, synthetic diagnostics).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.AddNormalized(name, content, FileVirtual)
}

// Get returns nil for an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) < len(fs.files) {
		return &fs.files[id]
	}
	return nil
}

func (fs *FileSet) Len() int { return len(fs.files) }

// GetLatest returns the newest version registered for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve переводит оба конца спана в строку/колонку (с единицы).
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}
