package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrManifestInvalid помечает синтаксически верный, но неполный manifest.
var ErrManifestInvalid = errors.New("invalid manifest")

const (
	DefaultOutDir = "output"
	DefaultIndent = 4
)

type Config struct {
	Project ProjectConfig `toml:"project"`
	Convert ConvertConfig `toml:"convert"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
}

type ConvertConfig struct {
	Sources []string `toml:"sources"`
	OutDir  string   `toml:"out_dir,omitempty"`
	Indent  int      `toml:"indent,omitempty"`
}

// Manifest — загруженный pyplus.toml и каталог, в котором он лежит.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Discover находит и загружает manifest, поднимаясь от startDir.
func Discover(startDir string) (*Manifest, error) {
	path, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load decodes and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(meta, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !meta.IsDefined("convert", "out_dir") {
		cfg.Convert.OutDir = DefaultOutDir
	}
	if !meta.IsDefined("convert", "indent") {
		cfg.Convert.Indent = DefaultIndent
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

func validate(meta toml.MetaData, cfg *Config) error {
	switch {
	case !meta.IsDefined("project"):
		return fmt.Errorf("%w: missing [project]", ErrManifestInvalid)
	case !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "":
		return fmt.Errorf("%w: missing [project].name", ErrManifestInvalid)
	case !meta.IsDefined("convert"):
		return fmt.Errorf("%w: missing [convert]", ErrManifestInvalid)
	case !meta.IsDefined("convert", "sources") || len(cfg.Convert.Sources) == 0:
		return fmt.Errorf("%w: missing [convert].sources", ErrManifestInvalid)
	case meta.IsDefined("convert", "indent") && cfg.Convert.Indent <= 0:
		return fmt.Errorf("%w: [convert].indent must be positive", ErrManifestInvalid)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %s", ErrManifestInvalid, undecoded[0])
	}
	return nil
}

// SourceFiles раскрывает [convert].sources относительно корня проекта.
func (m *Manifest) SourceFiles() ([]string, error) {
	sources := make([]string, 0, len(m.Config.Convert.Sources))
	for _, rel := range m.Config.Convert.Sources {
		sources = append(sources, filepath.Join(m.Root, filepath.FromSlash(rel)))
	}
	files, err := ExpandSources(sources)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Path, err)
	}
	return files, nil
}

// OutDir — каталог вывода относительно корня проекта.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Config.Convert.OutDir) {
		return m.Config.Convert.OutDir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Convert.OutDir))
}

// ExpandSources превращает список файлов и каталогов в отсортированный
// список .py файлов без повторов. Явно указанный файл берётся при любом расширении.
func ExpandSources(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, filepath.Clean(p))
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && path != p && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && filepath.Ext(path) == ".py" {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", p, err)
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	seen := make(map[string]struct{}, len(out))
	unique := out[:0]
	for _, p := range out {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique, nil
}

// Encode сериализует конфигурацию для `pyplus init`.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
