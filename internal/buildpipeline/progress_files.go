package buildpipeline

import (
	"path/filepath"
	"strings"
)

// DisplayPath — путь файла для прогресса и сообщений: относительно baseDir,
// если файл внутри него, иначе как есть; разделители всегда '/'.
func DisplayPath(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// DisplayPaths применяет DisplayPath к списку, сохраняя порядок.
func DisplayPaths(files []string, baseDir string) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		out = append(out, DisplayPath(file, baseDir))
	}
	return out
}
