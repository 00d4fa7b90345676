package source

import (
	"os"
	"path/filepath"
)

// autoPathLimit — абсолютные пути длиннее этого в режиме "auto" сокращаются до имени файла.
const autoPathLimit = 40

// Position converts a byte offset into a 1-based line/column pair.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

func (f *File) size() uint32 { return uint32(len(f.Content)) } // #nosec G115 -- размер проверен в Add

// lineBounds возвращает [start, end) строки n (с единицы) без '\n'.
func (f *File) lineBounds(n uint32) (start, end uint32, ok bool) {
	if n == 0 || n > f.LineCount() {
		return 0, 0, false
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end = f.size()
	if int(n-1) < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return start, end, true
}

// LineCount returns the number of lines; a trailing newline does not start a new one.
func (f *File) LineCount() uint32 {
	if len(f.Content) == 0 {
		return 0
	}
	n := uint32(len(f.LineIdx)) // #nosec G115 -- не больше размера файла
	if f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// LineStart returns the offset line n begins at; past the end it is len(Content).
func (f *File) LineStart(n uint32) uint32 {
	switch {
	case n <= 1:
		return 0
	case int(n-2) < len(f.LineIdx):
		return f.LineIdx[n-2] + 1
	default:
		return f.size()
	}
}

// GetLine returns line n without its newline, or "" when there is no such line.
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// Lines returns all lines indexed from 1; Lines()[0] is always "".
func (f *File) Lines() []string {
	out := make([]string, f.LineCount()+1)
	for i := 1; i < len(out); i++ {
		out[i] = f.GetLine(uint32(i)) // #nosec G115 -- i <= LineCount
	}
	return out
}

// Slice returns the text under span, clamped to the file.
func (f *File) Slice(span Span) string {
	end := min(span.End, f.size())
	start := min(span.Start, end)
	return string(f.Content[start:end])
}

// FormatPath renders the path for output. mode is one of
// "absolute", "relative", "basename" or "auto"; anything else prints Path as stored.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= autoPathLimit {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
