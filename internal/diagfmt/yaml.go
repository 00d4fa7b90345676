package diagfmt

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"pyplus/internal/diag"
	"pyplus/internal/source"
)

// YAML форматирует диагностики в YAML той же структуры, что и JSON.
func YAML(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildDiagnosticsOutput(bag, fs, opts)); err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}
	return enc.Close()
}
