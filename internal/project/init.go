package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const sampleMain = `# pyplus sample program
def add(a, b=2):
    return a + b


total = add(1)
print(total)
`

// Init создаёт pyplus.toml и main.py в dir. Каталог создаётся при
// необходимости; существующий manifest не перезаписывается.
// Возвращает пути созданных файлов.
func Init(dir string) ([]string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	name := strings.TrimSpace(filepath.Base(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "pyplus-project"
	}
	cfg := Config{
		Project: ProjectConfig{Name: name},
		Convert: ConvertConfig{Sources: []string{"main.py"}, OutDir: DefaultOutDir, Indent: DefaultIndent},
	}
	data, err := cfg.Encode()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	created := []string{manifestPath}

	mainPath := filepath.Join(dir, "main.py")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(sampleMain), 0o600); err != nil {
			return created, fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		created = append(created, mainPath)
	}
	return created, nil
}
