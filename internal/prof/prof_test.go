package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	be.True(t, cfg.Enabled())

	s, err := Start(cfg)
	be.Err(t, err, nil)
	be.Err(t, s.Stop(), nil)
	be.Err(t, s.Stop(), nil)

	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		info, err := os.Stat(path)
		be.Err(t, err, nil)
		be.True(t, info.Size() > 0)
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	be.Err(t, err, "cpu profile")
}

func TestEmptyConfig(t *testing.T) {
	be.True(t, !Config{}.Enabled())
	s, err := Start(Config{})
	be.Err(t, err, nil)
	be.Err(t, s.Stop(), nil)
}
