package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }

// Nop discards everything.
var Nop Tracer = nopTracer{}

func enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

// Config holds tracer configuration.
type Config struct {
	Level  Level
	Format Format // FormatAuto: по расширению OutputPath
	// Output имеет приоритет над OutputPath.
	Output io.Writer
	// OutputPath — файл; "" или "-" означает stderr.
	OutputPath string
}

// New creates a stream tracer for cfg, or Nop when the level is off.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	var closer io.Closer
	w := cfg.Output
	if w == nil {
		switch cfg.OutputPath {
		case "", "-":
			w = os.Stderr
		default:
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to create trace file: %w", err)
			}
			w, closer = f, f
		}
	}
	return &StreamTracer{
		w:      bufio.NewWriter(w),
		closer: closer,
		level:  cfg.Level,
		format: format,
	}, nil
}
