package buildpipeline

import (
	"fmt"
	"io"
	"time"
)

// PrintStageTimings печатает `parsed/translated/rendered/written N ms`
// для записанных стадий.
func PrintStageTimings(out io.Writer, timings Timings) error {
	for i, info := range stages {
		if !timings.seen[i] {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", info.finished, toMillis(timings.dur[i])); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
