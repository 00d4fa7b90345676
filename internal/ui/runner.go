package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"pyplus/internal/buildpipeline"
)

type convertOutcome struct {
	result buildpipeline.ConvertResult
	err    error
}

// RunConvert запускает конвертацию в фоне и показывает прогресс в out,
// пока канал событий не закроется.
func RunConvert(ctx context.Context, out io.Writer, title string, req *buildpipeline.ConvertRequest) (buildpipeline.ConvertResult, error) {
	if req == nil {
		return buildpipeline.ConvertResult{}, fmt.Errorf("missing convert request")
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan convertOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Convert(ctx, &reqCopy)
		outcomeCh <- convertOutcome{result: res, err: err}
		close(events)
	}()

	files := buildpipeline.DisplayPaths(req.Files, req.BaseDir)
	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// программа могла выйти раньше: дочитываем события, чтобы не блокировать конвейер
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
