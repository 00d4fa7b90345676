// Package ui рисует прогресс многофайловой конвертации в терминале.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	bp "pyplus/internal/buildpipeline"
)

// maxRows — сколько строк файлов видно одновременно; остальные сводятся в счётчик.
const maxRows = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type fileRow struct {
	path      string
	stage     bp.Stage
	status    bp.Status
	fallbacks int
	cached    bool
}

// label — текст колонки статуса.
func (r fileRow) label() string {
	if r.status == bp.StatusWorking {
		return r.stage.Label()
	}
	return string(r.status)
}

func (r fileRow) style() lipgloss.Style {
	switch r.status {
	case bp.StatusDone:
		return doneStyle
	case bp.StatusError:
		return errorStyle
	case bp.StatusWorking:
		return workingStyle
	default:
		return mutedStyle
	}
}

// note — хвост строки завершённого файла: откаты и попадание в кэш.
func (r fileRow) note() string {
	var parts []string
	if r.fallbacks > 0 {
		parts = append(parts, fmt.Sprintf("%d fallback(s)", r.fallbacks))
	}
	if r.cached {
		parts = append(parts, "cached")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + mutedStyle.Render("("+strings.Join(parts, ", ")+")")
}

type progressModel struct {
	title   string
	events  <-chan bp.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	phase   bp.Stage
	width   int
	done    bool
}

type (
	eventMsg bp.Event
	closedMsg struct{}
)

// NewProgressModel returns a Bubble Tea model fed by pipeline events;
// it quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan bp.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(workingStyle))
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(60)),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, stage: bp.StageParse, status: bp.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(bp.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 40)
		m.bar.Width = m.width - 4
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply обновляет строку файла; событие без File меняет общую стадию.
func (m *progressModel) apply(ev bp.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == bp.StatusWorking {
			m.phase = ev.Stage
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.stage, row.status = ev.Stage, ev.Status
	if ev.Status.Finished() {
		row.fallbacks, row.cached = ev.Fallbacks, ev.Cached
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range m.rows {
		switch {
		case r.status.Finished():
			total++
		case r.status == bp.StatusWorking:
			total += r.stage.Weight()
		}
	}
	return total / float64(len(m.rows))
}

func (m *progressModel) counts() (finished, failed int) {
	for _, r := range m.rows {
		if r.status.Finished() {
			finished++
		}
		if r.status == bp.StatusError {
			failed++
		}
	}
	return finished, failed
}

// visible выбирает строки для показа: сначала активные, потом остальные по порядку.
func (m *progressModel) visible() []fileRow {
	if len(m.rows) <= maxRows {
		return m.rows
	}
	out := make([]fileRow, 0, maxRows)
	for _, r := range m.rows {
		if r.status == bp.StatusWorking && len(out) < maxRows {
			out = append(out, r)
		}
	}
	for _, r := range m.rows {
		if r.status != bp.StatusWorking && len(out) < maxRows {
			out = append(out, r)
		}
	}
	return out
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	finished, failed := m.counts()
	header := m.title
	if label := m.phase.Label(); label != "" && !m.done {
		header += " (" + label + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	fmt.Fprintf(&b, "  %d/%d", finished, len(m.rows))
	if failed > 0 {
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-4, 20)
	rows := m.visible()
	for _, r := range rows {
		status := r.style().Render(fmt.Sprintf("%*s", statusWidth, r.label()))
		fmt.Fprintf(&b, "  %s %s%s\n", status, truncate(r.path, nameWidth), r.note())
	}
	if hidden := len(m.rows) - len(rows); hidden > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  … %d more", hidden)) + "\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// truncate обрезает по ширине в колонках терминала, многоточие входит в ширину.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
