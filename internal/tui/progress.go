package tui

import (
	"context"
	"fmt"

	"promptpack/internal/index"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Job runs an index update, reporting progress through the callback.
type Job func(ctx context.Context, onProgress index.ProgressFunc) (*index.Stats, error)

type progressModel struct {
	spinner   spinner.Model
	cancel    context.CancelFunc
	current   string
	processed int
	total     int
	done      bool
	stats     *index.Stats
	err       error
}

func newProgressModel(cancel context.CancelFunc) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle
	return progressModel{spinner: sp, cancel: cancel}
}

// progressMsg is sent after each file is handled.
type progressMsg struct {
	path      string
	processed int
	total     int
}

// doneMsg is sent when the job returns.
type doneMsg struct {
	stats *index.Stats
	err   error
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			// The job sees the cancelled context and finishes the current file.
			m.cancel()
		}
		return m, nil
	case progressMsg:
		m.current = msg.path
		m.processed = msg.processed
		m.total = msg.total
		return m, nil
	case doneMsg:
		m.done = true
		m.stats = msg.stats
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	s := "\n" + titleStyle.Render("  Summarizing") + "\n\n"

	if m.done {
		if m.err != nil {
			s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
		} else {
			s += successStyle.Render("  ✓ Index up to date") + "\n"
		}
		if m.stats != nil {
			s += fmt.Sprintf("  Files: %s\n", m.stats)
			if m.stats.FilesFailed > 0 {
				s += warnStyle.Render(fmt.Sprintf("  %d files could not be summarized; rerun to retry them", m.stats.FilesFailed)) + "\n"
			}
		}
		return s + "\n"
	}

	s += fmt.Sprintf("  %s %d / %d files\n", m.spinner.View(), m.processed, m.total)
	if m.current != "" {
		s += dimStyle.Render("  "+m.current) + "\n"
	}
	s += "\n" + dimStyle.Render("  Press q to stop after the current file.") + "\n"
	return s
}

// RunProgress runs job while showing a spinner and file counter. It returns
// the job's own result.
func RunProgress(ctx context.Context, job Job) (*index.Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(cancel))

	go func() {
		stats, err := job(ctx, func(path string, processed, total int) {
			p.Send(progressMsg{path: path, processed: processed, total: total})
		})
		p.Send(doneMsg{stats: stats, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(progressModel)
	return m.stats, m.err
}
