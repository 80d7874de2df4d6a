package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ingestProgress is the running count of a scan.
type ingestProgress struct {
	Received int
	Accepted int
}

type ingestProgressMsg ingestProgress

type ingestDoneMsg struct {
	err error
}

type ingestSpinnerModel struct {
	spinner  spinner.Model
	counts   lipgloss.Style
	label    string
	progress ingestProgress
	ingest   tea.Cmd
	err      error
	done     bool
}

func newIngestSpinnerModel(label string, ingest tea.Cmd) ingestSpinnerModel {
	return ingestSpinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("39"))),
		),
		counts: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		label:  label,
		ingest: ingest,
	}
}

func (m ingestSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.ingest)
}

func (m ingestSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case ingestProgressMsg:
		m.progress = ingestProgress(msg)
		return m, nil
	case ingestDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m ingestSpinnerModel) View() string {
	if m.done {
		return ""
	}

	counts := m.counts.Render(fmt.Sprintf("%d read, %d accepted", m.progress.Received, m.progress.Accepted))
	return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, counts)
}

// runIngestSpinner runs ingest while a spinner on output shows the counts it
// reports.
func runIngestSpinner(ctx context.Context, output io.Writer, label string, ingest func(context.Context, func(ingestProgress)) error) error {
	var p *tea.Program
	ingestCmd := func() tea.Msg {
		return ingestDoneMsg{err: ingest(ctx, func(progress ingestProgress) {
			p.Send(ingestProgressMsg(progress))
		})}
	}

	p = tea.NewProgram(
		newIngestSpinnerModel(label, ingestCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(ingestSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
