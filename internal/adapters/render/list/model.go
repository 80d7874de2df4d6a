package list

import (
	"errors"
	"io"

	"github.com/bnema/scantally/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// rowsReadyMsg carries the item rows in display order and the key column
// width shared by all of them.
type rowsReadyMsg struct {
	rows     []application.ItemView
	keyWidth int
}

type model struct {
	listing application.Listing
	opts    RenderOptions
	styles  styles
	output  string
}

func newModel(listing application.Listing, opts RenderOptions) model {
	return model{
		listing: listing,
		opts:    opts,
		styles:  newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	items := m.listing.Items
	order := m.opts.Sort

	return func() tea.Msg {
		rows := application.SortItems(items, order)
		return rowsReadyMsg{rows: rows, keyWidth: keyWidth(rows)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsReadyMsg:
		m.output = renderView(m.listing, msg.rows, msg.keyWidth, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render lays out the listing once and returns the text; no terminal is
// touched.
func Render(listing application.Listing, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(listing, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
