// Package viewer is the terminal front end shown after a plot is rendered.
// It lists the computed series and, for the selected one, the Poisson and
// Gaussian probabilities around the Poisson mode.
package viewer

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/poissongauss/internal/clt"
)

// detailRadius is how many count values are listed on each side of the mode.
const detailRadius = 8

// RenderFunc writes the figure and returns the path it was written to.
type RenderFunc func() (string, error)

type viewState int

const (
	viewRendering viewState = iota // figure is being written
	viewSeries                     // choosing a series
	viewDetail                     // probabilities around the selected mode
)

type model struct {
	series []clt.Series
	render RenderFunc

	state     viewState
	isLoading bool
	err       error
	outPath   string

	seriesList list.Model
	viewport   viewport.Model
	spinner    spinner.Model
	selected   int

	width, height    int
	requestStartTime time.Time
}

type item struct {
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// renderedMsg is sent once the figure has been written.
type renderedMsg struct{ path string }

// renderErr is sent when writing the figure fails.
type renderErr error

func initialModel(series []clt.Series, render RenderFunc) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := make([]list.Item, len(series))
	for i, sr := range series {
		items[i] = item{
			title: sr.Label,
			desc:  fmt.Sprintf("mean %g, sigma %.4g, mode %g", sr.Mean, sr.Sigma, sr.Mode.X),
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a series"

	return &model{
		series:           series,
		render:           render,
		state:            viewRendering,
		isLoading:        true,
		seriesList:       l,
		viewport:         viewport.New(100, 5),
		spinner:          s,
		requestStartTime: time.Now(),
	}
}

func renderCmd(render RenderFunc) tea.Cmd {
	return func() tea.Msg {
		path, err := render()
		if err != nil {
			return renderErr(err)
		}
		return renderedMsg{path: path}
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, renderCmd(m.render))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "tab":
			if m.state == viewDetail {
				m.state = viewSeries
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.seriesList.SetSize(msg.Width-2, msg.Height-4)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4

	case renderedMsg:
		m.isLoading = false
		m.outPath = msg.path
		m.state = viewSeries
		return m, nil

	case renderErr:
		// Nothing to show without a figure; Start reports m.err.
		m.isLoading = false
		m.err = msg
		return m, tea.Quit
	}

	switch m.state {
	case viewSeries:
		m.seriesList, cmd = m.seriesList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if _, ok := m.seriesList.SelectedItem().(item); ok {
				m.selected = m.seriesList.Index()
				m.viewport.SetContent(Detail(m.series[m.selected], detailRadius))
				m.viewport.GotoTop()
				m.state = viewDetail
			}
		}

	case viewDetail:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case viewRendering:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Rendering figure... %ss\n", m.spinner.View(), timer)

	case viewSeries:
		header := headerStyle.Render("Figure: "+m.outPath) + faintStyle.Render(" (enter for details, q to quit)")
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			lipgloss.NewStyle().Margin(1, 2).Render(m.seriesList.View()),
		)

	case viewDetail:
		help := faintStyle.Render("(esc to go back, q to quit)")
		return m.viewport.View() + "\n" + help

	default:
		return "Unknown state"
	}
}

// Start runs the viewer until the user quits. render is called once, off
// the UI goroutine, to write the figure; if it fails the viewer exits and
// the render error is returned.
func Start(series []clt.Series, render RenderFunc, debugLog string) error {
	if debugLog != "" {
		f, err := tea.LogToFile(debugLog, "debug")
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
	}
	return run(initialModel(series, render), tea.WithAltScreen())
}

func run(m *model, opts ...tea.ProgramOption) error {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("error running viewer: %w", err)
	}
	if fm, ok := final.(*model); ok && fm.err != nil {
		return fmt.Errorf("could not render figure: %w", fm.err)
	}
	return nil
}
