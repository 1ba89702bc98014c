// internal/tui/tui.go
// Package tui provides the interactive terminal browser for report overviews.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/evalreport"
	"github.com/mwiater/evalboard/internal/render"
)

const (
	headerHeight = 3
	footerHeight = 2
	overviewTab  = "Overview"
)

// Loader produces a fresh overview. It is called on start and on every reload.
type Loader func(ctx context.Context) evalreport.Overview

// SourceLoader loads src afresh on every call.
func SourceLoader(src evalreport.Source, opts evalreport.Options) Loader {
	return func(ctx context.Context) evalreport.Overview {
		return evalreport.BuildOverview(evalreport.Load(ctx, src), opts)
	}
}

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// model is the Bubble Tea model of the report browser.
type model struct {
	ctx       context.Context
	load      Loader
	overview  evalreport.Overview
	tabs      []string
	active    int
	viewport  viewport.Model
	spinner   spinner.Model
	isLoading bool
	loadedAt  time.Time
	width     int
	height    int
}

// overviewLoadedMsg carries the result of a load.
type overviewLoadedMsg struct {
	overview evalreport.Overview
	at       time.Time
}

func newModel(ctx context.Context, load Loader) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &model{
		ctx:       ctx,
		load:      load,
		tabs:      []string{overviewTab},
		viewport:  viewport.New(100, 5),
		spinner:   s,
		isLoading: true,
	}
}

func loadCmd(ctx context.Context, load Loader) tea.Cmd {
	return func() tea.Msg {
		return overviewLoadedMsg{overview: load(ctx), at: time.Now()}
	}
}

// Init starts the spinner and the first load.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.load))
}

// Update handles key presses, resizes and load results.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.selectTab(m.active + 1)
			return m, nil
		case "shift+tab", "left", "h":
			m.selectTab(m.active - 1)
			return m, nil
		case "r":
			if m.isLoading {
				return m, nil
			}
			m.isLoading = true
			return m, tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.load))
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight)
		m.refreshContent()
		return m, nil

	case overviewLoadedMsg:
		m.isLoading = false
		m.overview = msg.overview
		m.loadedAt = msg.at
		m.tabs = tabTitles(msg.overview)
		if m.active >= len(m.tabs) {
			m.active = 0
		}
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		if !m.isLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the tab bar, the active page and the key help.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")
	if m.isLoading && m.loadedAt.IsZero() {
		fmt.Fprintf(&b, "  %s Loading report...\n", m.spinner.View())
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab: switch view • ↑/↓: scroll • r: reload • q: quit"))
	return b.String()
}

func (m *model) selectTab(i int) {
	n := len(m.tabs)
	m.active = ((i % n) + n) % n
	m.refreshContent()
}

func (m *model) refreshContent() {
	m.viewport.SetContent(m.page(m.active))
	m.viewport.GotoTop()
}

// page renders tab i. Tab 0 is the overview; the rest follow the views.
func (m *model) page(i int) string {
	var buf bytes.Buffer
	styles := render.NewStyles(false)
	if i == 0 {
		if err := render.WriteSummary(&buf, m.overview, styles); err != nil {
			return warnStyle.Render(err.Error())
		}
		return buf.String()
	}
	if i-1 >= len(m.overview.Views) {
		return ""
	}
	v := m.overview.Views[i-1]
	fmt.Fprintf(&buf, "%d cases matched, %d%% passed\n\n", v.Total, v.PassRate)
	if err := render.WriteCategories(&buf, v.Categories, styles); err != nil {
		return warnStyle.Render(err.Error())
	}
	fmt.Fprintln(&buf)
	render.WriteFailureLog(&buf, v.Title, v.Failures, styles)
	return buf.String()
}

func (m *model) tabBar() string {
	rendered := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			rendered[i] = activeTabStyle.Render(t)
		} else {
			rendered[i] = inactiveTabStyle.Render(t)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *model) statusLine() string {
	if m.isLoading {
		return statusStyle.Render(m.spinner.View() + " reloading...")
	}
	if !m.overview.Available {
		line := render.NoDataMessage
		if m.overview.Reason != "" {
			line += " " + m.overview.Reason
		}
		return warnStyle.Render(line)
	}
	return statusStyle.Render(fmt.Sprintf("%s • %d cases • loaded %s", m.overview.Source, m.overview.TotalCases, m.loadedAt.Format("15:04:05")))
}

func tabTitles(ov evalreport.Overview) []string {
	titles := make([]string, 0, len(ov.Views)+1)
	titles = append(titles, overviewTab)
	for _, v := range ov.Views {
		titles = append(titles, v.Title)
	}
	return titles
}

// Start runs the browser until the user quits or ctx is cancelled.
func Start(ctx context.Context, load Loader) error {
	m := newModel(ctx, load)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
