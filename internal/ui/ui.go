// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/state"
	"github.com/litescript/ls-ephem/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewSky
)

// viewCount is the number of views cycled by tab.
const viewCount = 2

// OffsetStep is the time shift applied by the + and - keys.
const OffsetStep = time.Hour

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// DataUpdateMsg signals a new observation is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a computation error.
	ErrorMsg struct {
		Error error
	}
)

// RefreshFunc asks the owner of the compute loop for a new observation. It
// must not block.
type RefreshFunc func()

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state   *state.Manager
	refresh RefreshFunc

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	// Sub-models
	dashboard DashboardModel
	skyView   SkyViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model. refresh may be nil.
func New(stateMgr *state.Manager, refresh RefreshFunc) Model {
	if refresh == nil {
		refresh = func() {}
	}
	return Model{
		state:     stateMgr,
		refresh:   refresh,
		viewMode:  ViewDashboard,
		dashboard: NewDashboardModel(),
		skyView:   NewSkyViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "s":
			m.viewMode = ViewSky
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "r":
			m.refresh()
		case "+", "=":
			m.state.ShiftOffset(OffsetStep)
			m.refresh()
		case "-", "_":
			m.state.ShiftOffset(-OffsetStep)
			m.refresh()
		case "0":
			m.state.SetOffset(0)
			m.refresh()

		default:
			if m.viewMode == ViewSky {
				var cmd tea.Cmd
				m.skyView, cmd = m.skyView.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// header ~3 lines, footer ~2 lines
		contentHeight := msg.Height - 5
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.animTick++
		m.snapshot = m.state.Snapshot()
		m.dashboard = m.dashboard.UpdateData(m.snapshot)
		m.skyView = m.skyView.UpdateData(m.snapshot)

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.dashboard = m.dashboard.UpdateData(m.snapshot).SetError(nil)
		m.skyView = m.skyView.UpdateData(m.snapshot)

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSky:
		content = m.skyView.View()
	default:
		content = m.dashboard.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := accent.Render("  ls-ephem") + muted.Render(fmt.Sprintf(" v%s · Sun & Moon", version.Version))
	return title + "\n" + m.renderTabs() + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Dashboard", "[2] Sky"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

// spinnerFrames animate the footer while waiting.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.Observation != nil:
		status = accentStyle.Render(spinner) + dimStyle.Render(" computed in "+m.snapshot.ComputeDuration.Round(time.Microsecond).String())
		if off := m.snapshot.Offset; off != 0 {
			status += dimStyle.Render(fmt.Sprintf(" | offset %+.0fh", off.Hours()))
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" Computing...")
	}

	help := dimStyle.Render("tab: switch view | r: refresh | +/-: ±1h | 0: now | q: quit")
	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}
