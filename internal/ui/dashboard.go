package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/body"
	"github.com/litescript/ls-ephem/internal/report"
	"github.com/litescript/ls-ephem/internal/state"
)

const deg = math.Pi / 180

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("226"))

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// DashboardModel shows positions, event times, illumination and recent
// horizon crossings.
type DashboardModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	lastErr  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashboardModel) UpdateData(snapshot state.Snapshot) DashboardModel {
	m.snapshot = snapshot
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	obs := m.snapshot.Observation
	if obs == nil {
		b.WriteString("Waiting for first observation...\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  ·  %s UT", obs.Location, obs.Time.Format("2006-01-02 15:04:05"))))
	b.WriteString("\n\n")
	b.WriteString(m.renderBodyTable(*obs))
	b.WriteString("\n")
	b.WriteString(m.renderAltitudes())
	b.WriteString("\n")
	b.WriteString(renderIllumination(obs.Illumination))
	b.WriteString("\n\n")
	b.WriteString(m.renderEvents())

	return b.String()
}

func (m DashboardModel) renderBodyTable(obs body.Observation) string {
	var b strings.Builder

	header := fmt.Sprintf("%-5s %8s %8s %-14s %-12s %-12s %-9s %-9s %-9s",
		"Body", "Az", "Alt", "RA", "Dec", "Distance", "Rise", "Transit", "Set")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	rows := report.GenerateSummaryRows(obs)
	for i, k := range body.Kinds {
		r, bo := rows[i], obs.Body(k)
		row := fmt.Sprintf("%-5s %8s %7.2f° %-14s %-12s %-12s %-9s %-9s %-9s",
			r.Body, r.Azimuth, bo.Altitude/deg, r.RA, r.Dec, r.Distance, r.Rise, r.Transit, r.Set)
		if bo.AboveHorizon() {
			b.WriteString(upStyle.Render("●") + " " + rowStyle.Render(row))
		} else {
			b.WriteString(downStyle.Render("○") + " " + rowStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m DashboardModel) renderAltitudes() string {
	var b strings.Builder
	for _, k := range body.Kinds {
		label := fmt.Sprintf("%-5s ", k)
		b.WriteString(downStyle.Render(label))
		b.WriteString(renderAltitudeSparkline(m.snapshot.Altitudes[k]))
		b.WriteString("\n")
	}
	return b.String()
}

// renderIllumination draws the illuminated fraction of the Moon as a bar.
func renderIllumination(il body.Illumination) string {
	const width = 20
	filled := int(math.Round(il.Fraction * width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("Moon  [%s] %5.1f%%  limb %.0f°",
		upStyle.Render(bar), il.Fraction*100, il.PositionAngle/deg)
}

func (m DashboardModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Horizon crossings"))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString("  No events yet\n")
		return b.String()
	}

	maxRows := m.height - 16
	if maxRows < 3 {
		maxRows = 3
	}
	if len(events) > maxRows {
		events = events[len(events)-maxRows:]
	}
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		style := downStyle
		if e.Type == state.EventRise {
			style = upStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s %-5s az %6.2f°\n",
			e.Timestamp.UTC().Format(time.TimeOnly), style.Render(fmt.Sprintf("%-4s", e.Type)), e.Body, e.Azimuth))
	}
	return b.String()
}
