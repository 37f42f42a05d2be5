package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/body"
	"github.com/litescript/ls-ephem/internal/state"
)

const (
	// Field of view in degrees. The view always spans horizon to zenith.
	fovAz = 180.0
	fovEl = 90.0

	panStep = 15.0

	glyphSun = '☼'

	colorSun      = "226"
	colorMoon     = "255"
	colorFocused  = "229"
	colorSky      = "236"
	colorHorizon  = "60"
	colorCardinal = "252"
)

// SkyViewModel renders the sky above the observer's horizon with the Sun and
// the Moon at their current azimuth and altitude.
type SkyViewModel struct {
	width  int
	height int

	// Camera azimuth at the center of the view, degrees from north
	camAz float64
	focus body.Kind

	snapshot state.Snapshot
}

// NewSkyViewModel creates a new sky view model looking south.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{camAz: 180, focus: body.KindSun}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles panning and focus keys.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		m.camAz = normalizeAz(m.camAz - panStep)
	case "right", "l":
		m.camAz = normalizeAz(m.camAz + panStep)
	case "f":
		m = m.focusNext()
	}
	return m, nil
}

// focusNext selects the next body and centers the camera on it.
func (m SkyViewModel) focusNext() SkyViewModel {
	m.focus = body.Kinds[(int(m.focus)+1)%len(body.Kinds)]
	if obs := m.snapshot.Observation; obs != nil {
		m.camAz = obs.Body(m.focus).Azimuth / deg
	}
	return m
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(m.width, m.height-3))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	return titleStyle.Render("Sky View") + " | " +
		dimStyle.Render(fmt.Sprintf("Az:%.0f° focus:%s | ←/→: pan | f: focus", m.camAz, m.focus))
}

func (m SkyViewModel) renderStatus() string {
	obs := m.snapshot.Observation
	if obs == nil {
		return "No observation yet"
	}
	b := obs.Body(m.focus)
	where := "above the horizon"
	if !b.AboveHorizon() {
		where = "below the horizon"
	}
	return fmt.Sprintf("%s: az %.1f°, alt %.1f°, %s", m.focus, b.Azimuth/deg, b.Altitude/deg, where)
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = colorSky
		}
	}

	horizonY := height - 2
	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = colorHorizon
	}

	for _, c := range []struct {
		label string
		az    float64
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		if x, _, ok := m.projectToScreen(c.az, 0, width, height); ok && x < width {
			canvas[horizonY][x] = rune(c.label[0])
			colors[horizonY][x] = colorCardinal
		}
	}

	if obs := m.snapshot.Observation; obs != nil {
		for _, k := range body.Kinds {
			b := obs.Body(k)
			if !b.AboveHorizon() {
				continue
			}
			x, y, ok := m.projectToScreen(b.Azimuth/deg, b.Altitude/deg, width, height)
			if !ok || x < 0 || x >= width || y < 0 || y >= horizonY {
				continue
			}
			glyph, color := glyphSun, lipgloss.Color(colorSun)
			if k == body.KindMoon {
				glyph, color = moonGlyph(obs.Illumination.Fraction), colorMoon
			}
			if k == m.focus {
				color = colorFocused
			}
			canvas[y][x] = glyph
			colors[y][x] = color
		}
	}

	// observer at bottom center
	if x := width / 2; height > 0 && x < width {
		canvas[height-1][x] = '▲'
		colors[height-1][x] = "46"
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// moonGlyph picks a glyph for the illuminated fraction k.
func moonGlyph(k float64) rune {
	switch {
	case k < 0.1:
		return '○'
	case k < 0.9:
		return '◐'
	default:
		return '●'
	}
}

// projectToScreen converts azimuth and altitude in degrees to screen
// coordinates. The altitude axis runs from the horizon row up to the top.
func (m SkyViewModel) projectToScreen(az, el float64, width, height int) (int, int, bool) {
	dAz := normalizeAz(az-m.camAz+180) - 180
	if dAz < -fovAz/2 || dAz > fovAz/2 || el < 0 || el > fovEl {
		return 0, 0, false
	}

	horizonY := height - 2
	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((fovEl - el) / fovEl * float64(horizonY))
	return x, y, true
}

// normalizeAz wraps an azimuth in degrees into [0, 360).
func normalizeAz(a float64) float64 {
	for a >= 360 {
		a -= 360
	}
	for a < 0 {
		a += 360
	}
	return a
}
