package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-ephem/internal/body"
	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/state"
)

var at = time.Date(2016, 2, 21, 12, 0, 0, 0, time.UTC)

func testObservation() *body.Observation {
	loc, _ := coord.LocationFromDegrees(47.3667, 8.55, 408)
	loc.Name = "Zurich"
	return &body.Observation{
		Time:     at,
		Location: loc,
		Sun: body.BodyObservation{
			Kind: body.KindSun, Azimuth: 185.94 * deg, Altitude: 32.5 * deg,
			Distance: 148000000,
			Rise:     at.Add(-5 * time.Hour), Transit: at.Add(-20 * time.Minute), Set: at.Add(5 * time.Hour),
		},
		Moon: body.BodyObservation{
			Kind: body.KindMoon, Azimuth: 22.1 * deg, Altitude: -20 * deg,
			Distance: 392575.75, NoEvent: true,
		},
		Illumination: body.Illumination{Fraction: 0.9837, PositionAngle: 285 * deg},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel() (Model, *state.Manager, *int) {
	mgr := state.NewManager(state.DefaultConfig())
	calls := 0
	return New(mgr, func() { calls++ }), mgr, &calls
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestModelInitializing(t *testing.T) {
	m, _, _ := newTestModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q before the first WindowSizeMsg", got)
	}
	if m.Init() == nil {
		t.Error("Init() should start the tick")
	}
}

func TestModelQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m, _, _ := newTestModel()
		_, cmd := update(t, m, key)
		if cmd == nil {
			t.Fatalf("%q: no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: command did not quit", key)
		}
	}
}

func TestModelOffsetKeys(t *testing.T) {
	m, mgr, calls := newTestModel()

	steps := []struct {
		key  tea.KeyMsg
		want time.Duration
	}{
		{runes("+"), time.Hour},
		{runes("+"), 2 * time.Hour},
		{runes("-"), time.Hour},
		{runes("0"), 0},
		{runes("-"), -time.Hour},
	}
	for i, s := range steps {
		m, _ = update(t, m, s.key)
		if got := mgr.Offset(); got != s.want {
			t.Errorf("step %d (%q): offset = %v, want %v", i, s.key, got, s.want)
		}
	}
	update(t, m, runes("r"))
	if *calls != len(steps)+1 {
		t.Errorf("refresh called %d times, want %d", *calls, len(steps)+1)
	}
}

func TestModelSwitchView(t *testing.T) {
	m, _, _ := newTestModel()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.viewMode != ViewSky {
		t.Errorf("viewMode = %v after tab, want ViewSky", m.viewMode)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.viewMode != ViewDashboard {
		t.Errorf("viewMode = %v after second tab, want ViewDashboard", m.viewMode)
	}
	m, _ = update(t, m, runes("2"))
	if m.viewMode != ViewSky {
		t.Errorf("viewMode = %v after 2, want ViewSky", m.viewMode)
	}

	before := m.skyView.camAz
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.skyView.camAz != normalizeAz(before+panStep) {
		t.Errorf("right key should pan the sky view: %v -> %v", before, m.skyView.camAz)
	}
}

func TestModelView(t *testing.T) {
	m, mgr, _ := newTestModel()
	mgr.Update(testObservation(), 3*time.Millisecond, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, DataUpdateMsg{Snapshot: mgr.Snapshot()})

	view := m.View()
	for _, want := range []string{"ls-ephem", "Zurich", "sun", "moon", "Horizon crossings", "computed in"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}

	m, _ = update(t, m, runes("2"))
	if view := m.View(); !strings.Contains(view, "Sky View") {
		t.Error("sky view not rendered")
	}
}

func TestModelErrorMsg(t *testing.T) {
	m, _, _ := newTestModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, ErrorMsg{Error: errors.New("boom")})
	if !strings.Contains(m.View(), "Error: boom") {
		t.Error("error not shown on the dashboard")
	}
}

func TestModelTickRefreshesSnapshot(t *testing.T) {
	m, mgr, _ := newTestModel()
	mgr.Update(testObservation(), 0, nil)

	m, cmd := update(t, m, TickMsg(at))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.snapshot.Observation == nil {
		t.Error("tick should pull a snapshot from the state manager")
	}
}
