// Package report renders observations for headless use: an aligned text
// summary with sexagesimal angles and a JSON export.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-ephem/internal/body"
	"github.com/litescript/ls-ephem/internal/solstice"
	"github.com/litescript/ls-ephem/internal/state"
)

const deg = math.Pi / 180

var titleStyle = lipgloss.NewStyle().Bold(true)

// FormatAngle formats an angle in radians as degrees, minutes and seconds
// with prec decimals on the seconds.
func FormatAngle(rad float64, prec int) string {
	return fmt.Sprintf("%.*s", prec, sexa.FmtAngle(unit.Angle(rad)))
}

// FormatRA formats a right ascension in radians as hours, minutes and
// seconds with prec decimals on the seconds.
func FormatRA(rad float64, prec int) string {
	return fmt.Sprintf("%.*s", prec, sexa.FmtRA(unit.RA(rad)))
}

// FormatDistance returns a human-readable distance string.
func FormatDistance(km float64) string {
	switch {
	case km <= 0:
		return "N/A"
	case km < 1e6:
		return fmt.Sprintf("%.0f km", km)
	default:
		return fmt.Sprintf("%.4f AU", km/149597870)
	}
}

// FormatEventTime returns the time of day in UTC, or "--" for a zero time.
func FormatEventTime(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.UTC().Format("15:04:05")
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Body     string
	Azimuth  string
	Altitude string
	RA       string
	Dec      string
	Distance string
	Rise     string
	Transit  string
	Set      string
}

// GenerateSummaryRows creates one summary row per body.
func GenerateSummaryRows(obs body.Observation) []SummaryRow {
	rows := make([]SummaryRow, 0, len(body.Kinds))
	for _, k := range body.Kinds {
		b := obs.Body(k)
		r := SummaryRow{
			Body:     k.String(),
			Azimuth:  fmt.Sprintf("%.2f°", b.Azimuth/deg),
			Altitude: FormatAngle(b.Altitude, 0),
			RA:       FormatRA(b.RA, 1),
			Dec:      FormatAngle(b.Dec, 0),
			Distance: FormatDistance(b.Distance),
		}
		if b.NoEvent {
			r.Rise, r.Transit, r.Set = "never up", "--", "--"
			if b.Circumpolar {
				r.Rise = "always up"
			}
		} else {
			r.Rise = FormatEventTime(b.Rise)
			r.Transit = FormatEventTime(b.Transit)
			r.Set = FormatEventTime(b.Set)
		}
		rows = append(rows, r)
	}
	return rows
}

// WriteSummary writes a text table of obs to w.
func WriteSummary(w io.Writer, obs body.Observation) {
	title := fmt.Sprintf("Sun & Moon @ %s", obs.Time.UTC().Format(time.RFC3339))
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintf(w, "Observer: %s, %.0f m\n", obs.Location, obs.Location.Height)
	fmt.Fprintln(w, strings.Repeat("─", 100))

	fmt.Fprintf(w, "%-5s %-8s %-12s %-14s %-12s %-12s %-11s %-9s %-9s\n",
		"Body", "Az", "Alt", "RA", "Dec", "Distance", "Rise", "Transit", "Set")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, r := range GenerateSummaryRows(obs) {
		fmt.Fprintf(w, "%-5s %-8s %-12s %-14s %-12s %-12s %-11s %-9s %-9s\n",
			r.Body, r.Azimuth, r.Altitude, r.RA, r.Dec, r.Distance, r.Rise, r.Transit, r.Set)
	}

	il := obs.Illumination
	fmt.Fprintf(w, "\nMoon: %.1f%% illuminated, phase angle %.1f°, bright limb %.1f°\n",
		il.Fraction*100, il.PhaseAngle/deg, il.PositionAngle/deg)
}

// WriteEvents writes the last n horizon crossings to w.
func WriteEvents(w io.Writer, events []state.Event, n int) {
	fmt.Fprintln(w, titleStyle.Render("Event Log"))
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %-4s %-5s az %6.2f°\n",
			e.Timestamp.UTC().Format("2006-01-02 15:04:05"), e.Type, e.Body, e.Azimuth)
	}
}

// WriteSeasons writes the equinoxes and solstices of year y in UT.
func WriteSeasons(w io.Writer, y int) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Equinoxes and solstices %d", y)))
	for _, s := range solstice.Seasons {
		m, err := s.Moment(y)
		if err != nil {
			return fmt.Errorf("%v %d: %w", s, y, err)
		}
		fmt.Fprintf(w, "%-18s %s\n", s, m.Time().Format("2006-01-02 15:04:05 UTC"))
	}
	return nil
}
