package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/state"
)

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// altColorLow is the color for low altitude (dark blue).
var altColorLow = [3]uint8{0x1b, 0x2b, 0x4b}

// altColorMid is the color for mid altitude (blue).
var altColorMid = [3]uint8{0x34, 0x78, 0xc0}

// altColorHigh is the color for high altitude (cyan).
var altColorHigh = [3]uint8{0x8b, 0xe9, 0xff}

// renderAltitudeSparkline renders recorded altitudes, oldest on the left.
// Altitudes below the horizon use the lowest block.
func renderAltitudeSparkline(history []state.TimeSeries) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	samples := resampleAltitude(history, SparklineWidth)
	if len(samples) == 0 {
		return dimStyle.Render("no history yet")
	}

	var sb strings.Builder
	for _, alt := range samples {
		t := sparklineLevel(alt)
		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}
		r, g, b := interpolateAltColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}

	last := history[len(history)-1].Value
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render(fmt.Sprintf(" now: %.1f°", last)))
	return sb.String()
}

// sparklineLevel maps an altitude in degrees to [0, 1].
func sparklineLevel(alt float64) float64 {
	switch {
	case alt <= 0:
		return 0
	case alt >= 90:
		return 1
	default:
		return alt / 90
	}
}

// interpolateAltColor returns RGB color for altitude level t in [0, 1].
// Gradient: low (dark blue) → mid (blue) → high (cyan).
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	from, to, s := altColorLow, altColorMid, t*2
	if t >= 0.5 {
		from, to, s = altColorMid, altColorHigh, (t-0.5)*2
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-s) + float64(b)*s)
	}
	return mix(from[0], to[0]), mix(from[1], to[1]), mix(from[2], to[2])
}

// resampleAltitude averages samples into at most width buckets. Short
// histories are returned as they are.
func resampleAltitude(samples []state.TimeSeries, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}
	if len(samples) <= width {
		out := make([]float64, len(samples))
		for i, s := range samples {
			out[i] = s.Value
		}
		return out
	}

	result := make([]float64, width)
	samplesPerBucket := float64(len(samples)) / float64(width)
	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * samplesPerBucket)
		endIdx := int(float64(i+1) * samplesPerBucket)
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}

		sum := 0.0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].Value
		}
		result[i] = sum / float64(endIdx-startIdx)
	}
	return result
}
