// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Event scheduler (-cron), equinox and solstice table, TOML config
// 0.2.0 - Lunar illumination, topocentric Moon, multi-observer queries
// 0.1.0 - Initial release: Sun/Moon positions, rise/transit/set, TUI dashboard
