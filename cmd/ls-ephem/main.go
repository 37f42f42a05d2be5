// Command ls-ephem shows where the Sun and the Moon are for an observer, in a
// terminal UI or as text and JSON reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-ephem/internal/body"
	"github.com/litescript/ls-ephem/internal/config"
	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/logging"
	"github.com/litescript/ls-ephem/internal/report"
	"github.com/litescript/ls-ephem/internal/schedule"
	"github.com/litescript/ls-ephem/internal/state"
	"github.com/litescript/ls-ephem/internal/ui"
	"github.com/litescript/ls-ephem/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	eventsMode    bool
	jsonPath      string
	watchInterval time.Duration
	cronSpecs     []string
	solsticeYear  int
)

const (
	minRefresh = 1 * time.Second
	maxRefresh = 5 * time.Minute
)

// options holds the flags that override the configuration file.
type options struct {
	configPath string
	envPath    string
	lat, lon   float64
	height     float64
	name       string
	at         string
	logLevel   string
	refresh    time.Duration
	set        map[string]bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Config file (.json or .toml)")
	flag.StringVar(&opts.envPath, "env", "", "Env file with LS_EPHEM_* variables (default .env)")
	flag.Float64Var(&opts.lat, "lat", 0, "Observer latitude in degrees, north positive")
	flag.Float64Var(&opts.lon, "lon", 0, "Observer longitude in degrees, east positive")
	flag.Float64Var(&opts.height, "height", 0, "Observer height above sea level in meters")
	flag.StringVar(&opts.name, "name", "", "Observer name")
	flag.StringVar(&opts.at, "at", "", "Start the clock at this RFC 3339 time instead of now")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.DurationVar(&opts.refresh, "refresh", 0, "Recompute interval (e.g., 5s, 1m)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.BoolVar(&eventsMode, "events", false, "Show horizon crossings seen while watching")
	flag.StringVar(&jsonPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat output at interval (e.g., 30s)")
	flag.Func("cron", `Log the sky on a schedule ("sunset -30m", "0 * * * *"); repeatable`, func(s string) error {
		cronSpecs = append(cronSpecs, s)
		return nil
	})
	flag.IntVar(&solsticeYear, "solstices", 0, "Print equinoxes and solstices of a year")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-ephem %s\n", version.Version)
		return
	}

	if solsticeYear != 0 {
		if err := report.WriteSeasons(os.Stdout, solsticeYear); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	refresh, err := cfg.RefreshInterval()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	refresh = clampRefresh(refresh)

	clk, err := newClock(opts.at, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(cfg.Logging.Level))
	logger.Debug("observer %s, refresh %v", loc, refresh)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize components
	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = refresh
	if cfg.Display.MaxEvents > 0 {
		stateCfg.MaxEvents = cfg.Display.MaxEvents
	}
	stateMgr := state.NewManager(stateCfg)
	obs := &observer{clock: clk, location: loc, state: stateMgr, logger: logger.Named("compute")}

	if len(cronSpecs) > 0 {
		if err := runScheduled(ctx, obs, cronSpecs, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Headless mode: no TUI
	headless := summaryMode || eventsMode || jsonPath != "" || watchInterval > 0
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		summaryMode, headless = true, true
	}
	if headless {
		runHeadless(ctx, obs)
		return
	}

	refreshCh := make(chan struct{}, 1)
	model := ui.New(stateMgr, func() {
		select {
		case refreshCh <- struct{}{}:
		default:
		}
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Start compute loop in background
	go runComputeLoop(ctx, obs, refreshCh, p)

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the env file and the config file, then applies the
// command-line overrides recorded in opts.set.
func loadConfig(opts options) (*config.Config, error) {
	if err := config.LoadEnvFile(opts.envPath); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.set["lat"] {
		cfg.Observer.Latitude = opts.lat
	}
	if opts.set["lon"] {
		cfg.Observer.Longitude = opts.lon
	}
	if opts.set["height"] {
		cfg.Observer.Elevation = opts.height
	}
	if opts.set["name"] {
		cfg.Observer.Name = opts.name
	}
	if opts.set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.set["refresh"] {
		cfg.Display.Refresh = opts.refresh.String()
	}
	if (opts.set["lat"] || opts.set["lon"]) && !opts.set["name"] {
		cfg.Observer.Name = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func clampRefresh(d time.Duration) time.Duration {
	if d < minRefresh {
		return minRefresh
	}
	if d > maxRefresh {
		return maxRefresh
	}
	return d
}

// clock runs from origin at wall-clock speed.
type clock struct {
	origin time.Time
	start  time.Time
	wall   func() time.Time
}

// newClock returns a clock starting at the RFC 3339 time at, or following
// the wall clock when at is empty.
func newClock(at string, now time.Time) (clock, error) {
	c := clock{origin: now, start: now, wall: time.Now}
	if strings.TrimSpace(at) == "" {
		return c, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(at))
	if err != nil {
		return clock{}, fmt.Errorf("parse -at: %w", err)
	}
	c.origin = t
	return c, nil
}

// Now returns the current simulated time.
func (c clock) Now() time.Time {
	return c.origin.Add(c.wall().Sub(c.start))
}

// observer computes observations and records them in the state manager.
type observer struct {
	clock    clock
	location coord.Location
	state    *state.Manager
	logger   *logging.Logger
}

// observe computes the sky at the clock time plus the state offset.
func (o *observer) observe() (body.Observation, error) {
	return o.observeAt(o.clock.Now().Add(o.state.Offset()))
}

func (o *observer) observeAt(t time.Time) (obs body.Observation, err error) {
	done := logging.Timer(o.logger, "observe")
	defer done(&err)

	start := time.Now()
	obs, err = body.Observe(t, o.location)
	dur := time.Since(start)
	if err != nil {
		o.state.Update(nil, dur, err)
		return obs, err
	}
	o.state.Update(&obs, dur, nil)
	return obs, nil
}

func runComputeLoop(ctx context.Context, o *observer, refreshCh <-chan struct{}, p *tea.Program) {
	// Do initial computation immediately
	doCompute(o, p)

	ticker := time.NewTicker(o.state.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.logger.Debug("loop stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			doCompute(o, p)
		case <-refreshCh:
			doCompute(o, p)
		}
	}
}

func doCompute(o *observer, p *tea.Program) {
	if _, err := o.observe(); err != nil {
		p.Send(ui.ErrorMsg{Error: err})
		return
	}
	p.Send(ui.DataUpdateMsg{Snapshot: o.state.Snapshot()})
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, o *observer) {
	outputOnce := func() error {
		obs, err := o.observe()
		if err != nil {
			return err
		}

		// Export JSON if requested
		if jsonPath != "" {
			export := report.Export(obs)
			if jsonPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(jsonPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode {
			report.WriteSummary(os.Stdout, obs)
		}

		if eventsMode {
			fmt.Println()
			report.WriteEvents(os.Stdout, o.state.RecentEvents(10), 10)
		}
		return nil
	}

	// Single run
	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// runScheduled prints a one-line sky report each time a schedule fires, until
// ctx is canceled. Schedules run on the wall clock so -at does not apply.
func runScheduled(ctx context.Context, o *observer, specs []string, logger *logging.Logger) error {
	s := schedule.New(o.location, logger)
	log := logger.Named("schedule")
	for _, spec := range specs {
		sched, err := s.Add(spec, func() {
			obs, err := o.observeAt(time.Now())
			if err != nil {
				log.Error("%s: %v", spec, err)
				return
			}
			fmt.Println(skyLine(spec, obs))
		})
		if err != nil {
			return err
		}
		if next := sched.Next(time.Now()); next.IsZero() {
			log.Warn("%s: no upcoming run", spec)
		} else {
			log.Info("%s: next run %s", spec, next.UTC().Format(time.RFC3339))
		}
	}

	s.Start()
	<-ctx.Done()
	<-s.Stop().Done()
	return nil
}

// skyLine formats an observation on one line.
func skyLine(label string, obs body.Observation) string {
	const deg = 180 / math.Pi
	return fmt.Sprintf("%s  %-14s sun az %6.2f° alt %6.2f°  moon az %6.2f° alt %6.2f° %5.1f%%",
		obs.Time.Format(time.RFC3339), label,
		obs.Sun.Azimuth*deg, obs.Sun.Altitude*deg,
		obs.Moon.Azimuth*deg, obs.Moon.Altitude*deg,
		obs.Illumination.Fraction*100)
}
