// Package schedule fires jobs at the rise, transit or set of the Sun or the
// Moon, alongside ordinary cron expressions.
package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/litescript/ls-ephem/internal/body"
	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/logging"
)

// searchDays is how many UT days, starting with the day of now, Next looks
// at before giving up.
const searchDays = 3

// Event selects one of the daily events of a body.
type Event int

const (
	Rise Event = iota
	Transit
	Set
)

func (e Event) String() string {
	switch e {
	case Rise:
		return "rise"
	case Transit:
		return "transit"
	case Set:
		return "set"
	default:
		return "unknown"
	}
}

// EventSchedule is a cron.Schedule firing Offset after each occurrence of
// Event of Body seen from Location.
type EventSchedule struct {
	Body     body.Kind
	Event    Event
	Location coord.Location
	Offset   time.Duration
	Logger   *logging.Logger
}

var _ cron.Schedule = EventSchedule{}

// Next returns the first event time plus Offset strictly after now. It
// returns the zero time, which cron treats as never, when the body has no
// such event on the day of now or the two days after it.
func (s EventSchedule) Next(now time.Time) time.Time {
	p, err := body.ProviderFor(s.Body)
	if err != nil {
		s.logger().Error("%s: %v", s, err)
		return time.Time{}
	}

	day := now.UTC().Truncate(24 * time.Hour)
	for i := 0; i < searchDays; i++ {
		r, d, err := body.DayTimes(p, day.AddDate(0, 0, i), s.Location)
		if err != nil {
			s.logger().Error("%s: %v", s, err)
			return time.Time{}
		}
		if r.NoEvent {
			continue
		}
		sec := r.Rise
		switch s.Event {
		case Transit:
			sec = r.Transit
		case Set:
			sec = r.Set
		}
		if t := body.EventTime(d, sec).Add(s.Offset); t.After(now) {
			s.logger().Debug("%s: next at %s", s, t.Format(time.RFC3339))
			return t.In(now.Location())
		}
	}
	s.logger().Warn("%s: no event within %d days of %s", s, searchDays, now.Format(time.RFC3339))
	return time.Time{}
}

func (s EventSchedule) logger() *logging.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}

func (s EventSchedule) String() string {
	name := s.Body.String() + s.Event.String()
	if s.Offset > 0 {
		name += "+"
	}
	if s.Offset != 0 {
		name += s.Offset.String()
	}
	return name
}

// named maps schedule keywords to a body and an event.
var named = map[string]struct {
	body  body.Kind
	event Event
}{
	"sunrise":     {body.KindSun, Rise},
	"sunset":      {body.KindSun, Set},
	"noon":        {body.KindSun, Transit},
	"suntransit":  {body.KindSun, Transit},
	"moonrise":    {body.KindMoon, Rise},
	"moonset":     {body.KindMoon, Set},
	"moontransit": {body.KindMoon, Transit},
}

// Parse returns the schedule described by spec. A spec is either an event
// keyword (sunrise, sunset, noon, suntransit, moonrise, moonset,
// moontransit) optionally followed by a space and a Go duration offset, as
// in "sunset -30m", or a standard five-field cron expression evaluated in
// UTC unless it carries a CRON_TZ= prefix.
func Parse(spec string, loc coord.Location, logger *logging.Logger) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) > 0 {
		if n, ok := named[strings.ToLower(fields[0])]; ok {
			s := EventSchedule{Body: n.body, Event: n.event, Location: loc, Logger: logger}
			switch len(fields) {
			case 1:
			case 2:
				d, err := time.ParseDuration(fields[1])
				if err != nil {
					return nil, fmt.Errorf("parse %s offset: %w", fields[0], err)
				}
				s.Offset = d
			default:
				return nil, fmt.Errorf("parse schedule %q: too many fields", spec)
			}
			return s, nil
		}
	}
	expr := spec
	if !strings.HasPrefix(expr, "TZ=") && !strings.HasPrefix(expr, "CRON_TZ=") {
		expr = "CRON_TZ=UTC " + expr
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return sched, nil
}

// Scheduler runs jobs on event and cron schedules in UTC.
type Scheduler struct {
	cron     *cron.Cron
	location coord.Location
	logger   *logging.Logger
}

// New returns a stopped Scheduler for an observer at loc.
func New(loc coord.Location, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.Named("schedule")
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC), cron.WithLogger(cronLogger{logger.Named("cron")})),
		location: loc,
		logger:   logger,
	}
}

// Add registers fn to run on spec and returns the parsed schedule.
func (s *Scheduler) Add(spec string, fn func()) (cron.Schedule, error) {
	sched, err := Parse(spec, s.location, s.logger)
	if err != nil {
		return nil, err
	}
	s.cron.Schedule(sched, cron.FuncJob(fn))
	return sched, nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once running jobs
// have completed.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger adapts the leveled logger to cron.Logger. cron reports every
// wake and run at Info, so those go to Debug.
type cronLogger struct {
	l *logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("%s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("%s: %v %v", msg, err, keysAndValues)
}
