// Package logging writes the leveled log lines of ls-ephem. The compute loop,
// the event scheduler and the CLI each log under their own component name
// through one shared sink, so a single SetOutput or SetLevel covers them all:
//
//	12:30:15.250 WARN  schedule: sunrise: no event within 3 days
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError

	levelOff // above every level, used by Discard
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a level name, ignoring case and surrounding space.
// "warning" is accepted for LevelWarn. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return LevelWarn
	}
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l)
		}
	}
	return LevelInfo
}

// sink is the destination shared by a logger and every logger named from it.
type sink struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	now   func() time.Time
}

func (s *sink) write(level Level, component, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < s.level {
		return
	}

	var b strings.Builder
	b.WriteString(s.now().Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s ", level)
	if component != "" {
		b.WriteString(component)
		b.WriteString(": ")
	}
	b.WriteString(strings.TrimRight(msg, "\n"))
	b.WriteByte('\n')
	_, _ = io.WriteString(s.w, b.String())
}

// Logger writes leveled lines tagged with a component name.
type Logger struct {
	sink      *sink
	component string
}

// New returns a logger writing to stderr at level and above.
func New(level Level) *Logger {
	return &Logger{sink: &sink{w: os.Stderr, level: level, now: time.Now}}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return &Logger{sink: &sink{w: io.Discard, level: levelOff, now: time.Now}}
}

// Named returns a logger for a component that shares l's output and level.
// Names nest with a dot: New(…).Named("schedule").Named("cron") logs as
// "schedule.cron".
func (l *Logger) Named(component string) *Logger {
	if l.component != "" {
		component = l.component + "." + component
	}
	return &Logger{sink: l.sink, component: component}
}

// SetOutput redirects l and every logger sharing its sink.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.w = w
}

// SetLevel sets the minimum level for l and every logger sharing its sink.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return level >= l.sink.level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.sink.write(level, l.component, fmt.Sprintf(format, args...))
}

// Debug logs per-refresh detail such as computed event times.
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }

// Info logs lifecycle messages such as the next scheduled run.
func (l *Logger) Info(format string, args ...interface{}) { l.logf(LevelInfo, format, args...) }

// Warn logs conditions that leave a result empty, like a schedule with no
// upcoming event.
func (l *Logger) Warn(format string, args ...interface{}) { l.logf(LevelWarn, format, args...) }

// Error logs failed computations.
func (l *Logger) Error(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Timer starts timing op and returns a function that reports how long it
// took: at debug level on success, at error level when *errp is non-nil.
//
//	done := logging.Timer(logger, "observe")
//	defer done(&err)
func Timer(l *Logger, op string) func(errp *error) {
	start := l.sink.clock()
	return func(errp *error) {
		dur := l.sink.clock().Sub(start).Round(time.Microsecond)
		if errp != nil && *errp != nil {
			l.Error("%s failed after %s: %v", op, dur, *errp)
			return
		}
		l.Debug("%s took %s", op, dur)
	}
}

func (s *sink) clock() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}
