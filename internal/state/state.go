// Package state provides thread-safe state management for the application.
package state

import (
	"math"
	"sync"
	"time"

	"github.com/litescript/ls-ephem/internal/body"
)

const deg = math.Pi / 180

// EventType represents the type of horizon crossing.
type EventType string

const (
	EventRise EventType = "RISE"
	EventSet  EventType = "SET"
)

// Event is a horizon crossing detected between two successive updates.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"` // observation time of the update that saw it
	Body      string    `json:"body"`
	Azimuth   float64   `json:"azimuth_deg"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current         *body.Observation
	lastUpdate      time.Time
	lastError       error
	computeDuration time.Duration

	// Altitude history per body, in degrees
	altitudes     map[body.Kind][]TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
	offset          time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   120, // 10 minutes at the default refresh
		MaxEvents:       50,
		RefreshInterval: 5 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		altitudes:       make(map[body.Kind][]TimeSeries),
	}
}

// Update stores a new observation. A nil observation records only the error.
func (m *Manager) Update(obs *body.Observation, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if obs == nil {
		return
	}

	o := *obs
	if m.current != nil && o.Time.After(m.current.Time) {
		m.detectEvents(m.current, &o)
	}
	m.current = &o

	for _, k := range body.Kinds {
		m.appendAltitude(k, TimeSeries{
			Timestamp: o.Time,
			Value:     o.Body(k).Altitude / deg,
		})
	}
}

// detectEvents compares altitudes of successive observations. Crossings are
// only looked for when time moves forward.
func (m *Manager) detectEvents(prev, cur *body.Observation) {
	for _, k := range body.Kinds {
		was, is := prev.Body(k), cur.Body(k)
		var typ EventType
		switch {
		case !was.AboveHorizon() && is.AboveHorizon():
			typ = EventRise
		case was.AboveHorizon() && !is.AboveHorizon():
			typ = EventSet
		default:
			continue
		}
		m.addEvent(Event{
			Type:      typ,
			Timestamp: cur.Time,
			Body:      k.String(),
			Azimuth:   is.Azimuth / deg,
		})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) appendAltitude(k body.Kind, p TimeSeries) {
	if m.maxHistoryLen <= 0 {
		return
	}
	h := append(m.altitudes[k], p)
	if len(h) > m.maxHistoryLen {
		h = h[len(h)-m.maxHistoryLen:]
	}
	m.altitudes[k] = h
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Observation     *body.Observation
	LastUpdate      time.Time
	LastError       error
	ComputeDuration time.Duration
	Offset          time.Duration
	Events          []Event
	Altitudes       map[body.Kind][]TimeSeries // degrees, oldest first
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var obs *body.Observation
	if m.current != nil {
		o := *m.current
		obs = &o
	}

	alts := make(map[body.Kind][]TimeSeries, len(m.altitudes))
	for k, h := range m.altitudes {
		alts[k] = append([]TimeSeries(nil), h...)
	}

	return Snapshot{
		Observation:     obs,
		LastUpdate:      m.lastUpdate,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Offset:          m.offset,
		Events:          m.getEventsOrdered(),
		Altitudes:       alts,
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// AltitudeHistory returns a copy of the recorded altitudes of k in degrees.
func (m *Manager) AltitudeHistory(k body.Kind) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.altitudes[k]
	if len(h) == 0 {
		return nil
	}
	out := make([]TimeSeries, len(h))
	copy(out, h)
	return out
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// Offset returns the displacement of the displayed time from the wall clock.
func (m *Manager) Offset() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offset
}

// SetOffset sets the displayed time to the wall clock plus d.
func (m *Manager) SetOffset(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = d
}

// ShiftOffset adds d to the current offset and returns the result.
func (m *Manager) ShiftOffset(d time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset += d
	return m.offset
}

// HasData returns true if at least one observation has been stored.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
