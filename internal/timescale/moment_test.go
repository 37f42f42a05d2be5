package timescale

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFromCivil(t *testing.T) {
	m, err := FromCivil(1987, 4, 10, 19, 21, 0)
	if err != nil {
		t.Fatalf("FromCivil() error = %v", err)
	}
	if math.Abs(m.JD()-2446896.30625) > 1e-6 {
		t.Errorf("JD = %v, want 2446896.30625", m.JD())
	}
	if math.Abs(m.JDE()-(m.JD()+m.DeltaT()/86400)) > 1e-12 {
		t.Errorf("JDE = %v, want JD + ΔT/86400 = %v", m.JDE(), m.JD()+m.DeltaT()/86400)
	}
}

func TestFromTime(t *testing.T) {
	m, err := FromTime(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FromTime() error = %v", err)
	}
	if m.JD() != J2000 {
		t.Errorf("JD = %v, want %v", m.JD(), J2000)
	}

	// Zone offsets are removed before conversion.
	zone := time.FixedZone("UTC+2", 2*3600)
	m2, err := FromTime(time.Date(2000, 1, 1, 14, 0, 0, 0, zone))
	if err != nil {
		t.Fatalf("FromTime() error = %v", err)
	}
	if m2.JD() != J2000 {
		t.Errorf("JD with zone = %v, want %v", m2.JD(), J2000)
	}
}

func TestFromTimeProlepticGregorian(t *testing.T) {
	at := time.Date(1000, 3, 1, 6, 0, 0, 0, time.UTC)
	m, err := FromTime(at)
	if err != nil {
		t.Fatalf("FromTime() error = %v", err)
	}
	if want := CalendarGregorianToJD(1000, 3, 1.25); math.Abs(m.JD()-want) > 1e-9 {
		t.Errorf("JD = %v, want Gregorian %v", m.JD(), want)
	}
	if got := m.Time(); !got.Equal(at) {
		t.Errorf("Time() = %v, want %v", got, at)
	}

	// FromCivil reads the same fields as a Julian date, six days later.
	civil, err := FromCivil(1000, 3, 1, 6, 0, 0)
	if err != nil {
		t.Fatalf("FromCivil() error = %v", err)
	}
	if d := civil.JD() - m.JD(); math.Abs(d-6) > 1e-9 {
		t.Errorf("Julian - Gregorian = %v days, want 6", d)
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := New(math.NaN()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("New(NaN) error = %v, want ErrInvalidInput", err)
	}
	if _, err := NewWithDeltaT(J2000, math.Inf(1)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewWithDeltaT(J2000, +Inf) error = %v, want ErrInvalidInput", err)
	}
	if _, err := FromJDE(math.Inf(-1)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("FromJDE(-Inf) error = %v, want ErrInvalidInput", err)
	}
	if _, err := FromCivil(2000, 1, 1, 0, 0, math.NaN()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("FromCivil(NaN seconds) error = %v, want ErrInvalidInput", err)
	}
}

func TestStartOfDay(t *testing.T) {
	m, err := FromCivil(1987, 4, 10, 19, 21, 0)
	if err != nil {
		t.Fatalf("FromCivil() error = %v", err)
	}
	sod := m.StartOfDay()
	if sod.JD() != 2446895.5 {
		t.Errorf("StartOfDay().JD() = %v, want 2446895.5", sod.JD())
	}
	if sod.DeltaT() != m.DeltaT() {
		t.Errorf("StartOfDay() ΔT = %v, want %v", sod.DeltaT(), m.DeltaT())
	}
	if math.Abs(m.JD()-2446896.30625) > 1e-6 {
		t.Errorf("receiver was modified: JD = %v", m.JD())
	}
}

func TestAddDays(t *testing.T) {
	m, err := NewWithDeltaT(2447240.5, 56)
	if err != nil {
		t.Fatalf("NewWithDeltaT() error = %v", err)
	}
	prev := m.AddDays(-1)
	next := m.AddDays(1)
	if prev.JD() != 2447239.5 || next.JD() != 2447241.5 {
		t.Errorf("AddDays(±1) = %v, %v", prev.JD(), next.JD())
	}
	if prev.DeltaT() != 56 || next.DeltaT() != 56 {
		t.Errorf("AddDays changed ΔT: %v, %v", prev.DeltaT(), next.DeltaT())
	}
}

func TestFromJDE(t *testing.T) {
	m, err := FromJDE(2448724.5)
	if err != nil {
		t.Fatalf("FromJDE() error = %v", err)
	}
	if math.Abs(m.JDE()-2448724.5) > 1e-9 {
		t.Errorf("JDE = %v, want 2448724.5", m.JDE())
	}
	if m.JD() >= m.JDE() {
		t.Errorf("JD %v should precede JDE %v for a positive ΔT", m.JD(), m.JDE())
	}
}

func TestCenturies(t *testing.T) {
	m, err := FromCivil(1992, 10, 13, 0, 0, 0)
	if err != nil {
		t.Fatalf("FromCivil() error = %v", err)
	}
	if got := m.Centuries(); math.Abs(got-(-0.072183436)) > 1e-9 {
		t.Errorf("Centuries() = %v, want -0.072183436", got)
	}
	if m.CenturiesJDE() <= m.Centuries() {
		t.Errorf("CenturiesJDE() = %v should exceed Centuries() = %v", m.CenturiesJDE(), m.Centuries())
	}
}

func TestMomentTime(t *testing.T) {
	m, err := FromCivil(2016, 2, 18, 14, 0, 0)
	if err != nil {
		t.Fatalf("FromCivil() error = %v", err)
	}
	want := time.Date(2016, 2, 18, 14, 0, 0, 0, time.UTC)
	if got := m.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}
