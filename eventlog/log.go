// Package eventlog holds the append-only event log and the end-of-run
// waiting-time summariser. Both are pure bookkeeping: neither ever mutates
// scenario or booking state.
package eventlog

import "triagesim/models"

// Log is an append-only record of every event raised during a run, in the
// order the kernel actually executed them.
type Log struct {
	events []models.Event
}

func NewLog() *Log {
	return &Log{}
}

// Append records e. Not safe for concurrent use — callers run strictly
// inside the kernel's single active turn at any moment.
func (l *Log) Append(e models.Event) {
	l.events = append(l.events, e)
}

// Events returns the full ordered event log.
func (l *Log) Events() []models.Event {
	return l.events
}

// Summary holds the three waiting-time vectors the run reports: overall,
// and split by priority.
type Summary struct {
	Overall []float64
	Low     []float64
	High    []float64
}

// Summarise partitions patients by priority and collects waiting times for
// those retained for statistics: patients whose assessment appointment
// actually occurred (Attended) at a virtual time strictly after warmUp.
// Patients never attended before the run stopped, or attended during
// warm-up, contribute nothing.
func Summarise(patients []models.Patient, warmUp int) Summary {
	var s Summary
	for _, p := range patients {
		if !p.Attended {
			continue
		}
		if p.AttendedTime <= float64(warmUp) {
			continue
		}
		s.Overall = append(s.Overall, p.WaitingTime)
		switch p.Priority {
		case models.PriorityLow:
			s.Low = append(s.Low, p.WaitingTime)
		case models.PriorityHigh:
			s.High = append(s.High, p.WaitingTime)
		}
	}
	return s
}

// PercentWithinTarget reports the fraction of waits (in [0,1]) at or below
// the given target — a reporting-only KPI, never used to gate booking.
func PercentWithinTarget(waits []float64, target float64) float64 {
	if len(waits) == 0 {
		return 0
	}
	within := 0
	for _, w := range waits {
		if w <= target {
			within++
		}
	}
	return float64(within) / float64(len(waits))
}
