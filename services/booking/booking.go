// Package booking implements the three slot-finding/booking strategies the
// patient pathway drives: low-priority and high-priority pooled booking for
// initial assessments, and fixed-clinic repeat booking for follow-ups.
package booking

import (
	"triagesim/rng"
	"triagesim/scenario"
	"triagesim/simerr"
)

// Booker finds and reserves a diary slot for a patient of a given priority.
type Booker interface {
	MinWait() int
	Priority() int
}

// PooledBooker finds a slot among a home clinician's pooled peers.
type PooledBooker interface {
	Booker
	FindSlot(fromDay, homeClinic int, mask []bool) (day, clinic int, err error)
	BookSlot(day, clinic int) error
}

func eligibleClinics(store *scenario.Store, home int, mask []bool) []int {
	var out []int
	for c := 0; c < store.Clinics; c++ {
		if !store.Pooled(home, c) {
			continue
		}
		if mask != nil && !mask[c] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// LowPriorityPooledBooker books initial assessments for priority-1 patients.
// It may only draw from the public (available) pool and observes a 7-day
// minimum wait.
type LowPriorityPooledBooker struct {
	store *scenario.Store
	tb    *rng.TieBreaker
}

func NewLowPriorityPooledBooker(store *scenario.Store, tb *rng.TieBreaker) *LowPriorityPooledBooker {
	return &LowPriorityPooledBooker{store: store, tb: tb}
}

func (b *LowPriorityPooledBooker) MinWait() int  { return scenario.LowPriorityMinWait }
func (b *LowPriorityPooledBooker) Priority() int { return 1 }

// FindSlot scans forward from fromDay+MinWait for the earliest day with any
// pooled-and-masked clinician holding a public slot, then breaks ties among
// that day's candidates uniformly at random.
func (b *LowPriorityPooledBooker) FindSlot(fromDay, homeClinic int, mask []bool) (int, int, error) {
	return b.FindSlotWithMinWait(fromDay, homeClinic, mask, b.MinWait())
}

// FindSlotWithMinWait behaves like FindSlot but scans forward using an
// explicit minWait instead of the booker's own MinWait(). The patient
// pathway's anti-leapfrog delay needs this: after sleeping one extra day to
// avoid leapfrogging patients already queuing, it searches with the min
// wait shortened by one day to approximately offset that delay.
func (b *LowPriorityPooledBooker) FindSlotWithMinWait(fromDay, homeClinic int, mask []bool, minWait int) (int, int, error) {
	candidates := eligibleClinics(b.store, homeClinic, mask)
	start := fromDay + minWait
	for day := start; day < b.store.Horizon; day++ {
		var withSlot []int
		for _, c := range candidates {
			if b.store.AvailableAt(day, c) > 0 {
				withSlot = append(withSlot, c)
			}
		}
		if len(withSlot) == 0 {
			continue
		}
		pick := withSlot[b.tb.Choose(len(withSlot))]
		return day, pick, nil
	}
	return 0, 0, simerr.NewCapacityExhausted(float64(fromDay), homeClinic, "lowPriorityPooled")
}

func (b *LowPriorityPooledBooker) BookSlot(day, clinic int) error {
	return b.store.Reserve(day, clinic, scenario.PoolAvailable)
}

// HighPriorityPooledBooker books initial assessments for priority-2
// patients. It may draw from both the carve-out and public pools, and
// observes only a 1-day minimum wait.
type HighPriorityPooledBooker struct {
	store *scenario.Store
	tb    *rng.TieBreaker
}

func NewHighPriorityPooledBooker(store *scenario.Store, tb *rng.TieBreaker) *HighPriorityPooledBooker {
	return &HighPriorityPooledBooker{store: store, tb: tb}
}

func (b *HighPriorityPooledBooker) MinWait() int  { return scenario.HighPriorityMinWait }
func (b *HighPriorityPooledBooker) Priority() int { return 2 }

func (b *HighPriorityPooledBooker) FindSlot(fromDay, homeClinic int, mask []bool) (int, int, error) {
	candidates := eligibleClinics(b.store, homeClinic, mask)
	start := fromDay + b.MinWait()
	for day := start; day < b.store.Horizon; day++ {
		var withSlot []int
		for _, c := range candidates {
			if b.store.AvailableAt(day, c)+b.store.CarveOutAt(day, c) > 0 {
				withSlot = append(withSlot, c)
			}
		}
		if len(withSlot) == 0 {
			continue
		}
		pick := withSlot[b.tb.Choose(len(withSlot))]
		return day, pick, nil
	}
	return 0, 0, simerr.NewCapacityExhausted(float64(fromDay), homeClinic, "highPriorityPooled")
}

// BookSlot takes the carve-out slot first, falling back to the public pool.
func (b *HighPriorityPooledBooker) BookSlot(day, clinic int) error {
	if b.store.CarveOutAt(day, clinic) > 0 {
		return b.store.Reserve(day, clinic, scenario.PoolCarveOut)
	}
	return b.store.Reserve(day, clinic, scenario.PoolAvailable)
}

// RepeatBooker books follow-up appointments for a single patient with a
// single fixed clinician at a target frequency. MinWait is one day less
// than the requested ideal frequency, matching the convention that a
// weekly follow-up may land a day early or late.
//
// Like the pooled bookers, RepeatBooker never silently defaults to the
// first candidate day when no slot exists in the forward horizon — it
// reports CapacityExhausted instead.
type RepeatBooker struct {
	store          *scenario.Store
	idealFrequency int
	clinic         int
}

func NewRepeatBooker(store *scenario.Store, idealFrequency, clinic int) *RepeatBooker {
	return &RepeatBooker{store: store, idealFrequency: idealFrequency, clinic: clinic}
}

func (b *RepeatBooker) MinWait() int  { return b.idealFrequency - 1 }
func (b *RepeatBooker) Priority() int { return 1 }

func (b *RepeatBooker) FindSlot(fromDay int) (int, error) {
	start := fromDay + b.MinWait()
	for day := start; day < b.store.Horizon; day++ {
		if b.store.AvailableAt(day, b.clinic) > 0 {
			return day, nil
		}
	}
	return 0, simerr.NewCapacityExhausted(float64(fromDay), b.clinic, "repeat")
}

func (b *RepeatBooker) BookSlot(day int) error {
	return b.store.Reserve(day, b.clinic, scenario.PoolAvailable)
}
