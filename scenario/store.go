// Package scenario owns the Diary Store: the three day-indexed capacity
// matrices (carve_out, available, bookings), the per-clinician caseload
// vector, and the pooling/weekly-slot tables they were built from. The
// Store is the single owner of this mutable state; the only way a caller
// mutates it is through Reserve and AdjustCaseload — there is no direct
// index assignment from outside this package.
package scenario

import (
	"math"

	"triagesim/models"
	"triagesim/simerr"
)

// Pool identifies which capacity pool a reservation consumes.
type Pool int

const (
	PoolAvailable Pool = iota
	PoolCarveOut
)

// Store is the Scenario's Diary Store: matrices sized for 1.5x run length,
// plus the live caseload vector.
type Store struct {
	RunLength int
	WarmUp    int
	Horizon   int
	Clinics   int

	weeklySlots [][]int // [dayOfWeek][clinic], 5 rows
	pooling     [][]bool

	carveOut  [][]int
	available [][]int
	bookings  [][]int

	initialCarveOut  [][]int
	initialAvailable [][]int

	caseload []float64
}

// NewStore validates the input tables and constructs the Diary Store per
// the Scenario construction rules: carve_out = round(weekly * propCarveOut),
// available = weekly - carve_out, bookings = zeros, repeated down the day
// axis to cover ceil(1.5*runLength) days.
func NewStore(runLength, warmUp int, propCarveOut float64, shifts models.ShiftsTable, pooling models.PoolingTable, caseloadTable models.CaseloadTable) (*Store, error) {
	if runLength <= warmUp {
		return nil, simerr.NewConfigurationError("run_length", "run_length must be greater than warm_up")
	}
	if propCarveOut < 0 || propCarveOut > 1 {
		return nil, simerr.NewConfigurationError("prop_carve_out", "must be in [0,1]")
	}
	if shifts.Days != WorkingDaysPerWeek {
		return nil, simerr.NewConfigurationError("shifts", "weekly slot template must have 5 working days")
	}
	clinics := shifts.Clinics
	if clinics <= 0 {
		return nil, simerr.NewConfigurationError("shifts", "must have at least one clinician column")
	}
	if pooling.Clinics != clinics || len(pooling.Pooling) != clinics {
		return nil, simerr.NewConfigurationError("pooling", "pooling matrix must be C x C matching the shifts table")
	}
	if len(caseloadTable.Caseload) != clinics {
		return nil, simerr.NewConfigurationError("caseload", "caseload row must have one value per clinician")
	}

	horizon := int(math.Ceil(1.5 * float64(runLength)))
	weeks := int(math.Ceil(float64(horizon) / float64(WorkingDaysPerWeek)))

	carveOut := make([][]int, 0, weeks*WorkingDaysPerWeek)
	available := make([][]int, 0, weeks*WorkingDaysPerWeek)
	bookings := make([][]int, 0, weeks*WorkingDaysPerWeek)

	for w := 0; w < weeks; w++ {
		for d := 0; d < WorkingDaysPerWeek; d++ {
			row := make([]int, clinics)
			avail := make([]int, clinics)
			book := make([]int, clinics)
			for c := 0; c < clinics; c++ {
				co := int(math.Round(float64(shifts.Slots[d][c]) * propCarveOut))
				if co < 0 {
					co = 0
				}
				row[c] = co
				avail[c] = shifts.Slots[d][c] - co
			}
			carveOut = append(carveOut, row)
			available = append(available, avail)
			bookings = append(bookings, book)
		}
	}
	carveOut = carveOut[:horizon]
	available = available[:horizon]
	bookings = bookings[:horizon]

	initCarve := cloneMatrix(carveOut)
	initAvail := cloneMatrix(available)

	caseload := make([]float64, clinics)
	copy(caseload, caseloadTable.Caseload)

	return &Store{
		RunLength:        runLength,
		WarmUp:           warmUp,
		Horizon:          horizon,
		Clinics:          clinics,
		weeklySlots:      shifts.Slots,
		pooling:          pooling.Pooling,
		carveOut:         carveOut,
		available:        available,
		bookings:         bookings,
		initialCarveOut:  initCarve,
		initialAvailable: initAvail,
		caseload:         caseload,
	}, nil
}

func cloneMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// InWindow reports whether day is a valid index into the diary matrices.
func (s *Store) InWindow(day int) bool {
	return day >= 0 && day < s.Horizon
}

// AvailableAt returns the public-pool slot count at (day, clinic).
func (s *Store) AvailableAt(day, clinic int) int {
	return s.available[day][clinic]
}

// CarveOutAt returns the carve-out slot count at (day, clinic).
func (s *Store) CarveOutAt(day, clinic int) int {
	return s.carveOut[day][clinic]
}

// BookingsAt returns the number of appointments booked at (day, clinic).
func (s *Store) BookingsAt(day, clinic int) int {
	return s.bookings[day][clinic]
}

// Pooled reports whether home may use other's slots for an initial
// assessment.
func (s *Store) Pooled(home, other int) bool {
	return s.pooling[home][other]
}

// WeeklyCapacity returns the clinician's total theoretical weekly slots,
// summed across the 5-day template — used by the admission-control
// headroom computation.
func (s *Store) WeeklyCapacity(clinic int) int {
	total := 0
	for d := 0; d < WorkingDaysPerWeek; d++ {
		total += s.weeklySlots[d][clinic]
	}
	return total
}

// Caseload returns the clinician's current fractional caseload.
func (s *Store) Caseload(clinic int) float64 {
	return s.caseload[clinic]
}

// AdjustCaseload applies a (possibly fractional, possibly negative) delta
// to a clinician's live caseload. This is the only mutation path for the
// caseload vector.
func (s *Store) AdjustCaseload(clinic int, delta float64) {
	s.caseload[clinic] += delta
}

// Reserve consumes exactly one unit from the given pool at (day, clinic)
// and increments bookings. It is the only mutation path for the capacity
// matrices: find_slot/book_slot pairs in the booking package call this
// and never index the matrices directly.
func (s *Store) Reserve(day, clinic int, pool Pool) error {
	if !s.InWindow(day) {
		return simerr.NewConfigurationError("day", "reservation day outside diary horizon")
	}
	switch pool {
	case PoolAvailable:
		if s.available[day][clinic] <= 0 {
			return simerr.NewConfigurationError("available", "no public slot to reserve")
		}
		s.available[day][clinic]--
	case PoolCarveOut:
		if s.carveOut[day][clinic] <= 0 {
			return simerr.NewConfigurationError("carve_out", "no carve-out slot to reserve")
		}
		s.carveOut[day][clinic]--
	}
	s.bookings[day][clinic]++
	return nil
}

// CheckInvariants verifies the non-overbooking and bookings-accounting
// invariants across every (day, clinic) cell. Intended for tests and
// optional run-time assertions, not the hot booking path.
func (s *Store) CheckInvariants() error {
	for d := 0; d < s.Horizon; d++ {
		for c := 0; c < s.Clinics; c++ {
			if s.available[d][c] < 0 {
				return simerr.NewConfigurationError("available", "negative available slots")
			}
			if s.carveOut[d][c] < 0 {
				return simerr.NewConfigurationError("carve_out", "negative carve-out slots")
			}
			wantBookings := (s.initialAvailable[d][c] - s.available[d][c]) + (s.initialCarveOut[d][c] - s.carveOut[d][c])
			if s.bookings[d][c] != wantBookings {
				return simerr.NewConfigurationError("bookings", "bookings do not reconcile against consumed slots")
			}
		}
	}
	return nil
}

// Slice returns the bookings and available matrices restricted to
// [from, to) day indices — the output-shaping operation used when a run
// completes to drop warm-up days from the reported diary.
func (s *Store) Slice(from, to int) (bookings, available [][]int) {
	if from < 0 {
		from = 0
	}
	if to > s.Horizon {
		to = s.Horizon
	}
	bookings = cloneMatrix(s.bookings[from:to])
	available = cloneMatrix(s.available[from:to])
	return bookings, available
}
