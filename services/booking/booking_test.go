package booking

import (
	"testing"

	"triagesim/models"
	"triagesim/rng"
	"triagesim/scenario"
)

func newTestStore(t *testing.T) *scenario.Store {
	t.Helper()
	shifts := models.ShiftsTable{
		Days:    5,
		Clinics: 3,
		Slots: [][]int{
			{4, 4, 4},
			{4, 4, 4},
			{4, 4, 4},
			{4, 4, 4},
			{4, 4, 4},
		},
	}
	pooling := models.PoolingTable{
		Clinics: 3,
		Pooling: [][]bool{
			{true, true, false},
			{true, true, false},
			{false, false, true},
		},
	}
	caseload := models.CaseloadTable{Caseload: []float64{2, 2, 2}}
	store, err := scenario.NewStore(20, 4, 0.25, shifts, pooling, caseload)
	if err != nil {
		t.Fatalf("unexpected error building store: %v", err)
	}
	return store
}

func TestLowPriorityBookerRespectsMinWaitAndPool(t *testing.T) {
	store := newTestStore(t)
	tb := rng.NewTieBreaker(1)
	booker := NewLowPriorityPooledBooker(store, tb)

	day, clinic, err := booker.FindSlot(0, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day < scenario.LowPriorityMinWait {
		t.Fatalf("booked day %d violates min wait %d", day, scenario.LowPriorityMinWait)
	}
	if clinic != 0 && clinic != 1 {
		t.Fatalf("low priority booker must stay within pooled clinics, got %d", clinic)
	}
	if err := booker.BookSlot(day, clinic); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}
	if store.BookingsAt(day, clinic) != 1 {
		t.Fatalf("expected booking recorded")
	}
}

func TestLowPriorityBookerNeverUsesCarveOut(t *testing.T) {
	store := newTestStore(t)
	tb := rng.NewTieBreaker(2)
	booker := NewLowPriorityPooledBooker(store, tb)

	// Drain all public slots for the pooled pair across the whole horizon.
	for day := 0; day < store.Horizon; day++ {
		for store.AvailableAt(day, 0) > 0 {
			if err := store.Reserve(day, 0, scenario.PoolAvailable); err != nil {
				t.Fatalf("unexpected error draining: %v", err)
			}
		}
		for store.AvailableAt(day, 1) > 0 {
			if err := store.Reserve(day, 1, scenario.PoolAvailable); err != nil {
				t.Fatalf("unexpected error draining: %v", err)
			}
		}
	}
	if _, _, err := booker.FindSlot(0, 0, nil); err == nil {
		t.Fatalf("expected CapacityExhausted once public pool drained, carve-out must not be used")
	}
}

func TestHighPriorityBookerUsesCarveOutFirst(t *testing.T) {
	store := newTestStore(t)
	tb := rng.NewTieBreaker(3)
	booker := NewHighPriorityPooledBooker(store, tb)

	day, clinic, err := booker.FindSlot(0, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clinic != 2 {
		t.Fatalf("clinic 2 only pools with itself, got %d", clinic)
	}
	beforeCarve := store.CarveOutAt(day, clinic)
	beforeAvail := store.AvailableAt(day, clinic)
	if beforeCarve == 0 {
		t.Skip("test fixture produced no carve-out slots on the chosen day")
	}
	if err := booker.BookSlot(day, clinic); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}
	if store.CarveOutAt(day, clinic) != beforeCarve-1 {
		t.Fatalf("expected carve-out consumed first")
	}
	if store.AvailableAt(day, clinic) != beforeAvail {
		t.Fatalf("public pool should be untouched when carve-out available")
	}
}

func TestRepeatBookerReturnsCapacityExhaustedNotZeroDay(t *testing.T) {
	store := newTestStore(t)
	booker := NewRepeatBooker(store, 7, 0)

	for day := 0; day < store.Horizon; day++ {
		for store.AvailableAt(day, 0) > 0 {
			if err := store.Reserve(day, 0, scenario.PoolAvailable); err != nil {
				t.Fatalf("unexpected error draining: %v", err)
			}
		}
	}
	_, err := booker.FindSlot(0)
	if err == nil {
		t.Fatalf("expected CapacityExhausted when no slot exists in the forward horizon")
	}
	if _, ok := err.(interface{ Error() string }); !ok {
		t.Fatalf("expected a proper error value")
	}
}

func TestRepeatBookerMinWaitIsFrequencyMinusOne(t *testing.T) {
	store := newTestStore(t)
	booker := NewRepeatBooker(store, 14, 1)
	if booker.MinWait() != 13 {
		t.Fatalf("expected min wait 13, got %d", booker.MinWait())
	}
}

func TestTieBreakingIsDeterministicAcrossIdenticalSeeds(t *testing.T) {
	storeA := newTestStore(t)
	storeB := newTestStore(t)
	tbA := rng.NewTieBreaker(55)
	tbB := rng.NewTieBreaker(55)
	bookerA := NewLowPriorityPooledBooker(storeA, tbA)
	bookerB := NewLowPriorityPooledBooker(storeB, tbB)

	dayA, clinicA, errA := bookerA.FindSlot(0, 0, nil)
	dayB, clinicB, errB := bookerB.FindSlot(0, 0, nil)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if dayA != dayB || clinicA != clinicB {
		t.Fatalf("identical seeds must produce identical booking choices: (%d,%d) vs (%d,%d)", dayA, clinicA, dayB, clinicB)
	}
}
