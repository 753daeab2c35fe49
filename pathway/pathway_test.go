package pathway

import (
	"testing"

	"triagesim/eventlog"
	"triagesim/kernel"
	"triagesim/models"
	"triagesim/rng"
	"triagesim/scenario"
)

func testScenario(t *testing.T, followUpP, intensityP float64) *scenario.Scenario {
	t.Helper()
	shifts := models.ShiftsTable{
		Days:    5,
		Clinics: 2,
		Slots: [][]int{
			{10, 10}, {10, 10}, {10, 10}, {10, 10}, {10, 10},
		},
	}
	pooling := models.PoolingTable{
		Clinics: 2,
		Pooling: [][]bool{{true, true}, {true, true}},
	}
	caseload := models.CaseloadTable{Caseload: []float64{0, 0}}
	store, err := scenario.NewStore(40, 5, 0.2, shifts, pooling, caseload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &scenario.Scenario{
		Store:                        store,
		FollowUpDistLow:              rng.NewBernoulli(followUpP, 10),
		FollowUpDistHigh:             rng.NewBernoulli(followUpP, 11),
		IntensityDistLow:             rng.NewBernoulli(intensityP, 12),
		IntensityDistHigh:            rng.NewBernoulli(intensityP, 13),
		NumFollowUpDistHighIntensity: mustLognormal(t, 4, 1, 14),
		NumFollowUpDistLowIntensity:  mustLognormal(t, 3, 1, 15),
		TieBreaker:                   rng.NewTieBreaker(16),
	}
}

func mustLognormal(t *testing.T, mean, stdev float64, seed int64) *rng.LognormalStream {
	t.Helper()
	s, err := rng.NewLognormal(mean, stdev, seed)
	if err != nil {
		t.Fatalf("unexpected error building lognormal: %v", err)
	}
	return s
}

func TestHighPriorityPatientAttendsAfterAtLeastMinWait(t *testing.T) {
	scen := testScenario(t, 0, 0)
	log := eventlog.NewLog()
	patient := &models.Patient{Identifier: "h1", ReferralT: 0, HomeClinic: 0, Priority: models.PriorityHigh}

	clock := kernel.NewClock()
	clock.Spawn(0, func(p *kernel.Process) {
		Execute(p, scen, log, patient)
	})
	clock.RunUntil(100)

	if !patient.Attended {
		t.Fatalf("expected patient to attend")
	}
	if patient.WaitingTime < scenario.HighPriorityMinWait {
		t.Fatalf("expected wait >= min wait %d, got %v", scenario.HighPriorityMinWait, patient.WaitingTime)
	}
}

func TestLowPriorityAntiLeapfrogNeverBooksBeforeOneDay(t *testing.T) {
	scen := testScenario(t, 0, 0)
	log := eventlog.NewLog()
	patient := &models.Patient{Identifier: "l1", ReferralT: 0, HomeClinic: 0, Priority: models.PriorityLow}

	clock := kernel.NewClock()
	clock.Spawn(0, func(p *kernel.Process) {
		Execute(p, scen, log, patient)
	})
	clock.RunUntil(100)

	if !patient.Attended {
		t.Fatalf("expected patient to attend")
	}
	if patient.WaitingTime < 1 {
		t.Fatalf("expected a booked day on or after the 1-day anti-leapfrog delay, got wait %v", patient.WaitingTime)
	}
}

func TestNoFollowUpReleasesCaseloadOnDischarge(t *testing.T) {
	scen := testScenario(t, 0, 0) // follow-up probability 0: never needs one
	scen.AdjustCaseload(0, 1)     // simulate the booking step's +1
	before := scen.Caseload(0)

	log := eventlog.NewLog()
	patient := &models.Patient{Identifier: "n1", Priority: models.PriorityLow}

	clock := kernel.NewClock()
	clock.Spawn(0, func(p *kernel.Process) {
		runFollowUps(p, scen, log, patient, 0)
	})
	clock.RunUntil(10)

	if patient.HasFollowUp {
		t.Fatalf("expected no follow-up with follow-up probability 0")
	}
	if got := scen.Caseload(0); got != before-1 {
		t.Fatalf("expected caseload slot released on discharge even with no follow-up: before %v after %v", before, got)
	}
}

func TestLowPriorityHighIntensityFollowUpReconcilesCaseload(t *testing.T) {
	// follow-up always happens (p=1) and intensity is always high (p=1), so
	// this exercises the low-priority/high-intensity reconciliation path.
	highIntensity := testScenario(t, 1, 1) // priority-low patient sampled into high intensity
	highIntensity.AdjustCaseload(0, 1)
	baseline := highIntensity.Caseload(0)

	log := eventlog.NewLog()
	patient := &models.Patient{Identifier: "f1", Priority: models.PriorityLow}
	clock := kernel.NewClock()
	clock.Spawn(0, func(p *kernel.Process) {
		runFollowUps(p, highIntensity, log, patient, 0)
	})
	clock.RunUntil(1000)

	if !patient.HasFollowUp {
		t.Fatalf("expected follow-up with probability 1")
	}
	// Low priority + high intensity: +0.5 on mismatch, then -1 on discharge,
	// leaving baseline - 0.5 (baseline already holds the booking step's +1).
	want := baseline + 0.5 - 1
	if got := highIntensity.Caseload(0); got != want {
		t.Fatalf("expected caseload %v after full high-intensity reconciliation, got %v", want, got)
	}
}
