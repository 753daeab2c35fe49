package kernel_test

import (
	"testing"

	"triagesim/kernel"
	"triagesim/models"
	"triagesim/pathway"
	"triagesim/scenario"
)

func smallRunConfig() models.RunConfig {
	shifts := models.ShiftsTable{
		Days:    5,
		Clinics: 2,
		Slots: [][]int{
			{8, 8}, {8, 8}, {8, 8}, {8, 8}, {8, 8},
		},
	}
	pooling := models.PoolingTable{
		Clinics: 2,
		Pooling: [][]bool{{true, true}, {true, true}},
	}
	caseload := models.CaseloadTable{Caseload: []float64{1, 1}}
	seeds := make([]int64, 20)
	for i := range seeds {
		seeds[i] = int64(5000 + i*7)
	}
	return models.RunConfig{
		RunID:            "run-test",
		RunLength:        30,
		WarmUp:           5,
		PropCarveOut:     0.2,
		PropHighPriority: 0.2,
		AnnualDemand:     600,
		Seeds:            seeds,
		Shifts:           shifts,
		Referrals: models.ReferralsTable{
			Prop:         []float64{0.5, 0.5},
			ReferredOutP: []float64{0.1, 0.1},
		},
		Pooling:  pooling,
		Caseload: caseload,
	}
}

func TestRunProducesEventsAndRetainedPatients(t *testing.T) {
	scen, err := scenario.New(smallRunConfig())
	if err != nil {
		t.Fatalf("unexpected error building scenario: %v", err)
	}
	out := kernel.Run(scen, pathway.Execute)

	if len(out.Log.Events()) == 0 {
		t.Fatalf("expected a non-empty event log")
	}
	for _, ev := range out.Log.Events() {
		if ev.Time < 0 {
			t.Fatalf("event time must be non-negative, got %v", ev.Time)
		}
	}
	if len(out.Patients) == 0 {
		t.Fatalf("expected at least one admitted patient")
	}
	for _, p := range out.Patients {
		if p.Priority != models.PriorityLow && p.Priority != models.PriorityHigh {
			t.Fatalf("unexpected priority %d", p.Priority)
		}
	}
	if err := scen.CheckInvariants(); err != nil {
		t.Fatalf("diary invariants violated after run: %v", err)
	}
}

func TestRunNeverSchedulesBeyondRunLength(t *testing.T) {
	scen, err := scenario.New(smallRunConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := kernel.Run(scen, pathway.Execute)
	for _, ev := range out.Log.Events() {
		if ev.Time > float64(scen.RunLength)+1 {
			t.Fatalf("event logged beyond run_length+1 departure grace: %v", ev.Time)
		}
	}
}
