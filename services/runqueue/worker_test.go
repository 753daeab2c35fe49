package runqueue

import (
	"testing"

	"triagesim/models"
)

func testRunConfig() models.RunConfig {
	seeds := make([]int64, 20)
	for i := range seeds {
		seeds[i] = int64(2000 + i*3)
	}
	return models.RunConfig{
		RunID:            "worker-test",
		RunLength:        30,
		WarmUp:           5,
		PropCarveOut:     0.2,
		PropHighPriority: 0.2,
		AnnualDemand:     500,
		Seeds:            seeds,
		Shifts: models.ShiftsTable{
			Days:    5,
			Clinics: 2,
			Slots:   [][]int{{8, 8}, {8, 8}, {8, 8}, {8, 8}, {8, 8}},
		},
		Referrals: models.ReferralsTable{
			Prop:         []float64{0.5, 0.5},
			ReferredOutP: []float64{0.1, 0.1},
		},
		Pooling: models.PoolingTable{
			Clinics: 2,
			Pooling: [][]bool{{true, true}, {true, true}},
		},
		Caseload: models.CaseloadTable{Caseload: []float64{1, 1}},
	}
}

func TestRunScenarioProducesAResult(t *testing.T) {
	result, err := RunScenario(testRunConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RunID != "worker-test" {
		t.Fatalf("expected run id to round-trip, got %q", result.RunID)
	}
	if len(result.Events) == 0 {
		t.Fatalf("expected a non-empty event log")
	}
	if len(result.Bookings) == 0 || len(result.Available) == 0 {
		t.Fatalf("expected non-empty bookings/available slices")
	}
}

func TestRunScenarioRejectsInvalidConfig(t *testing.T) {
	cfg := testRunConfig()
	cfg.Seeds = cfg.Seeds[:5]
	if _, err := RunScenario(cfg); err == nil {
		t.Fatalf("expected error for short seed vector")
	}
}
