package models

// ShiftsTable is the weekly slot template: 5 working days x C clinicians,
// integer slot counts >= 0.
type ShiftsTable struct {
	Days      int // always 5
	Clinics   int
	Slots     [][]int // Slots[dayOfWeek][clinic]
}

// ReferralsTable has one row per clinician: the probability a triaged
// arrival is sent to that clinician, and the probability that clinician
// refers the patient back out of the service.
type ReferralsTable struct {
	Prop         []float64 // sums to ~1.0 across clinicians
	ReferredOutP []float64 // per-clinician, in [0,1]
}

// PoolingTable is the C x C boolean adjacency: Pooling[i][j] is true when
// clinic i may use clinic j's slots for an initial assessment.
type PoolingTable struct {
	Clinics int
	Pooling [][]bool
}

// CaseloadTable is the single-row initial caseload per clinician, in
// fractional weekly-slot units.
type CaseloadTable struct {
	Caseload []float64
}
