package scenario

import (
	"triagesim/models"
	"triagesim/rng"
	"triagesim/simerr"
)

// seedArrival and friends index into the 20-element seed vector each run
// is constructed from. Clinic-level referral-out streams consume one seed
// each starting at seedClinicsBase; the tie-breaking stream takes the last
// slot in the vector so it can never collide with a clinician index even
// when every seed slot ahead of it is in use.
const (
	seedArrival            = 0
	seedPriority           = 1
	seedFollowUpHigh       = 2
	seedFollowUpLow        = 3
	seedIntensityHigh      = 4
	seedIntensityLow       = 5
	seedNumFollowUpHigh    = 6
	seedNumFollowUpLow     = 7
	seedClinicDist         = 8
	seedClinicsBase        = 9
	seedTieBreakerFromLast = 1 // seeds[len(seeds)-1]
)

// Scenario bundles the Diary Store with every named distribution the
// pathway and arrivals generator draw from, plus the static clinic
// network. It is constructed once per run from a fully validated
// RunConfig and is thereafter read-only except through Store's mutation
// operations.
type Scenario struct {
	*Store

	ArrivalDist  *rng.PoissonStream
	PriorityDist *rng.BernoulliStream

	FollowUpDistHigh  *rng.BernoulliStream
	FollowUpDistLow   *rng.BernoulliStream
	IntensityDistHigh *rng.BernoulliStream
	IntensityDistLow  *rng.BernoulliStream

	NumFollowUpDistHighIntensity *rng.LognormalStream
	NumFollowUpDistLowIntensity  *rng.LognormalStream

	ClinicDist *rng.DiscreteStream
	Clinics    []models.Clinic
	RefOutDist []*rng.BernoulliStream

	TieBreaker *rng.TieBreaker
}

// New builds a Scenario from a RunConfig. It validates the input tables
// (via NewStore), constructs every named distribution from the supplied
// seed vector, and builds the static clinic network from the referrals
// table.
func New(cfg models.RunConfig) (*Scenario, error) {
	if len(cfg.Seeds) < seedClinicsBase+cfg.Shifts.Clinics+seedTieBreakerFromLast {
		return nil, simerr.NewConfigurationError("seeds", "seed vector too short for the clinic network")
	}

	store, err := NewStore(cfg.RunLength, cfg.WarmUp, cfg.PropCarveOut, cfg.Shifts, cfg.Pooling, cfg.Caseload)
	if err != nil {
		return nil, err
	}

	if len(cfg.Referrals.Prop) != store.Clinics || len(cfg.Referrals.ReferredOutP) != store.Clinics {
		return nil, simerr.NewConfigurationError("referrals", "referrals table must have one row per clinician")
	}

	arrivalMean := float64(cfg.AnnualDemand) / 52.0 / float64(WorkingDaysPerWeek)

	numFollowUpHigh, err := rng.NewLognormal(MeanFollowUpsHighIntensity, StdevFollowUpsHighIntensity, cfg.Seeds[seedNumFollowUpHigh])
	if err != nil {
		return nil, err
	}
	numFollowUpLow, err := rng.NewLognormal(MeanFollowUpsLowIntensity, StdevFollowUpsLowIntensity, cfg.Seeds[seedNumFollowUpLow])
	if err != nil {
		return nil, err
	}

	elements := make([]int, store.Clinics)
	for i := range elements {
		elements[i] = i
	}

	clinics := make([]models.Clinic, store.Clinics)
	refOut := make([]*rng.BernoulliStream, store.Clinics)
	for i := 0; i < store.Clinics; i++ {
		clinics[i] = models.Clinic{Index: i, ReferredOutP: cfg.Referrals.ReferredOutP[i]}
		refOut[i] = rng.NewBernoulli(cfg.Referrals.ReferredOutP[i], cfg.Seeds[seedClinicsBase+i])
	}

	return &Scenario{
		Store: store,

		ArrivalDist:  rng.NewPoisson(arrivalMean, cfg.Seeds[seedArrival]),
		PriorityDist: rng.NewBernoulli(cfg.PropHighPriority, cfg.Seeds[seedPriority]),

		FollowUpDistHigh:  rng.NewBernoulli(PropHighPriorityOngoingAppointments, cfg.Seeds[seedFollowUpHigh]),
		FollowUpDistLow:   rng.NewBernoulli(PropLowPriorityOngoingAppointments, cfg.Seeds[seedFollowUpLow]),
		IntensityDistHigh: rng.NewBernoulli(PropHighPriorityHighIntensity, cfg.Seeds[seedIntensityHigh]),
		IntensityDistLow:  rng.NewBernoulli(PropLowPriorityHighIntensity, cfg.Seeds[seedIntensityLow]),

		NumFollowUpDistHighIntensity: numFollowUpHigh,
		NumFollowUpDistLowIntensity:  numFollowUpLow,

		ClinicDist: rng.NewDiscrete(elements, cfg.Referrals.Prop, cfg.Seeds[seedClinicDist]),
		Clinics:    clinics,
		RefOutDist: refOut,

		TieBreaker: rng.NewTieBreaker(cfg.Seeds[len(cfg.Seeds)-seedTieBreakerFromLast]),
	}, nil
}

// HeadroomMask computes, per clinician, whether they currently have
// caseload headroom to accept a new low-priority patient: their theoretical
// weekly slots minus their live caseload minus a 1-slot emergency buffer.
// The second return value is true when at least one clinician has
// headroom.
func (s *Scenario) HeadroomMask() ([]bool, bool) {
	mask := make([]bool, s.Store.Clinics)
	any := false
	for c := 0; c < s.Store.Clinics; c++ {
		headroom := float64(s.WeeklyCapacity(c)) - s.Caseload(c) - 1
		if headroom > 0 {
			mask[c] = true
			any = true
		}
	}
	return mask, any
}
