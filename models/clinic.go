package models

// Clinic is a single clinician slot-owner in the network. It is stateless
// during the run except for its private referral-out probability, read once
// at Scenario construction time.
type Clinic struct {
	Index        int
	ReferredOutP float64
}
