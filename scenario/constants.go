package scenario

// Bit-exact constants per the booking model's external interface.
const (
	LowPriorityMinWait  = 7
	HighPriorityMinWait = 1

	LowIntensityFollowUpTargetInterval  = 14
	HighIntensityFollowUpTargetInterval = 7

	// TargetHigh and TargetLow are the reporting-time waiting targets (in
	// working days) for each priority, used only by the Summariser for the
	// percent-within-target helper — they never gate booking decisions.
	TargetHigh = 5
	TargetLow  = 20

	// BookingTimeThreshold is carried from the original model as a named
	// constant with no behavior wired to it there either: a future
	// "rebook to a nearer slot when the next opening is farther than this"
	// policy would key off it. Left inert here for the same reason.
	BookingTimeThreshold = 4 * 7

	WorkingDaysPerWeek = 5

	// Proportions governing whether an assessed patient goes on to have any
	// follow-up appointments at all, split by the priority they were
	// assessed at.
	PropHighPriorityOngoingAppointments = 0.95
	PropLowPriorityOngoingAppointments  = 0.8

	// Proportions governing whether a patient who does have follow-ups is
	// on the high-intensity (weekly) or low-intensity (fortnightly) track.
	PropHighPriorityHighIntensity = 0.7
	PropLowPriorityHighIntensity  = 0.2

	// Mean/stdev (in appointment count) of the lognormal distributions used
	// to sample how many follow-up appointments a patient needs.
	MeanFollowUpsHighIntensity  = 10.0
	StdevFollowUpsHighIntensity = 6.0
	MeanFollowUpsLowIntensity   = 6.0
	StdevFollowUpsLowIntensity  = 3.0
)
