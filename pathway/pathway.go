// Package pathway implements the patient referral pathway: the sequence of
// booking, waiting, attending, and optional follow-up appointments a single
// referral goes through from arrival to discharge. Each pathway runs as one
// kernel.Process.
package pathway

import (
	"fmt"

	"triagesim/eventlog"
	"triagesim/kernel"
	"triagesim/models"
	"triagesim/scenario"
	"triagesim/services/booking"
	"triagesim/simerr"
)

// Execute drives one patient's full referral pathway. It mutates patient in
// place (WaitingTime, Attended, AttendedTime, HasFollowUp, ...) so the
// caller can inspect the outcome after the run stops — Execute itself never
// returns a value because a process abandoned mid-pathway by the clock
// stopping never reaches any return statement at all.
func Execute(p *kernel.Process, scen *scenario.Scenario, log *eventlog.Log, patient *models.Patient) {
	log.Append(models.Event{
		Kind: models.EventArrivalDeparture, Name: models.EventArrival,
		PatientID: patient.Identifier, Priority: patient.Priority,
		HomeClinic: patient.HomeClinic, Time: p.Now(),
	})
	log.Append(models.Event{
		Kind: models.EventQueue, Name: models.EventWaitingToBeScheduled,
		PatientID: patient.Identifier, Priority: patient.Priority,
		HomeClinic: patient.HomeClinic, Time: p.Now(),
	})

	var bestDay, bookedClinic int
	var ok bool

	// Only a priority-1 (low) booking carries a caseload increment. A
	// priority-2 (high) booking leaves caseload untouched here, although
	// runFollowUps applies its reconciliation and discharge decrements to
	// both priorities.
	switch patient.Priority {
	case models.PriorityHigh:
		bestDay, bookedClinic, ok = bookHighPriority(scen, patient)
	case models.PriorityLow:
		bestDay, bookedClinic, ok = bookLowPriority(p, scen, patient)
		if ok {
			scen.AdjustCaseload(bookedClinic, 1)
		}
	default:
		panic(fmt.Sprintf("pathway: %v", simerr.NewUnknownPriority(patient.Priority)))
	}
	if !ok {
		return
	}
	patient.BookedClinic = bookedClinic

	log.Append(models.Event{
		Kind: models.EventQueue, Name: models.EventAppointmentBookedWaiting,
		PatientID: patient.Identifier, Priority: patient.Priority,
		HomeClinic: patient.HomeClinic, BookedClinic: bookedClinic, HasBookedClinic: true,
		Time: p.Now(),
	})

	p.Sleep(float64(bestDay) - p.Now())

	patient.WaitingTime = float64(bestDay) - patient.ReferralT
	patient.Attended = true
	patient.AttendedTime = p.Now()

	log.Append(models.Event{
		Kind: models.EventQueue, Name: models.EventHaveAppointment,
		PatientID: patient.Identifier, Priority: patient.Priority,
		HomeClinic: patient.HomeClinic, BookedClinic: bookedClinic, HasBookedClinic: true,
		AppointmentType: models.AppointmentAssessment,
		Wait:            patient.WaitingTime, HasWait: true,
		Time: p.Now(),
	})

	runFollowUps(p, scen, log, patient, bookedClinic)

	log.Append(models.Event{
		Kind: models.EventArrivalDeparture, Name: models.EventDepart,
		PatientID: patient.Identifier, Priority: patient.Priority,
		HomeClinic: patient.HomeClinic, Time: p.Now() + 1,
	})
}

func bookHighPriority(scen *scenario.Scenario, patient *models.Patient) (int, int, bool) {
	booker := booking.NewHighPriorityPooledBooker(scen.Store, scen.TieBreaker)
	day, clinic, err := booker.FindSlot(int(patient.ReferralT), patient.HomeClinic, nil)
	if err != nil {
		return 0, 0, false
	}
	if err := booker.BookSlot(day, clinic); err != nil {
		return 0, 0, false
	}
	return day, clinic, true
}

// bookLowPriority implements the anti-leapfrog workaround: the patient
// waits one day before its first search (so it cannot jump ahead of anyone
// already waiting), with the minimum wait shortened by one day to roughly
// offset that delay. If no clinician has caseload headroom on that first
// check, the shortening is dropped and the patient polls daily until
// someone does.
func bookLowPriority(p *kernel.Process, scen *scenario.Scenario, patient *models.Patient) (int, int, bool) {
	booker := booking.NewLowPriorityPooledBooker(scen.Store, scen.TieBreaker)

	p.Sleep(1)

	mask, any := scen.HeadroomMask()
	var day, clinic int
	var err error
	if any {
		day, clinic, err = booker.FindSlotWithMinWait(int(patient.ReferralT), patient.HomeClinic, mask, booker.MinWait()-1)
	} else {
		p.Sleep(1)
		mask, any = scen.HeadroomMask()
		for !any {
			p.Sleep(1)
			mask, any = scen.HeadroomMask()
		}
		day, clinic, err = booker.FindSlotWithMinWait(int(p.Now()), patient.HomeClinic, mask, booker.MinWait())
	}
	if err != nil {
		return 0, 0, false
	}
	if err := booker.BookSlot(day, clinic); err != nil {
		return 0, 0, false
	}
	return day, clinic, true
}

// runFollowUps samples whether the patient needs any follow-up
// appointments at all, then (if so) the intensity track and appointment
// count, reconciling the clinician's fractional caseload at every
// transition, and finally releases the caseload slot on discharge —
// including when no follow-up was ever needed, which the original model
// left unreleased.
func runFollowUps(p *kernel.Process, scen *scenario.Scenario, log *eventlog.Log, patient *models.Patient, clinic int) {
	var needsFollowUp int
	if patient.Priority == models.PriorityLow {
		needsFollowUp = scen.FollowUpDistLow.Sample()
	} else {
		needsFollowUp = scen.FollowUpDistHigh.Sample()
	}

	if needsFollowUp == 0 {
		scen.AdjustCaseload(clinic, -1)
		return
	}

	var intensity int
	if patient.Priority == models.PriorityLow {
		intensity = scen.IntensityDistLow.Sample()
	} else {
		intensity = scen.IntensityDistHigh.Sample()
	}
	patient.HasFollowUp = true
	patient.FollowUpIntensity = intensity

	if intensity == models.IntensityLow && patient.Priority == models.PriorityHigh {
		scen.AdjustCaseload(clinic, -0.5)
	}
	if intensity == models.IntensityHigh && patient.Priority == models.PriorityLow {
		scen.AdjustCaseload(clinic, 0.5)
	}

	var numAppts int
	var repeatBooker *booking.RepeatBooker
	if intensity == models.IntensityHigh {
		numAppts = int(scen.NumFollowUpDistHighIntensity.Sample())
		repeatBooker = booking.NewRepeatBooker(scen.Store, scenario.HighIntensityFollowUpTargetInterval, clinic)
	} else {
		numAppts = int(scen.NumFollowUpDistLowIntensity.Sample())
		repeatBooker = booking.NewRepeatBooker(scen.Store, scenario.LowIntensityFollowUpTargetInterval, clinic)
	}
	patient.FollowUpsIntended = numAppts

	intensityLabel := models.AppointmentFollowUp

	for i := 0; i < numAppts; i++ {
		day, err := repeatBooker.FindSlot(int(p.Now()))
		if err != nil {
			break
		}
		if err := repeatBooker.BookSlot(day); err != nil {
			break
		}

		log.Append(models.Event{
			Kind: models.EventQueue, Name: models.EventFollowUpAppointmentBookedWaiting,
			PatientID: patient.Identifier, Priority: patient.Priority,
			HomeClinic: patient.HomeClinic, BookedClinic: clinic, HasBookedClinic: true,
			FollowUpIndex: i, HasFollowUpIndex: true,
			FollowUpIntensity: intensity, HasFollowUpIntensity: true,
			FollowUpsIntended: numAppts, HasFollowUpsIntended: true,
			Time: p.Now(),
		})

		interval := float64(day) - p.Now()
		p.Sleep(interval)

		log.Append(models.Event{
			Kind: models.EventQueue, Name: models.EventHaveAppointment,
			PatientID: patient.Identifier, Priority: patient.Priority,
			HomeClinic: patient.HomeClinic, BookedClinic: clinic, HasBookedClinic: true,
			AppointmentType:   intensityLabel,
			FollowUpIndex:     i, HasFollowUpIndex: true,
			FollowUpIntensity: intensity, HasFollowUpIntensity: true,
			FollowUpsIntended: numAppts, HasFollowUpsIntended: true,
			Interval: interval, HasInterval: true,
			Time: p.Now(),
		})
	}

	if intensity == models.IntensityHigh {
		scen.AdjustCaseload(clinic, -1)
	} else {
		scen.AdjustCaseload(clinic, -0.5)
	}
}
