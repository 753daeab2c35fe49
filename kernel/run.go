package kernel

import (
	"fmt"

	"triagesim/eventlog"
	"triagesim/models"
	"triagesim/scenario"
)

// PatientHandler runs a single admitted patient's pathway as a kernel
// process. Run never imports the pathway package directly — the caller
// supplies pathway.Execute (or a test double) here, which keeps the kernel
// ignorant of booking/pathway semantics and avoids an import cycle between
// the two packages.
type PatientHandler func(p *Process, scen *scenario.Scenario, log *eventlog.Log, patient *models.Patient)

// Output is everything a run produces before summarisation: the raw event
// log and every retained patient, in referral order.
type Output struct {
	Log      *eventlog.Log
	Patients []*models.Patient
}

// Run drives the daily arrivals generator for scen.RunLength days, handing
// each admitted patient to handler as a new process on the same clock, then
// stops the clock. Referred-out triage decisions are logged directly here
// since they never enter a pathway at all.
func Run(scen *scenario.Scenario, handler PatientHandler) *Output {
	clock := NewClock()
	log := eventlog.NewLog()
	var patients []*models.Patient

	clock.Spawn(0, func(p *Process) {
		for day := 0; ; day++ {
			n := scen.ArrivalDist.Sample()
			for i := 0; i < n; i++ {
				identifier := fmt.Sprintf("%d_%d", day, i)
				clinicID := scen.ClinicDist.Sample()
				referredOut := scen.RefOutDist[clinicID].Sample()

				if referredOut == 1 {
					logReferredOut(log, identifier, clinicID, p.Now())
					continue
				}

				priority := models.PriorityLow
				if scen.PriorityDist.Sample() == 1 {
					priority = models.PriorityHigh
				}
				patient := &models.Patient{
					Identifier: identifier,
					ReferralT:  p.Now(),
					HomeClinic: clinicID,
					Priority:   priority,
				}
				patients = append(patients, patient)

				clock.Spawn(p.Now(), func(cp *Process) {
					handler(cp, scen, log, patient)
				})
			}
			p.Sleep(1)
		}
	})

	clock.RunUntil(float64(scen.RunLength))
	return &Output{Log: log, Patients: patients}
}

func logReferredOut(log *eventlog.Log, identifier string, clinic int, now float64) {
	const unsuitablePriority = 0 // no booking priority applies once referred out
	log.Append(models.Event{
		Kind: models.EventArrivalDeparture, Name: models.EventArrival,
		PatientID: identifier, Priority: unsuitablePriority, HomeClinic: clinic, Time: now,
	})
	log.Append(models.Event{
		Kind: models.EventQueue, Name: models.EventReferredOut,
		PatientID: identifier, Priority: unsuitablePriority, HomeClinic: clinic, Time: now,
	})
	log.Append(models.Event{
		Kind: models.EventArrivalDeparture, Name: models.EventDepart,
		PatientID: identifier, Priority: unsuitablePriority, HomeClinic: clinic, Time: now + 1,
	})
}
