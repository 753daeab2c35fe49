package models

// EventKind tags the outer union: arrival/departure bookkeeping vs queue
// progression events.
type EventKind string

const (
	EventArrivalDeparture EventKind = "arrival_departure"
	EventQueue            EventKind = "queue"
)

// EventName is the sub-event discriminator within a kind.
type EventName string

const (
	EventArrival                          EventName = "arrival"
	EventWaitingToBeScheduled             EventName = "waiting_appointment_to_be_scheduled"
	EventAppointmentBookedWaiting         EventName = "appointment_booked_waiting"
	EventHaveAppointment                  EventName = "have_appointment"
	EventFollowUpAppointmentBookedWaiting EventName = "follow_up_appointment_booked_waiting"
	EventReferredOut                      EventName = "referred_out"
	EventDepart                           EventName = "depart"
)

// AppointmentType distinguishes the first assessment from a follow-up on a
// have_appointment event.
type AppointmentType string

const (
	AppointmentAssessment AppointmentType = "assessment"
	AppointmentFollowUp   AppointmentType = "follow-up"
)

// Event is a single append-only log record. Optional fields are left at
// their zero value when not applicable to EventName; readers of the log key
// off EventName to know which fields are meaningful.
type Event struct {
	Kind      EventKind `bson:"kind" json:"kind"`
	Name      EventName `bson:"name" json:"name"`
	PatientID string    `bson:"patientId" json:"patientId"`
	Priority  int       `bson:"priority" json:"priority"`
	Time      float64   `bson:"time" json:"time"`

	HomeClinic      int  `bson:"homeClinic" json:"homeClinic"`
	BookedClinic    int  `bson:"bookedClinic,omitempty" json:"bookedClinic,omitempty"`
	HasBookedClinic bool `bson:"hasBookedClinic,omitempty" json:"hasBookedClinic,omitempty"`

	Wait    float64 `bson:"wait,omitempty" json:"wait,omitempty"`
	HasWait bool    `bson:"hasWait,omitempty" json:"hasWait,omitempty"`

	Interval    float64 `bson:"interval,omitempty" json:"interval,omitempty"`
	HasInterval bool    `bson:"hasInterval,omitempty" json:"hasInterval,omitempty"`

	FollowUpIndex    int  `bson:"followUpIndex,omitempty" json:"followUpIndex,omitempty"`
	HasFollowUpIndex bool `bson:"hasFollowUpIndex,omitempty" json:"hasFollowUpIndex,omitempty"`

	FollowUpIntensity    int  `bson:"followUpIntensity,omitempty" json:"followUpIntensity,omitempty"`
	HasFollowUpIntensity bool `bson:"hasFollowUpIntensity,omitempty" json:"hasFollowUpIntensity,omitempty"`

	FollowUpsIntended    int  `bson:"followUpsIntended,omitempty" json:"followUpsIntended,omitempty"`
	HasFollowUpsIntended bool `bson:"hasFollowUpsIntended,omitempty" json:"hasFollowUpsIntended,omitempty"`

	AppointmentType AppointmentType `bson:"appointmentType,omitempty" json:"appointmentType,omitempty"`
}
