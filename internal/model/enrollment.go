package model

// Enrollment is a user's claim on one event, with its own payment status.
type Enrollment struct {
	eventID int
	paid    bool
}

// NewEnrollment restores an enrollment, typically from persisted state.
func NewEnrollment(eventID int, paid bool) Enrollment {
	return Enrollment{eventID: eventID, paid: paid}
}

func (e *Enrollment) EventID() int { return e.eventID }
func (e *Enrollment) Paid() bool { return e.paid }

// MarkPaid flags the enrollment as paid. It is never reset.
func (e *Enrollment) MarkPaid() {
	e.paid = true
}

// EnrollmentView is the JSON shape of an Enrollment.
type EnrollmentView struct {
	EventID int  `json:"event_id"`
	Paid    bool `json:"paid"`
}
