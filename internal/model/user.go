package model

// User is a registered account and the enrollments it holds, in enrollment order.
type User struct {
	id          int
	name        string
	email       string
	password    string
	enrollments []Enrollment
}

// NewUser builds a user. Enrollments are copied; duplicates for the same event
// are dropped, keeping the first.
func NewUser(id int, name, email, password string, enrollments ...Enrollment) *User {
	u := &User{id: id, name: name, email: email, password: password}
	for _, e := range enrollments {
		if u.FindEnrollment(e.eventID) != nil {
			continue
		}
		u.enrollments = append(u.enrollments, e)
	}
	return u
}

func (u *User) ID() int { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() string { return u.email }
func (u *User) Password() string { return u.password }

// Enrollments returns a copy of the user's enrollments.
func (u *User) Enrollments() []Enrollment {
	out := make([]Enrollment, len(u.enrollments))
	copy(out, u.enrollments)
	return out
}

// FindEnrollment returns the enrollment for eventID, or nil.
func (u *User) FindEnrollment(eventID int) *Enrollment {
	for i := range u.enrollments {
		if u.enrollments[i].eventID == eventID {
			return &u.enrollments[i]
		}
	}
	return nil
}

// Enroll appends an unpaid enrollment. It returns false if one already exists.
func (u *User) Enroll(eventID int) bool {
	if u.FindEnrollment(eventID) != nil {
		return false
	}
	u.enrollments = append(u.enrollments, Enrollment{eventID: eventID})
	return true
}

// CancelEnrollment removes the enrollment for eventID. Missing enrollments are ignored.
func (u *User) CancelEnrollment(eventID int) {
	kept := u.enrollments[:0]
	for _, e := range u.enrollments {
		if e.eventID != eventID {
			kept = append(kept, e)
		}
	}
	u.enrollments = kept
}

// MarkPaid marks the enrollment for eventID as paid. It returns false if the
// user is not enrolled.
func (u *User) MarkPaid(eventID int) bool {
	e := u.FindEnrollment(eventID)
	if e == nil {
		return false
	}
	e.MarkPaid()
	return true
}

// Rename replaces the display name.
func (u *User) Rename(name string) {
	u.name = name
}

// Clone returns a detached copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.enrollments = u.Enrollments()
	return &c
}

// View returns the JSON representation of the user. The password is omitted.
func (u *User) View() UserView {
	v := UserView{
		ID:          u.id,
		Name:        u.name,
		Email:       u.email,
		Enrollments: make([]EnrollmentView, 0, len(u.enrollments)),
	}
	for _, e := range u.enrollments {
		v.Enrollments = append(v.Enrollments, EnrollmentView{EventID: e.eventID, Paid: e.paid})
	}
	return v
}

// UserView is the JSON shape of a User.
type UserView struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Enrollments []EnrollmentView `json:"enrollments"`
}
