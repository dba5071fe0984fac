// Package service implements the event platform: the session, registration,
// enrollment and payment operations, and their persistence.
package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/model"
)

// UserStore persists users and the session email.
type UserStore interface {
	LoadUsers(ctx context.Context) ([]*model.User, error)
	SaveUsers(ctx context.Context, users []*model.User) error
	LoadSession(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, email string) error
}

// firstUserID is the id handed to the first registered user.
const firstUserID = 103

// Voucher codes accepted by ConfirmPayment unless overridden with WithPaymentCodes.
const (
	DefaultReferenceCode = "CC123456"
	DefaultOverrideCode  = "GRACIAS"
)

// Platform owns the event catalog, the registered users and the single
// logged-in session. All persisted state goes through its UserStore.
type Platform struct {
	mu sync.Mutex

	store   UserStore
	events  []*model.Event
	users   []*model.User
	current *model.User
	nextID  int

	initialUsers  []*model.User
	referenceCode string
	overrideCode  string
	now           func() time.Time
	newReceiptID  func() string
	logger        *log.Logger
}

// Option configures a Platform.
type Option func(*Platform)

// WithInitialUsers sets the users used when the store holds none.
func WithInitialUsers(users ...*model.User) Option {
	return func(p *Platform) {
		p.initialUsers = users
	}
}

// WithPaymentCodes overrides the per-event reference code and the universal
// override code. Empty values keep the defaults.
func WithPaymentCodes(reference, override string) Option {
	return func(p *Platform) {
		if reference != "" {
			p.referenceCode = normalizeCode(reference)
		}
		if override != "" {
			p.overrideCode = normalizeCode(override)
		}
	}
}

// WithClock overrides the time source used for payment receipts.
func WithClock(now func() time.Time) Option {
	return func(p *Platform) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger for state changes. A nil logger discards output.
func WithLogger(logger *log.Logger) Option {
	return func(p *Platform) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		p.logger = logger
	}
}

// NewPlatform loads users and the session from store and returns a ready
// platform over events. Event counters are rebuilt from the loaded enrollments.
func NewPlatform(ctx context.Context, store UserStore, events []*model.Event, opts ...Option) (*Platform, error) {
	p := &Platform{
		store:         store,
		events:        events,
		referenceCode: DefaultReferenceCode,
		overrideCode:  DefaultOverrideCode,
		now:           func() time.Time { return time.Now().UTC() },
		newReceiptID:  newReceiptID,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	users, err := store.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		users = p.initialUsers
	}
	p.users = users

	maxID := firstUserID - 1
	for _, u := range p.users {
		if u.ID() > maxID {
			maxID = u.ID()
		}
		for _, e := range u.Enrollments() {
			if ev := p.findEvent(e.EventID()); ev != nil {
				ev.IncrementEnrolled()
			}
		}
	}
	p.nextID = maxID + 1

	email, err := store.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if email != "" {
		p.current = p.findUserByEmail(email)
	}
	return p, nil
}

// Events returns every event in catalog order.
func (p *Platform) Events() []model.EventView {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]model.EventView, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.View())
	}
	return out
}

// Event returns one event by id.
func (p *Platform) Event(id int) (model.EventView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e := p.findEvent(id)
	if e == nil {
		return model.EventView{}, ErrEventNotFound
	}
	return e.View(), nil
}

// LoggedInUser returns a copy of the session user, or nil when logged out.
func (p *Platform) LoggedInUser() *model.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.Clone()
}

// Login opens a session for the user whose email and password both match
// exactly and returns a copy of that user.
func (p *Platform) Login(ctx context.Context, email, password string) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var found *model.User
	for _, u := range p.users {
		if u.Email() == email && u.Password() == password {
			found = u
			break
		}
	}
	if found == nil {
		return nil, ErrInvalidCredentials
	}
	if err := p.store.SaveSession(ctx, found.Email()); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	p.current = found
	p.logger.Printf("login user_id=%d", found.ID())
	return found.Clone(), nil
}

// Logout closes the session. The in-memory session is cleared even if the
// store cannot be updated.
func (p *Platform) Logout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = nil
	if err := p.store.SaveSession(ctx, ""); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Register creates a user with the next sequential id. It does not log in.
func (p *Platform) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.findUserByEmail(email) != nil {
		return nil, ErrDuplicateEmail
	}

	u := model.NewUser(p.nextID, name, email, password)
	users := make([]*model.User, 0, len(p.users)+1)
	users = append(users, p.users...)
	users = append(users, u)
	if err := p.store.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	p.users = users
	p.nextID++
	p.logger.Printf("register user_id=%d", u.ID())
	return u.Clone(), nil
}

// EditLoggedInUserName renames the session user and keeps the session
// pointed at the stored record. Nothing changes if either write fails.
func (p *Platform) EditLoggedInUserName(ctx context.Context, name string) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil, ErrNotLoggedIn
	}
	updated := p.current.Clone()
	updated.Rename(name)
	// The email is unchanged, so the session write is safe to do first.
	if err := p.store.SaveSession(ctx, updated.Email()); err != nil {
		return nil, fmt.Errorf("edit name: %w", err)
	}
	if err := p.commitUser(ctx, updated); err != nil {
		return nil, fmt.Errorf("edit name: %w", err)
	}
	return updated.Clone(), nil
}

// EnrollInEvent enrolls the session user and bumps the event counter.
func (p *Platform) EnrollInEvent(ctx context.Context, eventID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNotLoggedIn
	}
	ev := p.findEvent(eventID)
	if ev == nil {
		return ErrEventNotFound
	}
	updated := p.current.Clone()
	if !updated.Enroll(eventID) {
		return ErrAlreadyEnrolled
	}
	if err := p.commitUser(ctx, updated); err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	ev.IncrementEnrolled()
	p.logger.Printf("enroll user_id=%d event_id=%d", updated.ID(), eventID)
	return nil
}

// CancelEnrollment removes the session user's enrollment. It succeeds whether
// or not an enrollment existed; the counter only moves when one was removed.
func (p *Platform) CancelEnrollment(ctx context.Context, eventID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNotLoggedIn
	}
	updated := p.current.Clone()
	removed := updated.FindEnrollment(eventID) != nil
	updated.CancelEnrollment(eventID)
	if err := p.commitUser(ctx, updated); err != nil {
		return fmt.Errorf("cancel enrollment: %w", err)
	}
	if ev := p.findEvent(eventID); ev != nil && removed {
		ev.DecrementEnrolled()
	}
	p.logger.Printf("cancel user_id=%d event_id=%d removed=%t", updated.ID(), eventID, removed)
	return nil
}

// EnrolledEvents returns the session user's events in catalog order.
func (p *Platform) EnrolledEvents() []model.EventView {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := []model.EventView{}
	if p.current == nil {
		return out
	}
	for _, e := range p.events {
		if p.current.FindEnrollment(e.ID()) != nil {
			out = append(out, e.View())
		}
	}
	return out
}

// EnrollmentFor returns the session user's enrollment for eventID.
func (p *Platform) EnrollmentFor(eventID int) (model.Enrollment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return model.Enrollment{}, false
	}
	e := p.current.FindEnrollment(eventID)
	if e == nil {
		return model.Enrollment{}, false
	}
	return *e, true
}

// commitUser persists the user list with updated in place of the record that
// shares its id, then swaps it in and re-points the session. Nothing changes
// in memory if the store write fails.
func (p *Platform) commitUser(ctx context.Context, updated *model.User) error {
	users := make([]*model.User, len(p.users))
	copy(users, p.users)
	for i, u := range users {
		if u.ID() == updated.ID() {
			users[i] = updated
		}
	}
	if err := p.store.SaveUsers(ctx, users); err != nil {
		return err
	}
	p.users = users
	if p.current != nil && p.current.ID() == updated.ID() {
		p.current = updated
	}
	return nil
}

func (p *Platform) findEvent(id int) *model.Event {
	for _, e := range p.events {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

func (p *Platform) findUserByEmail(email string) *model.User {
	for _, u := range p.users {
		if u.Email() == email {
			return u
		}
	}
	return nil
}
