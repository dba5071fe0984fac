// Package repository encodes platform state to and from the durable
// key-value store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/model"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/store"
)

const (
	// UsersKey holds the JSON array of all users.
	UsersKey = "users"
	// SessionKey holds the raw email of the logged-in user.
	SessionKey = "loggedInUser"
)

type userRecord struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	Enrollments []enrollmentRecord `json:"enrollments"`
}

type enrollmentRecord struct {
	EventID int  `json:"eventId"`
	Paid    bool `json:"paid"`
}

// UserRepository persists users and the session email.
type UserRepository struct {
	kv store.KV
}

// NewUserRepository constructs a UserRepository over kv.
func NewUserRepository(kv store.KV) *UserRepository {
	return &UserRepository{kv: kv}
}

// LoadUsers returns all persisted users. A missing key yields an empty list.
func (r *UserRepository) LoadUsers(ctx context.Context) ([]*model.User, error) {
	data, err := r.kv.Get(ctx, UsersKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}

	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*model.User, 0, len(records))
	for _, rec := range records {
		enrollments := make([]model.Enrollment, 0, len(rec.Enrollments))
		for _, e := range rec.Enrollments {
			enrollments = append(enrollments, model.NewEnrollment(e.EventID, e.Paid))
		}
		users = append(users, model.NewUser(rec.ID, rec.Name, rec.Email, rec.Password, enrollments...))
	}
	return users, nil
}

// SaveUsers replaces the persisted user list.
func (r *UserRepository) SaveUsers(ctx context.Context, users []*model.User) error {
	records := make([]userRecord, 0, len(users))
	for _, u := range users {
		rec := userRecord{
			ID:          u.ID(),
			Name:        u.Name(),
			Email:       u.Email(),
			Password:    u.Password(),
			Enrollments: []enrollmentRecord{},
		}
		for _, e := range u.Enrollments() {
			rec.Enrollments = append(rec.Enrollments, enrollmentRecord{EventID: e.EventID(), Paid: e.Paid()})
		}
		records = append(records, rec)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.kv.Set(ctx, UsersKey, data); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// LoadSession returns the persisted session email, or "" when logged out.
func (r *UserRepository) LoadSession(ctx context.Context) (string, error) {
	data, err := r.kv.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load session: %w", err)
	}
	return string(data), nil
}

// SaveSession persists email as the session. An empty email clears it.
func (r *UserRepository) SaveSession(ctx context.Context, email string) error {
	if email == "" {
		if err := r.kv.Delete(ctx, SessionKey); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}
	if err := r.kv.Set(ctx, SessionKey, []byte(email)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
