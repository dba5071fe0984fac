// Package model defines the core domain types for the event platform.
package model

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateLayout is the calendar-date format used for event dates.
const DateLayout = "2006-01-02"

// EventKind discriminates free events from paid ones.
type EventKind string

const (
	EventKindFree EventKind = "free"
	EventKindPaid EventKind = "paid"
)

var costPrinter = message.NewPrinter(language.English)

// Event is one entry of the event catalog. Only the enrolled counter changes
// after construction.
type Event struct {
	id          int
	kind        EventKind
	name        string
	date        time.Time
	location    string
	cost        float64
	description string
	image       string
	enrolled    int
}

// NewFreeEvent builds an event that never requires payment. Its cost is always 0.
func NewFreeEvent(id int, name string, date time.Time, location, description, image string) *Event {
	return &Event{
		id:          id,
		kind:        EventKindFree,
		name:        name,
		date:        date,
		location:    location,
		description: description,
		image:       image,
	}
}

// NewPaidEvent builds an event that requires payment. The cost is not validated.
func NewPaidEvent(id int, name string, date time.Time, location string, cost float64, description, image string) *Event {
	return &Event{
		id:          id,
		kind:        EventKindPaid,
		name:        name,
		date:        date,
		location:    location,
		cost:        cost,
		description: description,
		image:       image,
	}
}

func (e *Event) ID() int { return e.id }
func (e *Event) Kind() EventKind { return e.kind }
func (e *Event) Name() string { return e.name }
func (e *Event) Date() time.Time { return e.date }
func (e *Event) Location() string { return e.location }
func (e *Event) Description() string { return e.description }
func (e *Event) Image() string { return e.image }
func (e *Event) EnrolledCount() int { return e.enrolled }

// Cost returns the price of the event. Free events always cost 0.
func (e *Event) Cost() float64 {
	if e.kind == EventKindFree {
		return 0
	}
	return e.cost
}

// DisplayCost returns the human-readable price label.
func (e *Event) DisplayCost() string {
	switch e.kind {
	case EventKindFree:
		return "Free"
	default:
		amount := number.Decimal(e.cost, number.Scale(2), number.NoSeparator())
		return costPrinter.Sprintf("S/ %v (payment required)", amount)
	}
}

// RequiresPayment reports whether enrolling leaves a pending payment.
func (e *Event) RequiresPayment() bool {
	return e.kind != EventKindFree
}

// IncrementEnrolled adds one enrollment to the counter.
func (e *Event) IncrementEnrolled() {
	e.enrolled++
}

// DecrementEnrolled removes one enrollment from the counter, never going below zero.
func (e *Event) DecrementEnrolled() {
	if e.enrolled > 0 {
		e.enrolled--
	}
}

// View returns the JSON representation of the event.
func (e *Event) View() EventView {
	return EventView{
		ID:              e.id,
		Kind:            e.kind,
		Name:            e.name,
		Date:            e.date.Format(DateLayout),
		Location:        e.location,
		Cost:            e.Cost(),
		DisplayCost:     e.DisplayCost(),
		RequiresPayment: e.RequiresPayment(),
		Description:     e.description,
		Image:           e.image,
		EnrolledCount:   e.enrolled,
	}
}

// EventView is the read-only JSON shape of an Event.
type EventView struct {
	ID              int       `json:"id"`
	Kind            EventKind `json:"kind"`
	Name            string    `json:"name"`
	Date            string    `json:"date"`
	Location        string    `json:"location"`
	Cost            float64   `json:"cost"`
	DisplayCost     string    `json:"display_cost"`
	RequiresPayment bool      `json:"requires_payment"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	EnrolledCount   int       `json:"enrolled_count"`
}
