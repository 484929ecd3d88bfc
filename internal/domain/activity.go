// Package domain defines the business logic for the activities service.
package domain

import "errors"

var (
	// ErrActivityNotFound is returned when an activity name has no exact-case match.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp is returned when the email is already on the activity's roster.
	ErrAlreadySignedUp = errors.New("student is already signed up")
	// ErrNotSignedUp is returned when removing an email that is not on the roster.
	ErrNotSignedUp = errors.New("student is not signed up for this activity")
	// ErrEmailRequired is returned when a roster mutation is requested without an email.
	ErrEmailRequired = errors.New("email is required")
)

// Activity is an extracurricular offering with a schedule, a capacity, and a
// roster of registered student emails. Roster order is insertion order and is
// preserved for display.
type Activity struct {
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// AvailableSpots reports how many places remain before the activity is full.
func (a Activity) AvailableSpots() int {
	return a.MaxParticipants - len(a.Participants)
}
