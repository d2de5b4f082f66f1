package ports

import "context"

// One person reported unavailable for the day by the schedule collaborator.
type Absence struct {
	Name   string
	Reason string
}

// Port: the external text-understanding collaborator for work schedules.
type AvailabilityParser interface {
	// Extract the people marked unavailable from raw schedule text.
	// An empty slice is a valid result (nobody is off today).
	ParseAvailability(ctx context.Context, schedule string) ([]Absence, error)
}
