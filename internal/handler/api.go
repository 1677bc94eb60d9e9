package handler

import (
	"time"

	"github.com/bharatvansh/habit-tracker-sub000/internal/dna"
	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
	"github.com/bharatvansh/habit-tracker-sub000/internal/reminder"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	habits    *habit.Repository
	reminders *reminder.Repository
	generator *dna.Generator
	clock     func() time.Time
}

// NewAPI constructs a handler set with shared repositories.
// clock defaults to time.Now when nil; tests inject a frozen clock.
func NewAPI(habits *habit.Repository, reminders *reminder.Repository, generator *dna.Generator, clock func() time.Time) *API {
	if clock == nil {
		clock = time.Now
	}
	return &API{
		habits:    habits,
		reminders: reminders,
		generator: generator,
		clock:     clock,
	}
}
