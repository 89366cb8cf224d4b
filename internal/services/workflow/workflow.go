// Package workflow encodes the project status state machine as data.
// TransitionStatus on the store is the only sanctioned way to change a
// project's status; it validates against this table and rejects disallowed
// or incomplete transitions with a typed error.
package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfoliodesk/internal/models"
)

var (
	// ErrInvalidTransition is returned when the target status is not
	// reachable from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrReasonRequired is returned when a transition that demands a
	// justification is attempted without one.
	ErrReasonRequired = errors.New("status change reason required")
)

// rule describes the constraints on one edge of the transition table
type rule struct {
	requiresReason bool
}

// transitions is the full table: source status -> allowed destinations.
// Only active -> on_hold and active -> cancelled demand a reason; moving to
// those states from other sources does not, even if the UI prompts anyway.
var transitions = map[models.ProjectStatus]map[models.ProjectStatus]rule{
	models.StatusPlanning: {
		models.StatusActive:    {},
		models.StatusOnHold:    {},
		models.StatusCancelled: {},
	},
	models.StatusActive: {
		models.StatusOnHold:    {requiresReason: true},
		models.StatusCompleted: {},
		models.StatusCancelled: {requiresReason: true},
	},
	models.StatusOnHold: {
		models.StatusActive:    {},
		models.StatusCancelled: {},
	},
	models.StatusCompleted: {
		// Reopen. Clearing CompletedAt is handled by Apply.
		models.StatusActive: {},
	},
	models.StatusCancelled: {},
}

// Actor identifies who initiated a manual transition
type Actor struct {
	ID   string
	Name string
}

// Validate checks whether the transition is allowed and sufficiently
// justified. It does not mutate anything.
func Validate(from, to models.ProjectStatus, reason string) error {
	if from == to {
		return fmt.Errorf("%w: already %s", ErrInvalidTransition, from)
	}
	dests, ok := transitions[from]
	if !ok {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, from)
	}
	r, ok := dests[to]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if r.requiresReason && strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: %s -> %s", ErrReasonRequired, from, to)
	}
	return nil
}

// RequiresReason reports whether the edge demands a justification
func RequiresReason(from, to models.ProjectStatus) bool {
	if dests, ok := transitions[from]; ok {
		if r, ok := dests[to]; ok {
			return r.requiresReason
		}
	}
	return false
}

// Apply performs a validated manual transition on the project. Reason and
// actor metadata are recorded only on transitions that require a reason.
// Reopening a completed project clears CompletedAt; the milestone already
// recorded for its completion is left alone.
func Apply(p *models.Project, to models.ProjectStatus, reason string, actor Actor, now time.Time) error {
	from := p.Status
	if err := Validate(from, to, reason); err != nil {
		return err
	}

	p.Status = to
	switch {
	case to == models.StatusCompleted:
		p.CompletedAt = &now
	case from == models.StatusCompleted && to == models.StatusActive:
		p.CompletedAt = nil
	}

	if RequiresReason(from, to) {
		p.StatusChangeReason = strings.TrimSpace(reason)
		p.StatusChangedBy = actor.Name
		p.StatusChangedByID = actor.ID
		p.StatusChangedAt = &now
	}

	p.UpdatedAt = now
	return nil
}

// AutoComplete is the single automatic (non-user-initiated) transition:
// when a task-list mutation brings completion to exactly 100 and the project
// is not already completed, it becomes completed, CompletedAt is stamped and
// a "recent" milestone is returned for the board. Returns nil when no
// transition happened.
func AutoComplete(p *models.Project, now time.Time) *models.Milestone {
	if p.CompletionPercentage != 100 || p.Status == models.StatusCompleted {
		return nil
	}

	p.Status = models.StatusCompleted
	p.CompletedAt = &now
	p.UpdatedAt = now

	return &models.Milestone{
		ID:            uuid.New().String(),
		Name:          fmt.Sprintf("%s completed", p.Name),
		ProjectID:     p.ID,
		ProjectName:   p.Name,
		Status:        models.MilestoneAchieved,
		CompletedDate: &now,
	}
}
