// Package store holds the project/task aggregate: all projects with their
// nested tasks, the portfolio milestone board, and every mutation operation.
// It is an explicit state container injected into its consumers; views
// observe it through Subscribe and re-read state after each notification.
package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"portfoliodesk/internal/api"
	"portfoliodesk/internal/directory"
	"portfoliodesk/internal/models"
)

// Transport is the backend boundary the store needs for remote-first
// operations. Only project creation goes through the store itself; loading
// and snapshot saving belong to the reconciliation service.
type Transport interface {
	CreateProject(ctx context.Context, payload api.ProjectCreatePayload) (*api.ProjectRecord, error)
}

// Store is the single logical writer of the in-memory aggregate state.
// Mutations that only touch local state are total: a missing id is a no-op,
// never an error.
type Store struct {
	mu         sync.RWMutex
	projects   []*models.Project
	milestones models.MilestoneBoard

	transport Transport
	directory directory.Resolver

	subsMu  sync.Mutex
	subs    map[int]func()
	nextSub int

	log *logrus.Entry
}

// New creates an empty store wired to the given transport and directory
func New(transport Transport, dir directory.Resolver) *Store {
	return &Store{
		transport: transport,
		directory: dir,
		subs:      make(map[int]func()),
		log:       logrus.WithField("service", "store"),
	}
}

// Subscribe registers a callback invoked after every mutation. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// notify runs outside the state lock so subscribers can read back freely
func (s *Store) notify() {
	s.subsMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// find returns the live project for id. Caller must hold the lock.
func (s *Store) find(id string) *models.Project {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// userName resolves an actor id to a display name, tolerating a nil resolver
func (s *Store) userName(id string) string {
	if s.directory == nil || id == "" {
		return id
	}
	return s.directory.UserName(id)
}

// Project returns a copy of the project with the given id
func (s *Store) Project(id string) (*models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.find(id); p != nil {
		return p.Clone(), true
	}
	return nil, false
}

// Projects returns copies of all projects in display order, soft-deleted
// included
func (s *Store) Projects() []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.projects)
}

// ActiveProjects returns the projects still being worked: not completed,
// not cancelled, excluding soft-deleted records
func (s *Store) ActiveProjects() []*models.Project {
	return s.filtered(func(p *models.Project) bool {
		return !p.IsDeleted && p.Status != models.StatusCompleted && p.Status != models.StatusCancelled
	})
}

// CompletedProjects returns completed projects, excluding soft-deleted ones
func (s *Store) CompletedProjects() []*models.Project {
	return s.filtered(func(p *models.Project) bool {
		return !p.IsDeleted && p.Status == models.StatusCompleted
	})
}

// DeletedProjects returns soft-deleted projects awaiting restore or purge
func (s *Store) DeletedProjects() []*models.Project {
	return s.filtered(func(p *models.Project) bool {
		return p.IsDeleted
	})
}

func (s *Store) filtered(keep func(*models.Project) bool) []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// MilestoneBoard returns a copy of the portfolio milestone lists
func (s *Store) MilestoneBoard() models.MilestoneBoard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.milestones.Clone()
}

// Statistics derives the portfolio summary over non-deleted projects
func (s *Store) Statistics() models.ProjectStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.ProjectStatistics
	counted := 0
	sum := 0
	for _, p := range s.projects {
		if p.IsDeleted {
			continue
		}
		counted++
		sum += p.CompletionPercentage
		switch p.Status {
		case models.StatusActive:
			stats.TotalActive++
		case models.StatusCompleted:
			stats.TotalCompleted++
		}
		if p.RiskLevel == models.RiskHigh || p.RiskLevel == models.RiskCritical {
			stats.AtRiskCount++
		}
	}
	if counted > 0 {
		stats.AvgCompletion = float64(sum) / float64(counted)
	}
	return stats
}

// State is a deep copy of everything the store owns, used by persistence
// and the reconciliation layer
type State struct {
	Projects   []*models.Project
	Milestones models.MilestoneBoard
}

// State snapshots the full store contents
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Projects:   cloneProjects(s.projects),
		Milestones: s.milestones.Clone(),
	}
}

// Replace wholesale-swaps the store contents. Used by reconciliation after
// a non-empty backend load and by session restore; no merge is attempted.
func (s *Store) Replace(projects []*models.Project, board models.MilestoneBoard) {
	s.mu.Lock()
	s.projects = cloneProjects(projects)
	s.milestones = board.Clone()
	s.mu.Unlock()
	s.notify()
}

func cloneProjects(in []*models.Project) []*models.Project {
	out := make([]*models.Project, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
