package directory

import (
	"context"
	"strings"

	"portfoliodesk/internal/api"
)

// Resolver maps actor/manager/team ids to display names. The store and the
// reconciliation layer depend on this interface so tests can inject a fake.
type Resolver interface {
	UserName(id string) string
	TeamName(id string) string
}

const cacheCapacity = 512

// Service resolves names through the backend directory with an LRU cache.
// Lookups never fail: on any error the raw id is returned (and cached so a
// broken directory does not get hammered on every render).
type Service struct {
	client *api.Client
	ctx    context.Context
	users  *lruCache
	teams  *lruCache
}

// NewService creates a directory resolver backed by the API client
func NewService(ctx context.Context, client *api.Client) *Service {
	return &Service{
		client: client,
		ctx:    ctx,
		users:  newLRUCache(cacheCapacity),
		teams:  newLRUCache(cacheCapacity),
	}
}

// UserName resolves a user id to "First Last", falling back to the id
func (s *Service) UserName(id string) string {
	if id == "" {
		return ""
	}
	if name, ok := s.users.Get(id); ok {
		return name
	}

	rec, err := s.client.GetUser(s.ctx, id)
	if err != nil {
		s.users.Put(id, id)
		return id
	}

	name := strings.TrimSpace(rec.FirstName + " " + rec.LastName)
	if name == "" {
		name = id
	}
	s.users.Put(id, name)
	return name
}

// TeamName resolves a team id to its name, falling back to the id
func (s *Service) TeamName(id string) string {
	if id == "" {
		return ""
	}
	if name, ok := s.teams.Get(id); ok {
		return name
	}

	rec, err := s.client.GetTeam(s.ctx, id)
	if err != nil || rec.Name == "" {
		s.teams.Put(id, id)
		return id
	}

	s.teams.Put(id, rec.Name)
	return rec.Name
}
