// Package reconcile keeps the local aggregate store and the remote backend
// loosely in sync: a one-directional wholesale load on session start, and a
// debounced full-snapshot save path for local changes. Load and save
// failures are logged and swallowed here; local state is allowed to run
// ahead of the backend indefinitely.
package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"portfoliodesk/internal/api"
	"portfoliodesk/internal/database"
	"portfoliodesk/internal/directory"
	"portfoliodesk/internal/models"
	"portfoliodesk/internal/services/store"
)

// Transport is the backend boundary this service needs
type Transport interface {
	ListProjects(ctx context.Context, userID string) ([]api.ProjectRecord, error)
	SaveSnapshot(ctx context.Context, payload api.SnapshotPayload) error
}

// Config controls the save paths
type Config struct {
	// UserID scopes loads and snapshot rows to the session's actor
	UserID string
	// SnapshotFallback enables the legacy debounced full-snapshot push to
	// the backend on every store change. The per-operation create path is
	// always on; this flag makes the dual-write explicit.
	SnapshotFallback bool
	// SnapshotDebounce is the trailing-edge quiet period (default 1s).
	// The timer resets on every change; there is no maximum-wait ceiling.
	SnapshotDebounce time.Duration
	// SyncCron optionally schedules a periodic unconditional save
	// (6-field cron expression). Empty disables it.
	SyncCron string
}

// Service wires the store's change notifications to the persistence paths
type Service struct {
	store     *store.Store
	transport Transport
	snapshots *database.Snapshots
	directory directory.Resolver
	cfg       Config

	debounced func(f func())
	cron      *cron.Cron
	unsub     func()
	draining  atomic.Bool

	log *logrus.Entry
}

// NewService creates the reconciliation service. snapshots may be nil when
// local persistence is not wanted (tests).
func NewService(st *store.Store, tr Transport, snapshots *database.Snapshots, dir directory.Resolver, cfg Config) *Service {
	if cfg.SnapshotDebounce <= 0 {
		cfg.SnapshotDebounce = time.Second
	}
	return &Service{
		store:     st,
		transport: tr,
		snapshots: snapshots,
		directory: dir,
		cfg:       cfg,
		debounced: debounce.New(cfg.SnapshotDebounce),
		log:       logrus.WithField("service", "reconcile"),
	}
}

// Start subscribes to store changes and starts the optional cron flush
func (s *Service) Start() error {
	s.unsub = s.store.Subscribe(s.onStoreChange)

	if s.cfg.SyncCron != "" {
		c := cron.New(cron.WithSeconds())
		if _, err := c.AddFunc(s.cfg.SyncCron, func() {
			s.saveAll(context.Background())
		}); err != nil {
			return fmt.Errorf("invalid sync cron %q: %w", s.cfg.SyncCron, err)
		}
		c.Start()
		s.cron = c
	}

	return nil
}

// Stop unsubscribes and stops the cron scheduler. Pending debounced saves
// become no-ops; call Flush first for logout/unmount semantics.
func (s *Service) Stop() {
	s.draining.Store(true)
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.cron = nil
	}
}

// RestoreSession loads the persisted local collections for session
// continuity across reloads. An empty or missing snapshot changes nothing.
func (s *Service) RestoreSession() {
	if s.snapshots == nil {
		return
	}
	projects, board, err := s.snapshots.Load(s.cfg.UserID)
	if err != nil {
		s.log.WithError(err).Warn("session restore failed; starting empty")
		return
	}
	if len(projects) == 0 {
		return
	}
	s.store.Replace(projects, board)
	s.log.WithField("projects", len(projects)).Info("session restored from local snapshot")
}

// Load fetches the remote project list for the actor and wholesale-replaces
// local state — but only when the remote result set is non-empty. An empty
// result leaves local state untouched so a session racing the backend's
// first write cannot wipe local data. No merge is attempted.
func (s *Service) Load(ctx context.Context, userID string) {
	records, err := s.transport.ListProjects(ctx, userID)
	if err != nil {
		s.log.WithError(err).Warn("backend load failed; keeping local state")
		return
	}
	if len(records) == 0 {
		s.log.Debug("backend returned no projects; local state preserved")
		return
	}

	now := time.Now().UTC()
	projects := make([]*models.Project, len(records))
	for i := range records {
		projects[i] = store.ProjectFromRecord(&records[i], s.directory, now)
	}

	// The load response does not carry milestones; the local board stays.
	s.store.Replace(projects, s.store.MilestoneBoard())
	s.log.WithField("projects", len(projects)).Info("local state replaced from backend")
}

// Flush fires one final unconditional save, bypassing the debounce and the
// fallback flag. Last-write-wins, not guaranteed-delivered.
func (s *Service) Flush(ctx context.Context) {
	s.draining.Store(true)
	state := s.store.State()
	s.saveLocal(state)
	s.pushSnapshot(ctx, state)
}

// onStoreChange schedules a trailing-edge save; rapid consecutive edits
// collapse into one save after the quiet period
func (s *Service) onStoreChange() {
	s.debounced(func() {
		if s.draining.Load() {
			return
		}
		s.saveAll(context.Background())
	})
}

func (s *Service) saveAll(ctx context.Context) {
	state := s.store.State()
	s.saveLocal(state)
	if s.cfg.SnapshotFallback {
		s.pushSnapshot(ctx, state)
	}
}

func (s *Service) saveLocal(state store.State) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(s.cfg.UserID, state.Projects, state.Milestones); err != nil {
		s.log.WithError(err).Warn("local snapshot save failed")
	}
}

func (s *Service) pushSnapshot(ctx context.Context, state store.State) {
	payload := api.SnapshotPayload{
		UserID:  s.cfg.UserID,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, p := range state.Projects {
		payload.Projects = append(payload.Projects, store.RecordFromProject(p))
	}

	if err := s.transport.SaveSnapshot(ctx, payload); err != nil {
		// No retry and no rollback: local state may stay ahead of the
		// backend until the next successful save.
		s.log.WithError(err).Warn("snapshot save failed")
	}
}
