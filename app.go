package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliodesk/internal/api"
	"portfoliodesk/internal/config"
	"portfoliodesk/internal/credentials"
	"portfoliodesk/internal/database"
	"portfoliodesk/internal/directory"
	"portfoliodesk/internal/models"
	"portfoliodesk/internal/services/reconcile"
	"portfoliodesk/internal/services/store"
)

// App struct - main application state
type App struct {
	ctx       context.Context
	cfg       config.Config
	db        *gorm.DB
	client    *api.Client
	directory *directory.Service
	store     *store.Store
	reconcile *reconcile.Service
	userID    string
}

// NewApp creates a new App application struct
func NewApp(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// Startup wires the store, directory, persistence and reconciliation for
// the given session actor, restores the persisted local state, then loads
// remote state (which wholesale-replaces local state when non-empty).
func (a *App) Startup(ctx context.Context, userID string) error {
	a.ctx = ctx
	a.userID = userID
	logrus.Info("application starting up")

	if level, err := logrus.ParseLevel(a.cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := database.Init(a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	a.db = db
	logrus.Info("session database initialized")

	a.client = api.NewClient(a.cfg.BackendURL, credentials.BackendToken())
	a.directory = directory.NewService(ctx, a.client)
	a.store = store.New(a.client, a.directory)

	a.reconcile = reconcile.NewService(a.store, a.client, database.NewSnapshots(db), a.directory, reconcile.Config{
		UserID:           userID,
		SnapshotFallback: a.cfg.SnapshotFallback,
		SnapshotDebounce: a.cfg.SnapshotDebounce,
		SyncCron:         a.cfg.SyncCron,
	})

	a.reconcile.RestoreSession()
	if err := a.reconcile.Start(); err != nil {
		return err
	}
	a.reconcile.Load(ctx, userID)

	logrus.Info("startup complete")
	return nil
}

// Shutdown flushes one final snapshot save and releases resources
func (a *App) Shutdown() {
	logrus.Info("application shutting down")

	if a.reconcile != nil {
		a.reconcile.Flush(a.ctx)
		a.reconcile.Stop()
	}

	if err := database.Close(a.db); err != nil {
		logrus.WithError(err).Error("error closing database")
	}

	logrus.Info("shutdown complete")
}

// Store exposes the aggregate store to view components
func (a *App) Store() *store.Store {
	return a.store
}

// ====================================================================================
// BOUND METHODS - Exposed to view components
// ====================================================================================

// CreateProject sends the draft to the backend and prepends the confirmed
// record locally. The manager defaults to the session actor when the draft
// leaves it empty.
func (a *App) CreateProject(draft store.ProjectDraft) (*models.Project, error) {
	if draft.ManagerUserID == "" {
		draft.ManagerUserID = a.userID
	}
	return a.store.CreateProject(a.ctx, draft, a.userID)
}

// UpdateProject applies a partial update to a project
func (a *App) UpdateProject(id string, patch store.ProjectPatch) {
	a.store.UpdateProject(id, patch, a.userID)
}

// UpdateProjectTasks replaces a project's task list
func (a *App) UpdateProjectTasks(id string, tasks []models.Task) {
	a.store.UpdateProjectTasks(id, tasks, a.userID)
}

// TransitionStatus changes a project's status through the workflow table
func (a *App) TransitionStatus(id string, to models.ProjectStatus, reason string) error {
	return a.store.TransitionStatus(id, to, store.TransitionRequest{
		Reason:  reason,
		ActorID: a.userID,
	})
}

// ReopenProject moves a completed project back to active
func (a *App) ReopenProject(id string) error {
	return a.store.ReopenProject(id, a.userID)
}

// SoftDeleteProject hides a project from the default views, reversibly
func (a *App) SoftDeleteProject(id string) {
	a.store.SoftDeleteProject(id, a.userID)
}

// RestoreProject reverses a soft delete
func (a *App) RestoreProject(id string) {
	a.store.RestoreProject(id, a.userID)
}

// DeleteProject removes a project permanently
func (a *App) DeleteProject(id string) {
	a.store.DeleteProject(id)
}

// ReorderProjects moves one project to another's position
func (a *App) ReorderProjects(draggedID, targetID string) {
	a.store.ReorderProjects(draggedID, targetID)
}

// ActiveProjects returns the non-completed, non-deleted projects
func (a *App) ActiveProjects() []*models.Project {
	return a.store.ActiveProjects()
}

// CompletedProjects returns completed, non-deleted projects
func (a *App) CompletedProjects() []*models.Project {
	return a.store.CompletedProjects()
}

// DeletedProjects returns soft-deleted projects
func (a *App) DeletedProjects() []*models.Project {
	return a.store.DeletedProjects()
}

// ProjectAuditLogs returns a project's change history, newest-first
func (a *App) ProjectAuditLogs(projectID string) []models.AuditLogEntry {
	return a.store.ProjectAuditLogs(projectID)
}

// MilestoneBoard returns the recent/upcoming milestone lists
func (a *App) MilestoneBoard() models.MilestoneBoard {
	return a.store.MilestoneBoard()
}

// Statistics returns the derived portfolio summary
func (a *App) Statistics() models.ProjectStatistics {
	return a.store.Statistics()
}
