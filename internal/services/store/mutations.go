package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"portfoliodesk/internal/api"
	"portfoliodesk/internal/directory"
	"portfoliodesk/internal/models"
	"portfoliodesk/internal/services/audit"
	"portfoliodesk/internal/services/progress"
	"portfoliodesk/internal/services/workflow"
)

// ErrRemoteCreate is returned when the backend rejects a project creation.
// No local mutation happens in that case.
var ErrRemoteCreate = errors.New("remote project create failed")

// ProjectDraft is the caller-supplied input for project creation. Manager
// and team default from the caller's session context at the call site.
type ProjectDraft struct {
	Name              string
	Description       string
	Priority          models.Priority
	RiskLevel         models.RiskLevel
	DaysUntilDeadline int
	ManagerUserID     string
	OwnerTeamID       string
}

// ProjectPatch carries a partial update; nil fields are left untouched.
// CompletionPercentage is honored only while the project has no tasks
// (the explicit override path); once tasks exist the field is derived.
type ProjectPatch struct {
	Name                 *string
	Description          *string
	Priority             *models.Priority
	RiskLevel            *models.RiskLevel
	DaysUntilDeadline    *int
	ManagerUserID        *string
	OwnerTeamID          *string
	CompletionPercentage *int
}

// TransitionRequest carries the justification and actor for a manual
// status change
type TransitionRequest struct {
	Reason  string
	ActorID string
}

// CreateProject sends the draft to the backend first and only prepends the
// confirmed record to local state on success. There is no optimistic insert:
// a failed create leaves local state untouched.
func (s *Store) CreateProject(ctx context.Context, draft ProjectDraft, actorID string) (*models.Project, error) {
	now := time.Now().UTC()

	payload := api.ProjectCreatePayload{
		Name:                 draft.Name,
		Description:          draft.Description,
		Status:               string(models.StatusPlanning),
		Priority:             string(defaultPriority(draft.Priority)),
		RiskLevel:            string(defaultRisk(draft.RiskLevel)),
		CompletionPercentage: 0,
		ManagerUserID:        draft.ManagerUserID,
		OwnerTeamID:          draft.OwnerTeamID,
	}
	if draft.DaysUntilDeadline > 0 {
		payload.TargetEndDate = now.AddDate(0, 0, draft.DaysUntilDeadline).Format(dateLayout)
	}

	rec, err := s.transport.CreateProject(ctx, payload)
	if err != nil {
		s.log.WithError(err).Warn("project create rejected by backend")
		return nil, fmt.Errorf("%w: %v", ErrRemoteCreate, err)
	}

	p := ProjectFromRecord(rec, s.directory, now)
	entry := audit.NewEntry(actorID, s.userName(actorID), audit.TableProjects, p.ID, p.Name,
		models.AuditActionCreate,
		nil,
		map[string]any{"name": p.Name, "status": string(p.Status)},
		[]string{"name", "status"})
	p.AuditLogs = append([]models.AuditLogEntry{entry}, p.AuditLogs...)

	s.mu.Lock()
	s.projects = append([]*models.Project{p}, s.projects...)
	s.mu.Unlock()
	s.notify()

	return p.Clone(), nil
}

// UpdateProject shallow-merges the patch into the matching project. A
// missing id or an empty patch is a no-op; an effective change appends an
// UPDATE audit entry listing exactly the fields that changed.
func (s *Store) UpdateProject(id string, patch ProjectPatch, actorID string) {
	actorName := s.userName(actorID)
	now := time.Now().UTC()

	s.mu.Lock()
	p := s.find(id)
	if p == nil {
		s.mu.Unlock()
		return
	}

	before := make(map[string]any)
	after := make(map[string]any)

	if patch.Name != nil {
		before["name"], after["name"] = p.Name, *patch.Name
	}
	if patch.Description != nil {
		before["description"], after["description"] = p.Description, *patch.Description
	}
	if patch.Priority != nil {
		before["priority"], after["priority"] = string(p.Priority), string(*patch.Priority)
	}
	if patch.RiskLevel != nil {
		before["risk_level"], after["risk_level"] = string(p.RiskLevel), string(*patch.RiskLevel)
	}
	if patch.DaysUntilDeadline != nil {
		before["days_until_deadline"], after["days_until_deadline"] = p.DaysUntilDeadline, *patch.DaysUntilDeadline
	}
	if patch.ManagerUserID != nil {
		before["manager_user_id"], after["manager_user_id"] = p.ManagerUserID, *patch.ManagerUserID
	}
	if patch.OwnerTeamID != nil {
		before["owner_team_id"], after["owner_team_id"] = p.OwnerTeamID, *patch.OwnerTeamID
	}
	if patch.CompletionPercentage != nil && len(p.Tasks) == 0 {
		before["completion_percentage"], after["completion_percentage"] = p.CompletionPercentage, clampPercent(*patch.CompletionPercentage)
	}

	oldValues, newValues, changed := audit.Diff(before, after)
	if len(changed) == 0 {
		s.mu.Unlock()
		return
	}

	applyPatch(p, patch, s.directory)

	entry := audit.NewEntry(actorID, actorName, audit.TableProjects, p.ID, p.Name,
		models.AuditActionUpdate, oldValues, newValues, changed)
	p.AuditLogs = append([]models.AuditLogEntry{entry}, p.AuditLogs...)
	p.UpdatedAt = now
	s.mu.Unlock()
	s.notify()
}

// UpdateProjectTasks replaces a project's task list wholesale, recomputes
// the derived completion percentage through the single chokepoint, and
// fires the auto-completion side effect when the new percentage hits 100.
func (s *Store) UpdateProjectTasks(id string, tasks []models.Task, actorID string) {
	actorName := s.userName(actorID)
	now := time.Now().UTC()

	s.mu.Lock()
	p := s.find(id)
	if p == nil {
		s.mu.Unlock()
		return
	}

	before := map[string]any{
		"completion_percentage": p.CompletionPercentage,
		"task_count":            len(p.Tasks),
		"status":                string(p.Status),
	}

	cloned := make([]models.Task, len(tasks))
	for i, t := range tasks {
		c := t.Clone()
		c.Position = i
		cloned[i] = c
	}
	p.Tasks = cloned
	p.CompletionPercentage = progress.Completion(p.Tasks)

	if m := workflow.AutoComplete(p, now); m != nil {
		s.milestones.AddRecent(*m)
	}

	after := map[string]any{
		"completion_percentage": p.CompletionPercentage,
		"task_count":            len(p.Tasks),
		"status":                string(p.Status),
	}

	oldValues, newValues, changed := audit.Diff(before, after)
	changed = append(changed, "tasks")
	sort.Strings(changed)

	entry := audit.NewEntry(actorID, actorName, audit.TableProjects, p.ID, p.Name,
		models.AuditActionUpdate, oldValues, newValues, changed)
	p.AuditLogs = append([]models.AuditLogEntry{entry}, p.AuditLogs...)
	p.UpdatedAt = now
	s.mu.Unlock()
	s.notify()
}

// TransitionStatus is the only sanctioned way to change a project's status.
// It validates against the workflow table and appends a STATUS_CHANGE audit
// entry on success. An unknown id is a no-op.
func (s *Store) TransitionStatus(id string, to models.ProjectStatus, req TransitionRequest) error {
	actorName := s.userName(req.ActorID)
	now := time.Now().UTC()

	s.mu.Lock()
	p := s.find(id)
	if p == nil {
		s.mu.Unlock()
		return nil
	}

	from := p.Status
	actor := workflow.Actor{ID: req.ActorID, Name: actorName}
	if err := workflow.Apply(p, to, req.Reason, actor, now); err != nil {
		s.mu.Unlock()
		return err
	}

	oldValues := map[string]any{"status": string(from)}
	newValues := map[string]any{"status": string(to)}
	if p.StatusChangeReason != "" && workflow.RequiresReason(from, to) {
		newValues["status_change_reason"] = p.StatusChangeReason
	}

	entry := audit.NewEntry(req.ActorID, actorName, audit.TableProjects, p.ID, p.Name,
		models.AuditActionStatusChange, oldValues, newValues, []string{"status"})
	p.AuditLogs = append([]models.AuditLogEntry{entry}, p.AuditLogs...)
	s.mu.Unlock()
	s.notify()
	return nil
}

// ReopenProject moves a completed project back to active. CompletedAt is
// cleared by the workflow; the milestone recorded for its completion stays.
func (s *Store) ReopenProject(id, actorID string) error {
	return s.TransitionStatus(id, models.StatusActive, TransitionRequest{ActorID: actorID})
}

// SoftDeleteProject marks the project invisible to default views but keeps
// it for restoration. Already-deleted or unknown ids are no-ops.
func (s *Store) SoftDeleteProject(id, actorID string) {
	actorName := s.userName(actorID)
	now := time.Now().UTC()

	s.mu.Lock()
	p := s.find(id)
	if p == nil || p.IsDeleted {
		s.mu.Unlock()
		return
	}

	p.IsDeleted = true
	p.DeletedAt = &now

	entry := audit.NewEntry(actorID, actorName, audit.TableProjects, p.ID, p.Name,
		models.AuditActionDelete,
		map[string]any{"is_deleted": false},
		map[string]any{"is_deleted": true},
		[]string{"is_deleted"})
	p.AuditLogs = append([]models.AuditLogEntry{entry}, p.AuditLogs...)
	p.UpdatedAt = now
	s.mu.Unlock()
	s.notify()
}

// RestoreProject reverses a soft delete, clearing both the flag and the
// deletion timestamp
func (s *Store) RestoreProject(id, actorID string) {
	actorName := s.userName(actorID)
	now := time.Now().UTC()

	s.mu.Lock()
	p := s.find(id)
	if p == nil || !p.IsDeleted {
		s.mu.Unlock()
		return
	}

	p.IsDeleted = false
	p.DeletedAt = nil

	entry := audit.NewEntry(actorID, actorName, audit.TableProjects, p.ID, p.Name,
		models.AuditActionUpdate,
		map[string]any{"is_deleted": true},
		map[string]any{"is_deleted": false},
		[]string{"is_deleted"})
	p.AuditLogs = append([]models.AuditLogEntry{entry}, p.AuditLogs...)
	p.UpdatedAt = now
	s.mu.Unlock()
	s.notify()
}

// DeleteProject removes the project from the collection for good. The
// project's audit trail goes with it; there is nothing left to attach an
// entry to.
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	idx := -1
	for i, p := range s.projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	s.mu.Unlock()
	s.notify()
}

// ReorderProjects moves the dragged project to the position the target
// currently occupies. Pure presentation ordering; deliberately not audited.
// A missing id on either side is a no-op.
func (s *Store) ReorderProjects(draggedID, targetID string) {
	if draggedID == targetID {
		return
	}

	s.mu.Lock()
	di, ti := -1, -1
	for i, p := range s.projects {
		switch p.ID {
		case draggedID:
			di = i
		case targetID:
			ti = i
		}
	}
	if di < 0 || ti < 0 {
		s.mu.Unlock()
		return
	}

	dragged := s.projects[di]
	rest := append(s.projects[:di:di], s.projects[di+1:]...)
	if ti > len(rest) {
		ti = len(rest)
	}
	s.projects = append(rest[:ti:ti], append([]*models.Project{dragged}, rest[ti:]...)...)
	s.mu.Unlock()
	s.notify()
}

// AddAuditLog prepends a caller-built entry to the project's history
// (newest-first). Unknown project ids are silently ignored.
func (s *Store) AddAuditLog(projectID string, entry models.AuditLogEntry) {
	s.mu.Lock()
	p := s.find(projectID)
	if p == nil {
		s.mu.Unlock()
		return
	}
	p.AuditLogs = append([]models.AuditLogEntry{entry.Clone()}, p.AuditLogs...)
	s.mu.Unlock()
	s.notify()
}

// ProjectAuditLogs returns the project's history newest-first, or an empty
// list for unknown projects. Never an error.
func (s *Store) ProjectAuditLogs(projectID string) []models.AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.find(projectID)
	if p == nil {
		return []models.AuditLogEntry{}
	}
	out := make([]models.AuditLogEntry, len(p.AuditLogs))
	for i := range p.AuditLogs {
		out[i] = p.AuditLogs[i].Clone()
	}
	return out
}

// applyPatch writes the patch onto the live project. Caller holds the lock
// and has already verified at least one field changes.
func applyPatch(p *models.Project, patch ProjectPatch, dir directory.Resolver) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Priority != nil {
		p.Priority = *patch.Priority
	}
	if patch.RiskLevel != nil {
		p.RiskLevel = *patch.RiskLevel
	}
	if patch.DaysUntilDeadline != nil {
		p.DaysUntilDeadline = *patch.DaysUntilDeadline
	}
	if patch.ManagerUserID != nil {
		p.ManagerUserID = *patch.ManagerUserID
		if dir != nil {
			p.Manager = dir.UserName(*patch.ManagerUserID)
		}
	}
	if patch.OwnerTeamID != nil {
		p.OwnerTeamID = *patch.OwnerTeamID
		if dir != nil {
			p.Team = dir.TeamName(*patch.OwnerTeamID)
		}
	}
	if patch.CompletionPercentage != nil && len(p.Tasks) == 0 {
		p.CompletionPercentage = clampPercent(*patch.CompletionPercentage)
	}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func defaultPriority(p models.Priority) models.Priority {
	if p == "" {
		return models.PriorityMedium
	}
	return p
}

func defaultRisk(r models.RiskLevel) models.RiskLevel {
	if r == "" {
		return models.RiskLow
	}
	return r
}
