package store

import (
	"time"

	"portfoliodesk/internal/api"
	"portfoliodesk/internal/directory"
	"portfoliodesk/internal/models"
	"portfoliodesk/internal/services/progress"
)

const dateLayout = "2006-01-02"

// ProjectFromRecord transforms a backend project record into the local
// aggregate shape: snake_case wire fields become the local model, manager
// and team ids are resolved to display names, and days-until-deadline is
// derived from the target end date. When tasks are embedded the completion
// percentage is recomputed from them rather than trusted from the wire.
func ProjectFromRecord(rec *api.ProjectRecord, dir directory.Resolver, now time.Time) *models.Project {
	p := &models.Project{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Description:          rec.Description,
		Status:               models.ProjectStatus(rec.Status),
		Priority:             models.Priority(rec.Priority),
		RiskLevel:            models.RiskLevel(rec.RiskLevel),
		CompletionPercentage: clampPercent(rec.CompletionPercentage),
		ManagerUserID:        rec.ManagerUserID,
		OwnerTeamID:          rec.OwnerTeamID,
		TargetStartDate:      parseDate(rec.TargetStartDate),
		TargetEndDate:        parseDate(rec.TargetEndDate),
		Tasks:                []models.Task{},
		CreatedAt:            parseTimestamp(rec.CreatedAt, now),
		UpdatedAt:            parseTimestamp(rec.UpdatedAt, now),
	}

	if p.Status == "" {
		p.Status = models.StatusPlanning
	}
	p.Priority = defaultPriority(p.Priority)
	p.RiskLevel = defaultRisk(p.RiskLevel)

	if dir != nil {
		p.Manager = dir.UserName(rec.ManagerUserID)
		p.Team = dir.TeamName(rec.OwnerTeamID)
	}

	if p.TargetEndDate != nil {
		p.DaysUntilDeadline = int(p.TargetEndDate.Sub(now).Hours() / 24)
	}

	for i, tr := range rec.Tasks {
		p.Tasks = append(p.Tasks, taskFromRecord(tr, i))
	}
	if len(p.Tasks) > 0 {
		p.CompletionPercentage = progress.Completion(p.Tasks)
	}

	return p
}

func taskFromRecord(rec api.TaskRecord, position int) models.Task {
	t := models.Task{
		ID:        rec.ID,
		Title:     rec.Title,
		Status:    models.TaskStatus(rec.Status),
		Assignees: append([]string(nil), rec.Assignees...),
		StartDate: parseDate(rec.StartDate),
		EndDate:   parseDate(rec.DueDate),
		Progress:  clampPercent(rec.CompletionPercentage),
		Position:  position,
	}
	if rec.Position > 0 {
		t.Position = rec.Position
	}
	if t.Status == "" {
		t.Status = progress.StatusFor(t.Progress)
	}
	return t
}

// RecordFromProject is the inverse mapping, used by the full-snapshot save
// path. Display names stay local; only ids travel back.
func RecordFromProject(p *models.Project) api.ProjectRecord {
	rec := api.ProjectRecord{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Status:               string(p.Status),
		Priority:             string(p.Priority),
		RiskLevel:            string(p.RiskLevel),
		CompletionPercentage: p.CompletionPercentage,
		ManagerUserID:        p.ManagerUserID,
		OwnerTeamID:          p.OwnerTeamID,
		TargetStartDate:      formatDate(p.TargetStartDate),
		TargetEndDate:        formatDate(p.TargetEndDate),
	}
	for _, t := range p.Tasks {
		rec.Tasks = append(rec.Tasks, api.TaskRecord{
			ID:                   t.ID,
			Title:                t.Title,
			Status:               string(t.Status),
			Assignees:            append([]string(nil), t.Assignees...),
			StartDate:            formatDate(t.StartDate),
			DueDate:              formatDate(t.EndDate),
			CompletionPercentage: t.Progress,
			Position:             t.Position,
		})
	}
	return rec
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseTimestamp(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t
}
