package models

import "time"

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "planning"
	StatusActive    ProjectStatus = "active"
	StatusOnHold    ProjectStatus = "on_hold"
	StatusCompleted ProjectStatus = "completed"
	StatusCancelled ProjectStatus = "cancelled"
)

// Priority level of a project
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// RiskLevel for the executive dashboard views
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Project is the aggregate root: a project together with its owned tasks.
// CompletionPercentage is derived from the task list and must only be
// recomputed through the store, never set directly (except for the
// zero-task override path).
type Project struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Status               ProjectStatus   `json:"status"`
	RiskLevel            RiskLevel       `json:"risk_level"`
	Priority             Priority        `json:"priority"`
	CompletionPercentage int             `json:"completion_percentage"`
	DaysUntilDeadline    int             `json:"days_until_deadline"`
	TargetStartDate      *time.Time      `json:"target_start_date,omitempty"`
	TargetEndDate        *time.Time      `json:"target_end_date,omitempty"`
	Manager              string          `json:"manager"`
	ManagerUserID        string          `json:"manager_user_id"`
	Team                 string          `json:"team"`
	OwnerTeamID          string          `json:"owner_team_id"`
	Tasks                []Task          `json:"tasks"`
	AuditLogs            []AuditLogEntry `json:"audit_logs,omitempty"`
	IsDeleted            bool            `json:"is_deleted"`
	DeletedAt            *time.Time      `json:"deleted_at,omitempty"`
	CompletedAt          *time.Time      `json:"completed_at,omitempty"`
	StatusChangeReason   string          `json:"status_change_reason,omitempty"`
	StatusChangedBy      string          `json:"status_changed_by,omitempty"`
	StatusChangedByID    string          `json:"status_changed_by_id,omitempty"`
	StatusChangedAt      *time.Time      `json:"status_changed_at,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Clone returns a deep copy of the project so callers can never mutate
// store-owned state through a returned pointer.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.TargetStartDate = cloneTime(p.TargetStartDate)
	cp.TargetEndDate = cloneTime(p.TargetEndDate)
	cp.DeletedAt = cloneTime(p.DeletedAt)
	cp.CompletedAt = cloneTime(p.CompletedAt)
	cp.StatusChangedAt = cloneTime(p.StatusChangedAt)

	if p.Tasks != nil {
		cp.Tasks = make([]Task, len(p.Tasks))
		for i := range p.Tasks {
			cp.Tasks[i] = p.Tasks[i].Clone()
		}
	}
	if p.AuditLogs != nil {
		cp.AuditLogs = make([]AuditLogEntry, len(p.AuditLogs))
		for i := range p.AuditLogs {
			cp.AuditLogs[i] = p.AuditLogs[i].Clone()
		}
	}
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
