package api

// ProjectCreatePayload is the request body for creating a project on the
// backend. CompletionPercentage is always 0 at creation; TargetEndDate is
// derived from the caller's days-until-deadline.
type ProjectCreatePayload struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Status               string `json:"status"`
	Priority             string `json:"priority"`
	RiskLevel            string `json:"risk_level"`
	CompletionPercentage int    `json:"completion_percentage"`
	ManagerUserID        string `json:"manager_user_id"`
	OwnerTeamID          string `json:"owner_team_id"`
	TargetEndDate        string `json:"target_end_date,omitempty"` // YYYY-MM-DD
}

// TaskRecord is a backend task row optionally embedded in a project record
type TaskRecord struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Status               string   `json:"status"`
	Assignees            []string `json:"assignees,omitempty"`
	StartDate            string   `json:"start_date,omitempty"`
	DueDate              string   `json:"due_date,omitempty"`
	CompletionPercentage int      `json:"completion_percentage"`
	Position             int      `json:"position"`
}

// ProjectRecord is a backend project row as returned by the project service
type ProjectRecord struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Description          string       `json:"description,omitempty"`
	Status               string       `json:"status"`
	Priority             string       `json:"priority"`
	RiskLevel            string       `json:"risk_level"`
	CompletionPercentage int          `json:"completion_percentage"`
	ManagerUserID        string       `json:"manager_user_id,omitempty"`
	OwnerTeamID          string       `json:"owner_team_id,omitempty"`
	TargetStartDate      string       `json:"target_start_date,omitempty"`
	TargetEndDate        string       `json:"target_end_date,omitempty"`
	Tasks                []TaskRecord `json:"tasks,omitempty"`
	CreatedAt            string       `json:"created_at,omitempty"`
	UpdatedAt            string       `json:"updated_at,omitempty"`
}

// ProjectListResponse wraps the backend project list
type ProjectListResponse struct {
	Projects []ProjectRecord `json:"projects"`
	Total    int             `json:"total"`
}

// SnapshotPayload is the full-snapshot save body (legacy fallback sync path)
type SnapshotPayload struct {
	UserID   string          `json:"user_id"`
	Projects []ProjectRecord `json:"projects"`
	SavedAt  string          `json:"saved_at"`
}

// UserRecord is a minimal user row from the user/team directory
type UserRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TeamRecord is a minimal team row from the user/team directory
type TeamRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
