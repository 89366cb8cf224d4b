package models

import "time"

// AuditAction describes what kind of mutation an audit entry documents
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
)

// AuditLogEntry is one immutable record in a project's change history.
// Entries are append-only and stored newest-first on the owning project.
// OldValues/NewValues are partial field maps, not full record snapshots.
type AuditLogEntry struct {
	ID            string         `json:"id"`
	ActorID       string         `json:"actor_id"`
	ActorName     string         `json:"actor_name"`
	TableName     string         `json:"table_name"`
	RecordID      string         `json:"record_id"`
	RecordName    string         `json:"record_name"`
	Action        AuditAction    `json:"action"`
	OldValues     map[string]any `json:"old_values,omitempty"`
	NewValues     map[string]any `json:"new_values,omitempty"`
	ChangedFields []string       `json:"changed_fields"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Clone returns a deep copy of the entry
func (e AuditLogEntry) Clone() AuditLogEntry {
	cp := e
	if e.OldValues != nil {
		cp.OldValues = make(map[string]any, len(e.OldValues))
		for k, v := range e.OldValues {
			cp.OldValues[k] = v
		}
	}
	if e.NewValues != nil {
		cp.NewValues = make(map[string]any, len(e.NewValues))
		for k, v := range e.NewValues {
			cp.NewValues[k] = v
		}
	}
	if e.ChangedFields != nil {
		cp.ChangedFields = append([]string(nil), e.ChangedFields...)
	}
	return cp
}
