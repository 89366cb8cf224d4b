// Package audit builds the immutable entries of a project's change history.
// Appending and reading back happens on the store; entries themselves never
// change once constructed.
package audit

import (
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	"portfoliodesk/internal/models"
)

// TableProjects is the target table name recorded on project-level entries
const TableProjects = "projects"

// NewEntry constructs an audit entry with a fresh id and timestamp.
// OldValues/NewValues are partial field maps covering only what changed.
func NewEntry(actorID, actorName, table, recordID, recordName string, action models.AuditAction, oldValues, newValues map[string]any, changed []string) models.AuditLogEntry {
	return models.AuditLogEntry{
		ID:            uuid.New().String(),
		ActorID:       actorID,
		ActorName:     actorName,
		TableName:     table,
		RecordID:      recordID,
		RecordName:    recordName,
		Action:        action,
		OldValues:     oldValues,
		NewValues:     newValues,
		ChangedFields: changed,
		Timestamp:     time.Now().UTC(),
	}
}

// Diff compares two partial field maps and returns the old/new values for
// keys whose values differ, plus the sorted list of changed field names.
// Keys present only in after count as changes; keys present only in before
// are ignored (patches are additive).
func Diff(before, after map[string]any) (oldValues, newValues map[string]any, changed []string) {
	oldValues = make(map[string]any)
	newValues = make(map[string]any)

	for k, v := range after {
		prev, ok := before[k]
		if ok && reflect.DeepEqual(prev, v) {
			continue
		}
		if ok {
			oldValues[k] = prev
		}
		newValues[k] = v
		changed = append(changed, k)
	}

	sort.Strings(changed)
	return oldValues, newValues, changed
}
