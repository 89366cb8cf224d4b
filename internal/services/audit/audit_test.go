package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliodesk/internal/models"
)

func TestNewEntry(t *testing.T) {
	t.Run("Should stamp id and timestamp", func(t *testing.T) {
		entry := NewEntry("u1", "Dana Roy", TableProjects, "p1", "Cloud Migration",
			models.AuditActionUpdate,
			map[string]any{"name": "old"},
			map[string]any{"name": "new"},
			[]string{"name"})

		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.Timestamp.IsZero())
		assert.Equal(t, "u1", entry.ActorID)
		assert.Equal(t, "Dana Roy", entry.ActorName)
		assert.Equal(t, TableProjects, entry.TableName)
		assert.Equal(t, "p1", entry.RecordID)
		assert.Equal(t, models.AuditActionUpdate, entry.Action)
	})

	t.Run("Should generate unique ids", func(t *testing.T) {
		a := NewEntry("u1", "", TableProjects, "p1", "", models.AuditActionCreate, nil, nil, nil)
		b := NewEntry("u1", "", TableProjects, "p1", "", models.AuditActionCreate, nil, nil, nil)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestDiff(t *testing.T) {
	t.Run("Should report only keys whose values differ", func(t *testing.T) {
		before := map[string]any{"name": "A", "priority": "high", "description": "same"}
		after := map[string]any{"name": "B", "priority": "high", "description": "same"}

		oldValues, newValues, changed := Diff(before, after)
		assert.Equal(t, []string{"name"}, changed)
		assert.Equal(t, map[string]any{"name": "A"}, oldValues)
		assert.Equal(t, map[string]any{"name": "B"}, newValues)
	})

	t.Run("Should count keys only present in after", func(t *testing.T) {
		oldValues, newValues, changed := Diff(map[string]any{}, map[string]any{"status": "active"})
		assert.Equal(t, []string{"status"}, changed)
		assert.Empty(t, oldValues)
		assert.Equal(t, map[string]any{"status": "active"}, newValues)
	})

	t.Run("Should return empty change list for identical maps", func(t *testing.T) {
		m := map[string]any{"a": 1, "b": "x"}
		_, _, changed := Diff(m, m)
		assert.Empty(t, changed)
	})

	t.Run("Should sort changed field names", func(t *testing.T) {
		before := map[string]any{"z": 1, "a": 1, "m": 1}
		after := map[string]any{"z": 2, "a": 2, "m": 2}
		_, _, changed := Diff(before, after)
		require.Equal(t, []string{"a", "m", "z"}, changed)
	})
}
