package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliodesk/internal/models"
)

func testDB(t *testing.T) *Snapshots {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Init("sqlite://" + dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return NewSnapshots(db)
}

func TestSnapshots(t *testing.T) {
	t.Run("Should return empty collections when no row exists", func(t *testing.T) {
		repo := testDB(t)

		projects, board, err := repo.Load("u1")
		require.NoError(t, err)
		assert.Empty(t, projects)
		assert.Empty(t, board.Recent)
		assert.Empty(t, board.Upcoming)
	})

	t.Run("Should round-trip projects and milestones", func(t *testing.T) {
		repo := testDB(t)
		completedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

		in := []*models.Project{
			{
				ID:                   "p1",
				Name:                 "Cloud Migration",
				Status:               models.StatusCompleted,
				Priority:             models.PriorityHigh,
				RiskLevel:            models.RiskMedium,
				CompletionPercentage: 100,
				CompletedAt:          &completedAt,
				Tasks: []models.Task{
					{ID: "t1", Title: "Lift and shift", Status: models.TaskDone, Progress: 100},
				},
				AuditLogs: []models.AuditLogEntry{
					{ID: "a1", Action: models.AuditActionStatusChange, RecordID: "p1"},
				},
			},
			{ID: "p2", Name: "WAF Rollout", Status: models.StatusActive},
		}
		board := models.MilestoneBoard{}
		board.AddRecent(models.Milestone{ID: "m1", Name: "Cloud Migration completed", ProjectID: "p1", Status: models.MilestoneAchieved})

		require.NoError(t, repo.Save("u1", in, board))

		projects, loadedBoard, err := repo.Load("u1")
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "p1", projects[0].ID)
		assert.Equal(t, models.StatusCompleted, projects[0].Status)
		require.NotNil(t, projects[0].CompletedAt)
		assert.True(t, completedAt.Equal(*projects[0].CompletedAt))
		require.Len(t, projects[0].Tasks, 1)
		require.Len(t, projects[0].AuditLogs, 1)
		assert.Equal(t, models.AuditActionStatusChange, projects[0].AuditLogs[0].Action)
		require.Len(t, loadedBoard.Recent, 1)
		assert.Equal(t, "m1", loadedBoard.Recent[0].ID)
	})

	t.Run("Should upsert rather than accumulate rows", func(t *testing.T) {
		repo := testDB(t)

		require.NoError(t, repo.Save("u1", []*models.Project{{ID: "p1", Name: "First"}}, models.MilestoneBoard{}))
		require.NoError(t, repo.Save("u1", []*models.Project{{ID: "p2", Name: "Second"}}, models.MilestoneBoard{}))

		projects, _, err := repo.Load("u1")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "p2", projects[0].ID)
	})

	t.Run("Should keep snapshots per user", func(t *testing.T) {
		repo := testDB(t)

		require.NoError(t, repo.Save("u1", []*models.Project{{ID: "p1"}}, models.MilestoneBoard{}))
		require.NoError(t, repo.Save("u2", []*models.Project{{ID: "p2"}}, models.MilestoneBoard{}))

		p1, _, err := repo.Load("u1")
		require.NoError(t, err)
		p2, _, err := repo.Load("u2")
		require.NoError(t, err)
		assert.Equal(t, "p1", p1[0].ID)
		assert.Equal(t, "p2", p2[0].ID)
	})

	t.Run("Should migrate a v1 payload on load", func(t *testing.T) {
		repo := testDB(t)

		// Hand-written v1 row: projects persisted without risk_level/priority
		row := models.StateSnapshot{
			UserID:        "u1",
			SchemaVersion: 1,
			Payload:       `{"projects":[{"id":"p1","name":"Old","status":"active"}],"milestones":{}}`,
		}
		require.NoError(t, repo.db.Create(&row).Error)

		projects, _, err := repo.Load("u1")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, models.RiskLow, projects[0].RiskLevel)
		assert.Equal(t, models.PriorityMedium, projects[0].Priority)
	})
}

func TestInit(t *testing.T) {
	t.Run("Should reject unsupported URL schemes", func(t *testing.T) {
		_, err := Init("mysql://localhost/portfoliodesk")
		assert.Error(t, err)
	})
}
