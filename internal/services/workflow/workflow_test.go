package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliodesk/internal/models"
)

func TestValidate(t *testing.T) {
	t.Run("Should allow transitions in the table", func(t *testing.T) {
		tests := []struct {
			from, to models.ProjectStatus
			reason   string
		}{
			{models.StatusPlanning, models.StatusActive, ""},
			{models.StatusPlanning, models.StatusCancelled, ""},
			{models.StatusActive, models.StatusCompleted, ""},
			{models.StatusActive, models.StatusOnHold, "budget freeze"},
			{models.StatusActive, models.StatusCancelled, "descoped"},
			{models.StatusOnHold, models.StatusActive, ""},
			{models.StatusCompleted, models.StatusActive, ""},
		}
		for _, tt := range tests {
			assert.NoError(t, Validate(tt.from, tt.to, tt.reason), "%s -> %s", tt.from, tt.to)
		}
	})

	t.Run("Should reject transitions not in the table", func(t *testing.T) {
		tests := []struct {
			from, to models.ProjectStatus
		}{
			{models.StatusPlanning, models.StatusCompleted},
			{models.StatusCancelled, models.StatusActive},
			{models.StatusCancelled, models.StatusCompleted},
			{models.StatusCompleted, models.StatusOnHold},
			{models.StatusOnHold, models.StatusCompleted},
		}
		for _, tt := range tests {
			err := Validate(tt.from, tt.to, "whatever")
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
		}
	})

	t.Run("Should reject a self transition", func(t *testing.T) {
		assert.ErrorIs(t, Validate(models.StatusActive, models.StatusActive, ""), ErrInvalidTransition)
	})

	t.Run("Should require a reason only from active to on_hold or cancelled", func(t *testing.T) {
		assert.ErrorIs(t, Validate(models.StatusActive, models.StatusOnHold, ""), ErrReasonRequired)
		assert.ErrorIs(t, Validate(models.StatusActive, models.StatusCancelled, "   "), ErrReasonRequired)

		// Same destinations from other sources need no reason
		assert.NoError(t, Validate(models.StatusPlanning, models.StatusOnHold, ""))
		assert.NoError(t, Validate(models.StatusOnHold, models.StatusCancelled, ""))
	})
}

func TestApply(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	actor := Actor{ID: "u1", Name: "Dana Roy"}

	t.Run("Should record reason metadata on active to on_hold", func(t *testing.T) {
		p := &models.Project{ID: "p1", Status: models.StatusActive}

		err := Apply(p, models.StatusOnHold, "waiting on vendor", actor, now)
		require.NoError(t, err)

		assert.Equal(t, models.StatusOnHold, p.Status)
		assert.Equal(t, "waiting on vendor", p.StatusChangeReason)
		assert.Equal(t, "Dana Roy", p.StatusChangedBy)
		assert.Equal(t, "u1", p.StatusChangedByID)
		require.NotNil(t, p.StatusChangedAt)
		assert.Equal(t, now, *p.StatusChangedAt)
	})

	t.Run("Should not record reason metadata on other transitions", func(t *testing.T) {
		p := &models.Project{ID: "p1", Status: models.StatusPlanning}

		require.NoError(t, Apply(p, models.StatusActive, "", actor, now))
		assert.Empty(t, p.StatusChangeReason)
		assert.Nil(t, p.StatusChangedAt)
	})

	t.Run("Should stamp CompletedAt when moving to completed", func(t *testing.T) {
		p := &models.Project{ID: "p1", Status: models.StatusActive}

		require.NoError(t, Apply(p, models.StatusCompleted, "", actor, now))
		require.NotNil(t, p.CompletedAt)
		assert.Equal(t, now, *p.CompletedAt)
	})

	t.Run("Should clear CompletedAt on reopen", func(t *testing.T) {
		completedAt := now.Add(-24 * time.Hour)
		p := &models.Project{ID: "p1", Status: models.StatusCompleted, CompletedAt: &completedAt}

		require.NoError(t, Apply(p, models.StatusActive, "", actor, now))
		assert.Equal(t, models.StatusActive, p.Status)
		assert.Nil(t, p.CompletedAt)
	})

	t.Run("Should leave the project untouched on rejection", func(t *testing.T) {
		p := &models.Project{ID: "p1", Status: models.StatusActive}

		err := Apply(p, models.StatusOnHold, "", actor, now)
		assert.ErrorIs(t, err, ErrReasonRequired)
		assert.Equal(t, models.StatusActive, p.Status)
		assert.Nil(t, p.StatusChangedAt)
	})
}

func TestAutoComplete(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("Should complete a project at exactly 100 percent", func(t *testing.T) {
		p := &models.Project{ID: "p1", Name: "Cloud Migration", Status: models.StatusActive, CompletionPercentage: 100}

		m := AutoComplete(p, now)
		require.NotNil(t, m)
		assert.Equal(t, models.StatusCompleted, p.Status)
		require.NotNil(t, p.CompletedAt)
		assert.Equal(t, now, *p.CompletedAt)

		assert.Equal(t, "Cloud Migration completed", m.Name)
		assert.Equal(t, "p1", m.ProjectID)
		assert.Equal(t, models.MilestoneAchieved, m.Status)
		assert.NotEmpty(t, m.ID)
	})

	t.Run("Should do nothing below 100 percent", func(t *testing.T) {
		p := &models.Project{ID: "p1", Status: models.StatusActive, CompletionPercentage: 99}
		assert.Nil(t, AutoComplete(p, now))
		assert.Equal(t, models.StatusActive, p.Status)
	})

	t.Run("Should do nothing when already completed", func(t *testing.T) {
		p := &models.Project{ID: "p1", Status: models.StatusCompleted, CompletionPercentage: 100}
		assert.Nil(t, AutoComplete(p, now))
	})
}
