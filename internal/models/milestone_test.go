package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneBoardAddRecent(t *testing.T) {
	t.Run("Should keep newest entries first", func(t *testing.T) {
		board := MilestoneBoard{}
		board.AddRecent(Milestone{ID: "m1"})
		board.AddRecent(Milestone{ID: "m2"})
		board.AddRecent(Milestone{ID: "m3"})

		require.Len(t, board.Recent, 3)
		assert.Equal(t, "m3", board.Recent[0].ID)
		assert.Equal(t, "m1", board.Recent[2].ID)
	})

	t.Run("Should drop the oldest entry past the cap", func(t *testing.T) {
		board := MilestoneBoard{}
		for i := 1; i <= RecentMilestoneCap+2; i++ {
			board.AddRecent(Milestone{ID: fmt.Sprintf("m%d", i)})
		}

		require.Len(t, board.Recent, RecentMilestoneCap)
		assert.Equal(t, "m7", board.Recent[0].ID)
		assert.Equal(t, "m3", board.Recent[RecentMilestoneCap-1].ID)
	})

	t.Run("Should not touch the upcoming list", func(t *testing.T) {
		board := MilestoneBoard{Upcoming: []Milestone{{ID: "u1"}}}
		board.AddRecent(Milestone{ID: "m1"})
		require.Len(t, board.Upcoming, 1)
	})
}

func TestProjectClone(t *testing.T) {
	t.Run("Should isolate nested slices and time pointers", func(t *testing.T) {
		p := &Project{
			ID:    "p1",
			Tasks: []Task{{ID: "t1", Progress: 10}},
			AuditLogs: []AuditLogEntry{
				{ID: "a1", NewValues: map[string]any{"name": "x"}},
			},
		}

		c := p.Clone()
		c.Tasks[0].Progress = 99
		c.AuditLogs[0].NewValues["name"] = "y"

		assert.Equal(t, 10, p.Tasks[0].Progress)
		assert.Equal(t, "x", p.AuditLogs[0].NewValues["name"])
	})

	t.Run("Should handle a nil receiver", func(t *testing.T) {
		var p *Project
		assert.Nil(t, p.Clone())
	})
}
