package models

import "time"

// MilestoneStatus of a milestone entry
type MilestoneStatus string

const (
	MilestoneAchieved MilestoneStatus = "achieved"
	MilestoneMissed   MilestoneStatus = "missed"
	MilestoneUpcoming MilestoneStatus = "upcoming"
)

// RecentMilestoneCap limits the recent list to the 5 most recent entries.
// The audit log is deliberately NOT capped the same way.
const RecentMilestoneCap = 5

// Milestone marks a notable date on a project's timeline
type Milestone struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ProjectID     string          `json:"project_id"`
	ProjectName   string          `json:"project_name"`
	Status        MilestoneStatus `json:"status"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	CompletedDate *time.Time      `json:"completed_date,omitempty"`
}

// MilestoneBoard holds the two disjoint portfolio milestone lists:
// "recent" (completed, capped) and "upcoming".
type MilestoneBoard struct {
	Recent   []Milestone `json:"recent"`
	Upcoming []Milestone `json:"upcoming"`
}

// AddRecent prepends a milestone to the recent list, dropping the oldest
// entry once the cap is reached.
func (b *MilestoneBoard) AddRecent(m Milestone) {
	b.Recent = append([]Milestone{m}, b.Recent...)
	if len(b.Recent) > RecentMilestoneCap {
		b.Recent = b.Recent[:RecentMilestoneCap]
	}
}

// Clone returns a deep copy of the board
func (b MilestoneBoard) Clone() MilestoneBoard {
	cp := MilestoneBoard{}
	if b.Recent != nil {
		cp.Recent = make([]Milestone, len(b.Recent))
		for i := range b.Recent {
			cp.Recent[i] = b.Recent[i].Clone()
		}
	}
	if b.Upcoming != nil {
		cp.Upcoming = make([]Milestone, len(b.Upcoming))
		for i := range b.Upcoming {
			cp.Upcoming[i] = b.Upcoming[i].Clone()
		}
	}
	return cp
}

// Clone returns a copy of the milestone
func (m Milestone) Clone() Milestone {
	cp := m
	cp.TargetDate = cloneTime(m.TargetDate)
	cp.CompletedDate = cloneTime(m.CompletedDate)
	return cp
}
