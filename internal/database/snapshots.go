package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"portfoliodesk/internal/models"
)

// SchemaVersion is the current persisted payload shape. Bump it whenever
// the payload gains fields that older sessions will not have, and add a
// step to migratePayload.
const SchemaVersion = 2

// snapshotPayload is the JSON shape stored in the state_snapshots table:
// the full project/milestone collections for session continuity.
type snapshotPayload struct {
	Projects   []*models.Project     `json:"projects"`
	Milestones models.MilestoneBoard `json:"milestones"`
}

// Snapshots persists and restores the local session state
type Snapshots struct {
	db *gorm.DB
}

// NewSnapshots creates the snapshot repository
func NewSnapshots(db *gorm.DB) *Snapshots {
	return &Snapshots{db: db}
}

// Save upserts the snapshot row for the user at the current schema version
func (r *Snapshots) Save(userID string, projects []*models.Project, board models.MilestoneBoard) error {
	data, err := json.Marshal(snapshotPayload{Projects: projects, Milestones: board})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var row models.StateSnapshot
	result := r.db.Where("user_id = ?", userID).First(&row)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to query snapshot: %w", result.Error)
		}
		row = models.StateSnapshot{UserID: userID}
	}

	row.SchemaVersion = SchemaVersion
	row.Payload = string(data)

	if row.ID == "" {
		return r.db.Create(&row).Error
	}
	return r.db.Save(&row).Error
}

// Load reads the user's snapshot, migrating older payload shapes to the
// current schema before decoding. A missing row returns empty collections,
// not an error.
func (r *Snapshots) Load(userID string) ([]*models.Project, models.MilestoneBoard, error) {
	var row models.StateSnapshot
	if err := r.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.MilestoneBoard{}, nil
		}
		return nil, models.MilestoneBoard{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	raw := []byte(row.Payload)
	if row.SchemaVersion < SchemaVersion {
		migrated, err := migratePayload(raw, row.SchemaVersion)
		if err != nil {
			return nil, models.MilestoneBoard{}, fmt.Errorf("failed to migrate snapshot from v%d: %w", row.SchemaVersion, err)
		}
		raw = migrated
	}

	var payload snapshotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, models.MilestoneBoard{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return payload.Projects, payload.Milestones, nil
}

// migratePayload walks the version chain one step at a time so every old
// session shape ends up at the current one without data loss.
func migratePayload(raw []byte, fromVersion int) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	for v := fromVersion; v < SchemaVersion; v++ {
		switch v {
		case 1:
			migrateV1toV2(doc)
		}
	}

	return json.Marshal(doc)
}

// migrateV1toV2 backfills risk_level and priority, which v1 sessions did
// not persist
func migrateV1toV2(doc map[string]any) {
	projects, ok := doc["projects"].([]any)
	if !ok {
		return
	}
	for _, raw := range projects {
		p, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if s, _ := p["risk_level"].(string); s == "" {
			p["risk_level"] = string(models.RiskLow)
		}
		if s, _ := p["priority"].(string); s == "" {
			p["priority"] = string(models.PriorityMedium)
		}
	}
}
