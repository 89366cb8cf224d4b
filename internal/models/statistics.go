package models

// ProjectStatistics is the derived portfolio summary shown on the
// executive dashboard. Soft-deleted projects are excluded from every count.
type ProjectStatistics struct {
	TotalActive    int     `json:"total_active"`
	TotalCompleted int     `json:"total_completed"`
	AvgCompletion  float64 `json:"avg_completion"`
	AtRiskCount    int     `json:"at_risk_count"`
}
