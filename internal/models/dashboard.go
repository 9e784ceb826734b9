package models

import "time"

// DashboardSummary aggregates top-level counts for the dashboard landing view.
type DashboardSummary struct {
	Students          int       `db:"students" json:"students"`
	Organizations     int       `db:"organizations" json:"organizations"`
	Committees        int       `db:"committees" json:"committees"`
	ActiveMemberships int       `db:"active_memberships" json:"active_memberships"`
	Events            int       `db:"events" json:"events"`
	OutstandingFees   float64   `db:"outstanding_fees" json:"outstanding_fees"`
	GeneratedAt       time.Time `json:"generated_at"`
}
