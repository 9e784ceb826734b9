package models

// Committee represents a working committee within an organization.
type Committee struct {
	CommitteeID    int64  `db:"committee_id" json:"committee_id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	CommitteeName  string `db:"committee_name" json:"committee_name"`
}

// CommitteeDetail enriches a committee with its organization name.
type CommitteeDetail struct {
	Committee
	OrganizationName *string `db:"organization_name" json:"organization_name,omitempty"`
}
