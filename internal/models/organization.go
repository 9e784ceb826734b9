package models

// Organization represents a registered student organization.
type Organization struct {
	OrganizationID   string `db:"organization_id" json:"organization_id"`
	OrganizationName string `db:"organization_name" json:"organization_name"`
}

// OrganizationSummary carries an organization with its read-side member count.
type OrganizationSummary struct {
	Organization
	MemberCount int `db:"member_count" json:"member_count"`
}
