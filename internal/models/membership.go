package models

import "time"

// MembershipStatus enumerates the lifecycle states of a membership.
type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "Active"
	MembershipStatusInactive  MembershipStatus = "Inactive"
	MembershipStatusAlumni    MembershipStatus = "Alumni"
	MembershipStatusExpelled  MembershipStatus = "Expelled"
	MembershipStatusSuspended MembershipStatus = "Suspended"
)

// DefaultMembershipRole is applied when a create request omits the role.
const DefaultMembershipRole = "Member"

// Membership links a student to an organization. Its key is the pair
// (student_number, organization_id); neither field identifies a row alone.
type Membership struct {
	StudentNumber  string           `db:"student_number" json:"student_number"`
	OrganizationID string           `db:"organization_id" json:"organization_id"`
	CommitteeID    *int64           `db:"committee_id" json:"committee_id,omitempty"`
	MembershipDate *time.Time       `db:"membership_date" json:"membership_date,omitempty"`
	Status         MembershipStatus `db:"status" json:"status"`
	Role           string           `db:"role" json:"role"`
}

// MembershipDetail enriches a membership with display names from joins.
type MembershipDetail struct {
	Membership
	StudentName      *string `db:"student_name" json:"student_name,omitempty"`
	OrganizationName *string `db:"organization_name" json:"organization_name,omitempty"`
	CommitteeName    *string `db:"committee_name" json:"committee_name,omitempty"`
}

// MembershipFilter narrows membership reads. Empty fields are ignored;
// OrganizationID on the active-members path is deliberately optional.
type MembershipFilter struct {
	OrganizationID string
	StudentNumber  string
	Status         MembershipStatus
}
