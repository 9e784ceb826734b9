package models

import "time"

// FeeStatus enumerates payment states of a fee.
type FeeStatus string

const (
	FeeStatusUnpaid FeeStatus = "Unpaid"
	FeeStatusPaid   FeeStatus = "Paid"
	FeeStatusLate   FeeStatus = "Late"
)

// Fee represents a charge issued to a student by an organization.
type Fee struct {
	FeeID          string     `db:"fee_id" json:"fee_id"`
	Label          string     `db:"label" json:"label"`
	Status         FeeStatus  `db:"status" json:"status"`
	Amount         float64    `db:"amount" json:"amount"`
	DateIssue      *time.Time `db:"date_issue" json:"date_issue,omitempty"`
	DueDate        *time.Time `db:"due_date" json:"due_date,omitempty"`
	OrganizationID string     `db:"organization_id" json:"organization_id"`
	StudentNumber  string     `db:"student_number" json:"student_number"`
}

// FeeDetail enriches a fee with student and organization names.
type FeeDetail struct {
	Fee
	StudentName      *string `db:"student_name" json:"student_name,omitempty"`
	OrganizationName *string `db:"organization_name" json:"organization_name,omitempty"`
}

// FeeFilter narrows fee reads. Empty fields are ignored.
type FeeFilter struct {
	StudentNumber  string
	OrganizationID string
	Status         FeeStatus
}
