package models

// Event represents an activity hosted by an organization.
type Event struct {
	EventID        int64  `db:"event_id" json:"event_id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	EventName      string `db:"event_name" json:"event_name"`
}

// EventDetail enriches an event with its organization name.
type EventDetail struct {
	Event
	OrganizationName *string `db:"organization_name" json:"organization_name,omitempty"`
}
