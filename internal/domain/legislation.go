package domain

import "time"

// Legislation is one bill as persisted, keyed by the derived name ID.
type Legislation struct {
	ID             string
	NameID         string
	Congress       int
	Type           string
	Number         string
	Title          string
	URL            string
	IntroducedDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BillAction is a single legislative action recorded against a bill.
// Actions carry no upstream identifier; identity is the full tuple of
// (legislation, date, text, type).
type BillAction struct {
	ID            string
	LegislationID string
	ActionDate    time.Time
	Text          string
	Type          string
	ActionCode    string
	CreatedAt     time.Time
}

// BillSummary is one summary version of a bill. Upstream reuses version
// codes as a summary evolves, so (legislation, version code) addresses a
// mutable row rather than an immutable one.
type BillSummary struct {
	ID            string
	LegislationID string
	ActionDate    *time.Time
	ActionDesc    string
	Text          string
	UpdateDate    *time.Time
	VersionCode   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
