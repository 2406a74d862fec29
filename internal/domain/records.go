package domain

// BillRef identifies one bill on the upstream API.
type BillRef struct {
	Congress int
	Type     string
	Number   string
}

// BillRecord is the raw detail payload for one bill. String fields arrive
// exactly as upstream sent them; reconcilers validate and normalize.
type BillRecord struct {
	Congress       int
	Type           string
	Number         string
	Title          string
	URL            string
	IntroducedDate string
}

// ActionRecord is one raw action entry from the bill actions endpoint.
type ActionRecord struct {
	ActionDate string
	Text       string
	Type       string
	ActionCode string
}

// SummaryRecord is one raw summary entry from the bill summaries endpoint.
type SummaryRecord struct {
	ActionDate  string
	ActionDesc  string
	Text        string
	UpdateDate  string
	VersionCode string
}

// RollCallRef identifies one roll call published by the House Clerk.
type RollCallRef struct {
	Year       int
	RollNumber int
}

// VoteRecord is the raw header plus per-member results for one roll call.
type VoteRecord struct {
	Congress          int
	Session           int
	RollNumber        int
	StartDate         string
	Question          string
	Result            string
	Description       string
	LegislationType   string
	LegislationNumber string
	Members           []MemberVoteRecord
}

// MemberVoteRecord is one member's raw entry inside a roll-call payload.
type MemberVoteRecord struct {
	BioguideID string
	Cast       string
	Party      string
	State      string
}
