package domain

import "time"

// ChamberHouse is the only chamber this ingester records votes for.
const ChamberHouse = "House"

// VotePosition enumerates the canonical cast positions.
type VotePosition string

const (
	PositionYea       VotePosition = "YEA"
	PositionNay       VotePosition = "NAY"
	PositionPresent   VotePosition = "PRESENT"
	PositionNotVoting VotePosition = "NOT_VOTING"
)

// Vote is one roll-call vote event, unique per (congress, chamber, roll
// number). The four position totals and TotalVoting are derived state:
// they are overwritten from scratch whenever the member votes for this
// roll are processed.
type Vote struct {
	ID                string
	Congress          int
	Chamber           string
	RollNumber        int
	Session           int
	VoteDate          time.Time
	Question          string
	Result            string
	Description       string
	LegislationNumber string
	LegislationNameID string
	TotalYea          int
	TotalNay          int
	TotalPresent      int
	TotalNotVoting    int
	TotalVoting       int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// VoteTotals carries a recomputed tally for a single vote.
type VoteTotals struct {
	Yea       int
	Nay       int
	Present   int
	NotVoting int
}

// Voting is the combined total of ballots cast on the question.
func (t VoteTotals) Voting() int {
	return t.Yea + t.Nay
}

// MemberVote records how one member voted on one roll call. Rows are
// insert-only; a (vote, member) pair is never written twice.
type MemberVote struct {
	ID        string
	VoteID    string
	MemberID  string
	Position  VotePosition
	Party     string
	State     string
	CreatedAt time.Time
}

// Member is the reference entity owned by a separate ingestion process.
// This pipeline only reads it.
type Member struct {
	ID         string
	BioguideID string
	Name       string
	Party      string
	State      string
}
