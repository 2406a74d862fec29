package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
)

// In-memory stores backing the reconciler tests. They mimic the
// Postgres layer: copies in, copies out, IDs assigned on create.

type fakeLegislationStore struct {
	rows    map[string]domain.Legislation
	nextID  int
	findErr error
}

func newFakeLegislationStore() *fakeLegislationStore {
	return &fakeLegislationStore{rows: map[string]domain.Legislation{}}
}

func (s *fakeLegislationStore) FindByNameID(_ context.Context, nameID string) (*domain.Legislation, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	row, ok := s.rows[nameID]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (s *fakeLegislationStore) Create(_ context.Context, leg *domain.Legislation) error {
	s.nextID++
	leg.ID = fmt.Sprintf("leg-%d", s.nextID)
	leg.CreatedAt = time.Now().UTC()
	leg.UpdatedAt = leg.CreatedAt
	s.rows[leg.NameID] = *leg
	return nil
}

func (s *fakeLegislationStore) Update(_ context.Context, leg *domain.Legislation) error {
	leg.UpdatedAt = time.Now().UTC()
	s.rows[leg.NameID] = *leg
	return nil
}

type fakeActionStore struct {
	rows      []domain.BillAction
	createErr error
}

func (s *fakeActionStore) Exists(_ context.Context, legislationID string, actionDate time.Time, text, actionType string) (bool, error) {
	for _, row := range s.rows {
		if row.LegislationID == legislationID && row.ActionDate.Equal(actionDate) && row.Text == text && row.Type == actionType {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeActionStore) Create(_ context.Context, action *domain.BillAction) error {
	if s.createErr != nil {
		return s.createErr
	}
	action.ID = fmt.Sprintf("act-%d", len(s.rows)+1)
	s.rows = append(s.rows, *action)
	return nil
}

type fakeSummaryStore struct {
	rows map[string]domain.BillSummary
}

func newFakeSummaryStore() *fakeSummaryStore {
	return &fakeSummaryStore{rows: map[string]domain.BillSummary{}}
}

func summaryKey(legislationID, versionCode string) string {
	return legislationID + "/" + versionCode
}

func (s *fakeSummaryStore) FindByVersion(_ context.Context, legislationID, versionCode string) (*domain.BillSummary, error) {
	row, ok := s.rows[summaryKey(legislationID, versionCode)]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (s *fakeSummaryStore) Create(_ context.Context, summary *domain.BillSummary) error {
	summary.ID = fmt.Sprintf("sum-%d", len(s.rows)+1)
	s.rows[summaryKey(summary.LegislationID, summary.VersionCode)] = *summary
	return nil
}

func (s *fakeSummaryStore) Update(_ context.Context, summary *domain.BillSummary) error {
	s.rows[summaryKey(summary.LegislationID, summary.VersionCode)] = *summary
	return nil
}

type fakeVoteStore struct {
	rows   map[string]domain.Vote
	nextID int
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{rows: map[string]domain.Vote{}}
}

func rollKey(congress int, chamber string, rollNumber int) string {
	return fmt.Sprintf("%d/%s/%d", congress, chamber, rollNumber)
}

func (s *fakeVoteStore) FindByRollCall(_ context.Context, congress int, chamber string, rollNumber int) (*domain.Vote, error) {
	row, ok := s.rows[rollKey(congress, chamber, rollNumber)]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (s *fakeVoteStore) Create(_ context.Context, vote *domain.Vote) error {
	s.nextID++
	vote.ID = fmt.Sprintf("vote-%d", s.nextID)
	s.rows[rollKey(vote.Congress, vote.Chamber, vote.RollNumber)] = *vote
	return nil
}

func (s *fakeVoteStore) Update(_ context.Context, vote *domain.Vote) error {
	s.rows[rollKey(vote.Congress, vote.Chamber, vote.RollNumber)] = *vote
	return nil
}

func (s *fakeVoteStore) UpdateTotals(_ context.Context, voteID string, totals domain.VoteTotals) error {
	for key, row := range s.rows {
		if row.ID == voteID {
			row.TotalYea = totals.Yea
			row.TotalNay = totals.Nay
			row.TotalPresent = totals.Present
			row.TotalNotVoting = totals.NotVoting
			row.TotalVoting = totals.Voting()
			s.rows[key] = row
			return nil
		}
	}
	return fmt.Errorf("vote %s not found", voteID)
}

func (s *fakeVoteStore) byID(voteID string) (domain.Vote, bool) {
	for _, row := range s.rows {
		if row.ID == voteID {
			return row, true
		}
	}
	return domain.Vote{}, false
}

type fakeMemberVoteStore struct {
	rows      []domain.MemberVote
	insertErr error
}

func (s *fakeMemberVoteStore) MemberIDsForVote(_ context.Context, voteID string) (map[string]bool, error) {
	recorded := map[string]bool{}
	for _, row := range s.rows {
		if row.VoteID == voteID {
			recorded[row.MemberID] = true
		}
	}
	return recorded, nil
}

func (s *fakeMemberVoteStore) CreateMany(_ context.Context, votes []domain.MemberVote) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for i := range votes {
		votes[i].ID = fmt.Sprintf("mv-%d", len(s.rows)+i+1)
	}
	s.rows = append(s.rows, votes...)
	return nil
}

type fakeMemberStore struct {
	members []domain.Member
}

func (s *fakeMemberStore) FindAll(_ context.Context) ([]domain.Member, error) {
	return s.members, nil
}
