package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
)

// Fake sources and stores for driving the orchestrator end to end.

type fakeBillSource struct {
	refs        []domain.BillRef
	details     map[string]*domain.BillRecord
	actions     map[string][]domain.ActionRecord
	summaries   map[string][]domain.SummaryRecord
	detailErr   map[string]error
	actionCalls int
}

func refKey(ref domain.BillRef) string {
	return fmt.Sprintf("%d/%s/%s", ref.Congress, ref.Type, ref.Number)
}

func (s *fakeBillSource) LatestBills(_ context.Context, _ int) ([]domain.BillRef, error) {
	return s.refs, nil
}

func (s *fakeBillSource) BillDetail(_ context.Context, ref domain.BillRef) (*domain.BillRecord, error) {
	if err := s.detailErr[refKey(ref)]; err != nil {
		return nil, err
	}
	detail, ok := s.details[refKey(ref)]
	if !ok {
		return nil, errors.New("not found")
	}
	return detail, nil
}

func (s *fakeBillSource) BillActions(_ context.Context, ref domain.BillRef) ([]domain.ActionRecord, error) {
	s.actionCalls++
	return s.actions[refKey(ref)], nil
}

func (s *fakeBillSource) BillSummaries(_ context.Context, ref domain.BillRef) ([]domain.SummaryRecord, error) {
	return s.summaries[refKey(ref)], nil
}

func (s *fakeBillSource) RelatedBills(_ context.Context, _ domain.BillRef) (int, error) {
	return 0, nil
}

func (s *fakeBillSource) Cosponsors(_ context.Context, _ domain.BillRef) (int, error) {
	return 0, nil
}

type fakeVoteSource struct {
	rolls   []domain.RollCallRef
	records map[int]*domain.VoteRecord
}

func (s *fakeVoteSource) RollCalls(_ context.Context, _ int) ([]domain.RollCallRef, error) {
	return s.rolls, nil
}

func (s *fakeVoteSource) RollCall(_ context.Context, ref domain.RollCallRef) (*domain.VoteRecord, error) {
	record, ok := s.records[ref.RollNumber]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *record
	return &copied, nil
}

type memStores struct {
	legislations map[string]domain.Legislation
	actions      []domain.BillAction
	summaries    map[string]domain.BillSummary
	votes        map[string]domain.Vote
	memberVotes  []domain.MemberVote
	members      []domain.Member
	memberReads  int
	nextID       int
}

func newMemStores() *memStores {
	return &memStores{
		legislations: map[string]domain.Legislation{},
		summaries:    map[string]domain.BillSummary{},
		votes:        map[string]domain.Vote{},
	}
}

func (m *memStores) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *memStores) FindByNameID(_ context.Context, nameID string) (*domain.Legislation, error) {
	row, ok := m.legislations[nameID]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (m *memStores) Create(_ context.Context, leg *domain.Legislation) error {
	leg.ID = m.id("leg")
	leg.CreatedAt = time.Now().UTC()
	leg.UpdatedAt = leg.CreatedAt
	m.legislations[leg.NameID] = *leg
	return nil
}

func (m *memStores) Update(_ context.Context, leg *domain.Legislation) error {
	leg.UpdatedAt = time.Now().UTC()
	m.legislations[leg.NameID] = *leg
	return nil
}

type actionStoreAdapter struct{ m *memStores }

func (a actionStoreAdapter) Exists(_ context.Context, legislationID string, actionDate time.Time, text, actionType string) (bool, error) {
	for _, row := range a.m.actions {
		if row.LegislationID == legislationID && row.ActionDate.Equal(actionDate) && row.Text == text && row.Type == actionType {
			return true, nil
		}
	}
	return false, nil
}

func (a actionStoreAdapter) Create(_ context.Context, action *domain.BillAction) error {
	action.ID = a.m.id("act")
	a.m.actions = append(a.m.actions, *action)
	return nil
}

type summaryStoreAdapter struct{ m *memStores }

func (a summaryStoreAdapter) FindByVersion(_ context.Context, legislationID, versionCode string) (*domain.BillSummary, error) {
	row, ok := a.m.summaries[legislationID+"/"+versionCode]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (a summaryStoreAdapter) Create(_ context.Context, summary *domain.BillSummary) error {
	summary.ID = a.m.id("sum")
	a.m.summaries[summary.LegislationID+"/"+summary.VersionCode] = *summary
	return nil
}

func (a summaryStoreAdapter) Update(_ context.Context, summary *domain.BillSummary) error {
	a.m.summaries[summary.LegislationID+"/"+summary.VersionCode] = *summary
	return nil
}

type voteStoreAdapter struct{ m *memStores }

func (a voteStoreAdapter) FindByRollCall(_ context.Context, congress int, chamber string, rollNumber int) (*domain.Vote, error) {
	row, ok := a.m.votes[fmt.Sprintf("%d/%s/%d", congress, chamber, rollNumber)]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (a voteStoreAdapter) Create(_ context.Context, vote *domain.Vote) error {
	vote.ID = a.m.id("vote")
	a.m.votes[fmt.Sprintf("%d/%s/%d", vote.Congress, vote.Chamber, vote.RollNumber)] = *vote
	return nil
}

func (a voteStoreAdapter) Update(_ context.Context, vote *domain.Vote) error {
	a.m.votes[fmt.Sprintf("%d/%s/%d", vote.Congress, vote.Chamber, vote.RollNumber)] = *vote
	return nil
}

func (a voteStoreAdapter) UpdateTotals(_ context.Context, voteID string, totals domain.VoteTotals) error {
	for key, row := range a.m.votes {
		if row.ID == voteID {
			row.TotalYea = totals.Yea
			row.TotalNay = totals.Nay
			row.TotalPresent = totals.Present
			row.TotalNotVoting = totals.NotVoting
			row.TotalVoting = totals.Voting()
			a.m.votes[key] = row
			return nil
		}
	}
	return fmt.Errorf("vote %s not found", voteID)
}

type memberVoteStoreAdapter struct{ m *memStores }

func (a memberVoteStoreAdapter) MemberIDsForVote(_ context.Context, voteID string) (map[string]bool, error) {
	recorded := map[string]bool{}
	for _, row := range a.m.memberVotes {
		if row.VoteID == voteID {
			recorded[row.MemberID] = true
		}
	}
	return recorded, nil
}

func (a memberVoteStoreAdapter) CreateMany(_ context.Context, votes []domain.MemberVote) error {
	a.m.memberVotes = append(a.m.memberVotes, votes...)
	return nil
}

type memberStoreAdapter struct{ m *memStores }

func (a memberStoreAdapter) FindAll(_ context.Context) ([]domain.Member, error) {
	a.m.memberReads++
	return a.m.members, nil
}

func newTestPipeline(bills *fakeBillSource, votes *fakeVoteSource, stores *memStores) *Pipeline {
	return NewPipeline(PipelineDeps{
		Bills:        bills,
		Votes:        votes,
		Legislations: stores,
		Actions:      actionStoreAdapter{stores},
		Summaries:    summaryStoreAdapter{stores},
		VoteStore:    voteStoreAdapter{stores},
		MemberVotes:  memberVoteStoreAdapter{stores},
		Members:      memberStoreAdapter{stores},
	})
}

func TestRunBillsTwiceConverges(t *testing.T) {
	t.Parallel()

	ref := domain.BillRef{Congress: 119, Type: "HR", Number: "1234"}
	bills := &fakeBillSource{
		refs: []domain.BillRef{ref, {Congress: 119, Type: "AMDT", Number: "9"}},
		details: map[string]*domain.BillRecord{
			refKey(ref): {Congress: 119, Type: "HR", Number: "1234", Title: "Test Act", URL: "http://x"},
		},
		actions: map[string][]domain.ActionRecord{
			refKey(ref): {{ActionDate: "2025-02-01", Text: "Introduced in House", Type: "IntroReferral"}},
		},
		summaries: map[string][]domain.SummaryRecord{
			refKey(ref): {{VersionCode: "00", Text: "A bill to test."}},
		},
	}
	stores := newMemStores()
	pipeline := newTestPipeline(bills, &fakeVoteSource{}, stores)
	ctx := context.Background()

	first, err := pipeline.RunBills(ctx, 119)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	// One bill, one action, one summary; the AMDT ref is silently skipped.
	if first.Succeeded != 3 || first.Failed != 0 {
		t.Fatalf("first run result: %s", first)
	}

	second, err := pipeline.RunBills(ctx, 119)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Succeeded != 3 || second.Failed != 0 {
		t.Fatalf("second run result: %s", second)
	}

	if len(stores.legislations) != 1 {
		t.Fatalf("expected one legislation, got %d", len(stores.legislations))
	}
	leg, ok := stores.legislations["119HR1234"]
	if !ok {
		t.Fatalf("legislation not keyed by 119HR1234: %+v", stores.legislations)
	}
	if leg.Title != "Test Act" {
		t.Fatalf("unexpected title: %s", leg.Title)
	}
	if len(stores.actions) != 1 {
		t.Fatalf("action duplicated across runs: %d rows", len(stores.actions))
	}
	if len(stores.summaries) != 1 {
		t.Fatalf("summary duplicated across runs: %d rows", len(stores.summaries))
	}
}

func TestRunBillsDetailFailureSkipsSecondaryFetches(t *testing.T) {
	t.Parallel()

	ref := domain.BillRef{Congress: 119, Type: "HR", Number: "1"}
	bills := &fakeBillSource{
		refs:      []domain.BillRef{ref},
		detailErr: map[string]error{refKey(ref): errors.New("congress api returned 500")},
	}
	stores := newMemStores()
	pipeline := newTestPipeline(bills, &fakeVoteSource{}, stores)

	res, err := pipeline.RunBills(context.Background(), 119)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Failed != 1 || res.Succeeded != 0 {
		t.Fatalf("transport failure should fail the resource only: %s", res)
	}
	if bills.actionCalls != 0 {
		t.Fatalf("actions must not be fetched when the bill row cannot exist")
	}
}

func TestRunHouseVotesIdempotent(t *testing.T) {
	t.Parallel()

	record := &domain.VoteRecord{
		Congress:   119,
		Session:    1,
		RollNumber: 17,
		StartDate:  "2025-01-09T13:57:00Z",
		Question:   "On Passage",
		Result:     "Passed",
		Members: []domain.MemberVoteRecord{
			{BioguideID: "A000001", Cast: "Yea", Party: "R", State: "AL"},
			{BioguideID: "B000002", Cast: "Aye", Party: "D", State: "CA"},
			{BioguideID: "C000003", Cast: "Nay", Party: "D", State: "NY"},
		},
	}
	votes := &fakeVoteSource{
		rolls:   []domain.RollCallRef{{Year: 2025, RollNumber: 17}},
		records: map[int]*domain.VoteRecord{17: record},
	}
	stores := newMemStores()
	stores.members = []domain.Member{
		{ID: "m1", BioguideID: "A000001"},
		{ID: "m2", BioguideID: "B000002"},
		{ID: "m3", BioguideID: "C000003"},
	}
	pipeline := newTestPipeline(&fakeBillSource{}, votes, stores)
	ctx := context.Background()

	for pass := 1; pass <= 2; pass++ {
		res, err := pipeline.RunHouseVotes(ctx, 2025)
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if res.Failed != 0 {
			t.Fatalf("pass %d failures: %s", pass, res)
		}
	}

	if len(stores.votes) != 1 {
		t.Fatalf("expected one vote row, got %d", len(stores.votes))
	}
	if len(stores.memberVotes) != 3 {
		t.Fatalf("member votes duplicated: %d rows", len(stores.memberVotes))
	}

	vote := stores.votes["119/House/17"]
	if vote.TotalYea != 2 || vote.TotalNay != 1 || vote.TotalVoting != 3 {
		t.Fatalf("unexpected totals: %+v", vote)
	}
	if stores.memberReads != 2 {
		t.Fatalf("member reference should be read once per run, got %d reads", stores.memberReads)
	}
}

func TestPacerZeroDelayReturnsImmediately(t *testing.T) {
	t.Parallel()

	start := time.Now()
	NewPacer(0).Wait(context.Background())
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("zero-delay pacer blocked for %v", elapsed)
	}
}

func TestPacerHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	NewPacer(5 * time.Second).Wait(ctx)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("cancelled pacer blocked for %v", elapsed)
	}
}
