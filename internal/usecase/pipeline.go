package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/identity"
	"github.com/b1tburn3r20/speakup-ingest/internal/membercache"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
	"github.com/b1tburn3r20/speakup-ingest/internal/reconcile"
	"github.com/b1tburn3r20/speakup-ingest/internal/report"
)

const (
	billProgressEvery = 25
	voteProgressEvery = 50
)

// PipelineDeps wires sources and stores into the orchestration pipeline.
type PipelineDeps struct {
	Bills        ports.BillSource
	Votes        ports.VoteSource
	Legislations ports.LegislationStore
	Actions      ports.BillActionStore
	Summaries    ports.BillSummaryStore
	VoteStore    ports.VoteStore
	MemberVotes  ports.MemberVoteStore
	Members      ports.MemberStore
	Pace         time.Duration
	Now          func() time.Time
	Logger       *slog.Logger
}

// Pipeline drives the fetch, normalize, reconcile sequence for bills and
// House roll-call votes. One resource is in flight at a time; the member
// cache and the run counters are the only shared state and both are
// confined to a single run.
type Pipeline struct {
	bills       ports.BillSource
	votes       ports.VoteSource
	members     ports.MemberStore
	billRec     *reconcile.BillReconciler
	actionRec   *reconcile.ActionReconciler
	summaryRec  *reconcile.SummaryReconciler
	voteRec     *reconcile.VoteReconciler
	memberVotes *reconcile.MemberVoteReconciler
	pacer       *Pacer
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component and its reconcilers.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		bills:       deps.Bills,
		votes:       deps.Votes,
		members:     deps.Members,
		billRec:     reconcile.NewBillReconciler(deps.Legislations, logger.With("component", "reconcile.bill")),
		actionRec:   reconcile.NewActionReconciler(deps.Legislations, deps.Actions, logger.With("component", "reconcile.action")),
		summaryRec:  reconcile.NewSummaryReconciler(deps.Legislations, deps.Summaries, logger.With("component", "reconcile.summary")),
		voteRec:     reconcile.NewVoteReconciler(deps.VoteStore, deps.Now, logger.With("component", "reconcile.vote")),
		memberVotes: reconcile.NewMemberVoteReconciler(deps.MemberVotes, deps.VoteStore, logger.With("component", "reconcile.membervote")),
		pacer:       NewPacer(deps.Pace),
		logger:      logger,
	}
}

// RunBills ingests the latest bills for one congress: detail upsert
// first, then actions and summaries (which require the bill row to
// exist), then the related-bill and cosponsor fetches the upstream also
// exposes. Bills with a subtype outside the allow-list are silently
// skipped. Transport failures fail the resource, never the run.
func (p *Pipeline) RunBills(ctx context.Context, congress int) (*reconcile.Result, error) {
	refs, err := p.bills.LatestBills(ctx, congress)
	if err != nil {
		return nil, fmt.Errorf("fetch latest bills: %w", err)
	}

	p.logger.Info("processing bills", "congress", congress, "count", len(refs))
	res := reconcile.NewResult()
	processed := 0

	for _, ref := range refs {
		if !identity.ValidBillType(ref.Type) {
			continue
		}
		processed++

		p.ingestBill(ctx, ref, res)

		if processed%billProgressEvery == 0 {
			p.logger.Info(report.Progress("bills", processed, len(refs), res))
		}
	}

	p.logger.Info(report.Summary("bills", res))
	return res, nil
}

func (p *Pipeline) ingestBill(ctx context.Context, ref domain.BillRef, res *reconcile.Result) {
	key := identity.BillKey(ref.Congress, identity.NormalizeType(ref.Type), ref.Number)

	detail, err := p.bills.BillDetail(ctx, ref)
	if err != nil {
		p.logger.Error("fetch bill detail", "name_id", key, "error", err)
		res.Fail("bill", key, "detail fetch failed")
		return
	}

	leg, billRes := p.billRec.Reconcile(ctx, *detail)
	res.Merge(billRes)
	if leg == nil {
		return
	}

	// Actions and summaries resolve the bill by natural key, so the
	// detail upsert above must have completed first.
	entries, err := p.bills.BillActions(ctx, ref)
	if err != nil {
		p.logger.Error("fetch bill actions", "name_id", key, "error", err)
		res.Fail("action", key, "fetch failed")
	} else {
		_, actionRes := p.actionRec.Reconcile(ctx, ref, entries)
		res.Merge(actionRes)
	}
	p.pacer.Wait(ctx)

	summaries, err := p.bills.BillSummaries(ctx, ref)
	if err != nil {
		p.logger.Error("fetch bill summaries", "name_id", key, "error", err)
		res.Fail("summary", key, "fetch failed")
	} else {
		_, summaryRes := p.summaryRec.Reconcile(ctx, ref, summaries)
		res.Merge(summaryRes)
	}
	p.pacer.Wait(ctx)

	if related, err := p.bills.RelatedBills(ctx, ref); err != nil {
		p.logger.Error("fetch related bills", "name_id", key, "error", err)
	} else {
		p.logger.Debug("related bills", "name_id", key, "count", related)
	}
	p.pacer.Wait(ctx)

	if cosponsors, err := p.bills.Cosponsors(ctx, ref); err != nil {
		p.logger.Error("fetch cosponsors", "name_id", key, "error", err)
	} else {
		p.logger.Debug("cosponsors", "name_id", key, "count", cosponsors)
	}
	p.pacer.Wait(ctx)
}

// RunHouseVotes ingests every roll call published for one year. The
// member cache is built once, before any vote is touched, so member
// resolution costs one reference read for the whole run.
func (p *Pipeline) RunHouseVotes(ctx context.Context, year int) (*reconcile.Result, error) {
	cache, err := membercache.Build(ctx, p.members)
	if err != nil {
		return nil, fmt.Errorf("build member cache: %w", err)
	}
	p.logger.Info("member cache built", "members", cache.Len())

	rolls, err := p.votes.RollCalls(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list roll calls: %w", err)
	}

	p.logger.Info("processing roll calls", "year", year, "count", len(rolls))
	res := reconcile.NewResult()

	for i, ref := range rolls {
		record, err := p.votes.RollCall(ctx, ref)
		if err != nil {
			p.logger.Error("fetch roll call", "year", ref.Year, "roll", ref.RollNumber, "error", err)
			res.Fail("vote", fmt.Sprintf("%d/roll%d", ref.Year, ref.RollNumber), "fetch failed")
			p.pacer.Wait(ctx)
			continue
		}

		vote, voteRes := p.voteRec.Reconcile(ctx, *record)
		res.Merge(voteRes)
		if vote != nil {
			res.Merge(p.memberVotes.Reconcile(ctx, vote.ID, record.Members, cache))
		}
		p.pacer.Wait(ctx)

		if (i+1)%voteProgressEvery == 0 {
			p.logger.Info(report.Progress("roll calls", i+1, len(rolls), res))
		}
	}

	p.logger.Info(report.Summary("roll calls", res))
	return res, nil
}
