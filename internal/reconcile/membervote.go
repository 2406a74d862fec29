package reconcile

import (
	"context"
	"io"
	"log/slog"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/membercache"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

// castPositions is the exact-match table from raw cast strings to
// canonical positions. Any other value is an unmapped-value failure.
var castPositions = map[string]domain.VotePosition{
	"Yea":        domain.PositionYea,
	"Aye":        domain.PositionYea,
	"Nay":        domain.PositionNay,
	"Present":    domain.PositionPresent,
	"Not Voting": domain.PositionNotVoting,
}

// MemberVoteReconciler records how each member voted on one roll call.
// Rows are insert-only, but the owning vote's totals are rewritten from
// scratch on every pass, which is what keeps reprocessing idempotent.
type MemberVoteReconciler struct {
	memberVotes ports.MemberVoteStore
	votes       ports.VoteStore
	logger      *slog.Logger
}

// NewMemberVoteReconciler wires the member-vote and vote stores.
func NewMemberVoteReconciler(memberVotes ports.MemberVoteStore, votes ports.VoteStore, logger *slog.Logger) *MemberVoteReconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MemberVoteReconciler{memberVotes: memberVotes, votes: votes, logger: logger}
}

// Reconcile processes every member entry for one vote. The member set
// already recorded against the vote is preloaded once so re-runs skip
// existing pairs without writing. Entries with a missing member ID or
// cast value, an unmapped cast value, or a member absent from the cache
// are counted as failed and skipped; none of these is fatal to the
// batch. New rows are staged and written with a single batch insert,
// then the vote's totals are unconditionally overwritten with the tally
// from this pass.
func (r *MemberVoteReconciler) Reconcile(ctx context.Context, voteID string, entries []domain.MemberVoteRecord, cache *membercache.Cache) *Result {
	res := NewResult()

	recorded, err := r.memberVotes.MemberIDsForVote(ctx, voteID)
	if err != nil {
		r.logger.Error("preload member votes", "vote_id", voteID, "error", err)
		for range entries {
			res.Fail("member_vote", voteID, "store preload failed")
		}
		return res
	}

	var (
		tally      domain.VoteTotals
		staged     []domain.MemberVote
		stagedKeys []string
	)

	for _, entry := range entries {
		if entry.BioguideID == "" || entry.Cast == "" {
			res.Fail("member_vote", voteID, "missing member id or cast value")
			continue
		}

		position, ok := castPositions[entry.Cast]
		if !ok {
			r.logger.Warn("unmapped cast value", "vote_id", voteID, "bioguide_id", entry.BioguideID, "cast", entry.Cast)
			res.Fail("member_vote", entry.BioguideID, "unmapped cast value")
			continue
		}

		member, ok := cache.Lookup(entry.BioguideID)
		if !ok {
			r.logger.Warn("member not in cache", "vote_id", voteID, "bioguide_id", entry.BioguideID)
			res.Fail("member_vote", entry.BioguideID, "member not found")
			continue
		}

		switch position {
		case domain.PositionYea:
			tally.Yea++
		case domain.PositionNay:
			tally.Nay++
		case domain.PositionPresent:
			tally.Present++
		case domain.PositionNotVoting:
			tally.NotVoting++
		}

		if recorded[member.ID] {
			res.Success("member_vote", entry.BioguideID, StatusSkipped)
			continue
		}

		staged = append(staged, domain.MemberVote{
			VoteID:   voteID,
			MemberID: member.ID,
			Position: position,
			Party:    entry.Party,
			State:    entry.State,
		})
		stagedKeys = append(stagedKeys, entry.BioguideID)
	}

	if len(staged) > 0 {
		if err := r.memberVotes.CreateMany(ctx, staged); err != nil {
			r.logger.Error("insert member votes", "vote_id", voteID, "count", len(staged), "error", err)
			for _, key := range stagedKeys {
				res.Fail("member_vote", key, "store insert failed")
			}
			return res
		}
		for _, key := range stagedKeys {
			res.Success("member_vote", key, StatusCreated)
		}
	}

	if err := r.votes.UpdateTotals(ctx, voteID, tally); err != nil {
		r.logger.Error("update vote totals", "vote_id", voteID, "error", err)
		res.Fail("vote", voteID, "totals update failed")
		return res
	}

	r.logger.Info("reconciled member votes", "vote_id", voteID,
		"yea", tally.Yea, "nay", tally.Nay, "present", tally.Present, "not_voting", tally.NotVoting,
		"result", res.String())
	return res
}
