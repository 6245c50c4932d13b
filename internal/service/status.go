package service

import "github.com/fact-check-board/internal/models"

const (
	// MinVotesForVerdict is the sample size below which an item stays pending
	MinVotesForVerdict = 10
	// VerdictThreshold is the share of votes one side needs to decide the status
	VerdictThreshold = 0.7
)

// ComputeStatus derives the status from vote tallies alone. The ratios are
// taken from the integer counts, so replaying the same votes in any order
// always gives the same answer.
func ComputeStatus(fakeVotes, notFakeVotes int) models.Status {
	total := fakeVotes + notFakeVotes
	if total < MinVotesForVerdict {
		return models.StatusPending
	}

	fakeRatio := float64(fakeVotes) / float64(total)
	notFakeRatio := float64(notFakeVotes) / float64(total)

	switch {
	case fakeRatio > VerdictThreshold:
		return models.StatusFake
	case notFakeRatio > VerdictThreshold:
		return models.StatusNotFake
	default:
		return models.StatusPending
	}
}

// applyVote increments the matching counter and recomputes totals and status
func applyVote(item *models.NewsItem, choice models.VoteChoice) {
	switch choice {
	case models.VoteFake:
		item.FakeVotes++
	case models.VoteNotFake:
		item.NotFakeVotes++
	}
	item.TotalVotes = item.FakeVotes + item.NotFakeVotes
	item.Status = ComputeStatus(item.FakeVotes, item.NotFakeVotes)
}
