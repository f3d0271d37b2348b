// Package scoring holds the pure calculators that turn a GameDocument
// snapshot into leaderboard views. Nothing in here performs I/O or
// mutates the document; every function is deterministic for a given
// snapshot and participant order.
package scoring

import (
	"sort"

	"github.com/AJV009/oracle11/internal/models"
)

const (
	// AutoRevealThreshold is how many submitted predictions make the
	// leaderboard visible when the admin has not set it explicitly
	AutoRevealThreshold = 4

	// TopCandidates is how many guessed recipients the aggregation
	// keeps per santa
	TopCandidates = 3
)

// submissionOrder returns predictor codenames ordered by ascending
// submission timestamp, ties broken by codename. Go maps iterate in
// random order, so "first seen" needs an explicit rule: earlier
// submissions are seen first.
func submissionOrder(doc *models.GameDocument) []string {
	codenames := make([]string, 0, len(doc.Predictions))
	for codename := range doc.Predictions {
		codenames = append(codenames, codename)
	}
	sort.Slice(codenames, func(i, j int) bool {
		ti := doc.Predictions[codenames[i]].Timestamp
		tj := doc.Predictions[codenames[j]].Timestamp
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return codenames[i] < codenames[j]
	})
	return codenames
}

// AggregateGuesses tallies, for each santa, how many predictions named
// each candidate recipient. Each santa's candidates come back in
// descending vote order, ties kept in first-seen order, truncated to
// the top three.
func AggregateGuesses(doc *models.GameDocument, participants []string) []models.GiverTally {
	order := submissionOrder(doc)

	tallies := make([]models.GiverTally, 0, len(participants))
	for _, santa := range participants {
		votes := map[string]int{}
		var firstSeen []string

		for _, codename := range order {
			recipient, ok := doc.Predictions[codename].Guesses[santa]
			if !ok || recipient == "" {
				continue
			}
			if votes[recipient] == 0 {
				firstSeen = append(firstSeen, recipient)
			}
			votes[recipient]++
		}

		candidates := make([]models.CandidateTally, 0, len(firstSeen))
		for _, recipient := range firstSeen {
			candidates = append(candidates, models.CandidateTally{
				Recipient: recipient,
				Votes:     votes[recipient],
			})
		}

		// Stable sort keeps first-seen order among equal vote counts
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Votes > candidates[j].Votes
		})

		if len(candidates) > TopCandidates {
			candidates = candidates[:TopCandidates]
		}

		tallies = append(tallies, models.GiverTally{
			Santa:      santa,
			Candidates: candidates,
		})
	}

	return tallies
}

// CalculateScores scores every submitted prediction against the
// confirmed pairings. Results come back in descending score order;
// equal scores rank the earlier submission first, then the lower
// codename, so the ordering is total. Each player's detail rows are
// grouped correct, then incorrect, then pending, preserving the
// celebration's participant order within each group.
func CalculateScores(doc *models.GameDocument, participants []string) []models.PlayerScore {
	scores := make([]models.PlayerScore, 0, len(doc.Predictions))

	for _, codename := range submissionOrder(doc) {
		pred := doc.Predictions[codename]

		var correct, incorrect, pending []models.GuessDetail
		score := 0

		for _, santa := range participants {
			guessed, ok := pred.Guesses[santa]
			if !ok || guessed == "" {
				continue
			}

			actual, confirmed := doc.ActualPairings[santa]
			switch {
			case !confirmed:
				pending = append(pending, models.GuessDetail{
					Santa:   santa,
					Guessed: guessed,
					Status:  models.GuessStatusPending,
				})
			case actual == guessed:
				score++
				correct = append(correct, models.GuessDetail{
					Santa:   santa,
					Guessed: guessed,
					Actual:  actual,
					Status:  models.GuessStatusCorrect,
				})
			default:
				incorrect = append(incorrect, models.GuessDetail{
					Santa:   santa,
					Guessed: guessed,
					Actual:  actual,
					Status:  models.GuessStatusIncorrect,
				})
			}
		}

		details := make([]models.GuessDetail, 0, len(correct)+len(incorrect)+len(pending))
		details = append(details, correct...)
		details = append(details, incorrect...)
		details = append(details, pending...)

		scores = append(scores, models.PlayerScore{
			Codename:    codename,
			Score:       score,
			SubmittedAt: pred.Timestamp,
			Details:     details,
		})
	}

	// Entries start in submission order, so a stable sort by descending
	// score leaves earlier submissions ahead on ties
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

// CalculateRevealState reports how far the reveal has progressed.
// Started means at least one pairing is confirmed; complete means every
// participant has one.
func CalculateRevealState(doc *models.GameDocument, participants []string) models.RevealState {
	confirmed := 0
	for _, santa := range participants {
		if _, ok := doc.ActualPairings[santa]; ok {
			confirmed++
		}
	}

	return models.RevealState{
		Started:   len(doc.ActualPairings) > 0,
		Complete:  len(participants) > 0 && confirmed == len(participants),
		Confirmed: confirmed,
		Total:     len(participants),
	}
}

// LeaderboardAccessible applies the visibility gate: an explicit admin
// setting wins either way; otherwise the leaderboard opens once enough
// predictions are in.
func LeaderboardAccessible(doc *models.GameDocument) bool {
	if doc.LeaderboardVisible != nil {
		return *doc.LeaderboardVisible
	}
	return len(doc.Predictions) >= AutoRevealThreshold
}
