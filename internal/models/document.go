package models

import (
	"time"
)

// Prediction is one participant's full set of guesses, overwritten
// wholesale on resubmission.
type Prediction struct {
	// Timestamp is when the prediction was submitted; it doubles as the
	// post-write verification token for the merge protocol
	Timestamp time.Time `json:"timestamp"`

	// Guesses maps a santa identifier to the guessed recipient
	Guesses map[string]string `json:"guesses"`
}

// GameDocument is the single shared remote resource for one celebration.
// All writes replace the whole document; there is no field-level patch.
type GameDocument struct {
	// Predictions maps a participant identifier to their latest prediction
	Predictions map[string]*Prediction `json:"predictions"`

	// ActualPairings maps a santa to their confirmed recipient; keys
	// present are confirmed, everything else is still pending
	ActualPairings map[string]string `json:"actualPairings"`

	// WinnersRevealed is true once every participant has a confirmed pairing
	WinnersRevealed bool `json:"winnersRevealed"`

	// LeaderboardVisible is the admin override: true forces the leaderboard
	// on, false forces it off, nil falls back to the submission threshold
	LeaderboardVisible *bool `json:"leaderboardVisible"`

	// LastUpdated is when the document was last successfully written
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewGameDocument returns the default document a celebration starts from.
func NewGameDocument(now time.Time) *GameDocument {
	return &GameDocument{
		Predictions:    map[string]*Prediction{},
		ActualPairings: map[string]string{},
		LastUpdated:    now,
	}
}

// Normalize converts absent or malformed fields into defined defaults.
// Every document entering the process passes through here once, at the
// store-client boundary, so the rest of the code never nil-checks maps.
func (d *GameDocument) Normalize() {
	if d.Predictions == nil {
		d.Predictions = map[string]*Prediction{}
	}
	for codename, pred := range d.Predictions {
		if pred == nil {
			delete(d.Predictions, codename)
			continue
		}
		if pred.Guesses == nil {
			pred.Guesses = map[string]string{}
		}
	}
	if d.ActualPairings == nil {
		d.ActualPairings = map[string]string{}
	}
}

// SubmissionCount returns how many participants have submitted a prediction.
func (d *GameDocument) SubmissionCount() int {
	return len(d.Predictions)
}

// ConfirmedCount returns how many santas have a confirmed pairing.
func (d *GameDocument) ConfirmedCount() int {
	return len(d.ActualPairings)
}
