package models

import "time"

// GuessStatus classifies one guess against the confirmed pairings
type GuessStatus string

const (
	// GuessStatusCorrect indicates the santa's pairing is confirmed and matches the guess
	GuessStatusCorrect GuessStatus = "correct"

	// GuessStatusIncorrect indicates the santa's pairing is confirmed and differs from the guess
	GuessStatusIncorrect GuessStatus = "incorrect"

	// GuessStatusPending indicates the santa has no confirmed pairing yet
	GuessStatusPending GuessStatus = "pending"
)

// GuessDetail is one row of a player's score breakdown
type GuessDetail struct {
	// Santa is the giver the guess was about
	Santa string `json:"santa"`

	// Guessed is the recipient the player predicted for that santa
	Guessed string `json:"guessed"`

	// Actual is the confirmed recipient; empty while the guess is pending
	Actual string `json:"actual,omitempty"`

	// Status classifies the guess
	Status GuessStatus `json:"status"`
}

// PlayerScore is one participant's standing on the leaderboard
type PlayerScore struct {
	// Codename is the participant who submitted the prediction
	Codename string `json:"codename"`

	// Score is the number of correct guesses so far
	Score int `json:"score"`

	// SubmittedAt is when their prediction was submitted; used as the
	// tie-break when scores are equal
	SubmittedAt time.Time `json:"submittedAt"`

	// Details lists every guess, correct first, then incorrect, then pending
	Details []GuessDetail `json:"details"`
}

// CandidateTally is one guessed recipient and how many votes it drew
type CandidateTally struct {
	// Recipient is the guessed recipient
	Recipient string `json:"recipient"`

	// Votes is how many predictions named that recipient
	Votes int `json:"votes"`
}

// GiverTally aggregates everyone's guesses about a single santa
type GiverTally struct {
	// Santa is the giver the guesses were about
	Santa string `json:"santa"`

	// Candidates holds the top guessed recipients by descending vote count
	Candidates []CandidateTally `json:"candidates"`
}

// RevealState summarizes how far the admin's reveal has progressed
type RevealState struct {
	// Started is true once at least one pairing is confirmed
	Started bool `json:"started"`

	// Complete is true once every participant has a confirmed pairing
	Complete bool `json:"complete"`

	// Confirmed is the number of confirmed pairings
	Confirmed int `json:"confirmed"`

	// Total is the number of participants in the celebration
	Total int `json:"total"`
}
