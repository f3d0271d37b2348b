package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMergeConflict         GameError = "prediction was overwritten by a concurrent submission"
	ErrIncompletePrediction  GameError = "prediction must name a recipient for every santa"
	ErrUnknownParticipant    GameError = "codename is not a participant in this celebration"
	ErrInvalidGuess          GameError = "guess names someone outside this celebration"
	ErrInvalidPairing        GameError = "pairing names someone outside this celebration"
	ErrLeaderboardHidden     GameError = "leaderboard is not visible yet"
	ErrNilConfig             GameError = "config cannot be nil"
	ErrNilCelebration        GameError = "celebration cannot be nil"
	ErrNilDocumentService    GameError = "document service cannot be nil"
	ErrNilClock              GameError = "clock cannot be nil"
)
