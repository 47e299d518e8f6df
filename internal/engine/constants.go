package engine

// Score conventions. CheckmateScore sits well outside any ordinary
// evaluation; mate scores are encoded as ±(CheckmateScore - plyToMate)
// so shorter mates always compare as better. MaxEval bounds ordinary
// evaluations so they can never be confused with a mate score.
const (
	Infinity       = 1 << 30
	CheckmateScore = 29000
	MaxEval        = 28000

	// heartbeatNodes is how often the search polls the time manager
	// and the cooperative stop flag.
	heartbeatNodes = 100_000
)
