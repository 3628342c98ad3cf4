package translator

// State is the phase a chunk is in on the fallback chain.
type State int

const (
	StateStarted State = iota
	StateFallback
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateFallback:
		return "fallback"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress is reported through Options.OnProgress. ChunkIndex is zero-based.
type Progress struct {
	ChunkIndex  int
	TotalChunks int
	Provider    string
	State       State
	Err         error
}
