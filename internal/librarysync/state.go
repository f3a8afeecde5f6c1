package librarysync

import "jukebox/internal/catalog"

// State classifies a crawled path by what its catalog row still lacks.
type State int

const (
	// StateNew has no row yet.
	StateNew State = iota
	// StateUnenriched has a row without a provider id.
	StateUnenriched
	// StateMissingTrailer is enriched but has no trailer.
	StateMissingTrailer
	// StateComplete is enriched and has a trailer.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateUnenriched:
		return "unenriched"
	case StateMissingTrailer:
		return "missing_trailer"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// StateOf derives the state of a stored entry; nil means no row.
func StateOf(entry *catalog.Entry) State {
	switch {
	case entry == nil:
		return StateNew
	case !entry.Enriched():
		return StateUnenriched
	case !entry.HasTrailer():
		return StateMissingTrailer
	default:
		return StateComplete
	}
}
