package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ParseRows Phase = iota
	ResolveDuplicates
	CreateScores
	MigrateGenres
)

func (p Phase) String() string {
	switch p {
	case ParseRows:
		return "parse_rows"
	case ResolveDuplicates:
		return "resolve_duplicates"
	case CreateScores:
		return "create_scores"
	case MigrateGenres:
		return "migrate_genres"
	default:
		return ""
	}
}

func parseRowsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseRows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Parsing rows (%d/%d)...", step, total),
	}
}

func resolveDuplicatesUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveDuplicates,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d duplicate title(s), waiting for decision...", count),
	}
}

func createScoreUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateScores,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Importing: %s", step, total, title),
	}
}

func createFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateScores,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

func migrateGenresUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MigrateGenres,
		Step:    step,
		Total:   total,
		Message: "Migrating legacy custom genres...",
	}
}
