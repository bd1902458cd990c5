package tasks

import (
	"fmt"

	"github.com/desertthunder/oszget/internal/mirror"
	"github.com/desertthunder/oszget/internal/osu"
)

// ProgressUpdate represents a progress event during a pipeline run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Pipeline phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Pipeline phase enumeration
type Phase int

const (
	Authenticate Phase = iota
	FetchScores
	Extract
	Download
)

func (p Phase) String() string {
	switch p {
	case Authenticate:
		return "authenticate"
	case FetchScores:
		return "fetch_scores"
	case Extract:
		return "extract"
	case Download:
		return "download"
	default:
		return ""
	}
}

func authenticatingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Authenticate,
		Step:    1,
		Total:   1,
		Message: "Requesting OAuth token...",
	}
}

func fetchingScoresUpdate(mode osu.Mode, limit int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchScores,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching up to %d %s top plays...", limit, mode),
	}
}

func extractedUpdate(scores, sets int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Extract,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetched %d scores, %d unique beatmapsets", scores, sets),
		Data:    sets,
	}
}

func downloadUpdate(step, total int, res mirror.Result) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Download,
		Step:    step,
		Total:   total,
		Message: res.Line(),
		Data:    res,
	}
}
