package tasks

import (
	"fmt"

	"github.com/desertthunder/zhuifan/internal/models"
)

// ProgressUpdate represents one step of a tracker operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number
	Total   int    // Total steps in this operation
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	Write Phase = iota
	FetchList
	FetchToday
)

func (p Phase) String() string {
	switch p {
	case Write:
		return "write"
	case FetchList:
		return "fetch_list"
	case FetchToday:
		return "fetch_today"
	default:
		return ""
	}
}

func writeUpdate(step, total int, verb string, id int64) ProgressUpdate {
	msg := fmt.Sprintf("%s anime...", verb)
	if id > 0 {
		msg = fmt.Sprintf("%s anime %d...", verb, id)
	}
	return ProgressUpdate{Phase: Write, Step: step, Total: total, Message: msg}
}

func writtenUpdate(step, total int, a *models.Anime) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Write,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Saved: %s (ID: %d)", a.Title, a.ID),
		Data:    a,
	}
}

func fetchListUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{Phase: FetchList, Step: step, Total: total, Message: "Fetching anime list..."}
}

func fetchTodayUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{Phase: FetchToday, Step: step, Total: total, Message: "Fetching today's releases..."}
}

func fetchFailedUpdate(phase Phase, step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, phase, err),
	}
}
