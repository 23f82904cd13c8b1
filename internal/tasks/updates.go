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
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	PullRemote Phase = iota
	MergeStates
	SaveLocal
	PushRemote
	CheckHealth
	WriteReport
)

func (p Phase) String() string {
	switch p {
	case PullRemote:
		return "pull_remote"
	case MergeStates:
		return "merge_states"
	case SaveLocal:
		return "save_local"
	case PushRemote:
		return "push_remote"
	case CheckHealth:
		return "check_health"
	case WriteReport:
		return "write_report"
	default:
		return ""
	}
}

func pullRemoteUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PullRemote,
		Step:    step,
		Total:   total,
		Message: "Fetching remote progress...",
	}
}

func mergeStatesUpdate(step, total, records int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MergeStates,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Merging %d remote records...", records),
	}
}

func saveLocalUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveLocal,
		Step:    step,
		Total:   total,
		Message: "Saving merged progress locally...",
	}
}

func pushRemoteUpdate(step, total, records int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PushRemote,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Uploading %d records...", records),
	}
}

func checkHealthUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckHealth,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Checking %s availability...", name),
	}
}

func writeReportUpdate(format string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %s report...", format),
	}
}
