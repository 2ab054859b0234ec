package jobs

import "fmt"

// Phase is a named sub-stage of a job's execution, used for progress
// reporting. The set is closed; normalizers map every raw backend event
// onto one of these.
type Phase string

const (
	// PhasePackingObjects covers object enumeration and counting.
	PhasePackingObjects Phase = "packing-objects"
	// PhasePackingDeltas covers delta compression.
	PhasePackingDeltas Phase = "packing-deltas"
	// PhaseTransferring covers the network transfer.
	PhaseTransferring Phase = "transferring"
)

// Progress is the normalized progress shape presented to the UI.
// It is derived statelessly from the latest raw backend event; only the
// newest value is retained.
type Progress struct {
	Phase   Phase
	Percent int
}

// String formats progress for the status line.
func (p Progress) String() string {
	return fmt.Sprintf("%s %d%%", p.Phase, p.Percent)
}

// percent computes floor(current / max(current, total) * 100).
//
// Dividing by max(current, total) instead of total keeps the value
// defined and within [0, 100] when a backend reports total == 0 or
// current overshooting total: (1, 0) yields 100, (0, 0) yields 0.
func percent(current, total int) int {
	if current < 0 {
		current = 0
	}
	if total < 0 {
		total = 0
	}

	divisor := max(current, total)
	if divisor == 0 {
		return 0
	}

	return current * 100 / divisor
}
