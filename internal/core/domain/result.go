package domain

import "time"

// UnitStatus is the outcome of one unit within a run.
type UnitStatus string

const (
	// StatusBuilt indicates the external build command ran and succeeded.
	StatusBuilt UnitStatus = "built"
	// StatusCached indicates the unit was skipped because its cache entry was valid.
	StatusCached UnitStatus = "cached"
	// StatusRestored indicates the output was restored from the backup copy.
	StatusRestored UnitStatus = "restored"
	// StatusFailed indicates the external build command failed.
	StatusFailed UnitStatus = "failed"
)

// UnitResult is the per-unit record of a run, reported in the summary.
type UnitResult struct {
	Name     string
	Status   UnitStatus
	Tier     Tier
	Hash     string
	Duration time.Duration
	Err      error
}

// Summary aggregates the outcome of one orchestrator run.
type Summary struct {
	Units           []UnitResult
	VendorRefreshed bool
	CompressedFiles int
	Duration        time.Duration
}

// Failed reports whether any unit in the run failed.
func (s *Summary) Failed() bool {
	for _, u := range s.Units {
		if u.Status == StatusFailed {
			return true
		}
	}
	return false
}
