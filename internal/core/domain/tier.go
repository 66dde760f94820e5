package domain

// Tier is one of four increasingly expensive strategies for producing the
// frontend build output.
type Tier int

const (
	// TierInstantSkip means source and output are both intact; nothing runs.
	TierInstantSkip Tier = iota
	// TierRestore means source is unchanged but output is gone; the backup
	// copy is restored without invoking the bundler.
	TierRestore
	// TierIncremental means source changed but dependencies did not; the
	// bundler runs with its intermediate cache and vendor pre-bundles intact.
	TierIncremental
	// TierFullRebuild means the dependency lockfile changed; vendor bundles
	// are force-rebuilt before the bundler runs.
	TierFullRebuild
)

// String returns the tier's display name.
func (t Tier) String() string {
	switch t {
	case TierInstantSkip:
		return "instant-skip"
	case TierRestore:
		return "restore"
	case TierIncremental:
		return "incremental"
	case TierFullRebuild:
		return "full-rebuild"
	default:
		return "unknown"
	}
}

// TierInputs are the observations the tier decision is made over.
type TierInputs struct {
	HashMatches     bool
	DistExists      bool
	BackupExists    bool
	LockfileChanged bool
}

// DecideTier selects the frontend build strategy. Precedence is strict:
// instant-skip beats restore, and only when neither applies does the
// lockfile decide between incremental and full rebuild.
func DecideTier(in TierInputs) Tier {
	switch {
	case in.HashMatches && in.DistExists:
		return TierInstantSkip
	case in.HashMatches && in.BackupExists:
		return TierRestore
	case in.LockfileChanged:
		return TierFullRebuild
	default:
		return TierIncremental
	}
}
