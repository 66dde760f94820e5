package domain

// Phase identifies one stage of the sequential build pipeline.
type Phase string

const (
	// PhasePackages builds the workspace packages.
	PhasePackages Phase = "packages"
	// PhaseAPI builds the API bundle.
	PhaseAPI Phase = "api"
	// PhaseFrontend builds the frontend bundle.
	PhaseFrontend Phase = "frontend"
	// PhaseCompression compresses large frontend artifacts post-build.
	PhaseCompression Phase = "compression"
)

const (
	// osReserveMB is memory left to the OS when budgeting a subprocess heap.
	osReserveMB = 512
	// heapFloorMB is the minimum heap handed to a build subprocess.
	heapFloorMB = 512
)

var requiredMB = map[Phase]int{
	PhasePackages: 1024,
	PhaseAPI:      1536,
	PhaseFrontend: 3072,
}

var heapCeilingMB = map[Phase]int{
	PhasePackages: 2048,
	PhaseAPI:      2048,
	PhaseFrontend: 4096,
}

// RequiredMB returns the minimum available memory for a phase to start.
// Phases without an entry require nothing.
func RequiredMB(phase Phase) int {
	return requiredMB[phase]
}

// HeapBudgetMB computes the heap limit handed to the external build
// subprocess: min(phase ceiling, max(available - OS reserve, floor)).
func HeapBudgetMB(phase Phase, availableMB int) int {
	budget := availableMB - osReserveMB
	if budget < heapFloorMB {
		budget = heapFloorMB
	}
	if ceiling, ok := heapCeilingMB[phase]; ok && budget > ceiling {
		budget = ceiling
	}
	return budget
}
