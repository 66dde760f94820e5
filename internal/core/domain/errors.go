package domain

import "go.trai.ch/zerr"

var (
	// ErrUnitAlreadyExists is returned when attempting to add a unit with a name that already exists.
	ErrUnitAlreadyExists = zerr.New("unit already exists")

	// ErrMissingDependency is returned when a unit references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the unit dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnitNotFound is returned when a requested unit is not found in the project.
	ErrUnitNotFound = zerr.New("unit not found")

	// ErrUnitDirMissing is returned when a unit's source directory does not exist.
	ErrUnitDirMissing = zerr.New("unit directory missing")

	// ErrLockTimeout is returned when the build lock could not be acquired in time.
	ErrLockTimeout = zerr.New("build lock acquisition timed out")

	// ErrInsufficientMemory is returned when a pre-flight memory check fails for a phase.
	ErrInsufficientMemory = zerr.New("insufficient memory for build phase")

	// ErrBuildExecutionFailed is returned when one or more build units fail to build.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
