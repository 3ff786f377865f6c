package shared

// Process exit codes. Finalize failure takes precedence over everything,
// including a fully successful check and build pass.
const (
	ExitOK             = 0
	ExitCheckFailed    = 1
	ExitBuildFailed    = 2
	ExitFinalizeFailed = 3
)
