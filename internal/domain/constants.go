package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for config/stats files (rw-------)
	SecureFilePermissions = 0o600
)

// Limit constants
const (
	// DefaultMaxCommands is the default cap on displayed results
	DefaultMaxCommands = 100
	// MinCommandLength drops single-character noise like "l" or "w"
	MinCommandLength = 2
	// DefaultTopCommands is how many entries the statistics report lists
	DefaultTopCommands = 10
	// DefaultRecentExecutions is how many log rows the statistics report shows
	DefaultRecentExecutions = 5
)
