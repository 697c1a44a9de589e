package domain

// ShellName enumerates supported shell history dialects.
type ShellName string

const (
	ShellAuto ShellName = "auto"
	ShellZsh  ShellName = "zsh"
	ShellBash ShellName = "bash"
	ShellFish ShellName = "fish"
)

// DialectPreference is the fixed fallback order when auto-detection from the
// environment is inconclusive.
var DialectPreference = []ShellName{ShellZsh, ShellBash, ShellFish}

// ValidShellName reports whether the value names a supported dialect or auto.
func ValidShellName(s ShellName) bool {
	switch s {
	case ShellAuto, ShellZsh, ShellBash, ShellFish:
		return true
	}
	return false
}
