// Package loantrack holds build metadata for the loantrack module.
package loantrack

// Version is the release version printed by the CLI.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/loantrack"
