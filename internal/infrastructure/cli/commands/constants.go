// Package commands holds the self-contained cobra subcommands that only
// need the application container, not the interactive CLI helpers.
package commands

// Version is the blackline release version.
const Version = "1.0.0"
