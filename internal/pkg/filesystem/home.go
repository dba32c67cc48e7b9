// Package filesystem holds small path helpers shared by the config,
// cache and history stores.
package filesystem

import "os"

// UserHomeDir resolves the home directory anchoring ~/.blackline. It
// falls back to "." so the stores still work in stripped environments.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
