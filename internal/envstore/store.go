// Package envstore reads and writes the machine-wide value of an environment
// variable. Each Store targets one variable at one fixed scope.
package envstore

// Store is a single persistent environment variable.
type Store interface {
	// Name describes where the value lives, for logs and messages.
	Name() string
	// Get returns the current stored value.
	Get() (string, error)
	// Set overwrites the stored value.
	Set(value string) error
}
