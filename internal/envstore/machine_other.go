//go:build !windows

package envstore

import "github.com/spf13/afero"

// NewMachineStore returns the machine-wide store for variable. On this
// platform that is the environment file at file.
func NewMachineStore(variable, file string) Store {
	if file == "" {
		file = DefaultEnvironmentFile
	}
	return NewFileStore(afero.NewOsFs(), file, variable)
}
