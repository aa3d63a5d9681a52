//go:build windows

package envstore

// NewMachineStore returns the machine-wide store for variable. On windows
// that is the system environment in the registry; file is ignored.
func NewMachineStore(variable, file string) Store {
	return NewRegistryStore(variable)
}
