//go:build windows

package envstore

import (
	stderrors "errors"
	"unsafe"

	"editpath/internal/errors"
	"editpath/internal/logging"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const machineEnvironmentKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

const (
	hwndBroadcast   = 0xffff
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
	broadcastWaitMs = 5000
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeout = user32.NewProc("SendMessageTimeoutW")
)

// RegistryStore is the machine-scope environment variable in HKLM.
type RegistryStore struct {
	name    string
	valType uint32
	log     zerolog.Logger
}

// NewRegistryStore creates a store for the named machine variable.
func NewRegistryStore(name string) *RegistryStore {
	return &RegistryStore{
		name:    name,
		valType: registry.EXPAND_SZ,
		log:     logging.GetLogger("envstore"),
	}
}

func (s *RegistryStore) Name() string {
	return `HKLM\` + machineEnvironmentKey + `\` + s.name
}

// Get returns the raw value. %VAR% references are left unexpanded.
func (s *RegistryStore) Get() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, machineEnvironmentKey, registry.QUERY_VALUE)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrStoreRead, "cannot open %s", machineEnvironmentKey)
	}
	defer k.Close()

	value, valType, err := k.GetStringValue(s.name)
	if stderrors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrStoreRead, "cannot read %s", s.Name())
	}
	s.valType = valType
	return value, nil
}

// Set writes value with the type it was read with and notifies running
// programs that the environment changed.
func (s *RegistryStore) Set(value string) error {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, machineEnvironmentKey, registry.SET_VALUE)
	if err != nil {
		return s.writeError(err)
	}
	defer k.Close()

	if s.valType == registry.SZ {
		err = k.SetStringValue(s.name, value)
	} else {
		err = k.SetExpandStringValue(s.name, value)
	}
	if err != nil {
		return s.writeError(err)
	}

	if err := broadcastEnvironmentChange(); err != nil {
		s.log.Warn().Err(err).Msg("WM_SETTINGCHANGE broadcast failed")
	}
	s.log.Info().Str("key", s.Name()).Int("length", len(value)).Msg("Machine environment updated")
	return nil
}

func (s *RegistryStore) writeError(err error) error {
	code := errors.ErrStoreWrite
	if stderrors.Is(err, windows.ERROR_ACCESS_DENIED) {
		code = errors.ErrPermission
	}
	return errors.Wrapf(err, code, "cannot write %s", s.Name()).
		WithDetail("hint", "run editpath from an elevated (Administrator) prompt")
}

func broadcastEnvironmentChange() error {
	env, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return err
	}
	var result uintptr
	r, _, callErr := procSendMessageTimeout.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(env)),
		smtoAbortIfHung,
		broadcastWaitMs,
		uintptr(unsafe.Pointer(&result)),
	)
	if r == 0 {
		return callErr
	}
	return nil
}
